package anchor

import (
	"fmt"
	"strconv"
	"strings"
)

// Anchor is a 1-based subject position. The zero value is NA.
type Anchor struct {
	Pos   int
	Valid bool
}

// NA is the missing anchor.
var NA = Anchor{}

// At returns a valid anchor at pos.
func At(pos int) Anchor { return Anchor{Pos: pos, Valid: true} }

// Positions returns valid anchors for each of pos.
func Positions(pos ...int) []Anchor {
	out := make([]Anchor, len(pos))
	for i, p := range pos {
		out[i] = At(p)
	}
	return out
}

func (a Anchor) String() string {
	if !a.Valid {
		return "NA"
	}
	return strconv.Itoa(a.Pos)
}

// ParseList parses a comma-separated list such as "3,5,NA,-1".
func ParseList(s string) ([]Anchor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]Anchor, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if strings.EqualFold(f, "NA") {
			out = append(out, NA)
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("anchor: bad position %q", f)
		}
		out = append(out, At(n))
	}
	return out, nil
}

// Mode says which pattern letter an anchor refers to.
type Mode int

const (
	First Mode = iota // anchor is the pattern's first letter
	Last              // anchor is the pattern's last letter
)

func (m Mode) String() string {
	switch m {
	case First:
		return "first"
	case Last:
		return "last"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "first"/"start" and "last"/"end" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "first", "start", "0":
		return First, nil
	case "last", "end", "1":
		return Last, nil
	}
	return First, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Answer selects the shape of a Result.
type Answer int

const (
	Count      Answer = iota // score per anchor
	Logical                  // match flag per anchor
	FirstIndex               // 1-based index of the first matching anchor
	FirstValue               // value of the first matching anchor
)

func (a Answer) String() string {
	switch a {
	case Count:
		return "count"
	case Logical:
		return "logical"
	case FirstIndex:
		return "which"
	case FirstValue:
		return "value"
	}
	return fmt.Sprintf("Answer(%d)", int(a))
}

// PerAnchor reports whether the answer holds one outcome per anchor.
func (a Answer) PerAnchor() bool { return a == Count || a == Logical }

func (a Answer) valid() bool { return a >= Count && a <= FirstValue }

// ParseAnswer maps an answer name to an Answer.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(s) {
	case "count", "nmismatch":
		return Count, nil
	case "logical", "bool", "is-matching":
		return Logical, nil
	case "which", "index":
		return FirstIndex, nil
	case "value":
		return FirstValue, nil
	}
	return Count, fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
}

// Outcome is one answer cell.
type Outcome struct {
	Value int
	NA    bool
}

// Bool reads a Logical outcome.
func (o Outcome) Bool() bool { return !o.NA && o.Value != 0 }

func (o Outcome) String() string {
	if o.NA {
		return "NA"
	}
	return strconv.Itoa(o.Value)
}

func logical(b bool) Outcome {
	if b {
		return Outcome{Value: 1}
	}
	return Outcome{}
}

// Result holds the outcomes for one subject: one per anchor for Count and
// Logical answers, a single one otherwise.
type Result struct {
	Answer   Answer
	Outcomes []Outcome
}
