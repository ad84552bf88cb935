package letter

import (
	"fmt"
	"strings"
)

// Discipline holds the fixed flags of a matching session. A fixed side is
// compared by letter identity; a non-fixed side is read as a bitmask.
type Discipline struct {
	Pattern bool
	Subject bool
}

// Fixed is the identity discipline on both sides.
var Fixed = Discipline{Pattern: true, Subject: true}

// IsFixed reports whether both sides are fixed.
func (d Discipline) IsFixed() bool { return d.Pattern && d.Subject }

func (d Discipline) String() string {
	switch {
	case d.Pattern && d.Subject:
		return "fixed"
	case d.Pattern:
		return "fixed-pattern"
	case d.Subject:
		return "fixed-subject"
	}
	return "non-fixed"
}

// Comparator decides whether pattern letter p matches subject letter s.
//
//	fixed P | fixed S | p and s match iff...
//	--------+---------+----------------------------------------
//	true    | true    | they are equal
//	true    | false   | bits at 1 in p are also at 1 in s
//	false   | true    | bits at 1 in s are also at 1 in p
//	false   | false   | they share at least one bit at 1
type Comparator interface {
	Match(p, s Letter) bool
	Discipline() Discipline
}

type exact struct{}

func (exact) Match(p, s Letter) bool { return p == s }
func (exact) Discipline() Discipline { return Fixed }

type patternInSubject struct{}

func (patternInSubject) Match(p, s Letter) bool { return s.Has(p) }
func (patternInSubject) Discipline() Discipline { return Discipline{Pattern: true} }

type subjectInPattern struct{}

func (subjectInPattern) Match(p, s Letter) bool { return p.Has(s) }
func (subjectInPattern) Discipline() Discipline { return Discipline{Subject: true} }

type overlap struct{}

func (overlap) Match(p, s Letter) bool { return p.Overlaps(s) }
func (overlap) Discipline() Discipline { return Discipline{} }

// Select returns the comparator for d.
func Select(d Discipline) Comparator {
	if d.Pattern {
		if d.Subject {
			return exact{}
		}
		return patternInSubject{}
	}
	if d.Subject {
		return subjectInPattern{}
	}
	return overlap{}
}

// ParseDiscipline reads the fixed flags from text: "true" and "false" set
// both sides; otherwise a comma-separated list naming the fixed sides
// ("pattern", "subject", "pattern,subject"). An empty list fixes nothing.
func ParseDiscipline(s string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes":
		return Fixed, nil
	case "false", "f", "no", "":
		return Discipline{}, nil
	}
	var d Discipline
	for _, f := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "pattern":
			d.Pattern = true
		case "subject":
			d.Subject = true
		default:
			return Discipline{}, fmt.Errorf("letter: invalid fixed value %q", s)
		}
	}
	return d, nil
}
