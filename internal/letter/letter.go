// internal/letter/letter.go
package letter

import "fmt"

// Letter is one sequence letter. Under the fixed discipline it is compared
// by identity; otherwise it is a bitmask over the alphabet and compared by
// bit containment or overlap.
type Letter byte

// Bits of the nucleotide bitmask alphabet.
const (
	A    Letter = 1 << iota // 0000001
	C                       // 0000010
	G                       // 0000100
	T                       // 0001000
	Gap                     // 0010000 '-'
	Plus                    // 0100000 '+'
	Dot                     // 1000000 '.'
)

// Has reports whether every bit set in o is also set in l.
func (l Letter) Has(o Letter) bool { return o&^l == 0 }

// Overlaps reports whether l and o share at least one bit.
func (l Letter) Overlaps(o Letter) bool { return l&o != 0 }

/* ----------------------- IUPAC / bitmask lookup ------------------------- */

// Alphabet selects how raw sequence text maps onto letters.
type Alphabet int

const (
	Raw Alphabet = iota // bytes are used as-is (fixed discipline only)
	DNA
	RNA
)

func (a Alphabet) String() string {
	switch a {
	case Raw:
		return "raw"
	case DNA:
		return "dna"
	case RNA:
		return "rna"
	}
	return fmt.Sprintf("Alphabet(%d)", int(a))
}

// ParseAlphabet maps a name (raw|dna|rna) to an Alphabet.
func ParseAlphabet(s string) (Alphabet, error) {
	switch s {
	case "raw", "bstring":
		return Raw, nil
	case "dna":
		return DNA, nil
	case "rna":
		return RNA, nil
	}
	return Raw, fmt.Errorf("letter: unknown alphabet %q", s)
}

// Bitmask reports whether letters of this alphabet carry ambiguity bits.
func (a Alphabet) Bitmask() bool { return a == DNA || a == RNA }

var (
	dnaCode [256]Letter // 0 = not in alphabet
	rnaCode [256]Letter
)

func init() {
	set := func(c byte, l Letter) {
		dnaCode[c] = l
		dnaCode[c|0x20] = l // lower case
	}
	set('A', A)
	set('C', C)
	set('G', G)
	set('T', T)
	set('R', A|G)
	set('Y', C|T)
	set('S', C|G)
	set('W', A|T)
	set('K', G|T)
	set('M', A|C)
	set('B', C|G|T)
	set('D', A|G|T)
	set('H', A|C|T)
	set('V', A|C|G)
	set('N', A|C|G|T)
	dnaCode['-'] = Gap
	dnaCode['+'] = Plus
	dnaCode['.'] = Dot

	rnaCode = dnaCode
	rnaCode['T'], rnaCode['t'] = 0, 0
	rnaCode['U'], rnaCode['u'] = T, T
}

// Encode returns a copy of seq translated into the bitmask alphabet. Raw
// sequences are copied unchanged. An unknown character is an error naming
// its 0-based position.
func Encode(a Alphabet, seq []byte) ([]byte, error) {
	out := make([]byte, len(seq))
	if !a.Bitmask() {
		copy(out, seq)
		return out, nil
	}
	table := &dnaCode
	if a == RNA {
		table = &rnaCode
	}
	for i, c := range seq {
		l := table[c]
		if l == 0 {
			return nil, fmt.Errorf("letter: invalid %s letter %q at position %d", a, c, i)
		}
		out[i] = byte(l)
	}
	return out, nil
}
