package nedit

import (
	"errors"
	"fmt"
	"sync"
)

// MaxEdits is the largest band radius the engine accepts.
const MaxEdits = 100

// Sentinel errors, matched with errors.Is. ErrZeroBound marks a band of
// radius 0, which is plain mismatch counting.
var (
	// ErrNegativeBound rejects a negative maxEdits.
	ErrNegativeBound = errors.New("nedit: maxEdits must be >= 0")
	// ErrZeroBound rejects maxEdits 0; count mismatches instead.
	ErrZeroBound = errors.New("nedit: maxEdits is 0, count mismatches instead")
	// ErrBandTooWide rejects a clamped maxEdits above MaxEdits.
	ErrBandTooWide = errors.New("nedit: maxEdits too big")
	// ErrRightAnchorUnimplemented is returned by every RightAnchored call.
	ErrRightAnchorUnimplemented = errors.New("nedit: right-anchored edit distance is not implemented")
)

// Row stages reported to a Tracer.
const (
	StageInit = "init"
	StageRamp = "ramp"
	StageFull = "full"
	StageBail = "bailout"
)

// Tracer observes every computed score row. Cells before from are not part
// of the band yet. The row is only valid during the call.
type Tracer func(stage string, row []int, from int)

// Scratch holds the two score rows of one computation. A Scratch must not
// be used by two goroutines at once.
type Scratch struct {
	row1, row2 []int

	// Trace, when set, is called after each row is computed.
	Trace Tracer
}

// NewScratch returns an empty Scratch; rows grow on first use.
func NewScratch() *Scratch { return &Scratch{} }

var scratchPool = sync.Pool{
	New: func() any { return NewScratch() },
}

// Get takes a Scratch from the package pool.
func Get() *Scratch { return scratchPool.Get().(*Scratch) }

// Put returns s to the pool. s must not be used afterwards.
func Put(s *Scratch) {
	s.Trace = nil
	scratchPool.Put(s)
}

func (s *Scratch) rows(n int) (prev, curr []int) {
	if cap(s.row1) < n {
		s.row1 = make([]int, n)
		s.row2 = make([]int, n)
	}
	return s.row1[:n], s.row2[:n]
}

func (s *Scratch) trace(stage string, row []int, from int) {
	if s.Trace != nil {
		s.Trace(stage, row, from)
	}
}

// LeftAnchored returns the smallest edit distance between pattern and the
// substrings of subject starting at loffset (the subject offset of the
// pattern's first letter), together with the width of the shortest such
// substring reaching that distance. Subject positions outside the subject
// never match.
//
// The distance is exact when it is <= maxEdits; otherwise it is some value
// > maxEdits. maxEdits is clamped to len(pattern) before being checked
// against MaxEdits.
//
// loose is reserved for allowing an indel on the anchored letter and is
// currently ignored.
func (s *Scratch) LeftAnchored(pattern, subject []byte, loffset, maxEdits int, loose bool) (dist, width int, err error) {
	if len(pattern) == 0 {
		return 0, 0, nil
	}
	switch {
	case maxEdits < 0:
		return 0, 0, ErrNegativeBound
	case maxEdits == 0:
		return 0, 0, ErrZeroBound
	}
	bail := maxEdits + 1
	if maxEdits > len(pattern) {
		maxEdits = len(pattern)
	}
	if maxEdits > MaxEdits {
		return 0, 0, fmt.Errorf("%w: %d > %d", ErrBandTooWide, maxEdits, MaxEdits)
	}
	rowLen := 2*maxEdits + 1
	prev, curr := s.rows(rowLen)

	// Empty pattern prefix against growing subject prefixes, centered.
	for B, b := maxEdits, 0; B < rowLen; B, b = B+1, b+1 {
		curr[B] = b
	}
	s.trace(StageInit, curr, maxEdits)

	// Ramp-up: the band grows one cell to the left per letter. The row
	// minimum is at most i+1 < maxEdits here, so there is nothing to bail on.
	i := 0
	for ; i+1 < maxEdits; i++ {
		prev, curr = curr, prev
		from := maxEdits - i - 1
		curr[from] = i + 1
		fill(curr, prev, from+1, subject, loffset, loffset, pattern[i], i+1)
		s.trace(StageRamp, curr, from)
	}

	// The band reaches full width.
	prev, curr = curr, prev
	curr[0] = i + 1
	dist, width = fill(curr, prev, 1, subject, loffset, loffset, pattern[i], i+1)
	s.trace(StageFull, curr, 0)
	i++

	// From here each letter slides the band one column right. Row minima
	// never decrease, so once one exceeds the bound the answer is settled.
	for jmin := loffset; i < len(pattern); i, jmin = i+1, jmin+1 {
		prev, curr = curr, prev
		dist, width = fill(curr, prev, 0, subject, jmin, loffset, pattern[i], i+1)
		s.trace(StageBail, curr, 0)
		if dist >= bail {
			break
		}
	}
	return dist, width, nil
}

// RightAnchored would align the pattern's last letter on roffset. It is not
// implemented and always fails; it never falls back to LeftAnchored.
func (s *Scratch) RightAnchored(pattern, subject []byte, roffset, maxEdits int, loose bool) (dist, width int, err error) {
	return 0, 0, ErrRightAnchorUnimplemented
}

// fill computes curr[from:] for pattern letter pc, where curr[from] lines up
// with subject column jmin. It returns the smallest score of the row, seeded
// with floor at width 0, and the width (from loffset) of its first column.
func fill(curr, prev []int, from int, subject []byte, jmin, loffset int, pc byte, floor int) (best, width int) {
	best = floor
	for B, j := from, jmin; B < len(curr); B, j = B+1, j+1 {
		n := prev[B]
		if j < 0 || j >= len(subject) || subject[j] != pc {
			n++
		}
		if B > 0 && curr[B-1]+1 < n {
			n = curr[B-1] + 1
		}
		if B+1 < len(curr) && prev[B+1]+1 < n {
			n = prev[B+1] + 1
		}
		curr[B] = n
		if n < best {
			best, width = n, j-loffset+1
		}
	}
	return best, width
}
