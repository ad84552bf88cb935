// Package mismatch counts substitution mismatches between a pattern and a
// subject at a fixed shift.
package mismatch

import "seqmatch/internal/letter"

// Count returns the number of mismatching letters when pattern[0] is placed
// on subject[shift]. A pattern letter that falls outside the subject counts
// as a mismatch, so the pattern may overhang either end.
//
// Counting stops as soon as the total exceeds ceiling; in that case the
// returned value is ceiling+1, not the true total. Pass len(pattern) as the
// ceiling to get an exact count.
func Count(cmp letter.Comparator, pattern, subject []byte, shift, ceiling int) int {
	mm := 0
	for i, j := 0, shift; i < len(pattern); i, j = i+1, j+1 {
		if j >= 0 && j < len(subject) && cmp.Match(letter.Letter(pattern[i]), letter.Letter(subject[j])) {
			continue
		}
		if mm >= ceiling {
			return mm + 1
		}
		mm++
	}
	return mm
}

// Hamming is Count without a ceiling.
func Hamming(cmp letter.Comparator, pattern, subject []byte, shift int) int {
	return Count(cmp, pattern, subject, shift, len(pattern))
}
