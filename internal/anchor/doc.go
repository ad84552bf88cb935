// Package anchor evaluates a pattern against a subject at a list of
// caller-supplied 1-based anchor positions. It never searches: only the
// given anchors are tried.
//
// Each anchor is scored either by counting substitutions
// (internal/mismatch) or, when indels are allowed, by bounded edit distance
// from the anchor (internal/nedit). The per-anchor scores are then shaped
// into one of four answers: the raw scores, a match flag per anchor, the
// index of the first matching anchor, or the value of that anchor.
//
// An anchor matches when MinMismatch <= score <= MaxMismatch. Scores above
// MaxMismatch are not exact.
package anchor
