// Package nedit computes bounded edit distances between a pattern and the
// substrings of a subject that start at a given offset.
//
// The computation is a banded Levenshtein recurrence (substitution,
// insertion and deletion all cost 1) restricted to the diagonals within
// maxEdits of the anchor. Only two score rows of 2*maxEdits+1 cells are
// kept; they live in a Scratch owned by the caller, so independent
// computations can run concurrently as long as each uses its own Scratch.
//
// Distances up to maxEdits are exact. Once every cell of a full row exceeds
// maxEdits the computation stops early and returns a value > maxEdits that
// must only be read as "too many edits".
//
// The engine always compares letters by identity.
package nedit
