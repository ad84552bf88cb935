// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one matching outcome.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
//
// Per-anchor answers (count, logical) emit one record per subject and anchor;
// first-match answers (which, value) emit one record per subject.
type ResultV1 struct {
	SequenceID  string `json:"sequence_id"`
	Answer      string `json:"answer"`                 // "count" | "logical" | "which" | "value"
	AnchorIndex int    `json:"anchor_index,omitempty"` // 1-based, per-anchor answers only
	Anchor      *int   `json:"anchor,omitempty"`       // nil for NA anchors
	Value       *int   `json:"value"`                  // null = NA
	Matched     *bool  `json:"matched,omitempty"`      // logical answers only
}
