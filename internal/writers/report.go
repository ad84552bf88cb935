// internal/writers/report.go
package writers

import (
	"seqmatch/internal/anchor"
	"seqmatch/pkg/api"
)

// Report pairs a table with the names of its subjects and the anchors it
// was scored at.
type Report struct {
	IDs     []string
	Anchors []anchor.Anchor
	Table   *anchor.Table
}

// Results flattens the report subject by subject into v1 wire records.
func (r Report) Results() []api.ResultV1 {
	t := r.Table
	out := make([]api.ResultV1, 0, len(t.Values))
	for col := 0; col < t.Cols; col++ {
		for row := 0; row < t.Rows; row++ {
			out = append(out, r.result(row, col))
		}
	}
	return out
}

func (r Report) result(row, col int) api.ResultV1 {
	t := r.Table
	o := t.At(row, col)
	v := api.ResultV1{SequenceID: r.id(col), Answer: t.Answer.String()}
	if !o.NA {
		val := o.Value
		v.Value = &val
	}
	if !t.Answer.PerAnchor() {
		return v
	}
	v.AnchorIndex = row + 1
	if a := r.Anchors[row]; a.Valid {
		pos := a.Pos
		v.Anchor = &pos
	}
	if t.Answer == anchor.Logical && !o.NA {
		m := o.Bool()
		v.Matched = &m
	}
	return v
}

func (r Report) id(col int) string {
	if col < len(r.IDs) {
		return r.IDs[col]
	}
	return ""
}
