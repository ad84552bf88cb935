package anchor

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seqmatch/internal/nedit"
)

// Table holds the outcomes of one pattern against several subjects, one
// column per subject, stored column-major. Per-anchor answers have one row
// per anchor; first-match answers have a single row.
type Table struct {
	Answer Answer
	Rows   int
	Cols   int
	Values []Outcome
}

// At returns the outcome for anchor row and subject col.
func (t *Table) At(row, col int) Outcome { return t.Values[col*t.Rows+row] }

// Column returns the outcomes of subject col. The slice aliases the table.
func (t *Table) Column(col int) []Outcome { return t.Values[col*t.Rows : (col+1)*t.Rows] }

// MatchSet scores pattern against every subject at the same anchors.
// Subjects are scored concurrently, each with its own scratch rows; the
// table layout does not depend on scheduling. The first error cancels the
// remaining subjects.
func (e *Evaluator) MatchSet(ctx context.Context, pattern []byte, subjects [][]byte, anchors []Anchor) (*Table, error) {
	if err := e.checkBand(pattern); err != nil {
		return nil, err
	}
	rows := 1
	if e.p.Answer.PerAnchor() {
		rows = len(anchors)
	}
	t := &Table{
		Answer: e.p.Answer,
		Rows:   rows,
		Cols:   len(subjects),
		Values: make([]Outcome, rows*len(subjects)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for col, subject := range subjects {
		if gctx.Err() != nil {
			break
		}
		col, subject := col, subject
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sc := nedit.Get()
			defer nedit.Put(sc)
			res, err := e.match(sc, pattern, subject, anchors)
			if err != nil {
				return fmt.Errorf("subject %d: %w", col+1, err)
			}
			copy(t.Column(col), res.Outcomes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a cancellation that raced the last spawn leaves columns unscored
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.log.Debug("subjects scored", zap.Int("subjects", len(subjects)), zap.Int("anchors", len(anchors)))
	return t, nil
}
