package anchor

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seqmatch/internal/letter"
	"seqmatch/internal/mismatch"
	"seqmatch/internal/nedit"
)

// Params configures a matching session.
type Params struct {
	Mode        Mode
	MaxMismatch int // ceiling: scores above it are not exact
	MinMismatch int // floor for a match
	WithIndels  bool
	Fixed       letter.Discipline
	Answer      Answer
}

// DefaultParams matches exactly at the pattern's first letter.
func DefaultParams() Params {
	return Params{Fixed: letter.Fixed}
}

// Indels reports whether anchors are scored by edit distance. A zero
// ceiling always falls back to mismatch counting.
func (p Params) Indels() bool { return p.WithIndels && p.MaxMismatch != 0 }

// Validate checks the combination of settings.
func (p Params) Validate() error {
	if !p.Answer.valid() {
		return fmt.Errorf("%w (%d)", ErrInvalidAnswer, int(p.Answer))
	}
	if p.Mode != First && p.Mode != Last {
		return fmt.Errorf("%w (%d)", ErrInvalidMode, int(p.Mode))
	}
	if p.MaxMismatch < 0 || p.MinMismatch < 0 {
		return ErrNegativeBound
	}
	if p.Indels() {
		if !p.Fixed.IsFixed() {
			return fmt.Errorf("%w (got %s)", ErrIndelsNeedFixed, p.Fixed)
		}
		if p.Mode == Last {
			return nedit.ErrRightAnchorUnimplemented
		}
	}
	return nil
}

// Evaluator scores anchors under one validated Params. It holds no
// per-call state and is safe for concurrent use.
type Evaluator struct {
	p       Params
	cmp     letter.Comparator
	log     *zap.Logger
	workers int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger. At debug level every edit-distance row is
// logged.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// WithWorkers bounds the number of subjects MatchSet scores at once.
// n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New validates p and returns an Evaluator for it.
func New(p Params, opts ...Option) (*Evaluator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Evaluator{
		p:       p,
		cmp:     letter.Select(p.Fixed),
		log:     zap.NewNop(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log.Debug("anchor evaluator ready",
		zap.Stringer("mode", p.Mode),
		zap.Stringer("answer", p.Answer),
		zap.Stringer("fixed", p.Fixed),
		zap.Int("max_mismatch", p.MaxMismatch),
		zap.Int("min_mismatch", p.MinMismatch),
		zap.Bool("indels", p.Indels()),
		zap.Int("workers", e.workers),
	)
	return e, nil
}

// Params returns the session settings.
func (e *Evaluator) Params() Params { return e.p }

// Match scores pattern against subject at each anchor and shapes the
// answer. Neither slice is modified or retained.
func (e *Evaluator) Match(pattern, subject []byte, anchors []Anchor) (Result, error) {
	sc := nedit.Get()
	defer nedit.Put(sc)
	return e.match(sc, pattern, subject, anchors)
}

// Match is a one-shot Evaluator.Match.
func Match(pattern, subject []byte, anchors []Anchor, p Params) (Result, error) {
	e, err := New(p)
	if err != nil {
		return Result{}, err
	}
	return e.Match(pattern, subject, anchors)
}

// CountAt returns the score at each anchor, NA for NA anchors.
func CountAt(pattern, subject []byte, anchors []Anchor, p Params) ([]Outcome, error) {
	p.Answer = Count
	res, err := Match(pattern, subject, anchors, p)
	return res.Outcomes, err
}

// IsMatchingAt reports per anchor whether the score lies within
// [MinMismatch, MaxMismatch].
func IsMatchingAt(pattern, subject []byte, anchors []Anchor, p Params) ([]Outcome, error) {
	p.Answer = Logical
	res, err := Match(pattern, subject, anchors, p)
	return res.Outcomes, err
}

// WhichMatchingAt returns the first matching anchor: its 1-based index, or
// its position when value is set. The outcome is NA when none matches.
func WhichMatchingAt(pattern, subject []byte, anchors []Anchor, p Params, value bool) (Outcome, error) {
	p.Answer = FirstIndex
	if value {
		p.Answer = FirstValue
	}
	res, err := Match(pattern, subject, anchors, p)
	if err != nil {
		return Outcome{}, err
	}
	return res.Outcomes[0], nil
}

// checkBand rejects an edit-distance band wider than the engine allows
// before any subject is touched.
func (e *Evaluator) checkBand(pattern []byte) error {
	if !e.p.Indels() {
		return nil
	}
	if k := min(e.p.MaxMismatch, len(pattern)); k > nedit.MaxEdits {
		return fmt.Errorf("%w: %d > %d", nedit.ErrBandTooWide, k, nedit.MaxEdits)
	}
	return nil
}

func (e *Evaluator) match(sc *nedit.Scratch, pattern, subject []byte, anchors []Anchor) (Result, error) {
	if err := e.checkBand(pattern); err != nil {
		return Result{}, err
	}
	if e.p.Indels() && e.log.Core().Enabled(zapcore.DebugLevel) {
		sc.Trace = func(stage string, row []int, from int) {
			e.log.Debug("nedit row", zap.String("stage", stage), zap.Int("from", from), zap.Ints("row", row[from:]))
		}
	}

	res := Result{Answer: e.p.Answer}
	if e.p.Answer.PerAnchor() {
		res.Outcomes = make([]Outcome, len(anchors))
	} else {
		res.Outcomes = []Outcome{{NA: true}}
	}
	for i, a := range anchors {
		if !a.Valid {
			if e.p.Answer.PerAnchor() {
				res.Outcomes[i] = Outcome{NA: true}
			}
			continue
		}
		n, err := e.score(sc, pattern, subject, a.Pos)
		if err != nil {
			return Result{}, err
		}
		if e.p.Answer == Count {
			res.Outcomes[i] = Outcome{Value: n}
			continue
		}
		hit := e.p.MinMismatch <= n && n <= e.p.MaxMismatch
		switch e.p.Answer {
		case Logical:
			res.Outcomes[i] = logical(hit)
		case FirstIndex:
			if hit {
				res.Outcomes[0] = Outcome{Value: i + 1}
				return res, nil
			}
		case FirstValue:
			if hit {
				res.Outcomes[0] = Outcome{Value: a.Pos}
				return res, nil
			}
		}
	}
	return res, nil
}

// score returns the mismatch count or edit distance at a 1-based anchor.
func (e *Evaluator) score(sc *nedit.Scratch, pattern, subject []byte, pos int) (int, error) {
	if e.p.Indels() {
		var (
			n   int
			err error
		)
		if e.p.Mode == Last {
			n, _, err = sc.RightAnchored(pattern, subject, pos-1, e.p.MaxMismatch, true)
		} else {
			n, _, err = sc.LeftAnchored(pattern, subject, pos-1, e.p.MaxMismatch, true)
		}
		return n, err
	}
	shift := pos - 1
	if e.p.Mode == Last {
		shift = pos - len(pattern)
	}
	return mismatch.Count(e.cmp, pattern, subject, shift, e.p.MaxMismatch), nil
}
