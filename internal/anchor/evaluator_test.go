package anchor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"seqmatch/internal/letter"
	"seqmatch/internal/nedit"
)

func values(vs ...int) []Outcome {
	out := make([]Outcome, len(vs))
	for i, v := range vs {
		out[i] = Outcome{Value: v}
	}
	return out
}

func params(answer Answer, max int) Params {
	p := DefaultParams()
	p.Answer = answer
	p.MaxMismatch = max
	return p
}

func TestMatchCountExamples(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    int
	}{
		{"exact", "TTACGTTT", 0},
		{"one substitution", "TTACCTTT", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Match([]byte("ACGT"), []byte(tc.subject), Positions(3), params(Count, 4))
			require.NoError(t, err)
			assert.Equal(t, Count, res.Answer)
			assert.Equal(t, values(tc.want), res.Outcomes)
		})
	}
}

func TestMatchLastLetterAnchor(t *testing.T) {
	p := params(Count, 4)
	p.Mode = Last
	// pattern ends on subject position 6
	res, err := Match([]byte("ACGT"), []byte("TTACGTTT"), Positions(6, 5), p)
	require.NoError(t, err)
	assert.Equal(t, values(0, 4), res.Outcomes)
}

func TestMatchNAAnchors(t *testing.T) {
	pattern, subject := []byte("ACGT"), []byte("TTACGTTT")
	anchors := []Anchor{NA, At(3), NA, At(1)}

	res, err := Match(pattern, subject, anchors, params(Count, 4))
	require.NoError(t, err)
	want := []Outcome{{NA: true}, {Value: 0}, {NA: true}, {Value: 4}}
	if diff := cmp.Diff(want, res.Outcomes); diff != "" {
		t.Errorf("count outcomes (-want +got):\n%s", diff)
	}

	res, err = Match(pattern, subject, anchors, params(Logical, 1))
	require.NoError(t, err)
	want = []Outcome{{NA: true}, {Value: 1}, {NA: true}, {Value: 0}}
	if diff := cmp.Diff(want, res.Outcomes); diff != "" {
		t.Errorf("logical outcomes (-want +got):\n%s", diff)
	}
	assert.True(t, res.Outcomes[1].Bool())
	assert.False(t, res.Outcomes[0].Bool())

	res, err = Match(pattern, subject, anchors, params(FirstIndex, 0))
	require.NoError(t, err)
	assert.Equal(t, values(2), res.Outcomes, "NA anchors are skipped, not reported")
}

func TestMatchFirstModes(t *testing.T) {
	pattern, subject := []byte("ACGT"), []byte("ACGTTACCTACGT")
	anchors := Positions(2, 6, 10, 1)

	res, err := Match(pattern, subject, anchors, params(FirstIndex, 1))
	require.NoError(t, err)
	assert.Equal(t, values(2), res.Outcomes) // "ACCT" at 6

	res, err = Match(pattern, subject, anchors, params(FirstValue, 1))
	require.NoError(t, err)
	assert.Equal(t, values(6), res.Outcomes)

	res, err = Match(pattern, subject, anchors, params(FirstValue, 0))
	require.NoError(t, err)
	assert.Equal(t, values(10), res.Outcomes)

	res, err = Match(pattern, subject, Positions(2, 3), params(FirstValue, 0))
	require.NoError(t, err)
	assert.Equal(t, []Outcome{{NA: true}}, res.Outcomes)

	res, err = Match(pattern, subject, nil, params(FirstIndex, 0))
	require.NoError(t, err)
	assert.Equal(t, []Outcome{{NA: true}}, res.Outcomes)
}

// First-match answers are NA exactly when no anchor is within the bounds,
// and otherwise name the earliest qualifying anchor.
func TestFirstModesAgreeWithLogical(t *testing.T) {
	pattern := []byte("ACGT")
	subject := []byte("ACGTACCTAGGTTCGTACGA")
	anchors := []Anchor{At(-2), At(3), NA, At(5), At(9), At(1), At(13), At(17), At(30)}

	for floor := 0; floor <= 2; floor++ {
		for ceiling := floor; ceiling <= 4; ceiling++ {
			lp := params(Logical, ceiling)
			lp.MinMismatch = floor
			flags, err := Match(pattern, subject, anchors, lp)
			require.NoError(t, err)

			want := Outcome{NA: true}
			wantVal := Outcome{NA: true}
			for i, o := range flags.Outcomes {
				if o.Bool() {
					want = Outcome{Value: i + 1}
					wantVal = Outcome{Value: anchors[i].Pos}
					break
				}
			}

			ip := lp
			ip.Answer = FirstIndex
			idx, err := Match(pattern, subject, anchors, ip)
			require.NoError(t, err)
			assert.Equal(t, []Outcome{want}, idx.Outcomes, "floor=%d ceiling=%d", floor, ceiling)

			ip.Answer = FirstValue
			val, err := Match(pattern, subject, anchors, ip)
			require.NoError(t, err)
			assert.Equal(t, []Outcome{wantVal}, val.Outcomes, "floor=%d ceiling=%d", floor, ceiling)
		}
	}
}

func TestMatchFloor(t *testing.T) {
	p := params(Logical, 2)
	p.MinMismatch = 1
	res, err := Match([]byte("ACGT"), []byte("ACGTACCT"), Positions(1, 5), p)
	require.NoError(t, err)
	assert.Equal(t, values(0, 1), res.Outcomes)
}

func TestMatchAmbiguity(t *testing.T) {
	pattern, err := letter.Encode(letter.DNA, []byte("ACNT"))
	require.NoError(t, err)
	subject, err := letter.Encode(letter.DNA, []byte("TTACGTTT"))
	require.NoError(t, err)

	p := params(Count, 4)
	p.Fixed = letter.Discipline{Subject: true}
	res, err := Match(pattern, subject, Positions(3), p)
	require.NoError(t, err)
	assert.Equal(t, values(0), res.Outcomes)

	p.Fixed = letter.Fixed
	res, err = Match(pattern, subject, Positions(3), p)
	require.NoError(t, err)
	assert.Equal(t, values(1), res.Outcomes)
}

func TestMatchIndels(t *testing.T) {
	p := params(Count, 1)
	p.WithIndels = true
	res, err := Match([]byte("AC"), []byte("AXC"), Positions(1), p)
	require.NoError(t, err)
	assert.Equal(t, values(1), res.Outcomes)

	p = params(Logical, 1)
	p.WithIndels = true
	res, err = Match([]byte("ACGTT"), []byte("GGACTTAAA"), Positions(3, 1), p)
	require.NoError(t, err)
	assert.Equal(t, values(1, 0), res.Outcomes)
}

// A zero ceiling turns indel matching into plain mismatch counting.
func TestMatchIndelsZeroCeiling(t *testing.T) {
	p := params(Count, 0)
	p.WithIndels = true
	p.Fixed = letter.Discipline{Subject: true}
	p.Mode = Last
	assert.False(t, p.Indels())
	res, err := Match([]byte("ACGT"), []byte("TTACGTTT"), Positions(6), p)
	require.NoError(t, err)
	assert.Equal(t, values(0), res.Outcomes)
}

func TestNewConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"indels with non-fixed pattern", func(p *Params) {
			p.WithIndels, p.MaxMismatch = true, 2
			p.Fixed = letter.Discipline{Subject: true}
		}, ErrIndelsNeedFixed},
		{"indels with non-fixed subject", func(p *Params) {
			p.WithIndels, p.MaxMismatch = true, 2
			p.Fixed = letter.Discipline{Pattern: true}
		}, ErrIndelsNeedFixed},
		{"indels anchored on last letter", func(p *Params) {
			p.WithIndels, p.MaxMismatch, p.Mode = true, 2, Last
		}, nedit.ErrRightAnchorUnimplemented},
		{"unknown answer", func(p *Params) { p.Answer = Answer(7) }, ErrInvalidAnswer},
		{"unknown mode", func(p *Params) { p.Mode = Mode(-1) }, ErrInvalidMode},
		{"negative ceiling", func(p *Params) { p.MaxMismatch = -1 }, ErrNegativeBound},
		{"negative floor", func(p *Params) { p.MinMismatch = -3 }, ErrNegativeBound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			e, err := New(p)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, e)
		})
	}
}

func TestMatchBandTooWide(t *testing.T) {
	p := params(Count, nedit.MaxEdits+5)
	p.WithIndels = true
	e, err := New(p)
	require.NoError(t, err)

	long := make([]byte, nedit.MaxEdits+1)
	for i := range long {
		long[i] = 'A'
	}
	_, err = e.Match(long, long, Positions(1))
	assert.ErrorIs(t, err, nedit.ErrBandTooWide)

	// short patterns clamp the band below the cap
	res, err := e.Match([]byte("ACGT"), []byte("ACGT"), Positions(1))
	require.NoError(t, err)
	assert.Equal(t, values(0), res.Outcomes)
}

func TestEvaluatorLogsRowsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := params(Count, 1)
	p.WithIndels = true
	e, err := New(p, WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, err = e.Match([]byte("AC"), []byte("AXC"), Positions(1))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("anchor evaluator ready").Len())
	assert.Equal(t, 3, logs.FilterMessage("nedit row").Len(), "init, full and one bailout-phase row")
}

func TestParseList(t *testing.T) {
	got, err := ParseList(" 3, NA ,-1,na")
	require.NoError(t, err)
	assert.Equal(t, []Anchor{At(3), NA, At(-1), NA}, got)

	got, err = ParseList("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseList("3,x")
	assert.Error(t, err)
}

func TestParseModeAndAnswer(t *testing.T) {
	m, err := ParseMode("last")
	require.NoError(t, err)
	assert.Equal(t, Last, m)
	_, err = ParseMode("middle")
	assert.ErrorIs(t, err, ErrInvalidMode)

	for name, want := range map[string]Answer{"count": Count, "logical": Logical, "which": FirstIndex, "value": FirstValue} {
		a, err := ParseAnswer(name)
		require.NoError(t, err)
		assert.Equal(t, want, a)
		assert.Equal(t, name, a.String())
	}
	_, err = ParseAnswer("all")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestCountAt(t *testing.T) {
	p := params(Logical, 4) // answer is overridden
	got, err := CountAt([]byte("ACGT"), []byte("TTACCTTT"), []Anchor{At(3), NA, At(1)}, p)
	require.NoError(t, err)
	assert.Equal(t, []Outcome{{Value: 1}, {NA: true}, {Value: 4}}, got)
}

func TestIsMatchingAt(t *testing.T) {
	p := params(Count, 1)
	p.WithIndels = true
	got, err := IsMatchingAt([]byte("ACGTT"), []byte("GGACTTAAA"), []Anchor{At(3), At(1), NA}, p)
	require.NoError(t, err)
	assert.Equal(t, []Outcome{{Value: 1}, {Value: 0}, {NA: true}}, got)

	p.Fixed = letter.Discipline{Subject: true}
	_, err = IsMatchingAt([]byte("AC"), []byte("AC"), Positions(1), p)
	assert.ErrorIs(t, err, ErrIndelsNeedFixed)
}

func TestWhichMatchingAt(t *testing.T) {
	pattern, subject := []byte("ACGT"), []byte("ACGTTACCTACGT")
	anchors := Positions(2, 6, 10, 1)

	idx, err := WhichMatchingAt(pattern, subject, anchors, params(Count, 1), false)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Value: 2}, idx)

	val, err := WhichMatchingAt(pattern, subject, anchors, params(Count, 1), true)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Value: 6}, val)

	none, err := WhichMatchingAt(pattern, subject, Positions(2, 3), params(Count, 0), true)
	require.NoError(t, err)
	assert.True(t, none.NA)
}

// Last-letter anchoring with indels runs into the engine's right-anchored
// entry point even when validation is bypassed.
func TestScoreRightAnchoredIndelsFails(t *testing.T) {
	p := params(Count, 2)
	p.WithIndels, p.Mode = true, Last
	e := &Evaluator{p: p, cmp: letter.Select(p.Fixed), log: zap.NewNop(), workers: 1}
	_, err := e.Match([]byte("ACGT"), []byte("TTACGTTT"), Positions(6))
	assert.ErrorIs(t, err, nedit.ErrRightAnchorUnimplemented)
}
