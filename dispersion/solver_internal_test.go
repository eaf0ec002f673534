package dispersion

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taggedEvaluator writes tag(c) into every scale entry and returns a
// decreasing function of c with its root at 1234.5.
type taggedEvaluator struct{}

func tag(c float64) float64 { return 1 + c/1000 }

func (taggedEvaluator) ScaleLen() int { return 2 }

func (taggedEvaluator) Evaluate(_ float64, c float64, scale []float64) (float64, error) {
	for i := range scale {
		scale[i] = tag(c)
	}
	v := 1234.5 - c
	return v * (1 + 0.001*v) / (tag(c) * tag(c)), nil
}

func newTestSolver(t *testing.T, ev Evaluator) *solver {
	t.Helper()
	o := DefaultOptions()
	sc, err := newScratch(ev.ScaleLen())
	require.NoError(t, err)

	return &solver{ev: ev, opts: &o, ctx: context.Background(), log: slog.New(slog.DiscardHandler), sc: sc}
}

// TestSolver_RoleTagsOwnTheirBuffers checks that after bracketing and after
// refinement every live role still reads its own scale vector.
func TestSolver_RoleTagsOwnTheirBuffers(t *testing.T) {
	s := newTestSolver(t, taggedEvaluator{})
	s.reset(1, 6.283185307179586)

	hit, err := s.bracket()
	require.NoError(t, err)
	require.False(t, hit)
	assert.NotEqual(t, s.bot.buf, s.top.buf)
	assert.Equal(t, tag(s.bot.c), s.sc.buf(s.bot.buf)[0])
	assert.Equal(t, tag(s.top.c), s.sc.buf(s.top.buf)[1])

	v, _, err := s.refine()
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, v, 1e-6)

	seen := map[int]bool{s.bot.buf: true, s.top.buf: true, s.mid.buf: true}
	assert.Len(t, seen, 3, "bot, mid and top must hold distinct buffers")
	assert.Equal(t, tag(s.bot.c), s.sc.buf(s.bot.buf)[0])
	assert.Equal(t, tag(s.top.c), s.sc.buf(s.top.buf)[0])
	assert.LessOrEqual(t, s.bot.c, s.mid.c)
	assert.LessOrEqual(t, s.mid.c, s.top.c)
}

func TestSolver_ContextCheckedBeforeEvaluation(t *testing.T) {
	s := newTestSolver(t, taggedEvaluator{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.ctx = ctx
	s.reset(1, 1)

	_, err := s.bracket()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.evals)
}
