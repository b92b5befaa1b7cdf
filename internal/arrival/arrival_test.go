package arrival

import (
	"math"
	"testing"

	"cogentcore.org/core/base/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poisson-lab/internal/rate"
)

// scripted replays a fixed sequence of uniform draws.
type scripted struct {
	draws []float64
	i     int
}

func (s *scripted) Float64() float64 {
	u := s.draws[s.i]
	s.i++
	return u
}

func TestNewHomogeneousRejectsBadRate(t *testing.T) {
	src := randx.NewSysRand(1)
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewHomogeneous(r, src)
		assert.ErrorIs(t, err, ErrInvalidParameter, "rate %v", r)
	}
	_, err := NewHomogeneous(1, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestHomogeneousInversion(t *testing.T) {
	src := &scripted{draws: []float64{math.Exp(-1), math.Exp(-1), math.Exp(-2)}}
	p, err := NewHomogeneous(1, src)
	require.NoError(t, err)

	series, err := GenerateSeries(3.5, p)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.InDelta(t, 1.0, series[0], 1e-12)
	assert.InDelta(t, 2.0, series[1], 1e-12)
	assert.Equal(t, 3, src.i, "the candidate past the horizon is drawn and discarded")
}

func TestZeroDrawIsRedrawn(t *testing.T) {
	src := &scripted{draws: []float64{0, math.Exp(-1)}}
	p, err := NewHomogeneous(2, src)
	require.NoError(t, err)

	next, err := p.Next(1)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, next, 1e-12)
}

func TestGenerateSeriesEmptyHorizon(t *testing.T) {
	p, err := NewHomogeneous(5, randx.NewSysRand(3))
	require.NoError(t, err)

	for _, h := range []float64{0, -10} {
		series, err := GenerateSeries(h, p)
		require.NoError(t, err)
		assert.Empty(t, series)
	}
}

func TestGenerateSeriesOrdering(t *testing.T) {
	const horizon = 200.0
	src := randx.NewSysRand(42)
	hom, err := NewHomogeneous(3, src)
	require.NoError(t, err)
	inh, err := NewInhomogeneous(4, rate.Sinusoidal(2, 2, 25), src)
	require.NoError(t, err)

	for _, p := range []Process{hom, inh} {
		series, err := GenerateSeries(horizon, p)
		require.NoError(t, err)
		require.NotEmpty(t, series)
		assert.GreaterOrEqual(t, series[0], 0.0)
		for i := 1; i < len(series); i++ {
			require.Less(t, series[i-1], series[i], "index %d", i)
		}
		assert.LessOrEqual(t, series[len(series)-1], horizon)
	}
}

func TestHomogeneousMeanGap(t *testing.T) {
	p, err := NewHomogeneous(2, randx.NewSysRand(7))
	require.NoError(t, err)

	series, err := GenerateSeries(10000, p)
	require.NoError(t, err)
	require.Greater(t, len(series), 1000)

	mean := (series[len(series)-1] - series[0]) / float64(len(series)-1)
	// standard error is about 0.5/sqrt(20000) = 0.0035
	assert.InDelta(t, 0.5, mean, 0.02)
}

func TestThinningAdvancesFromRejectedCandidate(t *testing.T) {
	var calls []float64
	fn := func(t float64) float64 {
		calls = append(calls, t)
		return 1
	}
	// candidate 1 rejected (0.9 > 1/2), candidate 2 accepted (0.5 <= 1/2)
	src := &scripted{draws: []float64{math.Exp(-2), 0.9, math.Exp(-2), 0.5}}
	p, err := NewInhomogeneous(2, fn, src)
	require.NoError(t, err)

	next, err := p.Next(0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, next, 1e-12)
	require.Len(t, calls, 2)
	assert.InDelta(t, 1.0, calls[0], 1e-12)
	assert.InDelta(t, 2.0, calls[1], 1e-12)
}

func TestThinningAcceptsOnlyUnderBound(t *testing.T) {
	const bound = 3.0
	fn := rate.Piecewise([]rate.Step{{Until: 50, Rate: 0.5}, {Until: 100, Rate: 2.5}})
	p, err := NewInhomogeneous(bound, fn, randx.NewSysRand(11))
	require.NoError(t, err)

	series, err := GenerateSeries(100, p)
	require.NoError(t, err)
	for _, at := range series {
		assert.LessOrEqual(t, fn(at), bound)
	}
}

func TestInhomogeneousExpectedCount(t *testing.T) {
	// integral of 2 + sin(2πt/10) over 100 full periods is 2000
	p, err := NewInhomogeneous(3, rate.Sinusoidal(2, 1, 10), randx.NewSysRand(5))
	require.NoError(t, err)

	series, err := GenerateSeries(1000, p)
	require.NoError(t, err)
	assert.InDelta(t, 2000, len(series), 200)
}

func TestNewInhomogeneousRejects(t *testing.T) {
	src := randx.NewSysRand(1)
	_, err := NewInhomogeneous(0, rate.Constant(1), src)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewInhomogeneous(1, nil, src)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestMaxCandidates(t *testing.T) {
	p, err := NewInhomogeneous(1, rate.Constant(0), randx.NewSysRand(9))
	require.NoError(t, err)
	p.MaxCandidates = 50

	_, err = p.Next(0)
	assert.ErrorIs(t, err, ErrGenerationTimeout)

	_, err = GenerateSeries(10, p)
	assert.ErrorIs(t, err, ErrGenerationTimeout)
}

func TestWithMaxArrivals(t *testing.T) {
	p, err := NewHomogeneous(100, randx.NewSysRand(2))
	require.NoError(t, err)

	_, err = GenerateSeries(100, p, WithMaxArrivals(10))
	assert.ErrorIs(t, err, ErrGenerationTimeout)

	_, err = GenerateSeries(100, p, WithMaxArrivals(-1))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	series, err := GenerateSeries(1, p, WithMaxArrivals(100000))
	require.NoError(t, err)
	assert.NotEmpty(t, series)
}
