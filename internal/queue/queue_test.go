package queue

import (
	"testing"

	"cogentcore.org/core/base/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poisson-lab/internal/arrival"
	"poisson-lab/internal/expvar"
)

func TestSimulateByHand(t *testing.T) {
	jobs, err := Simulate([]float64{1, 2, 6, 6.5}, []float64{3, 1, 0.25, 1})
	require.NoError(t, err)

	want := []Job{
		{Index: 0, Arrival: 1, Service: 3, Start: 1, End: 4},
		{Index: 1, Arrival: 2, Service: 1, Start: 4, End: 5},
		{Index: 2, Arrival: 6, Service: 0.25, Start: 6, End: 6.25},
		{Index: 3, Arrival: 6.5, Service: 1, Start: 6.5, End: 7.5},
	}
	assert.Equal(t, want, jobs)
	assert.Equal(t, 2.0, jobs[1].Wait())
	assert.Equal(t, 3.0, jobs[1].Sojourn())
}

func TestSimulateRejects(t *testing.T) {
	_, err := Simulate([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, arrival.ErrInvalidParameter)

	_, err = Simulate([]float64{1}, []float64{-1})
	assert.ErrorIs(t, err, arrival.ErrInvalidParameter)
}

func TestSimulateEmpty(t *testing.T) {
	jobs, err := Simulate(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	stats := Summarize(jobs)
	assert.Equal(t, 0, stats.Jobs)
	assert.Equal(t, 0.0, stats.Utilization)
}

func TestSummarize(t *testing.T) {
	jobs, err := Simulate([]float64{1, 2, 6, 6.5}, []float64{3, 1, 0.25, 1})
	require.NoError(t, err)

	stats := Summarize(jobs)
	assert.Equal(t, 4, stats.Jobs)
	assert.Equal(t, 7.5, stats.Makespan)
	assert.Equal(t, 5.25, stats.BusyTime)
	assert.InDelta(t, 0.7, stats.Utilization, 1e-12)
	assert.InDelta(t, 0.5, stats.AvgWait, 1e-12)
	assert.Equal(t, 2.0, stats.MaxWait)
	assert.Equal(t, 0.0, stats.P50Wait)
	assert.InDelta(t, 1.7, stats.P95Wait, 1e-12)
	assert.Equal(t, 0.25, stats.WaitedShare)
	assert.InDelta(t, (3+3+0.25+1)/4.0, stats.AvgSojourn, 1e-12)
	assert.Equal(t, 3.0, stats.MaxSojourn)
}

func TestJobsNeverOverlap(t *testing.T) {
	src := randx.NewSysRand(31)
	p, err := arrival.NewHomogeneous(0.9, src)
	require.NoError(t, err)
	arrivals, err := arrival.GenerateSeries(500, p)
	require.NoError(t, err)

	svc, err := expvar.New(1, src)
	require.NoError(t, err)
	services, err := svc.GenerateSeries(len(arrivals))
	require.NoError(t, err)

	jobs, err := Simulate(arrivals, services)
	require.NoError(t, err)
	for i, j := range jobs {
		require.GreaterOrEqual(t, j.Start, j.Arrival)
		require.InDelta(t, j.Start+j.Service, j.End, 1e-9)
		if i > 0 {
			require.GreaterOrEqual(t, j.Start, jobs[i-1].End)
		}
	}

	stats := Summarize(jobs)
	assert.LessOrEqual(t, stats.Utilization, 1.0)
	assert.Greater(t, stats.Utilization, 0.0)
}

func TestPercentile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, percentile(values, 0))
	assert.Equal(t, 3.0, percentile(values, 50))
	assert.Equal(t, 5.0, percentile(values, 100))
	assert.InDelta(t, 4.8, percentile(values, 95), 1e-12)
	assert.Equal(t, 0.0, percentile(nil, 50))
}
