package queue

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"poisson-lab/internal/types"
)

// Summarize computes wait, sojourn and utilization statistics for jobs
func Summarize(jobs []Job) *types.QueueStats {
	stats := &types.QueueStats{Jobs: len(jobs)}
	if len(jobs) == 0 {
		return stats
	}

	waits := make([]float64, len(jobs))
	sojourns := make([]float64, len(jobs))
	services := make([]float64, len(jobs))
	waited := 0
	for i, j := range jobs {
		waits[i] = j.Wait()
		sojourns[i] = j.Sojourn()
		services[i] = j.Service
		if waits[i] > 0 {
			waited++
		}
	}

	stats.Makespan = jobs[len(jobs)-1].End
	stats.BusyTime = floats.Sum(services)
	if stats.Makespan > 0 {
		stats.Utilization = stats.BusyTime / stats.Makespan
	}
	stats.WaitedShare = float64(waited) / float64(len(jobs))

	sort.Float64s(waits)
	stats.AvgWait = average(waits)
	stats.MaxWait = waits[len(waits)-1]
	stats.P50Wait = percentile(waits, 50)
	stats.P95Wait = percentile(waits, 95)

	stats.AvgSojourn = average(sojourns)
	stats.MaxSojourn = floats.Max(sojourns)

	return stats
}

// average calculates the average of a slice of float64
func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// percentile calculates the percentile of a sorted slice
func percentile(sortedValues []float64, p float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if p <= 0 {
		return sortedValues[0]
	}
	if p >= 100 {
		return sortedValues[len(sortedValues)-1]
	}

	index := (p / 100.0) * float64(len(sortedValues)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sortedValues[lower]
	}

	// Linear interpolation
	weight := index - float64(lower)
	return sortedValues[lower]*(1-weight) + sortedValues[upper]*weight
}
