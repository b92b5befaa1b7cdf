package experiment

import (
	"math"

	"poisson-lab/internal/types"
)

// Summarize aggregates replications. Runs that were not tested count as
// skipped and are left out of the statistic figures.
func Summarize(reps []*types.Replication) *types.Summary {
	s := &types.Summary{Replications: len(reps)}
	if len(reps) == 0 {
		return s
	}

	s.MinStatistic = math.Inf(1)
	s.MaxStatistic = math.Inf(-1)

	var statSum, gapSum, rateSum, waitSum, utilSum float64
	for _, rep := range reps {
		s.TotalArrivals += len(rep.Arrivals)
		if rep.Queue != nil {
			waitSum += rep.Queue.AvgWait
			utilSum += rep.Queue.Utilization
		}

		v := rep.Validation
		if v == nil {
			s.Skipped++
			continue
		}
		s.Tested++
		if v.Accept {
			s.Accepted++
		}
		statSum += v.Statistic
		s.MinStatistic = math.Min(s.MinStatistic, v.Statistic)
		s.MaxStatistic = math.Max(s.MaxStatistic, v.Statistic)
		gapSum += v.MeanGap
		rateSum += v.Rate
	}

	n := float64(len(reps))
	s.AvgArrivals = float64(s.TotalArrivals) / n
	s.AvgWait = waitSum / n
	s.AvgUtilization = utilSum / n

	if s.Tested > 0 {
		t := float64(s.Tested)
		s.AcceptRate = float64(s.Accepted) / t * 100.0
		s.AvgStatistic = statSum / t
		s.AvgGap = gapSum / t
		s.AvgFittedRate = rateSum / t
	} else {
		s.MinStatistic = 0
		s.MaxStatistic = 0
	}

	return s
}
