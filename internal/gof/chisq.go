package gof

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DegreesOfFreedom returns bins-2: one for the fitted rate and one for the
// fixed total. Fewer than 3 bins leave nothing to test.
func DegreesOfFreedom(bins int) (int, error) {
	if bins < 3 {
		return 0, fmt.Errorf("%d bins leave no degrees of freedom: %w", bins, ErrInsufficientData)
	}
	return bins - 2, nil
}

// FitRate estimates the exponential rate as 1 / x̄, where x̄ is the mean of
// the bin midpoints weighted by their counts.
func FitRate(h Histogram) (float64, error) {
	if h.Total() == 0 {
		return 0, fmt.Errorf("histogram is empty: %w", ErrInsufficientData)
	}
	weights := make([]float64, h.Bins())
	for i, c := range h.Counts {
		weights[i] = float64(c)
	}
	return 1 / stat.Mean(h.Midpoints(), weights), nil
}

// Details builds the per-bin table for an exponential with rate lambda and
// n observations. A bin with zero expected count gets a non-finite
// contribution (+Inf, or NaN when the observed count is also zero).
func Details(h Histogram, lambda float64, n int) []BinDetail {
	mid := h.Midpoints()
	rows := make([]BinDetail, h.Bins())
	for i := range rows {
		left, right := h.Edges[i], h.Edges[i+1]
		p := math.Exp(-lambda*left) - math.Exp(-lambda*right)
		expected := p * float64(n)
		diff := float64(h.Counts[i]) - expected
		rows[i] = BinDetail{
			Left:         left,
			Right:        right,
			Midpoint:     mid[i],
			Observed:     h.Counts[i],
			Expected:     expected,
			Diff:         diff,
			SquaredDiff:  diff * diff,
			Contribution: diff * diff / expected,
		}
	}
	return rows
}

// Statistic sums the chi-square contributions of every bin.
func Statistic(rows []BinDetail) float64 {
	k := make([]float64, len(rows))
	for i, r := range rows {
		k[i] = r.Contribution
	}
	return floats.Sum(k)
}

// CriticalValue returns the x with P(X > x) = alpha for a chi-square
// distribution with df degrees of freedom.
func CriticalValue(alpha float64, df int) float64 {
	return distuv.ChiSquared{K: float64(df)}.Quantile(1 - alpha)
}

// Decide accepts the exponential hypothesis iff statistic < critical.
// Equality rejects, and so does a NaN statistic.
func Decide(statistic, critical float64) bool {
	return statistic < critical
}
