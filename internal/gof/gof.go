// Package gof tests whether inter-arrival gaps are consistent with an
// exponential distribution using a binned chi-square goodness-of-fit test.
//
// The rate is fitted from the binned data (the reciprocal of the
// count-weighted mean of bin midpoints), not from the raw gaps, and the
// test uses bins-2 degrees of freedom.
package gof

import (
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientData is returned when there are too few arrivals to
	// form gaps or too few bins for at least one degree of freedom.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter is returned for a significance level outside
	// (0,1) or malformed bin edges.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// BinDetail is one row of the per-bin chi-square table.
type BinDetail struct {
	Left         float64 `yaml:"left" json:"left"`
	Right        float64 `yaml:"right" json:"right"`
	Midpoint     float64 `yaml:"midpoint" json:"midpoint"`
	Observed     int     `yaml:"observed" json:"observed"`
	Expected     float64 `yaml:"expected" json:"expected"`
	Diff         float64 `yaml:"diff" json:"diff"`
	SquaredDiff  float64 `yaml:"squared_diff" json:"squared_diff"`
	Contribution float64 `yaml:"contribution" json:"contribution"`
}

// Result is the outcome of a goodness-of-fit test.
type Result struct {
	Gaps      int         `yaml:"gaps" json:"gaps"`
	MeanGap   float64     `yaml:"mean_gap" json:"mean_gap"`
	Rate      float64     `yaml:"rate" json:"rate"`
	Statistic float64     `yaml:"statistic" json:"statistic"`
	DF        int         `yaml:"df" json:"df"`
	Alpha     float64     `yaml:"alpha" json:"alpha"`
	Critical  float64     `yaml:"critical" json:"critical"`
	Accept    bool        `yaml:"accept" json:"accept"`
	Histogram Histogram   `yaml:"histogram" json:"histogram"`
	Bins      []BinDetail `yaml:"bins" json:"bins"`
}

// Validate derives the gaps of an arrival series and tests them at
// significance level alpha with automatically chosen bins.
func Validate(arrivals []float64, alpha float64) (*Result, error) {
	gaps, err := Gaps(arrivals)
	if err != nil {
		return nil, err
	}
	edges, err := Edges(gaps)
	if err != nil {
		return nil, err
	}
	return Check(gaps, edges, alpha)
}

// Check runs the chi-square test on gaps binned into the given edges.
func Check(gaps, edges []float64, alpha float64) (*Result, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("significance level %g must be in (0,1): %w", alpha, ErrInvalidParameter)
	}
	if len(gaps) == 0 {
		return nil, fmt.Errorf("no gaps to test: %w", ErrInsufficientData)
	}

	h, err := Bin(gaps, edges)
	if err != nil {
		return nil, err
	}
	if total := h.Total(); total != len(gaps) {
		return nil, fmt.Errorf("edges [%g, %g] cover %d of %d gaps: %w",
			edges[0], edges[len(edges)-1], total, len(gaps), ErrInvalidParameter)
	}
	df, err := DegreesOfFreedom(h.Bins())
	if err != nil {
		return nil, err
	}
	lambda, err := FitRate(h)
	if err != nil {
		return nil, err
	}

	bins := Details(h, lambda, len(gaps))
	statistic := Statistic(bins)
	critical := CriticalValue(alpha, df)

	res := &Result{
		Gaps:      len(gaps),
		MeanGap:   stat.Mean(gaps, nil),
		Rate:      lambda,
		Statistic: statistic,
		DF:        df,
		Alpha:     alpha,
		Critical:  critical,
		Accept:    Decide(statistic, critical),
		Histogram: h,
		Bins:      bins,
	}

	slog.Debug("chi-square test",
		"gaps", res.Gaps,
		"bins", h.Bins(),
		"rate", lambda,
		"statistic", statistic,
		"critical", critical,
		"accept", res.Accept,
	)
	return res, nil
}
