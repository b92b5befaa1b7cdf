// Package expvar draws exponentially distributed service times.
package expvar

import (
	"fmt"
	"math"

	"poisson-lab/internal/arrival"
)

// Exponential is an exponential random variable with rate Rate.
type Exponential struct {
	Rate float64
	src  arrival.Uniform
}

// New creates an exponential variable. It fails with
// arrival.ErrInvalidParameter for a non-positive rate or a nil source.
func New(rate float64, src arrival.Uniform) (*Exponential, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("exponential rate %g must be positive: %w", rate, arrival.ErrInvalidParameter)
	}
	if src == nil {
		return nil, fmt.Errorf("exponential variable needs a uniform source: %w", arrival.ErrInvalidParameter)
	}
	return &Exponential{Rate: rate, src: src}, nil
}

// Generate returns -ln(1-u)/rate.
func (e *Exponential) Generate() float64 {
	return -(1 / e.Rate) * math.Log(1-e.src.Float64())
}

// GenerateSeries returns n independent samples.
func (e *Exponential) GenerateSeries(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample count %d must not be negative: %w", n, arrival.ErrInvalidParameter)
	}
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = e.Generate()
	}
	return samples, nil
}

// Mean returns the theoretical mean 1/rate.
func (e *Exponential) Mean() float64 {
	return 1 / e.Rate
}
