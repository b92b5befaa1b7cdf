package arrival

import (
	"fmt"
	"math"
)

// Homogeneous is a Poisson process with constant rate, sampled by inversion.
type Homogeneous struct {
	Rate float64
	src  Uniform
}

// NewHomogeneous creates a homogeneous process with the given rate
func NewHomogeneous(rate float64, src Uniform) (*Homogeneous, error) {
	if !validRate(rate) {
		return nil, fmt.Errorf("homogeneous rate %g must be positive: %w", rate, ErrInvalidParameter)
	}
	if src == nil {
		return nil, fmt.Errorf("homogeneous process needs a uniform source: %w", ErrInvalidParameter)
	}
	return &Homogeneous{Rate: rate, src: src}, nil
}

// Next returns current - ln(u)/rate.
func (h *Homogeneous) Next(current float64) (float64, error) {
	return step(current, h.Rate, h.src), nil
}

// step is the inversion step shared by both process variants.
func step(current, rate float64, src Uniform) float64 {
	return current - (1/rate)*math.Log(positive(src))
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}
