package arrival

import (
	"fmt"

	"poisson-lab/internal/rate"
)

// Inhomogeneous is a Poisson process with time-varying rate, sampled by
// Lewis-Shedler thinning of a homogeneous process at rate Bound.
//
// The caller must guarantee Rate(t) <= Bound for every t the process can
// reach. This is not checked; a rate function that exceeds the bound
// silently under-samples.
type Inhomogeneous struct {
	Bound float64
	Rate  rate.Func

	// MaxCandidates bounds the candidates drawn for a single arrival.
	// Zero means no bound.
	MaxCandidates int

	src Uniform
}

// NewInhomogeneous creates a thinning process dominated by bound
func NewInhomogeneous(bound float64, fn rate.Func, src Uniform) (*Inhomogeneous, error) {
	if !validRate(bound) {
		return nil, fmt.Errorf("dominating rate %g must be positive: %w", bound, ErrInvalidParameter)
	}
	if fn == nil {
		return nil, fmt.Errorf("rate function is required: %w", ErrInvalidParameter)
	}
	if src == nil {
		return nil, fmt.Errorf("inhomogeneous process needs a uniform source: %w", ErrInvalidParameter)
	}
	return &Inhomogeneous{Bound: bound, Rate: fn, src: src}, nil
}

// Next draws candidates at the dominating rate until one is accepted with
// probability Rate(candidate)/Bound. Each rejected candidate becomes the
// starting point of the next draw.
func (p *Inhomogeneous) Next(current float64) (float64, error) {
	t := current
	for n := 1; ; n++ {
		if p.MaxCandidates > 0 && n > p.MaxCandidates {
			return 0, fmt.Errorf("no candidate accepted after %d draws from t=%g: %w",
				p.MaxCandidates, current, ErrGenerationTimeout)
		}
		t = step(t, p.Bound, p.src)
		if p.src.Float64() <= p.Rate(t)/p.Bound {
			return t, nil
		}
	}
}
