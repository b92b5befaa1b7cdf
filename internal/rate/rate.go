// Package rate provides intensity functions for inhomogeneous arrival
// processes.
package rate

import (
	"errors"
	"fmt"
	"math"
)

// Func maps elapsed time t >= 0 to an instantaneous intensity >= 0.
type Func func(t float64) float64

// Kinds of rate function understood by Build.
const (
	KindConstant   = "constant"
	KindLinear     = "linear"
	KindSinusoidal = "sinusoidal"
	KindPiecewise  = "piecewise"
)

// Step is one segment of a piecewise-constant rate: Rate applies until
// time Until (exclusive).
type Step struct {
	Until float64 `mapstructure:"until" yaml:"until" json:"until"`
	Rate  float64 `mapstructure:"rate" yaml:"rate" json:"rate"`
}

// Spec describes a rate function in configuration.
type Spec struct {
	Kind      string  `mapstructure:"kind" yaml:"kind" json:"kind"`
	Base      float64 `mapstructure:"base" yaml:"base" json:"base"`
	Amplitude float64 `mapstructure:"amplitude" yaml:"amplitude" json:"amplitude"`
	Period    float64 `mapstructure:"period" yaml:"period" json:"period"`
	Slope     float64 `mapstructure:"slope" yaml:"slope" json:"slope"`
	Steps     []Step  `mapstructure:"steps" yaml:"steps,omitempty" json:"steps,omitempty"`
}

var errUnknownKind = errors.New("unknown rate function kind")

// Constant returns λ(t) = r.
func Constant(r float64) Func {
	return func(float64) float64 { return r }
}

// Linear returns λ(t) = max(0, base + slope*t).
func Linear(base, slope float64) Func {
	return func(t float64) float64 {
		return math.Max(0, base+slope*t)
	}
}

// Sinusoidal returns λ(t) = max(0, base + amplitude*sin(2πt/period)).
func Sinusoidal(base, amplitude, period float64) Func {
	return func(t float64) float64 {
		return math.Max(0, base+amplitude*math.Sin(2*math.Pi*t/period))
	}
}

// Piecewise returns a step function. Times past the last step keep the
// last step's rate; with no steps the rate is 0 everywhere.
func Piecewise(steps []Step) Func {
	if len(steps) == 0 {
		return Constant(0)
	}
	s := make([]Step, len(steps))
	copy(s, steps)
	return func(t float64) float64 {
		for _, st := range s {
			if t < st.Until {
				return st.Rate
			}
		}
		return s[len(s)-1].Rate
	}
}

// Build turns a Spec into a Func.
func Build(s Spec) (Func, error) {
	switch s.Kind {
	case KindConstant, "":
		if s.Base < 0 {
			return nil, fmt.Errorf("constant rate %g must be non-negative", s.Base)
		}
		return Constant(s.Base), nil
	case KindLinear:
		return Linear(s.Base, s.Slope), nil
	case KindSinusoidal:
		if s.Period <= 0 {
			return nil, fmt.Errorf("sinusoidal period %g must be positive", s.Period)
		}
		return Sinusoidal(s.Base, s.Amplitude, s.Period), nil
	case KindPiecewise:
		if len(s.Steps) == 0 {
			return nil, errors.New("piecewise rate needs at least one step")
		}
		for i, st := range s.Steps {
			if st.Rate < 0 {
				return nil, fmt.Errorf("step %d rate %g must be non-negative", i, st.Rate)
			}
			if i > 0 && st.Until <= s.Steps[i-1].Until {
				return nil, fmt.Errorf("step %d ends at %g, not after step %d", i, st.Until, i-1)
			}
		}
		return Piecewise(s.Steps), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownKind, s.Kind)
	}
}

// Peak samples fn at n+1 evenly spaced points on [0, horizon] and returns
// the largest value seen. It is a coarse check that a dominating bound
// really dominates; it can miss narrow spikes between samples.
func Peak(fn Func, horizon float64, n int) float64 {
	if n < 1 {
		n = 1
	}
	peak := fn(0)
	for i := 1; i <= n; i++ {
		if v := fn(horizon * float64(i) / float64(n)); v > peak {
			peak = v
		}
	}
	return peak
}
