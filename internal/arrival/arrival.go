// Package arrival generates arrival-time series for homogeneous and
// inhomogeneous Poisson processes.
package arrival

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrInvalidParameter is returned for non-positive rates, negative
	// counts and other out-of-domain constructor arguments.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrGenerationTimeout is returned when a generation loop exceeds its
	// configured iteration bound.
	ErrGenerationTimeout = errors.New("generation timeout")
)

// Uniform is a source of independent uniform draws in [0,1).
// randx.Rand from cogentcore satisfies it.
type Uniform interface {
	Float64() float64
}

// Process produces the next arrival time given the most recent one.
type Process interface {
	Next(current float64) (float64, error)
}

// SeriesOption configures GenerateSeries
type SeriesOption func(*seriesOptions)

type seriesOptions struct {
	maxArrivals int
}

// WithMaxArrivals caps the number of arrivals in a series. Exceeding the
// cap fails with ErrGenerationTimeout. Zero means unbounded.
func WithMaxArrivals(n int) SeriesOption {
	return func(o *seriesOptions) {
		o.maxArrivals = n
	}
}

// GenerateSeries calls p.Next starting from 0 and collects every arrival
// up to and including horizon. The first arrival beyond the horizon ends
// the series and is not included.
func GenerateSeries(horizon float64, p Process, opts ...SeriesOption) ([]float64, error) {
	var o seriesOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxArrivals < 0 {
		return nil, fmt.Errorf("max arrivals %d: %w", o.maxArrivals, ErrInvalidParameter)
	}

	series := make([]float64, 0)
	if horizon <= 0 {
		return series, nil
	}

	t := 0.0
	for {
		next, err := p.Next(t)
		if err != nil {
			return nil, err
		}
		if next > horizon {
			break
		}
		if o.maxArrivals > 0 && len(series) >= o.maxArrivals {
			return nil, fmt.Errorf("more than %d arrivals before horizon %g: %w",
				o.maxArrivals, horizon, ErrGenerationTimeout)
		}
		series = append(series, next)
		t = next
	}

	slog.Debug("arrival series generated", "arrivals", len(series), "horizon", horizon)
	return series, nil
}

// positive draws from src until the value is strictly positive, so that
// ln(u) stays finite.
func positive(src Uniform) float64 {
	u := src.Float64()
	for u <= 0 {
		u = src.Float64()
	}
	return u
}
