package experiment

import (
	"fmt"
	"log/slog"

	"poisson-lab/internal/arrival"
	"poisson-lab/internal/config"
	"poisson-lab/internal/rate"
)

// peakSamples is the resolution used to check that the dominating rate
// covers the configured rate function.
const peakSamples = 10000

// NewProcess builds the configured arrival process on top of src
func NewProcess(cfg config.ProcessConfig, src arrival.Uniform) (arrival.Process, error) {
	switch cfg.Kind {
	case config.ProcessHomogeneous:
		return arrival.NewHomogeneous(cfg.Rate, src)
	case config.ProcessInhomogeneous:
		fn, err := rate.Build(cfg.RateFunction)
		if err != nil {
			return nil, fmt.Errorf("rate function: %w", err)
		}
		if peak := rate.Peak(fn, cfg.Horizon, peakSamples); peak > cfg.Bound {
			slog.Warn("rate function exceeds the dominating rate, arrivals will be under-sampled",
				"peak", peak, "bound", cfg.Bound)
		}
		p, err := arrival.NewInhomogeneous(cfg.Bound, fn, src)
		if err != nil {
			return nil, err
		}
		p.MaxCandidates = cfg.MaxCandidates
		return p, nil
	default:
		return nil, fmt.Errorf("unknown process kind %q: %w", cfg.Kind, arrival.ErrInvalidParameter)
	}
}

// SeriesOptions returns the generation limits from cfg
func SeriesOptions(cfg config.ProcessConfig) []arrival.SeriesOption {
	return []arrival.SeriesOption{arrival.WithMaxArrivals(cfg.MaxArrivals)}
}
