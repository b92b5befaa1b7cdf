package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/randx"

	"poisson-lab/internal/arrival"
	"poisson-lab/internal/config"
	"poisson-lab/internal/expvar"
	"poisson-lab/internal/gof"
	"poisson-lab/internal/queue"
	"poisson-lab/internal/report"
	"poisson-lab/internal/types"
)

// Runner orchestrates the replications of an experiment
type Runner struct {
	config  *config.Config
	console *report.ConsoleReporter
	seeds   randx.Seeds
}

// NewRunner creates a new experiment runner
func NewRunner(cfg *config.Config, console *report.ConsoleReporter) *Runner {
	return &Runner{
		config:  cfg,
		console: console,
		seeds:   SeedsFor(cfg.Random, cfg.Experiment.Replications),
	}
}

// SeedsFor returns n replication seeds: base, base+1, ... for a non-zero
// base seed, clock-derived seeds otherwise.
func SeedsFor(random config.RandomConfig, n int) randx.Seeds {
	var seeds randx.Seeds
	seeds.Init(n)
	if random.Seed == 0 {
		seeds.NewSeeds()
		return seeds
	}
	for i := range seeds {
		seeds[i] += random.Seed - 1
	}
	return seeds
}

// Seeds returns the seed used by each replication
func (r *Runner) Seeds() []int64 {
	return append([]int64(nil), r.seeds...)
}

// Run executes every replication in turn. Cancelling ctx stops the run
// between replications.
func (r *Runner) Run(ctx context.Context) ([]*types.Replication, *types.Summary, error) {
	r.console.PrintHeader(r.config)
	r.console.PrintSection("Replications")

	reps := make([]*types.Replication, 0, len(r.seeds))
	for i, seed := range r.seeds {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("stopped after %d replications: %w", i, err)
		}

		rep, err := r.RunReplication(i, seed)
		if err != nil {
			err = fmt.Errorf("replication %d failed: %w", i, err)
			r.console.PrintError(err)
			return nil, nil, err
		}
		reps = append(reps, rep)
		r.console.PrintReplication(rep)
	}

	summary := Summarize(reps)
	r.console.PrintSummary(summary)
	return reps, summary, nil
}

// RunReplication generates one arrival series from seed, validates it and
// feeds it through the single-server queue.
func (r *Runner) RunReplication(index int, seed int64) (*types.Replication, error) {
	src := randx.NewSysRand(seed)
	log := slog.With("replication", index, "seed", seed)

	process, err := NewProcess(r.config.Process, src)
	if err != nil {
		return nil, err
	}
	arrivals, err := arrival.GenerateSeries(r.config.Process.Horizon, process, SeriesOptions(r.config.Process)...)
	if err != nil {
		return nil, fmt.Errorf("generating arrivals: %w", err)
	}

	rep := &types.Replication{
		Index:    index,
		Seed:     seed,
		Arrivals: arrivals,
	}

	res, err := gof.Validate(arrivals, r.config.Validation.Alpha)
	switch {
	case errors.Is(err, gof.ErrInsufficientData):
		rep.Skipped = err.Error()
		log.Warn("validation skipped", "arrivals", len(arrivals), "reason", err)
	case err != nil:
		return nil, fmt.Errorf("validating arrivals: %w", err)
	default:
		rep.Validation = res
	}

	svc, err := expvar.New(r.config.Service.Rate, src)
	if err != nil {
		return nil, err
	}
	rep.Services, err = svc.GenerateSeries(len(arrivals))
	if err != nil {
		return nil, err
	}
	jobs, err := queue.Simulate(arrivals, rep.Services)
	if err != nil {
		return nil, fmt.Errorf("simulating queue: %w", err)
	}
	rep.Queue = queue.Summarize(jobs)

	log.Info("replication complete", "arrivals", len(arrivals), "tested", rep.Validation != nil)
	return rep, nil
}

// GenerateReport writes the markdown report and the data export
// configured in the output section. Empty paths are skipped.
func (r *Runner) GenerateReport(reps []*types.Replication, summary *types.Summary) error {
	if path := r.config.Output.ReportFile; path != "" {
		generator := report.NewMarkdownReporter(r.config)
		content := generator.Generate(reps, summary)
		if err := generator.SaveToFile(content, path); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		r.console.PrintReportSaved(path)
	}

	if path := r.config.Output.DataFile; path != "" {
		if err := report.WriteData(path, reps, summary); err != nil {
			return fmt.Errorf("failed to save data: %w", err)
		}
		r.console.PrintReportSaved(path)
	}

	return nil
}
