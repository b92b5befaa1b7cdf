package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cogentcore.org/core/base/randx"
	"github.com/spf13/cobra"

	"poisson-lab/internal/arrival"
	"poisson-lab/internal/config"
	"poisson-lab/internal/experiment"
	"poisson-lab/internal/expvar"
	"poisson-lab/internal/gof"
	"poisson-lab/internal/queue"
	"poisson-lab/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all configured replications and write reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Cancel between replications on interrupt
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := experiment.NewRunner(cfg, report.NewConsoleReporter(cmd.OutOrStdout()))
		reps, summary, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("experiment failed: %w", err)
		}
		if err := runner.GenerateReport(reps, summary); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and print one arrival series",
	RunE: func(cmd *cobra.Command, args []string) error {
		arrivals, _, err := generate()
		if err != nil {
			return err
		}
		report.NewConsoleReporter(cmd.OutOrStdout()).PrintSeries(arrivals)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Generate one arrival series and test its gaps for exponentiality",
	RunE: func(cmd *cobra.Command, args []string) error {
		arrivals, _, err := generate()
		if err != nil {
			return err
		}
		res, err := gof.Validate(arrivals, cfg.Validation.Alpha)
		if err != nil {
			return fmt.Errorf("validating %d arrivals: %w", len(arrivals), err)
		}
		report.NewConsoleReporter(cmd.OutOrStdout()).PrintValidation(res)
		return nil
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Simulate a single-server queue fed by one arrival series",
	RunE: func(cmd *cobra.Command, args []string) error {
		arrivals, src, err := generate()
		if err != nil {
			return err
		}
		svc, err := expvar.New(cfg.Service.Rate, src)
		if err != nil {
			return err
		}
		services, err := svc.GenerateSeries(len(arrivals))
		if err != nil {
			return err
		}
		jobs, err := queue.Simulate(arrivals, services)
		if err != nil {
			return err
		}

		console := report.NewConsoleReporter(cmd.OutOrStdout())
		console.PrintSection("Jobs")
		console.PrintJobs(jobs)
		console.PrintQueueStats(queue.Summarize(jobs))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg"},
	Short:   "Manage poisson-lab configuration",
}

var configInitCmd = &cobra.Command{
	Use:         "init [path]",
	Short:       "Write the default configuration as YAML",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{"skip-config": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "poisson-lab.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (file, environment and flags) as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Encode(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

// generate draws one arrival series with the first replication seed and
// returns the source so follow-up draws continue the same stream.
func generate() ([]float64, arrival.Uniform, error) {
	src := randx.NewSysRand(experiment.SeedsFor(cfg.Random, 1)[0])

	process, err := experiment.NewProcess(cfg.Process, src)
	if err != nil {
		return nil, nil, err
	}
	arrivals, err := arrival.GenerateSeries(cfg.Process.Horizon, process, experiment.SeriesOptions(cfg.Process)...)
	if err != nil {
		return nil, nil, fmt.Errorf("generating arrivals: %w", err)
	}
	return arrivals, src, nil
}
