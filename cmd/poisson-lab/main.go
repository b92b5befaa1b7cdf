package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"poisson-lab/internal/arrival"
	"poisson-lab/internal/config"
	"poisson-lab/internal/gof"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "poisson-lab",
	Short: "Poisson arrival simulation and chi-square validation",
	Long: `poisson-lab generates homogeneous and inhomogeneous Poisson arrival
series, tests their inter-arrival gaps against a fitted exponential
distribution with a chi-square goodness-of-fit test, and feeds them
through a single-server queue.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["skip-config"] == "true" {
			return nil
		}
		var err error
		cfg, err = config.LoadConfig(v, cfgFile)
		if err != nil {
			return err
		}
		setupLogging(cfg.Log.Level)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(configCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	flags.Int64("seed", 0, "base random seed (0 derives seeds from the clock)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Float64("horizon", 100, "observation window T (overrides process.horizon)")
	flags.Float64("alpha", 0.05, "significance level (overrides validation.alpha)")

	bindFlag("random.seed", "seed")
	bindFlag("log.level", "log-level")
	bindFlag("process.horizon", "horizon")
	bindFlag("validation.alpha", "alpha")
}

// bindFlag binds a persistent flag to a config key. Viper only prefers
// the flag over file and defaults when it was set explicitly.
func bindFlag(key, name string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// exitCode is 2 for bad parameters and 1 for everything else
func exitCode(err error) int {
	if errors.Is(err, config.ErrInvalid) ||
		errors.Is(err, arrival.ErrInvalidParameter) ||
		errors.Is(err, gof.ErrInvalidParameter) {
		return 2
	}
	return 1
}
