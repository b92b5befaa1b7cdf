package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"poisson-lab/internal/config"
	"poisson-lab/internal/gof"
	"poisson-lab/internal/queue"
	"poisson-lab/internal/types"
)

// ConsoleReporter handles human-readable terminal output
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a console reporter writing to w, or to
// stdout when w is nil
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleReporter{out: w}
}

// PrintHeader prints the experiment header
func (c *ConsoleReporter) PrintHeader(cfg *config.Config) {
	fmt.Fprintln(c.out, strings.Repeat("=", 80))
	fmt.Fprintln(c.out, "Poisson Process Lab")
	fmt.Fprintln(c.out, strings.Repeat("=", 80))
	fmt.Fprintf(c.out, "Process: %s\n", describeProcess(cfg.Process))
	fmt.Fprintf(c.out, "Horizon: %g\n", cfg.Process.Horizon)
	fmt.Fprintf(c.out, "Service Rate: %g\n", cfg.Service.Rate)
	fmt.Fprintf(c.out, "Significance Level: %g\n", cfg.Validation.Alpha)
	fmt.Fprintf(c.out, "Replications: %d\n", cfg.Experiment.Replications)
	fmt.Fprintln(c.out, strings.Repeat("=", 80))
	fmt.Fprintln(c.out)
}

// PrintSection prints a section header
func (c *ConsoleReporter) PrintSection(title string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, strings.Repeat("-", 80))
	fmt.Fprintf(c.out, ">>> %s\n", title)
	fmt.Fprintln(c.out, strings.Repeat("-", 80))
	fmt.Fprintln(c.out)
}

// PrintReplication prints a one-line result for a finished replication
func (c *ConsoleReporter) PrintReplication(rep *types.Replication) {
	if rep.Validation == nil {
		fmt.Fprintf(c.out, "  [%3d] seed=%d arrivals=%d | not tested: %s\n",
			rep.Index, rep.Seed, len(rep.Arrivals), rep.Skipped)
		return
	}
	v := rep.Validation
	fmt.Fprintf(c.out, "  [%3d] seed=%d arrivals=%d | λ̂=%.4f χ²=%.4f df=%d crit=%.4f | %s | wait=%.4f util=%.2f%%\n",
		rep.Index, rep.Seed, len(rep.Arrivals),
		v.Rate, v.Statistic, v.DF, v.Critical, decision(v.Accept),
		rep.Queue.AvgWait, rep.Queue.Utilization*100,
	)
}

// PrintSeries prints an arrival series, one time per line
func (c *ConsoleReporter) PrintSeries(series []float64) {
	fmt.Fprintf(c.out, "Arrivals: %d\n", len(series))
	for i, t := range series {
		fmt.Fprintf(c.out, "  %6d  %.6f\n", i, t)
	}
}

// PrintValidation prints the chi-square detail table and decision
func (c *ConsoleReporter) PrintValidation(res *gof.Result) {
	fmt.Fprintln(c.out, "\nChi-square goodness of fit:")
	fmt.Fprintln(c.out, strings.Repeat("─", 80))
	fmt.Fprintf(c.out, "  %-19s %10s %8s %10s %10s %10s %9s\n",
		"Bin", "Midpoint", "n_i", "n'_i", "n_i-n'_i", "(diff)²", "K_i")
	for _, b := range res.Bins {
		fmt.Fprintf(c.out, "  [%7.3f, %7.3f) %10.4f %8d %10.4f %10.4f %10.4f %9.4f\n",
			b.Left, b.Right, b.Midpoint, b.Observed, b.Expected, b.Diff, b.SquaredDiff, b.Contribution)
	}
	fmt.Fprintln(c.out, strings.Repeat("─", 80))
	fmt.Fprintf(c.out, "  Gaps:               %d\n", res.Gaps)
	fmt.Fprintf(c.out, "  Mean Gap:           %.6f\n", res.MeanGap)
	fmt.Fprintf(c.out, "  Fitted Rate:        %.6f\n", res.Rate)
	fmt.Fprintf(c.out, "  Statistic:          %.6f\n", res.Statistic)
	fmt.Fprintf(c.out, "  Degrees of Freedom: %d\n", res.DF)
	fmt.Fprintf(c.out, "  Critical (α=%g):  %.6f\n", res.Alpha, res.Critical)
	fmt.Fprintf(c.out, "  Decision:           %s\n", decision(res.Accept))
}

// PrintJobs prints the per-job queue table
func (c *ConsoleReporter) PrintJobs(jobs []queue.Job) {
	fmt.Fprintf(c.out, "  %6s %12s %10s %12s %12s %10s\n", "Job", "Arrival", "Service", "Start", "End", "Wait")
	for _, j := range jobs {
		fmt.Fprintf(c.out, "  %6d %12.4f %10.4f %12.4f %12.4f %10.4f\n",
			j.Index, j.Arrival, j.Service, j.Start, j.End, j.Wait())
	}
}

// PrintQueueStats prints queue summary statistics
func (c *ConsoleReporter) PrintQueueStats(s *types.QueueStats) {
	fmt.Fprintln(c.out, "\nQueue:")
	fmt.Fprintln(c.out, strings.Repeat("─", 80))
	fmt.Fprintf(c.out, "  Jobs:               %d\n", s.Jobs)
	fmt.Fprintf(c.out, "  Makespan:           %.4f\n", s.Makespan)
	fmt.Fprintf(c.out, "  Utilization:        %.2f%%\n", s.Utilization*100)
	fmt.Fprintf(c.out, "  Jobs That Waited:   %.2f%%\n", s.WaitedShare*100)

	fmt.Fprintln(c.out, "\n  Wait:")
	fmt.Fprintf(c.out, "    Average:          %.4f\n", s.AvgWait)
	fmt.Fprintf(c.out, "    P50:              %.4f\n", s.P50Wait)
	fmt.Fprintf(c.out, "    P95:              %.4f\n", s.P95Wait)
	fmt.Fprintf(c.out, "    Max:              %.4f\n", s.MaxWait)

	fmt.Fprintln(c.out, "\n  Time in System:")
	fmt.Fprintf(c.out, "    Average:          %.4f\n", s.AvgSojourn)
	fmt.Fprintf(c.out, "    Max:              %.4f\n", s.MaxSojourn)
	fmt.Fprintln(c.out, strings.Repeat("─", 80))
}

// PrintSummary prints the aggregate over all replications
func (c *ConsoleReporter) PrintSummary(s *types.Summary) {
	fmt.Fprintln(c.out, "\nSummary:")
	fmt.Fprintln(c.out, strings.Repeat("─", 80))
	fmt.Fprintf(c.out, "  Replications:       %d\n", s.Replications)
	fmt.Fprintf(c.out, "  Tested:             %d (skipped %d)\n", s.Tested, s.Skipped)
	fmt.Fprintf(c.out, "  Accepted:           %d (%.2f%%)\n", s.Accepted, s.AcceptRate)
	if s.Tested > 0 {
		fmt.Fprintln(c.out, "\n  Chi-square Statistic:")
		fmt.Fprintf(c.out, "    Average:          %.4f\n", s.AvgStatistic)
		fmt.Fprintf(c.out, "    Min:              %.4f\n", s.MinStatistic)
		fmt.Fprintf(c.out, "    Max:              %.4f\n", s.MaxStatistic)
		fmt.Fprintf(c.out, "  Mean Gap:           %.6f\n", s.AvgGap)
		fmt.Fprintf(c.out, "  Fitted Rate:        %.6f\n", s.AvgFittedRate)
	}
	fmt.Fprintf(c.out, "  Arrivals per Run:   %.2f\n", s.AvgArrivals)
	fmt.Fprintf(c.out, "  Queue Wait:         %.4f\n", s.AvgWait)
	fmt.Fprintf(c.out, "  Utilization:        %.2f%%\n", s.AvgUtilization*100)
	fmt.Fprintln(c.out, strings.Repeat("─", 80))
}

// PrintReportSaved prints a message indicating a report file was written
func (c *ConsoleReporter) PrintReportSaved(filename string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, strings.Repeat("=", 80))
	fmt.Fprintf(c.out, "Report saved to: %s\n", filename)
	fmt.Fprintln(c.out, strings.Repeat("=", 80))
}

// PrintError prints an error message
func (c *ConsoleReporter) PrintError(err error) {
	fmt.Fprintf(c.out, "\n[ERROR] %v\n", err)
}

func decision(accept bool) string {
	if accept {
		return "ACCEPT (consistent with exponential)"
	}
	return "REJECT"
}

func describeProcess(p config.ProcessConfig) string {
	if p.Kind == config.ProcessInhomogeneous {
		return fmt.Sprintf("inhomogeneous (thinning, bound %g, rate function %s)", p.Bound, p.RateFunction.Kind)
	}
	return fmt.Sprintf("homogeneous (rate %g)", p.Rate)
}
