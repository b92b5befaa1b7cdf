package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"poisson-lab/internal/config"
	"poisson-lab/internal/types"
)

// MarkdownReporter generates markdown reports
type MarkdownReporter struct {
	config *config.Config
}

// NewMarkdownReporter creates a new markdown reporter
func NewMarkdownReporter(cfg *config.Config) *MarkdownReporter {
	return &MarkdownReporter{
		config: cfg,
	}
}

// Generate generates the full markdown report
func (m *MarkdownReporter) Generate(reps []*types.Replication, summary *types.Summary) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Poisson Process Lab Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	m.writeConfiguration(&sb)
	m.writeOverallSummary(&sb, summary)
	m.writeReplications(&sb, reps)
	m.writeChiSquareDetail(&sb, reps)
	m.writeQueueAnalysis(&sb, reps)
	m.writeSkipped(&sb, reps)

	return sb.String()
}

// writeConfiguration writes the experiment configuration section
func (m *MarkdownReporter) writeConfiguration(sb *strings.Builder) {
	p := m.config.Process
	sb.WriteString("## Configuration\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Process | %s |\n", describeProcess(p)))
	sb.WriteString(fmt.Sprintf("| Horizon | %g |\n", p.Horizon))
	if p.Kind == config.ProcessInhomogeneous {
		rf := p.RateFunction
		sb.WriteString(fmt.Sprintf("| Rate Function | %s (base %g, amplitude %g, period %g, slope %g, %d steps) |\n",
			rf.Kind, rf.Base, rf.Amplitude, rf.Period, rf.Slope, len(rf.Steps)))
		sb.WriteString(fmt.Sprintf("| Max Candidates | %d |\n", p.MaxCandidates))
	}
	sb.WriteString(fmt.Sprintf("| Max Arrivals | %d |\n", p.MaxArrivals))
	sb.WriteString(fmt.Sprintf("| Service Rate | %g |\n", m.config.Service.Rate))
	sb.WriteString(fmt.Sprintf("| Significance Level | %g |\n", m.config.Validation.Alpha))
	sb.WriteString(fmt.Sprintf("| Replications | %d |\n", m.config.Experiment.Replications))
	sb.WriteString(fmt.Sprintf("| Seed | %d |\n\n", m.config.Random.Seed))
}

// writeOverallSummary writes the overall summary section
func (m *MarkdownReporter) writeOverallSummary(sb *strings.Builder, s *types.Summary) {
	sb.WriteString("## Overall Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Replications | %d |\n", s.Replications))
	sb.WriteString(fmt.Sprintf("| Tested | %d |\n", s.Tested))
	sb.WriteString(fmt.Sprintf("| Accepted | %d (%.2f%%) |\n", s.Accepted, s.AcceptRate))
	sb.WriteString(fmt.Sprintf("| Average χ² | %.4f |\n", s.AvgStatistic))
	sb.WriteString(fmt.Sprintf("| χ² Range | %.4f - %.4f |\n", s.MinStatistic, s.MaxStatistic))
	sb.WriteString(fmt.Sprintf("| Average Arrivals | %.2f |\n", s.AvgArrivals))
	sb.WriteString(fmt.Sprintf("| Mean Gap | %.6f |\n", s.AvgGap))
	sb.WriteString(fmt.Sprintf("| Fitted Rate | %.6f |\n", s.AvgFittedRate))
	sb.WriteString(fmt.Sprintf("| Queue Wait | %.4f |\n", s.AvgWait))
	sb.WriteString(fmt.Sprintf("| Utilization | %.2f%% |\n\n", s.AvgUtilization*100))
}

// writeReplications writes one row per replication
func (m *MarkdownReporter) writeReplications(sb *strings.Builder, reps []*types.Replication) {
	sb.WriteString("## Replications\n\n")

	sb.WriteString("| Run | Seed | Arrivals | Bins | λ̂ | χ² | df | Critical | Decision |\n")
	sb.WriteString("|-----|------|----------|------|----|----|----|----------|----------|\n")

	for _, rep := range reps {
		v := rep.Validation
		if v == nil {
			sb.WriteString(fmt.Sprintf("| %d | %d | %d | - | - | - | - | - | skipped |\n",
				rep.Index, rep.Seed, len(rep.Arrivals)))
			continue
		}
		sb.WriteString(fmt.Sprintf("| %d | %d | %d | %d | %.4f | %.4f | %d | %.4f | %s |\n",
			rep.Index,
			rep.Seed,
			len(rep.Arrivals),
			v.Histogram.Bins(),
			v.Rate,
			v.Statistic,
			v.DF,
			v.Critical,
			verdict(v.Accept),
		))
	}
	sb.WriteString("\n")
}

// writeChiSquareDetail writes the bin table of the first tested replication
func (m *MarkdownReporter) writeChiSquareDetail(sb *strings.Builder, reps []*types.Replication) {
	var rep *types.Replication
	for _, r := range reps {
		if r.Validation != nil {
			rep = r
			break
		}
	}
	if rep == nil {
		return
	}

	v := rep.Validation
	sb.WriteString("## Chi-Square Detail\n\n")
	sb.WriteString(fmt.Sprintf("### Replication %d\n\n", rep.Index))

	sb.WriteString("| Bin | Midpoint | Observed | Expected | Difference | Squared | Contribution |\n")
	sb.WriteString("|-----|----------|----------|----------|------------|---------|--------------|\n")
	for _, b := range v.Bins {
		sb.WriteString(fmt.Sprintf("| [%.3f, %.3f) | %.4f | %d | %.4f | %.4f | %.4f | %.4f |\n",
			b.Left, b.Right, b.Midpoint, b.Observed, b.Expected, b.Diff, b.SquaredDiff, b.Contribution))
	}
	sb.WriteString(fmt.Sprintf("\nχ² = %.6f with %d degrees of freedom; critical value at α=%g is %.6f: **%s**.\n\n",
		v.Statistic, v.DF, v.Alpha, v.Critical, verdict(v.Accept)))
}

// writeQueueAnalysis writes queue statistics per replication
func (m *MarkdownReporter) writeQueueAnalysis(sb *strings.Builder, reps []*types.Replication) {
	sb.WriteString("## Queue Analysis\n\n")

	sb.WriteString("| Run | Jobs | Makespan | Utilization | Avg Wait | P50 Wait | P95 Wait | Max Wait | Avg Sojourn |\n")
	sb.WriteString("|-----|------|----------|-------------|----------|----------|----------|----------|-------------|\n")

	for _, rep := range reps {
		q := rep.Queue
		if q == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %d | %d | %.4f | %.2f%% | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			rep.Index,
			q.Jobs,
			q.Makespan,
			q.Utilization*100,
			q.AvgWait,
			q.P50Wait,
			q.P95Wait,
			q.MaxWait,
			q.AvgSojourn,
		))
	}
	sb.WriteString("\n")
}

// writeSkipped lists replications that could not be tested
func (m *MarkdownReporter) writeSkipped(sb *strings.Builder, reps []*types.Replication) {
	sb.WriteString("## Untested Replications\n\n")

	var skipped []*types.Replication
	for _, rep := range reps {
		if rep.Validation == nil {
			skipped = append(skipped, rep)
		}
	}
	if len(skipped) == 0 {
		sb.WriteString("Every replication produced enough gaps to test.\n\n")
		return
	}

	sb.WriteString("| Run | Arrivals | Reason |\n")
	sb.WriteString("|-----|----------|--------|\n")
	for _, rep := range skipped {
		sb.WriteString(fmt.Sprintf("| %d | %d | %s |\n", rep.Index, len(rep.Arrivals), rep.Skipped))
	}
	sb.WriteString("\n")
}

// SaveToFile saves the report to a file
func (m *MarkdownReporter) SaveToFile(content string, filename string) error {
	return os.WriteFile(filename, []byte(content), 0644)
}

func verdict(accept bool) string {
	if accept {
		return "accept"
	}
	return "reject"
}
