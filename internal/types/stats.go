package types

import "poisson-lab/internal/gof"

// QueueStats contains summary statistics of a single-server queue run
type QueueStats struct {
	Jobs int `yaml:"jobs" json:"jobs"`

	// Time span and server load
	Makespan    float64 `yaml:"makespan" json:"makespan"`
	BusyTime    float64 `yaml:"busy_time" json:"busy_time"`
	Utilization float64 `yaml:"utilization" json:"utilization"`

	// Waiting time in queue (start - arrival)
	AvgWait     float64 `yaml:"avg_wait" json:"avg_wait"`
	MaxWait     float64 `yaml:"max_wait" json:"max_wait"`
	P50Wait     float64 `yaml:"p50_wait" json:"p50_wait"`
	P95Wait     float64 `yaml:"p95_wait" json:"p95_wait"`
	WaitedShare float64 `yaml:"waited_share" json:"waited_share"` // fraction of jobs with a positive wait

	// Time in system (end - arrival)
	AvgSojourn float64 `yaml:"avg_sojourn" json:"avg_sojourn"`
	MaxSojourn float64 `yaml:"max_sojourn" json:"max_sojourn"`
}

// Replication is the outcome of one independent simulation run
type Replication struct {
	Index int   `yaml:"index" json:"index"`
	Seed  int64 `yaml:"seed" json:"seed"`

	Arrivals []float64 `yaml:"arrivals" json:"arrivals"`
	Services []float64 `yaml:"services" json:"services"`

	// Validation is nil when the series was too short to test; Skipped
	// then holds the reason.
	Validation *gof.Result `yaml:"validation,omitempty" json:"validation,omitempty"`
	Skipped    string      `yaml:"skipped,omitempty" json:"skipped,omitempty"`

	Queue *QueueStats `yaml:"queue" json:"queue"`
}

// Summary aggregates all replications of an experiment
type Summary struct {
	Replications int     `yaml:"replications" json:"replications"`
	Tested       int     `yaml:"tested" json:"tested"`
	Skipped      int     `yaml:"skipped" json:"skipped"`
	Accepted     int     `yaml:"accepted" json:"accepted"`
	AcceptRate   float64 `yaml:"accept_rate" json:"accept_rate"` // percent of tested runs

	// Chi-square statistic across tested runs
	AvgStatistic float64 `yaml:"avg_statistic" json:"avg_statistic"`
	MinStatistic float64 `yaml:"min_statistic" json:"min_statistic"`
	MaxStatistic float64 `yaml:"max_statistic" json:"max_statistic"`

	// Arrivals
	TotalArrivals int     `yaml:"total_arrivals" json:"total_arrivals"`
	AvgArrivals   float64 `yaml:"avg_arrivals" json:"avg_arrivals"`
	AvgGap        float64 `yaml:"avg_gap" json:"avg_gap"`
	AvgFittedRate float64 `yaml:"avg_fitted_rate" json:"avg_fitted_rate"`

	// Queue
	AvgWait        float64 `yaml:"avg_wait" json:"avg_wait"`
	AvgUtilization float64 `yaml:"avg_utilization" json:"avg_utilization"`
}
