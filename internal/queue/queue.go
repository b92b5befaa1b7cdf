// Package queue simulates a single-server FIFO queue from arrival and
// service times.
package queue

import (
	"fmt"
	"math"

	"poisson-lab/internal/arrival"
)

// Job is one customer passing through the server
type Job struct {
	Index   int     `yaml:"index" json:"index"`
	Arrival float64 `yaml:"arrival" json:"arrival"`
	Service float64 `yaml:"service" json:"service"`
	Start   float64 `yaml:"start" json:"start"`
	End     float64 `yaml:"end" json:"end"`
}

// Wait returns the time spent queueing before service
func (j Job) Wait() float64 {
	return j.Start - j.Arrival
}

// Sojourn returns the total time in the system
func (j Job) Sojourn() float64 {
	return j.End - j.Arrival
}

// Simulate serves jobs in arrival order. Each job starts at the later of
// its arrival and the previous job's completion and runs for its service
// time.
func Simulate(arrivals, services []float64) ([]Job, error) {
	if len(arrivals) != len(services) {
		return nil, fmt.Errorf("%d arrivals but %d service times: %w",
			len(arrivals), len(services), arrival.ErrInvalidParameter)
	}

	jobs := make([]Job, len(arrivals))
	end := math.Inf(-1)
	for i, at := range arrivals {
		s := services[i]
		if s < 0 || math.IsNaN(s) {
			return nil, fmt.Errorf("job %d has service time %g: %w", i, s, arrival.ErrInvalidParameter)
		}
		start := math.Max(at, end)
		end = start + s
		jobs[i] = Job{
			Index:   i,
			Arrival: at,
			Service: s,
			Start:   start,
			End:     end,
		}
	}
	return jobs, nil
}
