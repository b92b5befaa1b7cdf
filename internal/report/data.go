package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"poisson-lab/internal/types"
)

// Data is the machine-readable export consumed by plotting tools
type Data struct {
	Summary      *types.Summary       `yaml:"summary"`
	Replications []*types.Replication `yaml:"replications"`
}

// WriteData writes the series, histograms and per-bin tables as YAML
func WriteData(path string, reps []*types.Replication, summary *types.Summary) error {
	out, err := yaml.Marshal(Data{Summary: summary, Replications: reps})
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}
