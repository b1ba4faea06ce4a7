// Package checkpoint plans the assessment points of a learning path: one
// formative checkpoint per interval of the sequence and a single terminal
// summative checkpoint covering everything. Checkpoints are descriptive
// records; nothing here simulates learner performance.
package checkpoint

import (
	"fmt"

	"github.com/kingrea/lattice-paths/internal/config"
)

// Kind distinguishes formative from summative checkpoints.
type Kind string

const (
	KindFormative Kind = "formative"
	KindSummative Kind = "summative"
)

// Checkpoint is a planned assessment referencing a contiguous span of the
// sequence.
type Checkpoint struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	// Position is the index in the sequence after which the checkpoint occurs.
	Position         int      `json:"position" yaml:"position"`
	AssessObjectives []string `json:"assess_objectives" yaml:"assess_objectives"`
	PassingThreshold float64  `json:"passing_threshold" yaml:"passing_threshold"`
	RetriesAllowed   bool     `json:"retries_allowed" yaml:"retries_allowed"`
	Comprehensive    bool     `json:"comprehensive,omitempty" yaml:"comprehensive,omitempty"`
}

// Count returns how many formative checkpoints a sequence of n objectives
// gets: n/5 clamped to [cfg.CheckpointMin, cfg.CheckpointMax] and never more
// than n.
func Count(n int, cfg config.Config) int {
	if n <= 0 {
		return 0
	}
	count := max(cfg.CheckpointMin, min(n/5, cfg.CheckpointMax))
	return min(count, n)
}

// Plan splits sequence into Count equal intervals, the last absorbing any
// remainder, and appends the summative checkpoint. An empty sequence has no
// checkpoints.
func Plan(sequence []string, cfg config.Config) []Checkpoint {
	n := len(sequence)
	count := Count(n, cfg)
	if count == 0 {
		return nil
	}
	interval := n / count
	checkpoints := make([]Checkpoint, 0, count+1)
	start := 0
	for k := 1; k <= count; k++ {
		end := start + interval
		if k == count {
			end = n
		}
		checkpoints = append(checkpoints, Checkpoint{
			ID:               fmt.Sprintf("checkpoint-%d", k),
			Title:            fmt.Sprintf("Checkpoint %d of %d", k, count),
			Kind:             KindFormative,
			Position:         end - 1,
			AssessObjectives: clone(sequence[start:end]),
			PassingThreshold: cfg.PassThresholdFormative,
			RetriesAllowed:   true,
		})
		start = end
	}
	checkpoints = append(checkpoints, Checkpoint{
		ID:               "summative",
		Title:            "Final assessment",
		Kind:             KindSummative,
		Position:         n - 1,
		AssessObjectives: clone(sequence),
		PassingThreshold: cfg.PassThresholdSummative,
		RetriesAllowed:   true,
		Comprehensive:    true,
	})
	return checkpoints
}

func clone(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
