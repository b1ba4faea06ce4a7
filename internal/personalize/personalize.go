// Package personalize re-prioritizes a balanced learning sequence for a
// learner profile. Pace, goal affinity and learning style are independent
// transforms applied in that order; none of them moves an objective ahead of a
// prerequisite that a valid input sequence already satisfied.
package personalize

import (
	"github.com/kingrea/lattice-paths/internal/config"
	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
)

// Apply runs the pace, goal and style transforms for profile. A nil profile
// returns a copy of seq.
func Apply(g *graph.Graph, seq []int, profile *objective.Profile, cfg config.Config) []int {
	if profile == nil {
		return clone(seq)
	}
	out := ApplyPace(g, seq, profile.Pace, cfg.ReviewWindow)
	out = MergeByGoals(g, out, profile.NormalizedGoals())
	return WeightByStyle(g, out, profile.Style)
}
