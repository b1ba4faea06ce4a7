package cogload

import (
	"fmt"
	"strings"

	"github.com/kingrea/lattice-paths/internal/config"
	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
)

const (
	durationCapMinutes = 60.0
	prerequisiteCap    = 5.0
	reviewMinutesEach  = 5
)

// Load estimates the cognitive load of a single objective under the given
// weights, counting its declared prerequisites.
func Load(o objective.Objective, w config.LoadWeights) float64 {
	return load(o, len(o.Prerequisites), w)
}

// LoadAt estimates the load of arena index i. Only prerequisites that resolved
// to edges in g count, so self-references, repeats and external ids add
// nothing.
func LoadAt(g *graph.Graph, i int, w config.LoadWeights) float64 {
	return load(g.Objective(i), len(g.Prerequisites(i)), w)
}

func load(o objective.Objective, prereqCount int, w config.LoadWeights) float64 {
	tier := float64(o.Difficulty) / float64(objective.MaxDifficulty)
	duration := min(float64(o.Duration)/durationCapMinutes, 1)
	prereqs := min(float64(prereqCount)/prerequisiteCap, 1)
	return w.Base +
		w.Difficulty*tier +
		w.Bloom*o.Bloom.LoadFactor() +
		w.Duration*duration +
		w.Prerequisites*prereqs
}

// Balanced is the output of Balance.
type Balanced struct {
	// Sequence is the input order with synthetic reviews inserted.
	Sequence []int
	// Reviews lists the arena indices of the reviews Balance created.
	Reviews []int
	// Trace holds the rolling load accumulator after each position of
	// Sequence.
	Trace []float64
}

// Balance walks seq once, accumulating per-objective load. Before placing an
// objective that would push the accumulator over cfg.LoadCeiling, it inserts a
// review of the last cfg.ReviewWindow objectives placed so far and resets the
// accumulator to cfg.ReviewResetLoad. Reviews are appended to g's arena.
func Balance(g *graph.Graph, seq []int, cfg config.Config) Balanced {
	out := Balanced{
		Sequence: make([]int, 0, len(seq)+len(seq)/2),
		Trace:    make([]float64, 0, len(seq)+len(seq)/2),
	}
	acc := 0.0
	placed := make([]int, 0, len(seq))
	for _, i := range seq {
		if g.IsSynthetic(i) {
			acc = cfg.ReviewResetLoad
			out.Sequence = append(out.Sequence, i)
			out.Trace = append(out.Trace, acc)
			continue
		}
		load := LoadAt(g, i, cfg.Weights)
		if len(placed) > 0 && acc+load > cfg.LoadCeiling {
			r := NewReview(g, lastN(placed, cfg.ReviewWindow))
			out.Reviews = append(out.Reviews, r)
			out.Sequence = append(out.Sequence, r)
			acc = cfg.ReviewResetLoad
			out.Trace = append(out.Trace, acc)
		}
		acc += load
		out.Sequence = append(out.Sequence, i)
		out.Trace = append(out.Trace, acc)
		placed = append(placed, i)
	}
	return out
}

// NewReview appends a synthetic review objective summarizing the given arena
// indices and returns its index. The review depends on every objective it
// covers, sits at the highest tier among them, and is budgeted five minutes per
// covered objective.
func NewReview(g *graph.Graph, covered []int) int {
	ids := g.IDs(covered)
	tier := objective.DifficultyBeginner
	domain := ""
	for _, i := range covered {
		o := g.Objective(i)
		tier = max(tier, o.Difficulty)
		if o.Domain != "" {
			domain = o.Domain
		}
	}
	n := g.Len() - g.InputLen() + 1
	review := objective.Objective{
		ID:          fmt.Sprintf("review-%d", n),
		Description: "Review of " + strings.Join(ids, ", "),
		Domain:      domain,
		Bloom:       objective.BloomUnderstand,
		Duration:    reviewMinutesEach * len(covered),
		Difficulty:  tier,
	}
	return g.AppendSynthetic(review, covered)
}

func lastN(values []int, n int) []int {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
