package sequence

import (
	"sort"

	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
)

// Scaffold stable-partitions a topological order into difficulty buckets,
// easiest first, keeping the incoming relative order inside each bucket.
//
// An objective's bucket is the highest of its own tier and its prerequisites'
// buckets. On well-formed input (no prerequisite harder than its dependent)
// that is just the objective's tier; when an inversion exists the dependent
// rides in its prerequisite's bucket so the order stays valid. Inversions are
// reported by graph.Build and are not corrected here.
func Scaffold(g *graph.Graph, order []int) []int {
	bucket := make(map[int]objective.Difficulty, len(order))
	for _, i := range order {
		tier := g.Objective(i).Difficulty
		for _, p := range g.Prerequisites(i) {
			if pt, ok := bucket[p]; ok && pt > tier {
				tier = pt
			}
		}
		bucket[i] = tier
	}
	out := make([]int, len(order))
	copy(out, order)
	sort.SliceStable(out, func(a, b int) bool {
		return bucket[out[a]] < bucket[out[b]]
	})
	return out
}

// Tiers returns the difficulty tier at every position of seq.
func Tiers(g *graph.Graph, seq []int) []objective.Difficulty {
	tiers := make([]objective.Difficulty, len(seq))
	for pos, i := range seq {
		tiers[pos] = g.Objective(i).Difficulty
	}
	return tiers
}

// Valid reports whether every objective in seq comes after all of its
// prerequisites that also appear in seq.
func Valid(g *graph.Graph, seq []int) bool {
	return len(Violations(g, seq)) == 0
}

// Violations returns the positions in seq whose objective precedes at least
// one of its prerequisites present in seq.
func Violations(g *graph.Graph, seq []int) []int {
	position := make(map[int]int, len(seq))
	for pos, i := range seq {
		position[i] = pos
	}
	var out []int
	for pos, i := range seq {
		for _, p := range g.Prerequisites(i) {
			if pp, ok := position[p]; ok && pp > pos {
				out = append(out, pos)
				break
			}
		}
	}
	return out
}
