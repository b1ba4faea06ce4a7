package personalize

import (
	"sort"
	"strings"

	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
)

// StyleBoost reports whether the objective's text mentions a keyword
// correlated with the learning style. Synthetic reviews are never boosted.
func StyleBoost(o objective.Objective, style objective.LearningStyle) bool {
	if o.Synthetic {
		return false
	}
	text := o.Text()
	for _, kw := range style.Keywords() {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// WeightByStyle moves style-matching objectives to the front of each maximal
// run of mutually independent objectives. Runs are split wherever an
// objective depends on an earlier member of the current run, so no objective
// can move relative to its prerequisites.
func WeightByStyle(g *graph.Graph, seq []int, style objective.LearningStyle) []int {
	out := clone(seq)
	if len(style.Keywords()) == 0 {
		return out
	}
	for _, run := range independentRuns(g, out) {
		block := out[run[0]:run[1]]
		sort.SliceStable(block, func(a, b int) bool {
			return StyleBoost(g.Objective(block[a]), style) && !StyleBoost(g.Objective(block[b]), style)
		})
	}
	return out
}

// independentRuns returns [start, end) bounds of consecutive runs in seq whose
// members do not depend on each other.
func independentRuns(g *graph.Graph, seq []int) [][2]int {
	var runs [][2]int
	start := 0
	members := map[int]bool{}
	for pos, i := range seq {
		dependsOnRun := false
		for _, p := range g.Prerequisites(i) {
			if members[p] {
				dependsOnRun = true
				break
			}
		}
		if dependsOnRun {
			runs = append(runs, [2]int{start, pos})
			start = pos
			members = map[int]bool{}
		}
		members[i] = true
	}
	if start < len(seq) {
		runs = append(runs, [2]int{start, len(seq)})
	}
	return runs
}
