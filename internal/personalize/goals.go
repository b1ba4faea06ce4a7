package personalize

import (
	"strings"

	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
)

// MatchesGoal reports whether any normalized goal occurs in the objective's
// description or domain, ignoring case. Goals are expected lowercased, as
// returned by objective.Profile.NormalizedGoals.
func MatchesGoal(o objective.Objective, goals []string) bool {
	if len(goals) == 0 {
		return false
	}
	text := o.Text()
	for _, goal := range goals {
		if goal != "" && strings.Contains(text, goal) {
			return true
		}
	}
	return false
}

// MergeByGoals pulls goal-matching objectives forward without ever placing an
// objective before one of its prerequisites present in seq.
//
// It repeatedly scans the pending objectives in their current order and emits
// the first goal-matching one whose present prerequisites were all emitted,
// otherwise the first eligible one. When nothing is eligible (a cycle), the
// first pending objective is emitted so the merge always terminates. Every
// step emits exactly one objective, so the merge is O(n²) in the worst case.
//
// If seq is prerequisite-valid, the first pending objective is always
// eligible, so each emitted objective is either a goal match or has no
// eligible goal match ahead of it; a sequence that already lists reachable
// goal matches first is returned unchanged.
func MergeByGoals(g *graph.Graph, seq []int, goals []string) []int {
	if len(goals) == 0 || len(seq) == 0 {
		return clone(seq)
	}
	present := make(map[int]bool, len(seq))
	for _, i := range seq {
		present[i] = true
	}
	matching := make(map[int]bool, len(seq))
	for _, i := range seq {
		if !g.IsSynthetic(i) && MatchesGoal(g.Objective(i), goals) {
			matching[i] = true
		}
	}
	emitted := make(map[int]bool, len(seq))
	eligible := func(i int) bool {
		for _, p := range g.Prerequisites(i) {
			if present[p] && !emitted[p] {
				return false
			}
		}
		return true
	}

	pending := clone(seq)
	out := make([]int, 0, len(seq))
	for len(pending) > 0 {
		pick := -1
		for pos, i := range pending {
			if !eligible(i) {
				continue
			}
			if matching[i] {
				pick = pos
				break
			}
			if pick < 0 {
				pick = pos
			}
		}
		if pick < 0 {
			pick = 0
		}
		i := pending[pick]
		emitted[i] = true
		out = append(out, i)
		pending = append(pending[:pick], pending[pick+1:]...)
	}
	return out
}
