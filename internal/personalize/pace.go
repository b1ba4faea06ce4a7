package personalize

import (
	"github.com/kingrea/lattice-paths/internal/cogload"
	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
)

// ApplyPace adapts review density to the learner's pace. Fast learners lose
// every synthetic review; slow learners get an extra review after every
// window objectives, counted independently of the reviews already in seq.
// Any other pace returns a copy of seq.
func ApplyPace(g *graph.Graph, seq []int, pace objective.Pace, window int) []int {
	switch pace {
	case objective.PaceFast:
		out := make([]int, 0, len(seq))
		for _, i := range seq {
			if !g.IsSynthetic(i) {
				out = append(out, i)
			}
		}
		return out
	case objective.PaceSlow:
		return insertReviews(g, seq, window)
	case objective.PaceModerate:
		return clone(seq)
	default:
		return clone(seq)
	}
}

func insertReviews(g *graph.Graph, seq []int, window int) []int {
	if window <= 0 {
		return clone(seq)
	}
	out := make([]int, 0, len(seq)+len(seq)/window)
	var since []int
	for _, i := range seq {
		out = append(out, i)
		if g.IsSynthetic(i) {
			continue
		}
		since = append(since, i)
		if len(since) == window {
			out = append(out, cogload.NewReview(g, since))
			since = nil
		}
	}
	return out
}

func clone(seq []int) []int {
	out := make([]int, len(seq))
	copy(out, seq)
	return out
}
