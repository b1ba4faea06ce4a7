package cogload

import (
	"strings"

	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
	"github.com/kingrea/lattice-paths/internal/sequence"
)

// Assessment is the aggregate cognitive-load estimate of a path. Every
// component is in [0,1]; Total is their mean.
type Assessment struct {
	Intrinsic       float64  `json:"intrinsic" yaml:"intrinsic"`
	Extraneous      float64  `json:"extraneous" yaml:"extraneous"`
	Germane         float64  `json:"germane" yaml:"germane"`
	Total           float64  `json:"total" yaml:"total"`
	Recommendations []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

const (
	RecommendChunk      = "chunk further: split the most complex objectives into smaller steps"
	RecommendExtraneous = "reduce extraneous load: group objectives by domain and smooth difficulty jumps"
	RecommendOrdering   = "resolve prerequisite ordering conflicts before publishing"
	RecommendElaborate  = "add elaboration: include application, analysis or transfer activities"
	RecommendReview     = "overall load is high: schedule additional reviews"
	RecommendBalanced   = "cognitive load within recommended range"
)

var elaborationKeywords = []string{"explain", "compare", "relate", "connect", "example", "transfer", "apply"}

// Assess scores the accepted input objectives of g. Intrinsic and germane load
// depend only on the objective set; extraneous load is measured along seq,
// skipping synthetic reviews.
func Assess(g *graph.Graph, seq []int) Assessment {
	n := g.InputLen()
	if n == 0 {
		return Assessment{}
	}
	var complexity, interactivity, germane float64
	for i := 0; i < n; i++ {
		o := g.Objective(i)
		complexity += (tierShare(o.Difficulty) + bloomShare(o.Bloom)) / 2
		interactivity += min(float64(len(g.Prerequisites(i)))/3, 1)
		germane += germaneScore(o)
	}
	fn := float64(n)
	a := Assessment{
		Intrinsic: clamp01(0.6*complexity/fn + 0.4*interactivity/fn),
		Germane:   clamp01(germane / fn),
	}

	learned := make([]int, 0, len(seq))
	for _, i := range seq {
		if !g.IsSynthetic(i) {
			learned = append(learned, i)
		}
	}
	var switches, jumps float64
	for k := 1; k < len(learned); k++ {
		prev, cur := g.Objective(learned[k-1]), g.Objective(learned[k])
		if !strings.EqualFold(prev.Domain, cur.Domain) {
			switches++
		}
		if cur.Difficulty-prev.Difficulty > 1 {
			jumps++
		}
	}
	violationRate := 0.0
	if len(learned) > 0 {
		violationRate = float64(len(sequence.Violations(g, learned))) / float64(len(learned))
	}
	if pairs := float64(len(learned) - 1); pairs > 0 {
		switches /= pairs
		jumps /= pairs
	}
	a.Extraneous = clamp01(0.4*switches + 0.3*jumps + 0.3*violationRate)
	a.Total = (a.Intrinsic + a.Extraneous + a.Germane) / 3

	if a.Intrinsic > 0.7 {
		a.Recommendations = append(a.Recommendations, RecommendChunk)
	}
	if a.Extraneous > 0.5 {
		a.Recommendations = append(a.Recommendations, RecommendExtraneous)
	}
	if violationRate > 0 {
		a.Recommendations = append(a.Recommendations, RecommendOrdering)
	}
	if a.Germane < 0.3 {
		a.Recommendations = append(a.Recommendations, RecommendElaborate)
	}
	if a.Total > 0.7 {
		a.Recommendations = append(a.Recommendations, RecommendReview)
	}
	if len(a.Recommendations) == 0 {
		a.Recommendations = []string{RecommendBalanced}
	}
	return a
}

func tierShare(d objective.Difficulty) float64 {
	return float64(d-objective.DifficultyBeginner) / float64(objective.DifficultyExpert-objective.DifficultyBeginner)
}

func bloomShare(b objective.BloomLevel) float64 {
	return float64(b-objective.BloomRemember) / float64(objective.BloomCreate-objective.BloomRemember)
}

func germaneScore(o objective.Objective) float64 {
	switch o.Bloom {
	case objective.BloomAnalyze, objective.BloomEvaluate, objective.BloomCreate:
		return 1
	case objective.BloomApply:
		return 0.6
	case objective.BloomRemember, objective.BloomUnderstand:
		text := o.Text()
		for _, kw := range elaborationKeywords {
			if strings.Contains(text, kw) {
				return 0.3
			}
		}
		return 0
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
