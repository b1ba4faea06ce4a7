// Package path assembles the final LearningPath value from the outputs of the
// sequencing stages. Assembly only aggregates; it recomputes nothing.
package path

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kingrea/lattice-paths/internal/checkpoint"
	"github.com/kingrea/lattice-paths/internal/cogload"
	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
)

// Theory tags recorded on a path.
const (
	TheoryPrerequisites  = "prerequisite-sequencing"
	TheoryScaffolding    = "scaffolding"
	TheoryCognitiveLoad  = "cognitive-load-theory"
	TheorySpacedReview   = "spaced-review"
	TheoryPersonalized   = "personalization"
	TheoryFormativeCheck = "formative-assessment"
)

var pathNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kingrea/lattice-paths/path"))

// LearningPath is the result of one optimization call. It is built once and
// never edited; re-optimizing produces a new path.
type LearningPath struct {
	ID                    string                  `json:"id" yaml:"id"`
	ProfileID             string                  `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	Objectives            []objective.Objective   `json:"objectives" yaml:"objectives"`
	Reviews               []objective.Objective   `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	Sequence              []string                `json:"sequence" yaml:"sequence"`
	EstimatedDuration     int                     `json:"estimated_duration_minutes" yaml:"estimated_duration_minutes"`
	DifficultyProgression []objective.Difficulty  `json:"difficulty_progression" yaml:"difficulty_progression"`
	Checkpoints           []checkpoint.Checkpoint `json:"checkpoints" yaml:"checkpoints"`
	LoadAssessment        cogload.Assessment      `json:"load_assessment" yaml:"load_assessment"`
	PersonalizationNotes  []string                `json:"personalization_notes,omitempty" yaml:"personalization_notes,omitempty"`
	TheoryTags            []string                `json:"theory_tags" yaml:"theory_tags"`
}

// Input carries the stage outputs the assembler packages.
type Input struct {
	Graph       *graph.Graph
	Sequence    []int
	Checkpoints []checkpoint.Checkpoint
	Assessment  cogload.Assessment
	Profile     *objective.Profile
	// ReviewWindow and PaceReviews describe slow-pace reviews in the notes.
	ReviewWindow int
	// PaceReviews counts the reviews the pace transform added.
	PaceReviews int
}

// Assemble builds the LearningPath for in.
func Assemble(in Input) LearningPath {
	g := in.Graph
	p := LearningPath{
		Objectives:            g.Objectives(),
		Sequence:              g.IDs(in.Sequence),
		DifficultyProgression: make([]objective.Difficulty, len(in.Sequence)),
		Checkpoints:           in.Checkpoints,
		LoadAssessment:        in.Assessment,
	}
	hasReview := false
	for pos, i := range in.Sequence {
		o := g.Objective(i)
		p.EstimatedDuration += o.Duration
		p.DifficultyProgression[pos] = o.Difficulty
		if g.IsSynthetic(i) {
			hasReview = true
			p.Reviews = append(p.Reviews, o.Clone())
		}
	}
	if in.Profile != nil {
		p.ProfileID = in.Profile.ID
		p.PersonalizationNotes = notes(*in.Profile, p.EstimatedDuration, in.ReviewWindow, in.PaceReviews)
	}
	p.TheoryTags = theoryTags(hasReview, in.Profile != nil, len(in.Checkpoints) > 0)
	p.ID = pathID(p.Sequence, p.ProfileID)
	return p
}

func pathID(sequence []string, profileID string) string {
	key := strings.Join(sequence, "\x00") + "\x01" + profileID
	return uuid.NewSHA1(pathNamespace, []byte(key)).String()
}

func notes(profile objective.Profile, minutes, window, paceReviews int) []string {
	var out []string
	switch profile.Pace {
	case objective.PaceFast:
		out = append(out, "Pace fast: synthetic reviews removed")
	case objective.PaceSlow:
		if paceReviews > 0 {
			out = append(out, fmt.Sprintf("Pace slow: %d extra review(s), one after every %d objectives", paceReviews, window))
		} else {
			out = append(out, fmt.Sprintf("Pace slow: fewer than %d objectives, no extra reviews added", window))
		}
	case objective.PaceModerate:
		out = append(out, "Pace moderate: load-balancing reviews kept")
	}
	if kws := profile.Style.Keywords(); len(kws) > 0 {
		out = append(out, fmt.Sprintf("Learning style %s: objectives mentioning %s moved earlier where prerequisites allow",
			profile.Style, strings.Join(kws, "/")))
	}
	if goals := profile.NormalizedGoals(); len(goals) > 0 {
		out = append(out, fmt.Sprintf("Goals prioritized: %s", strings.Join(goals, "; ")))
	}
	if tag := strings.TrimSpace(profile.TimeAvailability); tag != "" {
		out = append(out, fmt.Sprintf("Time availability %s: estimated %d minutes in total", tag, minutes))
	}
	return out
}

func theoryTags(reviews, personalized, checkpoints bool) []string {
	tags := []string{TheoryPrerequisites, TheoryScaffolding, TheoryCognitiveLoad}
	if reviews {
		tags = append(tags, TheorySpacedReview)
	}
	if personalized {
		tags = append(tags, TheoryPersonalized)
	}
	if checkpoints {
		tags = append(tags, TheoryFormativeCheck)
	}
	return tags
}
