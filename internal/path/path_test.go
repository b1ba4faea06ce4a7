package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/lattice-paths/internal/checkpoint"
	"github.com/kingrea/lattice-paths/internal/cogload"
	"github.com/kingrea/lattice-paths/internal/config"
	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
)

func fixture(t *testing.T) (*graph.Graph, []int) {
	t.Helper()
	g, findings := graph.Build([]objective.Objective{
		{ID: "a", Bloom: objective.BloomRemember, Difficulty: 1, Duration: 10},
		{ID: "b", Bloom: objective.BloomApply, Difficulty: 2, Duration: 25, Prerequisites: []string{"a"}},
	})
	require.Empty(t, findings)
	r := cogload.NewReview(g, []int{0, 1})
	return g, []int{0, 1, r}
}

func TestAssembleAggregates(t *testing.T) {
	g, seq := fixture(t)
	ids := g.IDs(seq)
	p := Assemble(Input{
		Graph:       g,
		Sequence:    seq,
		Checkpoints: checkpoint.Plan(ids, config.Default()),
		Assessment:  cogload.Assess(g, seq),
	})
	assert.Equal(t, []string{"a", "b", "review-1"}, p.Sequence)
	assert.Equal(t, 10+25+10, p.EstimatedDuration)
	assert.Equal(t, []objective.Difficulty{1, 2, 2}, p.DifficultyProgression)
	assert.Len(t, p.Objectives, 2)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, "review-1", p.Reviews[0].ID)
	assert.Empty(t, p.PersonalizationNotes)
	assert.Empty(t, p.ProfileID)
	assert.Equal(t, []string{TheoryPrerequisites, TheoryScaffolding, TheoryCognitiveLoad, TheorySpacedReview, TheoryFormativeCheck}, p.TheoryTags)
	assert.NotEmpty(t, p.ID)
}

func TestAssembleIDIsDeterministic(t *testing.T) {
	g, seq := fixture(t)
	first := Assemble(Input{Graph: g, Sequence: seq})
	second := Assemble(Input{Graph: g, Sequence: seq})
	assert.Equal(t, first.ID, second.ID)

	other := Assemble(Input{Graph: g, Sequence: seq, Profile: &objective.Profile{ID: "someone"}})
	assert.NotEqual(t, first.ID, other.ID)
}

func TestAssembleNotesRenderOnlyPresentFields(t *testing.T) {
	g, seq := fixture(t)
	p := Assemble(Input{
		Graph:        g,
		Sequence:     seq,
		ReviewWindow: 3,
		PaceReviews:  1,
		Profile: &objective.Profile{
			ID:               "learner-1",
			Pace:             objective.PaceSlow,
			Goals:            []string{"Algebra", " "},
			TimeAvailability: "evenings",
		},
	})
	assert.Equal(t, "learner-1", p.ProfileID)
	assert.Equal(t, []string{
		"Pace slow: 1 extra review(s), one after every 3 objectives",
		"Goals prioritized: algebra",
		"Time availability evenings: estimated 45 minutes in total",
	}, p.PersonalizationNotes)
	assert.Contains(t, p.TheoryTags, TheoryPersonalized)

	styled := Assemble(Input{Graph: g, Sequence: seq, Profile: &objective.Profile{ID: "x", Style: objective.StyleVisual}})
	require.Len(t, styled.PersonalizationNotes, 1)
	assert.Contains(t, styled.PersonalizationNotes[0], "Learning style visual")
}

func TestAssembleSlowNoteWithoutPaceReviews(t *testing.T) {
	g, seq := fixture(t)
	p := Assemble(Input{
		Graph:        g,
		Sequence:     seq,
		ReviewWindow: 3,
		Profile:      &objective.Profile{ID: "learner-2", Pace: objective.PaceSlow},
	})
	assert.Equal(t, []string{"Pace slow: fewer than 3 objectives, no extra reviews added"}, p.PersonalizationNotes)
}

func TestAssembleEmpty(t *testing.T) {
	g, _ := graph.Build(nil)
	p := Assemble(Input{Graph: g})
	assert.Empty(t, p.Sequence)
	assert.Empty(t, p.Checkpoints)
	assert.Zero(t, p.EstimatedDuration)
	assert.NotContains(t, p.TheoryTags, TheoryFormativeCheck)
}
