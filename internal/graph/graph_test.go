package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/lattice-paths/internal/finding"
	"github.com/kingrea/lattice-paths/internal/objective"
)

func obj(id string, tier objective.Difficulty, prereqs ...string) objective.Objective {
	return objective.Objective{
		ID:            id,
		Description:   "objective " + id,
		Bloom:         objective.BloomUnderstand,
		Difficulty:    tier,
		Duration:      20,
		Prerequisites: prereqs,
	}
}

func TestBuildIndexesEdgesAndRoots(t *testing.T) {
	g, findings := Build([]objective.Objective{
		obj("a", 1),
		obj("b", 2, "a"),
		obj("c", 2, "a", "b"),
		obj("d", 1),
	})
	require.Empty(t, findings)
	require.Equal(t, 4, g.Len())

	a, _ := g.Index("a")
	b, _ := g.Index("b")
	c, _ := g.Index("c")
	d, _ := g.Index("d")
	assert.Equal(t, []int{a, d}, g.Roots())
	assert.Equal(t, []int{b, c}, g.Dependents(a))
	assert.Equal(t, 2, g.InDegree(c))
	assert.Equal(t, []int{a, b}, g.Prerequisites(c))
	assert.Equal(t, []string{"d", "a"}, g.IDs([]int{d, a}))
}

func TestBuildIgnoresExternalPrerequisites(t *testing.T) {
	g, findings := Build([]objective.Objective{obj("b", 2, "algebra-101")})
	assert.Empty(t, findings)
	b, ok := g.Index("b")
	require.True(t, ok)
	assert.Equal(t, 0, g.InDegree(b))
	assert.Equal(t, []int{b}, g.Roots())
}

func TestBuildReportsDuplicatesAndKeepsFirst(t *testing.T) {
	first := obj("a", 1)
	second := obj("a", 3)
	second.Description = "shadow"
	g, findings := Build([]objective.Objective{first, second})
	require.Equal(t, 1, g.Len())
	assert.Equal(t, "objective a", g.Objective(0).Description)
	require.Len(t, findings.OfKind(finding.KindDuplicateID), 1)
	assert.Equal(t, []string{"a"}, findings[0].Objectives)
}

func TestBuildDropsSelfLoops(t *testing.T) {
	g, findings := Build([]objective.Objective{obj("a", 1, "a")})
	require.Len(t, findings.OfKind(finding.KindSelfLoop), 1)
	assert.Equal(t, 0, g.InDegree(0))
}

func TestBuildFlagsDifficultyInversions(t *testing.T) {
	_, findings := Build([]objective.Objective{
		obj("hard", 4),
		obj("easy", 1, "hard"),
	})
	inversions := findings.OfKind(finding.KindDifficultyInversion)
	require.Len(t, inversions, 1)
	assert.Equal(t, []string{"hard", "easy"}, inversions[0].Objectives)
}

func TestBuildClampsInvalidFields(t *testing.T) {
	bad := objective.Objective{ID: "x", Bloom: 9, Difficulty: 0, Duration: -5}
	g, findings := Build([]objective.Objective{bad, {Description: "no id"}})
	require.Equal(t, 1, g.Len())
	got := g.Objective(0)
	assert.Equal(t, objective.BloomCreate, got.Bloom)
	assert.Equal(t, objective.DifficultyBeginner, got.Difficulty)
	assert.Equal(t, 0, got.Duration)
	assert.Len(t, findings.OfKind(finding.KindInvalidObjective), 4)
}

func TestBuildDoesNotAliasInput(t *testing.T) {
	input := []objective.Objective{obj("a", 1), obj("b", 1, "a")}
	g, _ := Build(input)
	input[1].Prerequisites[0] = "zzz"
	assert.Equal(t, []string{"a"}, g.Objective(1).Prerequisites)
}

func TestAppendSyntheticLinksPrerequisites(t *testing.T) {
	g, _ := Build([]objective.Objective{obj("a", 1), obj("review-1", 1)})
	i := g.AppendSynthetic(objective.Objective{ID: "review-1", Difficulty: 1, Bloom: objective.BloomUnderstand}, []int{0})
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.InputLen())
	assert.True(t, g.IsSynthetic(i))
	assert.False(t, g.IsSynthetic(0))
	review := g.Objective(i)
	assert.Equal(t, "review-1-2", review.ID)
	assert.True(t, review.Synthetic)
	assert.Equal(t, []string{"a"}, review.Prerequisites)
	assert.Equal(t, []int{i}, g.Dependents(0))
	assert.Len(t, g.Objectives(), 2)
}
