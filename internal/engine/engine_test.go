package engine

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kingrea/lattice-paths/internal/checkpoint"
	"github.com/kingrea/lattice-paths/internal/config"
	"github.com/kingrea/lattice-paths/internal/finding"
	"github.com/kingrea/lattice-paths/internal/objective"
)

func obj(id string, tier objective.Difficulty, prereqs ...string) objective.Objective {
	return objective.Objective{
		ID:            id,
		Description:   "objective " + id,
		Bloom:         objective.BloomRemember,
		Difficulty:    tier,
		Duration:      15,
		Prerequisites: prereqs,
	}
}

var descriptions = []string{
	"draw a diagram of",
	"discuss",
	"build a lab for",
	"read about",
	"explain",
}

func randomCurriculum(rng *rand.Rand, n int) []objective.Objective {
	out := make([]objective.Objective, n)
	for i := range out {
		tier := objective.Difficulty(1 + rng.Intn(5))
		o := objective.Objective{
			ID:          fmt.Sprintf("o%02d", i),
			Description: descriptions[rng.Intn(len(descriptions))] + " topic",
			Domain:      []string{"algebra", "geometry", "statistics"}[rng.Intn(3)],
			Bloom:       objective.BloomLevel(1 + rng.Intn(6)),
			Difficulty:  tier,
			Duration:    5 + rng.Intn(60),
		}
		for j := 0; j < i; j++ {
			if out[j].Difficulty <= tier && rng.Intn(4) == 0 {
				o.Prerequisites = append(o.Prerequisites, out[j].ID)
			}
		}
		out[i] = o
	}
	rng.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
	return out
}

func profiles() []*objective.Profile {
	return []*objective.Profile{
		nil,
		{ID: "slow", Pace: objective.PaceSlow},
		{ID: "fast", Pace: objective.PaceFast, Style: objective.StyleKinesthetic},
		{ID: "goals", Pace: objective.PaceModerate, Goals: []string{"geometry"}, Style: objective.StyleVisual},
	}
}

func positions(sequence []string) map[string]int {
	pos := make(map[string]int, len(sequence))
	for i, id := range sequence {
		pos[id] = i
	}
	return pos
}

func TestOptimizeGoldenOrder(t *testing.T) {
	p, findings, err := Optimize([]objective.Objective{
		obj("A", 1),
		obj("B", 2, "A"),
		obj("C", 1),
	}, nil, config.Default())
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, []string{"A", "C", "B"}, p.Sequence)
	assert.Equal(t, []objective.Difficulty{1, 1, 2}, p.DifficultyProgression)
	assert.Equal(t, 45, p.EstimatedDuration)
	require.NotEmpty(t, p.Checkpoints)
	last := p.Checkpoints[len(p.Checkpoints)-1]
	assert.Equal(t, checkpoint.KindSummative, last.Kind)
	assert.Equal(t, p.Sequence, last.AssessObjectives)
}

func TestOptimizeSlowPaceNotesReviewsItAdded(t *testing.T) {
	objectives := []objective.Objective{obj("A", 1), obj("B", 2, "A"), obj("C", 1)}
	slow, _, err := Optimize(objectives, &objective.Profile{ID: "slow", Pace: objective.PaceSlow}, config.Default())
	require.NoError(t, err)
	moderate, _, err := Optimize(objectives, &objective.Profile{ID: "slow", Pace: objective.PaceModerate}, config.Default())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C", "B", "review-1"}, slow.Sequence)
	require.Len(t, slow.Reviews, 1)
	assert.Equal(t, []string{"A", "C", "B"}, slow.Reviews[0].Prerequisites)
	assert.Contains(t, slow.PersonalizationNotes, "Pace slow: 1 extra review(s), one after every 3 objectives")
	assert.NotEqual(t, moderate.Sequence, slow.Sequence)

	short, _, err := Optimize(objectives[:2], &objective.Profile{ID: "slow", Pace: objective.PaceSlow}, config.Default())
	require.NoError(t, err)
	assert.Empty(t, short.Reviews)
	assert.Contains(t, short.PersonalizationNotes, "Pace slow: fewer than 3 objectives, no extra reviews added")
}

func TestOptimizeEmptyInput(t *testing.T) {
	p, findings, err := Optimize(nil, &objective.Profile{ID: "learner"}, config.Default())
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Empty(t, p.Sequence)
	assert.Empty(t, p.Checkpoints)
	assert.Zero(t, p.EstimatedDuration)
}

func TestOptimizeRejectsInvalidConfigBeforeRunning(t *testing.T) {
	cfg := config.Default()
	cfg.LoadCeiling = 0
	p, findings, err := Optimize([]objective.Objective{obj("A", 1)}, nil, cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Empty(t, findings)
	assert.Empty(t, p.Sequence)
	assert.Empty(t, p.ID)
}

func TestOptimizeToleratesThreeCycle(t *testing.T) {
	p, findings, err := Optimize([]objective.Objective{
		obj("A", 1, "C"),
		obj("B", 1, "A"),
		obj("C", 1, "B"),
	}, nil, config.Default())
	require.NoError(t, err)
	cycles := findings.OfKind(finding.KindCycle)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, cycles[0].Objectives)

	counts := map[string]int{}
	for _, id := range p.Sequence {
		counts[id]++
	}
	for _, id := range []string{"A", "B", "C"} {
		assert.Equal(t, 1, counts[id], id)
	}
}

func TestOptimizeReportsMalformedInputAsFindings(t *testing.T) {
	_, findings, err := Optimize([]objective.Objective{
		obj("A", 1, "A"),
		obj("A", 2),
		obj("B", 1, "A", "missing"),
	}, nil, config.Default())
	require.NoError(t, err)
	kinds := findings.Counts()
	assert.Equal(t, 1, kinds[finding.KindDuplicateID])
	assert.Equal(t, 1, kinds[finding.KindSelfLoop])
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	objectives := randomCurriculum(rng, 20)
	snapshot := make([]objective.Objective, len(objectives))
	for i, o := range objectives {
		snapshot[i] = o.Clone()
	}
	profile := &objective.Profile{ID: "p", Pace: objective.PaceSlow, Goals: []string{"Algebra"}}

	_, _, err := Optimize(objectives, profile, config.Default())
	require.NoError(t, err)
	assert.Equal(t, snapshot, objectives)
	assert.Equal(t, []string{"Algebra"}, profile.Goals)
}

func TestOptimizePropertiesOnRandomCurricula(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cfg := config.Default()
	for round := 0; round < 40; round++ {
		objectives := randomCurriculum(rng, 1+rng.Intn(30))
		for _, profile := range profiles() {
			p, findings, err := Optimize(objectives, profile, cfg)
			require.NoError(t, err)
			require.Empty(t, findings, "round %d", round)

			pos := positions(p.Sequence)
			reviews := map[string]bool{}
			for _, r := range p.Reviews {
				reviews[r.ID] = true
			}
			seen := map[string]int{}
			for _, id := range p.Sequence {
				if !reviews[id] {
					seen[id]++
				}
			}
			require.Len(t, seen, len(objectives), "round %d", round)
			for _, o := range objectives {
				require.Equal(t, 1, seen[o.ID], "round %d: %s", round, o.ID)
				for _, pre := range o.Prerequisites {
					require.Less(t, pos[pre], pos[o.ID], "round %d: %s before %s", round, pre, o.ID)
				}
			}
			if profile != nil && profile.Pace == objective.PaceFast {
				assert.Empty(t, p.Reviews)
			}
			assert.Len(t, p.DifficultyProgression, len(p.Sequence))

			again, _, err := Optimize(objectives, profile, cfg)
			require.NoError(t, err)
			assert.Equal(t, p, again, "round %d not deterministic", round)
		}
	}
}

func TestOptimizeLogsFindings(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	eng := New(WithLogger(zap.New(core)))
	_, _, err := eng.Optimize([]objective.Objective{
		obj("A", 1, "B"),
		obj("B", 1, "A"),
	}, nil, config.Default())
	require.NoError(t, err)

	warnings := logs.FilterMessage("structural finding").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
	assert.Equal(t, "cycle", warnings[0].ContextMap()["kind"])
	assert.Equal(t, 1, logs.FilterMessage("path optimized").Len())
	assert.Positive(t, logs.FilterMessage("scaffolded").Len())
}

func TestOptimizeBatchMatchesSequentialRuns(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	bad := config.Default()
	bad.ReviewWindow = 0

	var reqs []Request
	for i := 0; i < 12; i++ {
		reqs = append(reqs, Request{
			ID:         fmt.Sprintf("req-%d", i),
			Objectives: randomCurriculum(rng, 5+rng.Intn(20)),
			Profile:    profiles()[i%4],
			Config:     config.Default(),
		})
	}
	reqs[7].Config = bad

	eng := New(WithParallelism(3))
	results, err := eng.OptimizeBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	for i, req := range reqs {
		assert.Equal(t, req.ID, results[i].RequestID)
		if i == 7 {
			assert.ErrorIs(t, results[i].Err, config.ErrInvalidConfig)
			continue
		}
		want, findings, err := eng.Optimize(req.Objectives, req.Profile, req.Config)
		require.NoError(t, err)
		require.NoError(t, results[i].Err)
		assert.Equal(t, want, results[i].Path)
		assert.Equal(t, findings, results[i].Findings)
	}
}

func TestOptimizeBatchStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := New().OptimizeBatch(ctx, []Request{{ID: "a", Objectives: []objective.Objective{obj("A", 1)}, Config: config.Default()}})
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Path.Sequence)
}
