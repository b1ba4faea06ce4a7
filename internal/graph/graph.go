package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kingrea/lattice-paths/internal/finding"
	"github.com/kingrea/lattice-paths/internal/objective"
)

// Graph indexes the objectives of one optimization call. Objectives live in an
// append-only arena; every other stage refers to them by arena index.
type Graph struct {
	objectives []objective.Objective
	index      map[string]int
	prereqs    [][]int
	dependents [][]int
	inDegree   []int
	roots      []int
	inputLen   int
}

var validate = validator.New()

// Build validates and indexes objectives. It never fails: duplicates,
// self-loops, difficulty inversions and invalid fields are reported as
// findings while the graph is built from what remains. Prerequisite ids that
// are not in the input are treated as already-satisfied external knowledge.
func Build(objectives []objective.Objective) (*Graph, finding.List) {
	var findings finding.List
	g := &Graph{
		objectives: make([]objective.Objective, 0, len(objectives)),
		index:      make(map[string]int, len(objectives)),
	}
	for pos, raw := range objectives {
		obj, ok := sanitize(pos, raw, &findings)
		if !ok {
			continue
		}
		if _, exists := g.index[obj.ID]; exists {
			findings.Addf(finding.KindDuplicateID, []string{obj.ID},
				"objective %s declared more than once; keeping the first declaration", obj.ID)
			continue
		}
		g.index[obj.ID] = len(g.objectives)
		g.objectives = append(g.objectives, obj)
	}
	g.inputLen = len(g.objectives)
	g.prereqs = make([][]int, len(g.objectives))
	g.dependents = make([][]int, len(g.objectives))
	g.inDegree = make([]int, len(g.objectives))
	for i, obj := range g.objectives {
		seen := make(map[int]struct{}, len(obj.Prerequisites))
		for _, pid := range obj.Prerequisites {
			if pid == obj.ID {
				findings.Addf(finding.KindSelfLoop, []string{obj.ID},
					"objective %s lists itself as a prerequisite; edge ignored", obj.ID)
				continue
			}
			p, ok := g.index[pid]
			if !ok {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			g.prereqs[i] = append(g.prereqs[i], p)
			g.dependents[p] = append(g.dependents[p], i)
			g.inDegree[i]++
			if pre := g.objectives[p]; pre.Difficulty > obj.Difficulty {
				findings.Addf(finding.KindDifficultyInversion, []string{pre.ID, obj.ID},
					"prerequisite %s (%s) is harder than dependent %s (%s)",
					pre.ID, pre.Difficulty, obj.ID, obj.Difficulty)
			}
		}
	}
	for i, deg := range g.inDegree {
		if deg == 0 {
			g.roots = append(g.roots, i)
		}
	}
	return g, findings
}

// sanitize clones the objective, clamps out-of-range fields and reports them.
// Objectives without an id cannot be referenced and are dropped.
func sanitize(pos int, raw objective.Objective, findings *finding.List) (objective.Objective, bool) {
	obj := raw.Clone()
	obj.ID = strings.TrimSpace(obj.ID)
	err := validate.Struct(obj)
	if err == nil {
		return obj, true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		findings.Addf(finding.KindInvalidObjective, []string{obj.ID}, "objective #%d: %v", pos, err)
		return obj, obj.ID != ""
	}
	label := obj.ID
	if label == "" {
		label = fmt.Sprintf("#%d", pos)
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "ID":
			findings.Addf(finding.KindInvalidObjective, nil, "objective %s has no id; dropped", label)
			return obj, false
		case "Bloom":
			obj.Bloom = clampBloom(obj.Bloom)
			findings.Addf(finding.KindInvalidObjective, []string{obj.ID},
				"objective %s bloom level %d out of range; using %s", label, int(raw.Bloom), obj.Bloom)
		case "Difficulty":
			obj.Difficulty = clampDifficulty(obj.Difficulty)
			findings.Addf(finding.KindInvalidObjective, []string{obj.ID},
				"objective %s difficulty %d out of range; using %s", label, int(raw.Difficulty), obj.Difficulty)
		case "Duration":
			obj.Duration = 0
			findings.Addf(finding.KindInvalidObjective, []string{obj.ID},
				"objective %s has negative duration %d; using 0", label, raw.Duration)
		default:
			findings.Addf(finding.KindInvalidObjective, []string{obj.ID},
				"objective %s field %s is invalid", label, fe.Field())
		}
	}
	return obj, true
}

func clampBloom(b objective.BloomLevel) objective.BloomLevel {
	return max(objective.BloomRemember, min(b, objective.BloomCreate))
}

func clampDifficulty(d objective.Difficulty) objective.Difficulty {
	return max(objective.DifficultyBeginner, min(d, objective.DifficultyExpert))
}

// Len returns the number of objectives in the arena, synthetic ones included.
func (g *Graph) Len() int {
	return len(g.objectives)
}

// InputLen returns the number of objectives accepted from the input.
func (g *Graph) InputLen() int {
	return g.inputLen
}

// Objective returns the objective stored at index i.
func (g *Graph) Objective(i int) objective.Objective {
	return g.objectives[i]
}

// Index resolves an objective id to its arena index.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Prerequisites returns the arena indices of the present prerequisites of i.
func (g *Graph) Prerequisites(i int) []int {
	return g.prereqs[i]
}

// Dependents returns the arena indices that list i as a prerequisite.
func (g *Graph) Dependents(i int) []int {
	return g.dependents[i]
}

// InDegree returns the number of present prerequisites of i.
func (g *Graph) InDegree(i int) int {
	return g.inDegree[i]
}

// Roots returns the input objectives without present prerequisites, in input
// order.
func (g *Graph) Roots() []int {
	return g.roots
}

// IsSynthetic reports whether i was appended after the input was indexed.
func (g *Graph) IsSynthetic(i int) bool {
	return i >= g.inputLen
}

// Objectives returns a copy of the accepted input objectives.
func (g *Graph) Objectives() []objective.Objective {
	out := make([]objective.Objective, g.inputLen)
	copy(out, g.objectives[:g.inputLen])
	return out
}

// IDs maps a sequence of arena indices to objective ids.
func (g *Graph) IDs(seq []int) []string {
	ids := make([]string, len(seq))
	for pos, i := range seq {
		ids[pos] = g.objectives[i].ID
	}
	return ids
}

// AppendSynthetic adds a generated objective whose prerequisites are the given
// arena indices. The objective's Prerequisites field is overwritten with the
// ids of those indices and its id is made unique within the arena.
func (g *Graph) AppendSynthetic(obj objective.Objective, prereqs []int) int {
	obj = obj.Clone()
	obj.Synthetic = true
	obj.ID = g.uniqueID(obj.ID)
	obj.Prerequisites = g.IDs(prereqs)
	i := len(g.objectives)
	g.objectives = append(g.objectives, obj)
	g.index[obj.ID] = i
	deps := make([]int, len(prereqs))
	copy(deps, prereqs)
	g.prereqs = append(g.prereqs, deps)
	g.dependents = append(g.dependents, nil)
	g.inDegree = append(g.inDegree, len(deps))
	for _, p := range deps {
		g.dependents[p] = append(g.dependents[p], i)
	}
	return i
}

func (g *Graph) uniqueID(id string) string {
	if _, taken := g.index[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if _, taken := g.index[candidate]; !taken {
			return candidate
		}
	}
}
