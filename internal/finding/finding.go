// Package finding holds the structural findings the sequencing stages report
// instead of failing. Findings never abort an optimization; callers decide
// whether any of them should block publication of a path.
package finding

import (
	"fmt"
	"sort"
	"strings"
)

// Kind enumerates finding categories.
type Kind string

const (
	KindCycle               Kind = "cycle"
	KindDuplicateID         Kind = "duplicate-id"
	KindSelfLoop            Kind = "self-loop"
	KindDifficultyInversion Kind = "difficulty-inversion"
	KindInvalidObjective    Kind = "invalid-objective"
)

// Finding describes one irregularity in the input and the objectives involved.
type Finding struct {
	Kind       Kind     `json:"kind" yaml:"kind"`
	Objectives []string `json:"objectives" yaml:"objectives"`
	Detail     string   `json:"detail" yaml:"detail"`
}

// New builds a finding with a formatted detail message.
func New(kind Kind, objectives []string, format string, args ...any) Finding {
	ids := make([]string, len(objectives))
	copy(ids, objectives)
	return Finding{Kind: kind, Objectives: ids, Detail: fmt.Sprintf(format, args...)}
}

func (f Finding) String() string {
	if len(f.Objectives) == 0 {
		return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
	}
	return fmt.Sprintf("%s [%s]: %s", f.Kind, strings.Join(f.Objectives, ", "), f.Detail)
}

// List accumulates findings across stages.
type List []Finding

// Add appends a finding.
func (l *List) Add(f Finding) {
	*l = append(*l, f)
}

// Addf appends a finding built from a format string.
func (l *List) Addf(kind Kind, objectives []string, format string, args ...any) {
	l.Add(New(kind, objectives, format, args...))
}

// OfKind returns the findings with the given kind, in report order.
func (l List) OfKind(kind Kind) List {
	var out List
	for _, f := range l {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Counts tallies findings per kind.
func (l List) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(l))
	for _, f := range l {
		counts[f.Kind]++
	}
	return counts
}

// Kinds returns the distinct kinds present, sorted.
func (l List) Kinds() []Kind {
	counts := l.Counts()
	kinds := make([]Kind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
