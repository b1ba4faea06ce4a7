package sequence

import (
	"sort"

	"github.com/kingrea/lattice-paths/internal/finding"
	"github.com/kingrea/lattice-paths/internal/graph"
)

// Topological orders every objective in g so that each comes after its present
// prerequisites, choosing the easiest ready objective at every step. When a
// cycle stops the walk, the unresolved objectives are appended in id order and
// every strongly connected component among them is reported once.
func Topological(g *graph.Graph) ([]int, finding.List) {
	n := g.Len()
	order := make([]int, 0, n)
	remaining := make([]int, n)
	for i := 0; i < n; i++ {
		remaining[i] = g.InDegree(i)
	}
	queue := newReadyQueue(g, readyAtStart(g))
	emitted := make([]bool, n)
	for queue.Len() > 0 {
		i := queue.pop()
		emitted[i] = true
		order = append(order, i)
		for _, dep := range g.Dependents(i) {
			remaining[dep]--
			if remaining[dep] == 0 {
				queue.push(dep)
			}
		}
	}
	if len(order) == n {
		return order, nil
	}

	var stuck []int
	for i := 0; i < n; i++ {
		if !emitted[i] {
			stuck = append(stuck, i)
		}
	}
	sort.Slice(stuck, func(a, b int) bool {
		return g.Objective(stuck[a]).ID < g.Objective(stuck[b]).ID
	})
	order = append(order, stuck...)

	var findings finding.List
	for _, component := range cycles(g, stuck) {
		ids := g.IDs(component)
		sort.Strings(ids)
		findings.Addf(finding.KindCycle, ids,
			"prerequisite cycle among %d objectives; appended in id order", len(ids))
	}
	return order, findings
}

func readyAtStart(g *graph.Graph) []int {
	var ready []int
	for i := 0; i < g.Len(); i++ {
		if g.InDegree(i) == 0 {
			ready = append(ready, i)
		}
	}
	return ready
}

// cycles returns the strongly connected components with at least two members
// among the given nodes, using Tarjan's algorithm restricted to edges between
// them. Components are returned ordered by their smallest id.
func cycles(g *graph.Graph, nodes []int) [][]int {
	in := make(map[int]bool, len(nodes))
	for _, i := range nodes {
		in[i] = true
	}
	t := &tarjan{
		g:       g,
		in:      in,
		index:   make(map[int]int, len(nodes)),
		lowlink: make(map[int]int, len(nodes)),
		onStack: make(map[int]bool, len(nodes)),
	}
	for _, i := range nodes {
		if _, seen := t.index[i]; !seen {
			t.strongConnect(i)
		}
	}
	sort.Slice(t.components, func(a, b int) bool {
		return minID(g, t.components[a]) < minID(g, t.components[b])
	})
	return t.components
}

type tarjan struct {
	g          *graph.Graph
	in         map[int]bool
	counter    int
	index      map[int]int
	lowlink    map[int]int
	onStack    map[int]bool
	stack      []int
	components [][]int
}

func (t *tarjan) strongConnect(v int) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.Dependents(v) {
		if !t.in[w] {
			continue
		}
		if _, seen := t.index[w]; !seen {
			t.strongConnect(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		} else if t.onStack[w] {
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var component []int
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		component = append(component, w)
		if w == v {
			break
		}
	}
	if len(component) > 1 {
		t.components = append(t.components, component)
	}
}

func minID(g *graph.Graph, component []int) string {
	best := g.Objective(component[0]).ID
	for _, i := range component[1:] {
		if id := g.Objective(i).ID; id < best {
			best = id
		}
	}
	return best
}
