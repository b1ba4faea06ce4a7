package sequence

import (
	"container/heap"

	"github.com/kingrea/lattice-paths/internal/graph"
)

// readyQueue holds objectives whose prerequisites have all been emitted and
// pops them easiest first: lowest difficulty tier, then lowest Bloom level,
// then smallest id.
type readyQueue struct {
	g     *graph.Graph
	nodes []int
}

func newReadyQueue(g *graph.Graph, initial []int) *readyQueue {
	q := &readyQueue{g: g, nodes: make([]int, len(initial))}
	copy(q.nodes, initial)
	heap.Init(q)
	return q
}

func (q *readyQueue) Len() int { return len(q.nodes) }

func (q *readyQueue) Less(i, j int) bool {
	return easier(q.g, q.nodes[i], q.nodes[j])
}

func (q *readyQueue) Swap(i, j int) { q.nodes[i], q.nodes[j] = q.nodes[j], q.nodes[i] }

func (q *readyQueue) Push(x any) { q.nodes = append(q.nodes, x.(int)) }

func (q *readyQueue) Pop() any {
	last := len(q.nodes) - 1
	node := q.nodes[last]
	q.nodes = q.nodes[:last]
	return node
}

func (q *readyQueue) push(i int) { heap.Push(q, i) }

func (q *readyQueue) pop() int { return heap.Pop(q).(int) }

func easier(g *graph.Graph, a, b int) bool {
	oa, ob := g.Objective(a), g.Objective(b)
	if oa.Difficulty != ob.Difficulty {
		return oa.Difficulty < ob.Difficulty
	}
	if oa.Bloom != ob.Bloom {
		return oa.Bloom < ob.Bloom
	}
	return oa.ID < ob.ID
}
