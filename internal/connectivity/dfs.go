package connectivity

import "github.com/haijima/clusters/internal/graph"

type depthFirst struct{}

func (depthFirst) Name() string { return DFS }

func (depthFirst) Partition(n int, edges []graph.Edge) *Partition {
	return label(graph.Build(n, edges), depthFirstVisit)
}

// frame is a vertex on the explicit stack and the index of the next
// neighbor to try.
type frame struct {
	v    int
	next int
}

// depthFirstVisit labels everything reachable from start with group and
// returns the members in preorder, the same order a recursive walk yields.
// The stack lives on the heap so path graphs of MaxVertices are fine.
func depthFirstVisit(adj graph.Adjacency, start int, groups []int, group int) []int {
	groups[start] = group
	order := []int{start}
	stack := []frame{{v: start}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := adj.Neighbors(top.v)
		if top.next == len(neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}
		w := neighbors[top.next]
		top.next++
		if groups[w] == 0 {
			groups[w] = group
			order = append(order, w)
			stack = append(stack, frame{v: w})
		}
	}
	return order
}
