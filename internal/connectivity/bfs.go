package connectivity

import "github.com/haijima/clusters/internal/graph"

type breadthFirst struct{}

func (breadthFirst) Name() string { return BFS }

func (breadthFirst) Partition(n int, edges []graph.Edge) *Partition {
	return label(graph.Build(n, edges), breadthFirstVisit)
}

// breadthFirstVisit labels everything reachable from start with group and
// returns the members in dequeue order.
func breadthFirstVisit(adj graph.Adjacency, start int, groups []int, group int) []int {
	groups[start] = group
	queue := []int{start}
	for head := 0; head < len(queue); head++ {
		for _, w := range adj.Neighbors(queue[head]) {
			if groups[w] == 0 {
				groups[w] = group
				queue = append(queue, w)
			}
		}
	}
	return queue
}
