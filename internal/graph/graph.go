// Package graph holds the request-scoped input of an analysis: the validated
// vertex count and edge list, and the adjacency built from them.
package graph

// Adjacency maps a vertex id to its neighbors. Index 0 is unused so that
// vertex ids index the slice directly.
type Adjacency [][]int

// Build returns an adjacency with an empty neighbor list for each of 1..n,
// then appends both directions of every edge within range. Neighbor order
// follows edge order. Self-loops and duplicate edges are kept.
func Build(n int, edges []Edge) Adjacency {
	adj := make(Adjacency, n+1)
	for v := 1; v <= n; v++ {
		adj[v] = make([]int, 0)
	}
	for _, e := range edges {
		if !e.Within(n) {
			continue
		}
		u, v := e.Endpoints()
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}
	return adj
}

// Order returns the number of vertices.
func (a Adjacency) Order() int {
	if len(a) == 0 {
		return 0
	}
	return len(a) - 1
}

func (a Adjacency) Neighbors(v int) []int {
	if v < 1 || v >= len(a) {
		return nil
	}
	return a[v]
}

// Degree is the length of v's neighbor list; 0 on a nil adjacency.
func (a Adjacency) Degree(v int) int {
	return len(a.Neighbors(v))
}
