// Package connectivity partitions the vertices of an undirected graph into
// connected components. Three interchangeable strategies are provided:
// breadth-first search, depth-first search and union-find.
package connectivity

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/haijima/clusters/internal/graph"
)

// Component describes one connected component.
type Component struct {
	Nodes   []int   `json:"nodes"`
	Size    int     `json:"size"`
	Edges   int     `json:"edges"`
	Density float64 `json:"density"`
}

// Partition is the common output of every strategy.
type Partition struct {
	// Count is the number of components.
	Count int
	// Groups maps a vertex id to its 1-based group number. Index 0 is unused.
	Groups []int
	// Components are ordered by group number.
	Components []Component
	// Graph is nil for strategies that do not build an adjacency.
	Graph graph.Adjacency
}

func newPartition(n int, adj graph.Adjacency) *Partition {
	return &Partition{
		Groups:     make([]int, n+1),
		Components: make([]Component, 0),
		Graph:      adj,
	}
}

// Group returns the group of v, or 0 if v has none.
func (p *Partition) Group(v int) int {
	if v < 1 || v >= len(p.Groups) {
		return 0
	}
	return p.Groups[v]
}

// Sets returns the member set of each component, in group order.
func (p *Partition) Sets() []mapset.Set[int] {
	sets := make([]mapset.Set[int], 0, len(p.Components))
	for _, c := range p.Components {
		sets = append(sets, mapset.NewThreadUnsafeSet(c.Nodes...))
	}
	return sets
}

// SamePartition reports whether a and b split the vertices into the same
// components. Group numbers may differ.
func SamePartition(a, b *Partition) bool {
	if a.Count != b.Count || len(a.Components) != len(b.Components) || len(a.Groups) != len(b.Groups) {
		return false
	}
	bs := b.Sets()
	for i, s := range a.Sets() {
		if len(a.Components[i].Nodes) == 0 {
			return false
		}
		g := b.Group(a.Components[i].Nodes[0])
		if g < 1 || g > len(bs) || !s.Equal(bs[g-1]) {
			return false
		}
	}
	return true
}

// describe computes size, edge count and density of the component made of
// nodes. Every internal edge appears in the neighbor lists of both endpoints,
// so the degree sum is twice the edge count.
func describe(adj graph.Adjacency, nodes []int) Component {
	var degrees int
	for _, v := range nodes {
		degrees += adj.Degree(v)
	}
	c := Component{Nodes: nodes, Size: len(nodes), Edges: degrees / 2}
	c.Density = Density(c.Edges, c.Size)
	return c
}

// Density is edges / (size·(size−1)), or 0 for components of one vertex.
func Density(edges, size int) float64 {
	if size <= 1 {
		return 0
	}
	return float64(edges) / (float64(size) * float64(size-1))
}
