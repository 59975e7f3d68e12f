package connectivity

import "github.com/haijima/clusters/internal/graph"

type element struct {
	parent int
	rank   int
	size   int
}

// DisjointSet is a union-find forest over 1..n stored as an arena indexed
// by vertex id.
type DisjointSet struct {
	elems []element
	count int
}

func NewDisjointSet(n int) *DisjointSet {
	elems := make([]element, n+1)
	for i := range elems {
		elems[i] = element{parent: i, size: 1}
	}
	return &DisjointSet{elems: elems, count: n}
}

// Find returns the root of x. It compresses the path from x to the root,
// so even a lookup mutates the forest.
func (d *DisjointSet) Find(x int) int {
	if p := d.elems[x].parent; p != x {
		d.elems[x].parent = d.Find(p)
	}
	return d.elems[x].parent
}

// Union merges the sets of x and y by rank and reports whether they were
// separate. On equal ranks y's root goes under x's root.
func (d *DisjointSet) Union(x, y int) bool {
	rx, ry := d.Find(x), d.Find(y)
	if rx == ry {
		return false
	}
	switch {
	case d.elems[rx].rank < d.elems[ry].rank:
		rx, ry = ry, rx
	case d.elems[rx].rank == d.elems[ry].rank:
		d.elems[rx].rank++
	}
	d.elems[ry].parent = rx
	d.elems[rx].size += d.elems[ry].size
	d.count--
	return true
}

// Size returns the number of elements in the set containing x.
func (d *DisjointSet) Size(x int) int {
	return d.elems[d.Find(x)].size
}

// Count returns the number of disjoint sets.
func (d *DisjointSet) Count() int {
	return d.count
}

type unionFind struct{}

func (unionFind) Name() string { return UnionFind }

// Partition reports membership and count only. Edges and density of each
// component stay zero because no adjacency is built.
func (unionFind) Partition(n int, edges []graph.Edge) *Partition {
	ds := NewDisjointSet(n)
	for _, e := range edges {
		if e.Within(n) {
			ds.Union(e.Endpoints())
		}
	}

	p := newPartition(n, nil)
	p.Count = ds.Count()
	rootGroup := make([]int, n+1)
	for v := 1; v <= n; v++ {
		root := ds.Find(v)
		if rootGroup[root] == 0 {
			p.Components = append(p.Components, Component{Nodes: make([]int, 0, ds.Size(root))})
			rootGroup[root] = len(p.Components)
		}
		g := rootGroup[root]
		p.Groups[v] = g
		c := &p.Components[g-1]
		c.Nodes = append(c.Nodes, v)
		c.Size++
	}
	return p
}
