package connectivity

import (
	"github.com/cockroachdb/errors"
	"github.com/haijima/clusters/internal/graph"
)

const (
	BFS       = "bfs"
	DFS       = "dfs"
	UnionFind = "union-find"
)

var ErrUnknownAlgorithm = errors.Mark(errors.New("unknown algorithm: must be one of bfs, dfs, union-find"), graph.ErrInvalidInput)

// Strategy partitions vertices 1..n using the edges within range.
// Edges outside [1, n] are ignored.
type Strategy interface {
	Name() string
	Partition(n int, edges []graph.Edge) *Partition
}

var strategies = []Strategy{breadthFirst{}, depthFirst{}, unionFind{}}

// Lookup returns the strategy registered under name. The empty name selects BFS.
func Lookup(name string) (Strategy, error) {
	if name == "" {
		name = BFS
	}
	for _, s := range strategies {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
}

// All returns every strategy in a fixed order: bfs, dfs, union-find.
func All() []Strategy {
	return append([]Strategy(nil), strategies...)
}

// Names returns the names of all strategies.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		names = append(names, s.Name())
	}
	return names
}

type visitFunc func(adj graph.Adjacency, start int, groups []int, group int) []int

// label seeds a new component at every unlabeled vertex in ascending id
// order and lets visit collect its members.
func label(adj graph.Adjacency, visit visitFunc) *Partition {
	n := adj.Order()
	p := newPartition(n, adj)
	for v := 1; v <= n; v++ {
		if p.Groups[v] != 0 {
			continue
		}
		p.Count++
		nodes := visit(adj, v, p.Groups, p.Count)
		p.Components = append(p.Components, describe(adj, nodes))
	}
	return p
}
