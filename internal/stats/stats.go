// Package stats derives per-vertex, per-link and whole-graph statistics
// from a connectivity.Partition.
package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/haijima/clusters/internal/connectivity"
	"github.com/haijima/clusters/internal/graph"
)

var ErrNoComponents = errors.New("no components")

type Node struct {
	ID     int `json:"id"`
	Group  int `json:"group"`
	Degree int `json:"degree"`
}

type Link struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Elapsed is a strategy run time, encoded as whole milliseconds ("12ms").
type Elapsed time.Duration

func (e Elapsed) String() string {
	return fmt.Sprintf("%dms", time.Duration(e).Milliseconds())
}

func (e Elapsed) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

type Statistics struct {
	IsolatedNodes     int     `json:"isolatedNodes"`
	LargestComponent  int     `json:"largestComponent"`
	SmallestComponent int     `json:"smallestComponent"`
	AvgComponentSize  float64 `json:"avgComponentSize"`
	TotalEdges        int     `json:"totalEdges"`
	Density           float64 `json:"density"`
	ExecutionTime     Elapsed `json:"executionTime"`
	Algorithm         string  `json:"algorithm"`
}

type Report struct {
	Nodes      []Node
	Links      []Link
	Statistics Statistics
}

// Aggregate summarizes p, the partition of vertices 1..n computed by
// algorithm from edges in elapsed time.
func Aggregate(n int, edges []graph.Edge, p *connectivity.Partition, algorithm string, elapsed time.Duration) (*Report, error) {
	if p == nil || p.Count == 0 || len(p.Components) == 0 {
		return nil, errors.WithStack(ErrNoComponents)
	}

	nodes := make([]Node, 0, n)
	for v := 1; v <= n; v++ {
		group := p.Group(v)
		if group == 0 {
			group = p.Count + 1
		}
		nodes = append(nodes, Node{ID: v, Group: group, Degree: p.Graph.Degree(v)})
	}

	valid := graph.ValidEdges(n, edges)
	links := make([]Link, 0, len(valid))
	for _, e := range valid {
		u, v := e.Endpoints()
		links = append(links, Link{Source: u, Target: v})
	}

	s := Statistics{
		SmallestComponent: math.MaxInt,
		TotalEdges:        len(links),
		Density:           GraphDensity(len(links), n),
		ExecutionTime:     Elapsed(elapsed),
		Algorithm:         algorithm,
	}
	total := 0
	for _, c := range p.Components {
		if c.Size == 1 {
			s.IsolatedNodes++
		}
		s.LargestComponent = max(s.LargestComponent, c.Size)
		s.SmallestComponent = min(s.SmallestComponent, c.Size)
		total += c.Size
	}
	s.AvgComponentSize = Round2(float64(total) / float64(p.Count))

	return &Report{Nodes: nodes, Links: links, Statistics: s}, nil
}

// GraphDensity is edges / (n·(n−1)/2), or 0 when n <= 1.
func GraphDensity(edges, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(edges) / (float64(n) * float64(n-1) / 2)
}

func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
