// Package analysis is the single entry point of the engine. It validates a
// request, runs one or all connectivity strategies and aggregates the
// statistics of the result.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/haijima/clusters/internal/connectivity"
	"github.com/haijima/clusters/internal/graph"
	"github.com/haijima/clusters/internal/stats"
)

type Request struct {
	graph.Input
	Algorithm string `json:"algorithm,omitempty"`
}

type Result struct {
	Components    int                      `json:"components"`
	Nodes         []stats.Node             `json:"nodes"`
	Links         []stats.Link             `json:"links"`
	ComponentInfo []connectivity.Component `json:"componentInfo"`
	Statistics    stats.Statistics         `json:"statistics"`
}

// Analyze partitions the request's graph with the requested strategy (BFS by
// default). Validation errors are reported before any strategy runs and are
// marked with graph.ErrInvalidInput.
func Analyze(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	strategy, err := connectivity.Lookup(req.Algorithm)
	if err != nil {
		return nil, err
	}

	n := req.Order()
	p, elapsed := run(ctx, strategy, n, req.Edges)

	report, err := stats.Aggregate(n, req.Edges, p, strategy.Name(), elapsed)
	if err != nil {
		return nil, errors.Wrapf(err, "aggregate %s result", strategy.Name())
	}
	return &Result{
		Components:    p.Count,
		Nodes:         report.Nodes,
		Links:         report.Links,
		ComponentInfo: p.Components,
		Statistics:    report.Statistics,
	}, nil
}

func run(ctx context.Context, s connectivity.Strategy, n int, edges []graph.Edge) (*connectivity.Partition, time.Duration) {
	start := time.Now()
	p := s.Partition(n, edges)
	elapsed := time.Since(start)
	slog.DebugContext(ctx, "partitioned", "algorithm", s.Name(), "n", n, "edges", len(edges), "components", p.Count, "elapsed", elapsed)
	return p, elapsed
}
