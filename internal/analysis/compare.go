package analysis

import (
	"context"
	"slices"
	"time"

	"github.com/haijima/clusters/internal/connectivity"
	"github.com/haijima/clusters/internal/graph"
	"golang.org/x/exp/maps"
)

// Timing is the outcome of one strategy in a comparison.
type Timing struct {
	Components int `json:"components"`
	// Time is the wall-clock run time in whole milliseconds.
	Time      int64                   `json:"time"`
	Elapsed   time.Duration           `json:"-"`
	Partition *connectivity.Partition `json:"-"`
}

// Comparison maps a strategy name to its timing.
type Comparison map[string]*Timing

// Compare runs every strategy over the same input.
func Compare(ctx context.Context, in *graph.Input) (Comparison, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	n := in.Order()
	c := make(Comparison, len(connectivity.Names()))
	for _, s := range connectivity.All() {
		p, elapsed := run(ctx, s, n, in.Edges)
		c[s.Name()] = &Timing{Components: p.Count, Time: elapsed.Milliseconds(), Elapsed: elapsed, Partition: p}
	}
	return c, nil
}

// Names returns the strategy names in sorted order.
func (c Comparison) Names() []string {
	names := maps.Keys(c)
	slices.Sort(names)
	return names
}

// Agree reports whether every strategy found the same partition.
func (c Comparison) Agree() bool {
	var first *connectivity.Partition
	for _, name := range c.Names() {
		p := c[name].Partition
		if p == nil {
			return false
		}
		if first == nil {
			first = p
		} else if !connectivity.SamePartition(first, p) {
			return false
		}
	}
	return true
}
