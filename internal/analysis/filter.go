package analysis

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/cel-go/cel"
	"github.com/haijima/clusters/internal/connectivity"
)

// Filter selects components with a CEL expression over the variables
// size, edges, density and nodes, e.g. `size > 2 && density >= 0.5`.
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter compiles expr. The empty expression matches every component.
func NewFilter(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &Filter{}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("size", cel.IntType),
		cel.Variable("edges", cel.IntType),
		cel.Variable("density", cel.DoubleType),
		cel.Variable("nodes", cel.ListType(cel.IntType)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create filter environment")
	}
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, errors.Wrapf(iss.Err(), "compile filter %q", expr)
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.Newf("filter %q must be a boolean expression, got %s", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrapf(err, "build filter %q", expr)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.expr
}

// Match reports whether c satisfies the filter.
func (f *Filter) Match(c connectivity.Component) (bool, error) {
	if f == nil || f.prg == nil {
		return true, nil
	}
	out, _, err := f.prg.Eval(map[string]any{
		"size":    c.Size,
		"edges":   c.Edges,
		"density": c.Density,
		"nodes":   c.Nodes,
	})
	if err != nil {
		return false, errors.Wrapf(err, "evaluate filter %q", f.expr)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, errors.Newf("filter %q returned %v", f.expr, out.Value())
	}
	return b, nil
}

// Apply returns the components matching the filter along with their group
// numbers, in group order.
func (f *Filter) Apply(components []connectivity.Component) ([]connectivity.Component, []int, error) {
	matched := make([]connectivity.Component, 0, len(components))
	groups := make([]int, 0, len(components))
	for i, c := range components {
		ok, err := f.Match(c)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			matched = append(matched, c)
			groups = append(groups, i+1)
		}
	}
	return matched, groups, nil
}
