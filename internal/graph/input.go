package graph

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const (
	MaxVertices = 100_000
	MaxEdges    = 200_000
)

// Edge is an undirected pair of vertex ids as it arrives from the caller.
// Its shape is checked by Input.Validate; its range is not.
type Edge []int

func (e Edge) Endpoints() (u, v int) {
	return e[0], e[1]
}

// Within reports whether both endpoints lie in [1, n].
func (e Edge) Within(n int) bool {
	if len(e) != 2 {
		return false
	}
	u, v := e.Endpoints()
	return u >= 1 && u <= n && v >= 1 && v <= n
}

// ValidEdges returns the edges whose endpoints both lie in [1, n], in input order.
func ValidEdges(n int, edges []Edge) []Edge {
	valid := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.Within(n) {
			valid = append(valid, e)
		}
	}
	return valid
}

type Input struct {
	N     *int   `json:"n" validate:"required,min=1,max=100000"`
	Edges []Edge `json:"edges" validate:"required,max=200000,dive,len=2"`
}

// Order returns n, or 0 when it is absent.
func (in *Input) Order() int {
	if in.N == nil {
		return 0
	}
	return *in.N
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the structure of the input only. Edges pointing outside
// [1, n] pass here and are dropped when the graph is built.
func (in *Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "validate input")
	}
	fe := verrs[0]
	switch {
	case fe.Field() == "n":
		return errors.Wrapf(ErrInvalidVertexCount, "n=%v", fe.Value())
	case fe.Field() == "edges" && fe.Tag() == "max":
		return errors.Wrapf(ErrTooManyEdges, "got %d edges", len(in.Edges))
	case fe.Field() == "edges":
		return ErrInvalidEdgeList
	default:
		return errors.Wrapf(ErrInvalidEdgeList, "%s: %v", fe.Field(), fe.Value())
	}
}
