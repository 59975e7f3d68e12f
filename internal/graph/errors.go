package graph

import "github.com/cockroachdb/errors"

// ErrInvalidInput marks every error caused by the caller's request.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrInvalidVertexCount = errors.Mark(errors.New("invalid n: must be between 1 and 100,000"), ErrInvalidInput)
	ErrInvalidEdgeList    = errors.Mark(errors.New("edges must be an array of [u, v] pairs"), ErrInvalidInput)
	ErrTooManyEdges       = errors.Mark(errors.New("too many edges: maximum 200,000"), ErrInvalidInput)
)

// IsInvalidInput reports whether err was caused by the caller's input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
