package depgraph

import "errors"

var (
	// ErrCycleDetected indicates references that form a cycle.
	ErrCycleDetected = errors.New("depgraph: cycle detected")

	// ErrMissingReference indicates a reference to a name that is not a node.
	ErrMissingReference = errors.New("depgraph: reference to unknown node")

	// ErrSelfReference indicates a node that references itself.
	ErrSelfReference = errors.New("depgraph: node references itself")

	// ErrDuplicateNode indicates the same name listed twice.
	ErrDuplicateNode = errors.New("depgraph: duplicate node")

	// ErrUnknownNode indicates a query or reference list for a name that is not a node.
	ErrUnknownNode = errors.New("depgraph: unknown node")
)
