package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrVertexNotFound is returned when an edge or lookup references a
	// vertex that was never registered.
	ErrVertexNotFound = errors.New("vertex not found")

	// ErrDuplicateEdge is returned when a vertex already has an incoming
	// edge. Every vertex is produced by at most one operation.
	ErrDuplicateEdge = errors.New("vertex already has an incoming edge")

	// ErrSelfEdge is returned when an edge lists its own output as an input.
	ErrSelfEdge = errors.New("self-referential edge")
)
