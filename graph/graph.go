// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the execution graph that expression nodes register
// into when they are built.
//
// Every node contributes one vertex and, when it has children, one incoming
// edge naming its operation. Pass Discard to a factory to skip recording.
//
// Example:
//
//	g := graph.New()
//	f, _ := symbolic.New[field.Real](g, field.NewRealKernels())
//	f.Sin(f.Var("x", 1))
//	fmt.Println(g.NumVertices(), g.NumEdges()) // 2 1
package graph

import (
	"github.com/born-ml/symdiff/internal/graph"
)

// Graph is an in-memory execution graph safe for concurrent read-back.
type Graph = graph.Graph

// Recorder is the write-only view of a graph used by the factory.
type Recorder = graph.Recorder

// VertexID identifies a vertex within one graph.
type VertexID = graph.VertexID

// Vertex describes the value a node produces.
type Vertex = graph.Vertex

// Edge links the input vertices of an operation to its output vertex.
type Edge = graph.Edge

// NoVertex is the ID reported by recorders that do not track vertices.
const NoVertex = graph.NoVertex

// Discard is a Recorder that drops everything.
var Discard = graph.Discard

// Common errors.
var (
	ErrVertexNotFound = graph.ErrVertexNotFound
	ErrDuplicateEdge  = graph.ErrDuplicateEdge
	ErrSelfEdge       = graph.ErrSelfEdge
)

// New creates an empty graph with a fresh ID.
func New() *Graph {
	return graph.New()
}
