// Package graph implements the execution graph that expression nodes register
// themselves into at construction time.
//
// Every node contributes one vertex (a shape/type descriptor) and, when it has
// children, one incoming edge naming the operation and its input vertices.
// The expression factory only writes into the graph; read-back methods exist
// for tooling such as the CLI and tests.
//
// # Thread Safety
//
// Graph guards its state with a RWMutex, so read-back may run alongside
// construction. The factory itself performs no locking and assumes that
// formula construction against one graph is externally coordinated.
package graph

import (
	"fmt"
	"sync"

	"github.com/born-ml/symdiff/internal/tensor"
	"github.com/google/uuid"
)

// VertexID identifies a vertex within one graph.
type VertexID int

// NoVertex is returned by recorders that do not track vertices.
const NoVertex VertexID = -1

// Vertex describes the value a node produces.
type Vertex struct {
	ID    VertexID
	Label string // operation token, "constant" or "variable"
	Name  string // variable name, empty otherwise
	DType tensor.DataType
	Shape tensor.Shape // nil when unknown before evaluation
}

// Edge links the input vertices of an operation to the vertex it produces.
type Edge struct {
	Op     string
	Inputs []VertexID
	Output VertexID
}

// Recorder is the write-only view of an execution graph used by the factory.
type Recorder interface {
	AddVertex(v Vertex) VertexID
	AddEdge(e Edge) error
}

// Discard is a Recorder that drops everything.
var Discard Recorder = discard{}

type discard struct{}

func (discard) AddVertex(Vertex) VertexID { return NoVertex }
func (discard) AddEdge(Edge) error        { return nil }

// Graph is an in-memory execution graph.
type Graph struct {
	mu       sync.RWMutex
	id       uuid.UUID
	vertices []Vertex
	edges    []Edge
	incoming map[VertexID]int // output vertex -> index into edges
}

// New creates an empty graph with a fresh session ID.
func New() *Graph {
	return &Graph{
		id:       uuid.New(),
		vertices: make([]Vertex, 0, 64),
		incoming: make(map[VertexID]int),
	}
}

// ID returns the graph's session identifier.
func (g *Graph) ID() uuid.UUID {
	return g.id
}

// AddVertex registers v and returns its assigned ID. Any ID set on v is ignored.
func (g *Graph) AddVertex(v Vertex) VertexID {
	g.mu.Lock()
	defer g.mu.Unlock()

	v.ID = VertexID(len(g.vertices))
	v.Shape = v.Shape.Clone()
	g.vertices = append(g.vertices, v)
	verticesTotal.WithLabelValues(v.Label).Inc()
	return v.ID
}

// AddEdge registers the incoming edge of e.Output.
func (g *Graph) AddEdge(e Edge) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.has(e.Output) {
		edgeErrors.WithLabelValues("vertex_not_found").Inc()
		return fmt.Errorf("edge %s output %d: %w", e.Op, e.Output, ErrVertexNotFound)
	}
	if _, ok := g.incoming[e.Output]; ok {
		edgeErrors.WithLabelValues("duplicate_edge").Inc()
		return fmt.Errorf("edge %s output %d: %w", e.Op, e.Output, ErrDuplicateEdge)
	}
	for _, in := range e.Inputs {
		if in == e.Output {
			edgeErrors.WithLabelValues("self_edge").Inc()
			return fmt.Errorf("edge %s on vertex %d: %w", e.Op, in, ErrSelfEdge)
		}
		if !g.has(in) {
			edgeErrors.WithLabelValues("vertex_not_found").Inc()
			return fmt.Errorf("edge %s input %d: %w", e.Op, in, ErrVertexNotFound)
		}
	}

	inputs := make([]VertexID, len(e.Inputs))
	copy(inputs, e.Inputs)
	e.Inputs = inputs

	g.incoming[e.Output] = len(g.edges)
	g.edges = append(g.edges, e)
	edgesTotal.WithLabelValues(e.Op).Inc()
	return nil
}

func (g *Graph) has(id VertexID) bool {
	return id >= 0 && int(id) < len(g.vertices)
}

// Vertex returns the vertex with the given ID.
func (g *Graph) Vertex(id VertexID) (Vertex, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.has(id) {
		return Vertex{}, fmt.Errorf("vertex %d: %w", id, ErrVertexNotFound)
	}
	return g.vertices[id], nil
}

// Incoming returns the edge that produced id, if any.
func (g *Graph) Incoming(id VertexID) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	idx, ok := g.incoming[id]
	if !ok {
		return Edge{}, false
	}
	return g.edges[idx], true
}

// Vertices returns a snapshot of all vertices in registration order.
// Registration order is a topological order: inputs always precede outputs.
func (g *Graph) Vertices() []Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Edges returns a snapshot of all edges in registration order.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NumVertices returns the number of registered vertices.
func (g *Graph) NumVertices() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

// NumEdges returns the number of registered edges.
func (g *Graph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// OpCounts returns the number of edges per operation token.
func (g *Graph) OpCounts() map[string]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	counts := make(map[string]int)
	for _, e := range g.edges {
		counts[e.Op]++
	}
	return counts
}
