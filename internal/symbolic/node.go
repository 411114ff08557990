package symbolic

import (
	"github.com/born-ml/symdiff/internal/field"
	"github.com/born-ml/symdiff/internal/graph"
)

// Node is a unit of the differentiable computation.
//
// Nodes are immutable once built: children are fixed at construction and
// Diff only allocates new nodes. A child may be shared by several parents.
type Node[X field.Value[X]] interface {
	// Value evaluates the node through the kernel provider.
	Value() X

	// Real evaluates the node with float64 analytic forms. It fails with
	// ErrUnsupportedOperation for operations without a real form, and with
	// field.ErrNotScalar when a leaf holds more than one element.
	Real() (float64, error)

	// Diff returns a new expression for the partial derivative with respect to v.
	Diff(v *Variable[X]) (Node[X], error)

	// String renders the node as nested "op(args)" text.
	String() string

	// Formula renders the node for a formula whose variable scope is vars.
	Formula(vars []*Variable[X]) string

	// OpName returns the execution-graph dispatch token.
	OpName() string

	// Vertex returns the execution-graph vertex registered for the node.
	Vertex() graph.VertexID

	// Children returns the node's direct arguments.
	Children() []Node[X]
}

// node carries the state shared by every variant.
type node[X field.Value[X]] struct {
	f  *Factory[X]
	id graph.VertexID
}

// Vertex returns the registered vertex ID.
func (n *node[X]) Vertex() graph.VertexID {
	return n.id
}

// Factory returns the factory that built the node.
func (n *node[X]) Factory() *Factory[X] {
	return n.f
}
