// Package symbolic implements the differentiable expression factory.
//
// The Factory is the single construction point for every expression node.
// Each operation method allocates one node bound to its children and registers
// it in the execution graph. Nodes evaluate forward through the kernel
// provider and differentiate symbolically: Diff builds an entirely new
// expression for the partial derivative, re-invoking the factory for every
// node along the way.
//
// Architecture:
//   - Leaves: Constant, Variable, Zero, One
//   - Composites: Unary (tagged by Op), Binary (pow, add, sub, mul, div), PolyTerm
//   - Groups: ConstantVector, VariableVector, FunctionVector
//
// Usage:
//
//	f, err := symbolic.New[field.Real](graph.New(), field.NewRealKernels())
//	x := f.Var("x", 3.0)
//	y := f.Sigmoid(x)
//	dy, err := y.Diff(x)
//	fmt.Println(dy.Value()) // σ'(3)
//
// Nothing is cached: evaluating or differentiating a node twice re-executes
// the whole subtree.
package symbolic

import (
	"log/slog"

	"github.com/born-ml/symdiff/internal/field"
	"github.com/born-ml/symdiff/internal/graph"
	"github.com/born-ml/symdiff/internal/tensor"
)

// Factory builds expression nodes over field X.
//
// A Factory performs no locking. Build formulas against one graph from a
// single goroutine or coordinate access externally.
type Factory[X field.Value[X]] struct {
	kernels field.Kernels[X]
	graph   graph.Recorder
	logger  *slog.Logger
	strict  bool
}

type options struct {
	logger *slog.Logger
	strict bool
}

// Option configures a Factory.
type Option func(*options)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStrictChainRule makes every derivative rule multiply by the argument's
// derivative and differentiate the symbolic argument.
//
// By default the hyperbolic family (cosh, sinh, tanh, acosh, asinh, atanh)
// returns only the outer derivative, and softmax/hardtanh derive from their
// already-evaluated value wrapped as a constant. Strict mode corrects both.
func WithStrictChainRule() Option {
	return func(o *options) {
		o.strict = true
	}
}

// New creates a factory that registers nodes into g and evaluates through k.
// A nil g discards registrations. A nil k is a configuration error.
func New[X field.Value[X]](g graph.Recorder, k field.Kernels[X], opts ...Option) (*Factory[X], error) {
	if k == nil {
		return nil, ErrNilKernels
	}
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if g == nil {
		g = graph.Discard
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	o.logger.Debug("expression factory created",
		"dtype", k.DType().String(),
		"strict", o.strict)

	return &Factory[X]{
		kernels: k,
		graph:   g,
		logger:  o.logger,
		strict:  o.strict,
	}, nil
}

// Kernels returns the kernel provider.
func (f *Factory[X]) Kernels() field.Kernels[X] {
	return f.kernels
}

// Graph returns the execution graph recorder.
func (f *Factory[X]) Graph() graph.Recorder {
	return f.graph
}

// Strict reports whether strict chain-rule mode is enabled.
func (f *Factory[X]) Strict() bool {
	return f.strict
}

// register adds a vertex for a new node and, for composites, the incoming
// edge from its children.
func (f *Factory[X]) register(label, name string, shape tensor.Shape, inputs ...Node[X]) graph.VertexID {
	id := f.graph.AddVertex(graph.Vertex{
		Label: label,
		Name:  name,
		DType: f.kernels.DType(),
		Shape: shape,
	})
	if len(inputs) == 0 || id == graph.NoVertex {
		return id
	}

	ids := make([]graph.VertexID, len(inputs))
	for i, in := range inputs {
		ids[i] = in.Vertex()
	}
	if err := f.graph.AddEdge(graph.Edge{Op: label, Inputs: ids, Output: id}); err != nil {
		// Children built by another factory carry foreign vertex IDs. The
		// node is still valid, only its graph edge is missing.
		f.logger.Warn("edge registration failed", "op", label, "error", err)
	}
	return id
}

// Val returns a constant node wrapping x.
func (f *Factory[X]) Val(x X) *Constant[X] {
	c := &Constant[X]{value: x}
	c.f = f
	c.id = f.register("constant", "", x.Shape())
	return c
}

// Scalar returns a constant node for a numeric literal.
func (f *Factory[X]) Scalar(v float64) *Constant[X] {
	return f.Val(f.kernels.Scalar(v))
}

// Vals returns a constant vector with one constant per value.
func (f *Factory[X]) Vals(xs ...X) *ConstantVector[X] {
	elems := make([]*Constant[X], len(xs))
	for i, x := range xs {
		elems[i] = f.Val(x)
	}
	return &ConstantVector[X]{f: f, elems: elems}
}

// ZeroVector returns a constant vector of n zero constants.
func (f *Factory[X]) ZeroVector(n int) *ConstantVector[X] {
	elems := make([]*Constant[X], n)
	for i := range elems {
		elems[i] = f.Val(f.kernels.Zero())
	}
	return &ConstantVector[X]{f: f, elems: elems}
}

// VarOption configures a Variable.
type VarOption[X field.Value[X]] func(*Variable[X])

// WithPreEvaluator installs a hook invoked immediately before every value
// retrieval of the variable.
func WithPreEvaluator[X field.Value[X]](hook PreEvaluator[X]) VarOption[X] {
	return func(v *Variable[X]) {
		v.pre = hook
	}
}

// Var returns a named variable holding x.
func (f *Factory[X]) Var(name string, x X, opts ...VarOption[X]) *Variable[X] {
	v := &Variable[X]{name: name, value: x}
	for _, opt := range opts {
		opt(v)
	}
	v.f = f
	v.id = f.register("variable", name, x.Shape())
	return v
}

// Vars returns a variable vector named name0, name1, ... holding xs.
func (f *Factory[X]) Vars(name string, xs ...X) *VariableVector[X] {
	elems := make([]*Variable[X], len(xs))
	for i, x := range xs {
		elems[i] = f.Var(indexedName(name, i), x)
	}
	return &VariableVector[X]{f: f, elems: elems}
}

// ZeroVars returns n zero-initialized variables named name0, name1, ...
func (f *Factory[X]) ZeroVars(name string, n int) *VariableVector[X] {
	elems := make([]*Variable[X], n)
	for i := range elems {
		elems[i] = f.Var(indexedName(name, i), f.kernels.Zero())
	}
	return &VariableVector[X]{f: f, elems: elems}
}

// Function groups existing nodes into a vector function.
func (f *Factory[X]) Function(nodes ...Node[X]) *FunctionVector[X] {
	elems := make([]Node[X], len(nodes))
	copy(elems, nodes)
	return &FunctionVector[X]{f: f, elems: elems}
}

// Zero returns a new additive identity node.
func (f *Factory[X]) Zero() *Zero[X] {
	z := &Zero[X]{}
	z.f = f
	z.id = f.register("zero", "", f.kernels.Zero().Shape())
	return z
}

// One returns a new multiplicative identity node.
func (f *Factory[X]) One() *One[X] {
	o := &One[X]{}
	o.f = f
	o.id = f.register("one", "", f.kernels.One().Shape())
	return o
}

// Gradient returns the partial derivatives of n with respect to each of vars.
func (f *Factory[X]) Gradient(n Node[X], vars ...*Variable[X]) (*FunctionVector[X], error) {
	elems := make([]Node[X], len(vars))
	for i, v := range vars {
		d, err := n.Diff(v)
		if err != nil {
			return nil, err
		}
		elems[i] = d
	}
	return &FunctionVector[X]{f: f, elems: elems}, nil
}
