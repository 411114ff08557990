// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package symbolic builds differentiable expressions over an algebraic field.
//
// A Factory creates leaves (constants, variables) and composite nodes for
// elementary and transcendental operations. Every node evaluates forward
// through the factory's kernels, and Diff returns a new expression for the
// partial derivative with respect to a variable.
//
// Example:
//
//	import (
//	    "github.com/born-ml/symdiff/field"
//	    "github.com/born-ml/symdiff/graph"
//	    "github.com/born-ml/symdiff/symbolic"
//	)
//
//	func main() {
//	    f, _ := symbolic.New[field.Real](graph.New(), field.NewRealKernels())
//
//	    x := f.Var("x", 2)
//	    y := f.Mul(x, f.Sin(x))
//
//	    dy, _ := y.Diff(x)  // ((1 * sin(x)) + (x * (cos(x) * 1)))
//	    fmt.Println(dy.Value())
//
//	    x.Set(3)            // derivative trees track variable updates
//	    fmt.Println(dy.Value())
//	}
//
// # Chain Rule Modes
//
// By default the factory reproduces the legacy derivative table, in which the
// hyperbolic family ignores the derivative of its argument and softmax and
// hardtanh derive from their evaluated value. WithStrictChainRule applies the
// chain rule to every operation.
package symbolic

import (
	"log/slog"

	"github.com/born-ml/symdiff/field"
	"github.com/born-ml/symdiff/graph"
	"github.com/born-ml/symdiff/internal/symbolic"
)

// Node is a unit of the differentiable computation.
type Node[X field.Value[X]] = symbolic.Node[X]

// Factory builds nodes against one graph and one kernel provider.
type Factory[X field.Value[X]] = symbolic.Factory[X]

// Leaves.
type (
	Constant[X field.Value[X]]     = symbolic.Constant[X]
	Variable[X field.Value[X]]     = symbolic.Variable[X]
	Zero[X field.Value[X]]         = symbolic.Zero[X]
	One[X field.Value[X]]          = symbolic.One[X]
	PreEvaluator[X field.Value[X]] = symbolic.PreEvaluator[X]
	VarOption[X field.Value[X]]    = symbolic.VarOption[X]
)

// Composites.
type (
	Unary[X field.Value[X]]    = symbolic.Unary[X]
	Binary[X field.Value[X]]   = symbolic.Binary[X]
	PolyTerm[X field.Value[X]] = symbolic.PolyTerm[X]
)

// Vectors.
type (
	ConstantVector[X field.Value[X]] = symbolic.ConstantVector[X]
	VariableVector[X field.Value[X]] = symbolic.VariableVector[X]
	FunctionVector[X field.Value[X]] = symbolic.FunctionVector[X]
)

// Option configures a Factory.
type Option = symbolic.Option

// Common errors.
var (
	ErrNilKernels           = symbolic.ErrNilKernels
	ErrUnsupportedOperation = symbolic.ErrUnsupportedOperation
)

// OperationError reports an unsupported request on a specific operation.
type OperationError = symbolic.OperationError

// New creates a factory recording into g and evaluating with k.
// A nil g discards graph registration.
func New[X field.Value[X]](g graph.Recorder, k field.Kernels[X], opts ...Option) (*Factory[X], error) {
	return symbolic.New[X](g, k, opts...)
}

// WithLogger sets the factory's logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return symbolic.WithLogger(l)
}

// WithStrictChainRule makes every derivative rule multiply by the
// derivative of its argument.
func WithStrictChainRule() Option {
	return symbolic.WithStrictChainRule()
}

// WithPreEvaluator installs a hook run before each value retrieval of a variable.
func WithPreEvaluator[X field.Value[X]](hook PreEvaluator[X]) VarOption[X] {
	return symbolic.WithPreEvaluator[X](hook)
}

// Op identifies the operation of a composite node.
type Op = symbolic.Op

// OpInfo describes one catalogue entry.
type OpInfo = symbolic.OpInfo

// Operations.
const (
	OpCos                 = symbolic.OpCos
	OpSin                 = symbolic.OpSin
	OpTan                 = symbolic.OpTan
	OpAcos                = symbolic.OpAcos
	OpAsin                = symbolic.OpAsin
	OpAtan                = symbolic.OpAtan
	OpCosh                = symbolic.OpCosh
	OpSinh                = symbolic.OpSinh
	OpTanh                = symbolic.OpTanh
	OpAcosh               = symbolic.OpAcosh
	OpAsinh               = symbolic.OpAsinh
	OpAtanh               = symbolic.OpAtanh
	OpExp                 = symbolic.OpExp
	OpLog                 = symbolic.OpLog
	OpPow                 = symbolic.OpPow
	OpSqrt                = symbolic.OpSqrt
	OpSquare              = symbolic.OpSquare
	OpFloor               = symbolic.OpFloor
	OpRelu                = symbolic.OpRelu
	OpStep                = symbolic.OpStep
	OpSoftmax             = symbolic.OpSoftmax
	OpHardTanh            = symbolic.OpHardTanh
	OpHardTanhDerivative  = symbolic.OpHardTanhDerivative
	OpSigmoid             = symbolic.OpSigmoid
	OpSigmoidDerivative   = symbolic.OpSigmoidDerivative
	OpSign                = symbolic.OpSign
	OpSoftsign            = symbolic.OpSoftsign
	OpSoftsignDerivative  = symbolic.OpSoftsignDerivative
	OpSoftplus            = symbolic.OpSoftplus
	OpElu                 = symbolic.OpElu
	OpEluDerivative       = symbolic.OpEluDerivative
	OpLeakyRelu           = symbolic.OpLeakyRelu
	OpLeakyReluDerivative = symbolic.OpLeakyReluDerivative
	OpNeg                 = symbolic.OpNeg
	OpInverse             = symbolic.OpInverse
	OpAdd                 = symbolic.OpAdd
	OpSub                 = symbolic.OpSub
	OpMul                 = symbolic.OpMul
	OpDiv                 = symbolic.OpDiv
	OpPolyTerm            = symbolic.OpPolyTerm
)

// Lookup returns the operation rendered under name by String.
func Lookup(name string) (Op, bool) {
	return symbolic.Lookup(name)
}

// Catalogue returns every supported operation in declaration order.
func Catalogue() []OpInfo {
	return symbolic.Catalogue()
}
