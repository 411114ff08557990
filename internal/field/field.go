// Package field defines the algebraic value contract consumed by the symbolic
// expression factory, together with the kernel provider contract that supplies
// the elementwise numeric implementation of every named operation.
//
// Three concrete fields are provided:
//   - Real: a float64 scalar
//   - Vector: a one-dimensional float64 array (gonum/floats arithmetic)
//   - Dual: a forward-mode dual number (gonum/num/dual)
//
// The factory never computes numeric math itself. It only decides which kernel
// to call and how to compose derivative expressions.
package field

import (
	"errors"

	"github.com/born-ml/symdiff/internal/tensor"
)

// Common errors.
var (
	ErrNotScalar     = errors.New("value does not hold a single real element")
	ErrShapeMismatch = errors.New("shapes not compatible")
)

// Value is an element of an algebraic field. Operations are total: domain
// errors surface as NaN or Inf, never as a Go error.
type Value[X any] interface {
	Add(other X) X
	Sub(other X) X
	Mul(other X) X
	Div(other X) X
	Pow(exponent X) X
	Neg() X

	// Real returns the single real reading of the value, or ErrNotScalar.
	Real() (float64, error)

	// Shape describes the layout of the value.
	Shape() tensor.Shape

	String() string
}

// Kernels is the elementwise kernel provider for field X.
//
// Every method is pure. Implementations may panic on programmer errors such
// as incompatible shapes, in the same way a compute backend does.
type Kernels[X any] interface {
	// Zero returns the additive identity.
	Zero() X
	// One returns the multiplicative identity.
	One() X
	// Scalar builds a field value from a numeric literal.
	Scalar(v float64) X
	// Equal reports whether two values are equal.
	Equal(a, b X) bool
	// DType reports the element data type of the field.
	DType() tensor.DataType

	Cos(x X) X
	Sin(x X) X
	Tan(x X) X
	Acos(x X) X
	Asin(x X) X
	Atan(x X) X
	Cosh(x X) X
	Sinh(x X) X
	Tanh(x X) X
	Acosh(x X) X
	Asinh(x X) X
	Atanh(x X) X
	Exp(x X) X
	Log(x X) X
	Pow(x, y X) X
	Sqrt(x X) X
	Square(x X) X
	Floor(x X) X

	Relu(x X) X
	Step(x X) X
	Softmax(x X) X
	HardTanh(x X) X
	HardTanhDerivative(x X) X
	Sigmoid(x X) X
	SigmoidDerivative(x X) X
	Sign(x X) X
	Softsign(x X) X
	SoftsignDerivative(x X) X
	Softplus(x X) X
	Elu(x X) X
	EluDerivative(x X) X
	LeakyRelu(x X, cutoff float64) X
	LeakyReluDerivative(x X, cutoff float64) X
}
