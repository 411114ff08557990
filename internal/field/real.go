package field

import (
	"math"
	"strconv"

	"github.com/born-ml/symdiff/internal/tensor"
)

// Real is a float64 scalar field value.
type Real float64

// Add returns r + o.
func (r Real) Add(o Real) Real { return r + o }

// Sub returns r - o.
func (r Real) Sub(o Real) Real { return r - o }

// Mul returns r * o.
func (r Real) Mul(o Real) Real { return r * o }

// Div returns r / o.
func (r Real) Div(o Real) Real { return r / o }

// Pow returns r raised to e.
func (r Real) Pow(e Real) Real { return Real(math.Pow(float64(r), float64(e))) }

// Neg returns -r.
func (r Real) Neg() Real { return -r }

// Real returns r as a float64. It never fails.
func (r Real) Real() (float64, error) { return float64(r), nil }

// Shape returns the scalar shape.
func (r Real) Shape() tensor.Shape { return tensor.Scalar }

func (r Real) String() string {
	return strconv.FormatFloat(float64(r), 'g', -1, 64)
}

// RealKernels implements Kernels[Real] with the math package.
type RealKernels struct{}

// NewRealKernels returns the float64 kernel provider.
func NewRealKernels() RealKernels { return RealKernels{} }

func (RealKernels) Zero() Real                   { return 0 }
func (RealKernels) One() Real                    { return 1 }
func (RealKernels) Scalar(v float64) Real        { return Real(v) }
func (RealKernels) Equal(a, b Real) bool         { return a == b }
func (RealKernels) DType() tensor.DataType       { return tensor.Float64 }
func (RealKernels) Cos(x Real) Real              { return unary(x, math.Cos) }
func (RealKernels) Sin(x Real) Real              { return unary(x, math.Sin) }
func (RealKernels) Tan(x Real) Real              { return unary(x, math.Tan) }
func (RealKernels) Acos(x Real) Real             { return unary(x, math.Acos) }
func (RealKernels) Asin(x Real) Real             { return unary(x, math.Asin) }
func (RealKernels) Atan(x Real) Real             { return unary(x, math.Atan) }
func (RealKernels) Cosh(x Real) Real             { return unary(x, math.Cosh) }
func (RealKernels) Sinh(x Real) Real             { return unary(x, math.Sinh) }
func (RealKernels) Tanh(x Real) Real             { return unary(x, math.Tanh) }
func (RealKernels) Acosh(x Real) Real            { return unary(x, math.Acosh) }
func (RealKernels) Asinh(x Real) Real            { return unary(x, math.Asinh) }
func (RealKernels) Atanh(x Real) Real            { return unary(x, math.Atanh) }
func (RealKernels) Exp(x Real) Real              { return unary(x, math.Exp) }
func (RealKernels) Log(x Real) Real              { return unary(x, math.Log) }
func (RealKernels) Pow(x, y Real) Real           { return x.Pow(y) }
func (RealKernels) Sqrt(x Real) Real             { return unary(x, math.Sqrt) }
func (RealKernels) Square(x Real) Real           { return x * x }
func (RealKernels) Floor(x Real) Real            { return unary(x, math.Floor) }
func (RealKernels) Relu(x Real) Real             { return unary(x, Relu) }
func (RealKernels) Step(x Real) Real             { return unary(x, Step) }
func (RealKernels) HardTanh(x Real) Real         { return unary(x, HardTanh) }
func (RealKernels) HardTanhDerivative(x Real) Real {
	return unary(x, HardTanhDerivative)
}
func (RealKernels) Sigmoid(x Real) Real { return unary(x, Sigmoid) }
func (RealKernels) SigmoidDerivative(x Real) Real {
	return unary(x, SigmoidDerivative)
}
func (RealKernels) Sign(x Real) Real     { return unary(x, Sign) }
func (RealKernels) Softsign(x Real) Real { return unary(x, Softsign) }
func (RealKernels) SoftsignDerivative(x Real) Real {
	return unary(x, SoftsignDerivative)
}
func (RealKernels) Softplus(x Real) Real      { return unary(x, Softplus) }
func (RealKernels) Elu(x Real) Real           { return unary(x, Elu) }
func (RealKernels) EluDerivative(x Real) Real { return unary(x, EluDerivative) }

// Softmax of a single element is always 1.
func (RealKernels) Softmax(x Real) Real {
	if math.IsNaN(float64(x)) {
		return x
	}
	return 1
}

func (RealKernels) LeakyRelu(x Real, cutoff float64) Real {
	return Real(LeakyRelu(float64(x), cutoff))
}

func (RealKernels) LeakyReluDerivative(x Real, cutoff float64) Real {
	return Real(LeakyReluDerivative(float64(x), cutoff))
}

func unary(x Real, fn func(float64) float64) Real {
	return Real(fn(float64(x)))
}
