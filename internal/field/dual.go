package field

import (
	"math"
	"strconv"

	"github.com/born-ml/symdiff/internal/tensor"
	"gonum.org/v1/gonum/num/dual"
)

// Dual is a forward-mode dual number a + bϵ with ϵ² = 0.
//
// Evaluating any expression over Dual with a variable seeded at (x, 1)
// yields the value in the real part and the exact derivative with respect
// to that variable in the infinitesimal part, which makes it a reference
// for checking symbolic derivative rules.
type Dual struct {
	num dual.Number
}

// NewDual returns real + emag·ϵ.
func NewDual(real, emag float64) Dual {
	return Dual{num: dual.Number{Real: real, Emag: emag}}
}

// Seed returns x + 1ϵ, the dual value of an independent variable.
func Seed(x float64) Dual { return NewDual(x, 1) }

// Emag returns the infinitesimal part.
func (d Dual) Emag() float64 { return d.num.Emag }

// Number returns the underlying gonum dual number.
func (d Dual) Number() dual.Number { return d.num }

// Add returns d + o.
func (d Dual) Add(o Dual) Dual { return Dual{num: dual.Add(d.num, o.num)} }

// Sub returns d - o.
func (d Dual) Sub(o Dual) Dual { return Dual{num: dual.Sub(d.num, o.num)} }

// Mul returns d * o.
func (d Dual) Mul(o Dual) Dual { return Dual{num: dual.Mul(d.num, o.num)} }

// Div returns d / o.
func (d Dual) Div(o Dual) Dual { return Dual{num: dual.Mul(d.num, dual.Inv(o.num))} }

// Pow returns d raised to e.
func (d Dual) Pow(e Dual) Dual {
	if e.num.Emag == 0 {
		return Dual{num: dual.PowReal(d.num, e.num.Real)}
	}
	return Dual{num: dual.Pow(d.num, e.num)}
}

// Neg returns -d.
func (d Dual) Neg() Dual { return Dual{num: dual.Scale(-1, d.num)} }

// Real returns the real part.
func (d Dual) Real() (float64, error) { return d.num.Real, nil }

// Shape returns the scalar shape.
func (d Dual) Shape() tensor.Shape { return tensor.Scalar }

func (d Dual) String() string {
	return "(" + strconv.FormatFloat(d.num.Real, 'g', -1, 64) + "+" +
		strconv.FormatFloat(d.num.Emag, 'g', -1, 64) + "ϵ)"
}

// lift applies a real function with known derivative to a dual number.
func lift(d Dual, fn, deriv func(float64) float64) Dual {
	return NewDual(fn(d.num.Real), deriv(d.num.Real)*d.num.Emag)
}

// DualKernels implements Kernels[Dual] on gonum/num/dual.
type DualKernels struct{}

// NewDualKernels returns the dual-number kernel provider.
func NewDualKernels() DualKernels { return DualKernels{} }

func (DualKernels) Zero() Dual             { return NewDual(0, 0) }
func (DualKernels) One() Dual              { return NewDual(1, 0) }
func (DualKernels) Scalar(v float64) Dual  { return NewDual(v, 0) }
func (DualKernels) Equal(a, b Dual) bool   { return a.num == b.num }
func (DualKernels) DType() tensor.DataType { return tensor.Dual }

func (DualKernels) Cos(x Dual) Dual   { return Dual{num: dual.Cos(x.num)} }
func (DualKernels) Sin(x Dual) Dual   { return Dual{num: dual.Sin(x.num)} }
func (DualKernels) Tan(x Dual) Dual   { return Dual{num: dual.Tan(x.num)} }
func (DualKernels) Acos(x Dual) Dual  { return Dual{num: dual.Acos(x.num)} }
func (DualKernels) Asin(x Dual) Dual  { return Dual{num: dual.Asin(x.num)} }
func (DualKernels) Atan(x Dual) Dual  { return Dual{num: dual.Atan(x.num)} }
func (DualKernels) Cosh(x Dual) Dual  { return Dual{num: dual.Cosh(x.num)} }
func (DualKernels) Sinh(x Dual) Dual  { return Dual{num: dual.Sinh(x.num)} }
func (DualKernels) Tanh(x Dual) Dual  { return Dual{num: dual.Tanh(x.num)} }
func (DualKernels) Acosh(x Dual) Dual { return Dual{num: dual.Acosh(x.num)} }
func (DualKernels) Asinh(x Dual) Dual { return Dual{num: dual.Asinh(x.num)} }
func (DualKernels) Atanh(x Dual) Dual { return Dual{num: dual.Atanh(x.num)} }
func (DualKernels) Exp(x Dual) Dual   { return Dual{num: dual.Exp(x.num)} }
func (DualKernels) Log(x Dual) Dual   { return Dual{num: dual.Log(x.num)} }
func (DualKernels) Pow(x, y Dual) Dual {
	return x.Pow(y)
}
func (DualKernels) Sqrt(x Dual) Dual   { return Dual{num: dual.Sqrt(x.num)} }
func (DualKernels) Square(x Dual) Dual { return x.Mul(x) }

// Floor is piecewise constant, so its infinitesimal part is zero.
func (DualKernels) Floor(x Dual) Dual { return NewDual(math.Floor(x.num.Real), 0) }

func (DualKernels) Relu(x Dual) Dual { return lift(x, Relu, Step) }
func (DualKernels) Step(x Dual) Dual { return lift(x, Step, zero) }
func (DualKernels) Sign(x Dual) Dual { return lift(x, Sign, zero) }

// Softmax of a single element is constant 1.
func (DualKernels) Softmax(x Dual) Dual { return NewDual(1, 0) }

func (DualKernels) HardTanh(x Dual) Dual { return lift(x, HardTanh, HardTanhDerivative) }
func (DualKernels) HardTanhDerivative(x Dual) Dual {
	return lift(x, HardTanhDerivative, zero)
}
func (DualKernels) Sigmoid(x Dual) Dual { return lift(x, Sigmoid, SigmoidDerivative) }
func (DualKernels) SigmoidDerivative(x Dual) Dual {
	return lift(x, SigmoidDerivative, func(v float64) float64 {
		s := Sigmoid(v)
		return s * (1 - s) * (1 - 2*s)
	})
}
func (DualKernels) Softsign(x Dual) Dual { return lift(x, Softsign, SoftsignDerivative) }
func (DualKernels) SoftsignDerivative(x Dual) Dual {
	return lift(x, SoftsignDerivative, func(v float64) float64 {
		d := 1 + math.Abs(v)
		return -2 * Sign(v) / (d * d * d)
	})
}
func (DualKernels) Softplus(x Dual) Dual      { return lift(x, Softplus, Sigmoid) }
func (DualKernels) Elu(x Dual) Dual           { return lift(x, Elu, EluDerivative) }
func (DualKernels) EluDerivative(x Dual) Dual { return lift(x, EluDerivative, eluSecond) }

func (DualKernels) LeakyRelu(x Dual, cutoff float64) Dual {
	return lift(x,
		func(v float64) float64 { return LeakyRelu(v, cutoff) },
		func(v float64) float64 { return LeakyReluDerivative(v, cutoff) })
}

func (DualKernels) LeakyReluDerivative(x Dual, cutoff float64) Dual {
	return lift(x, func(v float64) float64 { return LeakyReluDerivative(v, cutoff) }, zero)
}

func zero(float64) float64 { return 0 }

func eluSecond(v float64) float64 {
	if v > 0 {
		return 0
	}
	return math.Exp(v)
}
