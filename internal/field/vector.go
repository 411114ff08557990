package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/born-ml/symdiff/internal/parallel"
	"github.com/born-ml/symdiff/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// applyConfig splits long unary kernels across CPUs.
var applyConfig = parallel.DefaultConfig()

// Vector is a one-dimensional float64 field value.
// A Vector of length 1 broadcasts against any other length.
type Vector struct {
	data []float64
}

// NewVector copies data into a new Vector.
func NewVector(data ...float64) Vector {
	if len(data) == 0 {
		panic("vector: empty data")
	}
	v := make([]float64, len(data))
	copy(v, data)
	return Vector{data: v}
}

// Len returns the number of elements.
func (v Vector) Len() int { return len(v.data) }

// At returns the i-th element.
func (v Vector) At(i int) float64 { return v.data[i] }

// Data returns a copy of the elements.
func (v Vector) Data() []float64 {
	out := make([]float64, len(v.data))
	copy(out, v.data)
	return out
}

// Shape returns [n].
func (v Vector) Shape() tensor.Shape { return tensor.Shape{len(v.data)} }

// Real returns the only element of a length-1 vector.
func (v Vector) Real() (float64, error) {
	if len(v.data) != 1 {
		return 0, fmt.Errorf("vector of shape %v: %w", v.Shape(), ErrNotScalar)
	}
	return v.data[0], nil
}

func (v Vector) String() string {
	parts := make([]string, len(v.data))
	for i, x := range v.data {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Add returns v + o elementwise.
func (v Vector) Add(o Vector) Vector {
	dst, src := broadcastPair("add", v, o)
	floats.Add(dst, src)
	return Vector{data: dst}
}

// Sub returns v - o elementwise.
func (v Vector) Sub(o Vector) Vector {
	dst, src := broadcastPair("sub", v, o)
	floats.Sub(dst, src)
	return Vector{data: dst}
}

// Mul returns v * o elementwise.
func (v Vector) Mul(o Vector) Vector {
	dst, src := broadcastPair("mul", v, o)
	floats.Mul(dst, src)
	return Vector{data: dst}
}

// Div returns v / o elementwise.
func (v Vector) Div(o Vector) Vector {
	dst, src := broadcastPair("div", v, o)
	floats.Div(dst, src)
	return Vector{data: dst}
}

// Pow returns v raised to e elementwise.
func (v Vector) Pow(e Vector) Vector {
	dst, src := broadcastPair("pow", v, e)
	for i := range dst {
		dst[i] = math.Pow(dst[i], src[i])
	}
	return Vector{data: dst}
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	dst := v.Data()
	floats.Scale(-1, dst)
	return Vector{data: dst}
}

// broadcastPair returns a fresh destination holding a and a source holding b,
// both expanded to the broadcast length.
// It panics with an error wrapping ErrShapeMismatch.
func broadcastPair(op string, a, b Vector) (dst, src []float64) {
	n, err := broadcastLen(a, b)
	if err != nil {
		panic(fmt.Errorf("vector %s: %w", op, err))
	}
	return expand(a.data, n), expand(b.data, n)
}

// broadcastLen returns the element count of an elementwise result of a and b.
func broadcastLen(a, b Vector) (int, error) {
	if a.Shape().Equal(b.Shape()) {
		return len(a.data), nil
	}
	shape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return 0, fmt.Errorf("%w: %s vs %s", ErrShapeMismatch, a.Shape(), b.Shape())
	}
	return shape.NumElements(), nil
}

func expand(data []float64, n int) []float64 {
	out := make([]float64, n)
	if len(data) == 1 {
		for i := range out {
			out[i] = data[0]
		}
		return out
	}
	copy(out, data)
	return out
}

// VectorKernels implements Kernels[Vector] elementwise.
type VectorKernels struct{}

// NewVectorKernels returns the vector kernel provider.
func NewVectorKernels() VectorKernels { return VectorKernels{} }

// Zero returns a broadcastable length-1 zero.
func (VectorKernels) Zero() Vector { return NewVector(0) }

// One returns a broadcastable length-1 one.
func (VectorKernels) One() Vector { return NewVector(1) }

func (VectorKernels) Scalar(v float64) Vector { return NewVector(v) }

// Equal reports elementwise equality after broadcasting.
func (VectorKernels) Equal(a, b Vector) bool {
	n, err := broadcastLen(a, b)
	if err != nil {
		return false
	}
	return floats.Equal(expand(a.data, n), expand(b.data, n))
}

func (VectorKernels) DType() tensor.DataType { return tensor.Float64 }

func (VectorKernels) Cos(x Vector) Vector    { return x.apply(math.Cos) }
func (VectorKernels) Sin(x Vector) Vector    { return x.apply(math.Sin) }
func (VectorKernels) Tan(x Vector) Vector    { return x.apply(math.Tan) }
func (VectorKernels) Acos(x Vector) Vector   { return x.apply(math.Acos) }
func (VectorKernels) Asin(x Vector) Vector   { return x.apply(math.Asin) }
func (VectorKernels) Atan(x Vector) Vector   { return x.apply(math.Atan) }
func (VectorKernels) Cosh(x Vector) Vector   { return x.apply(math.Cosh) }
func (VectorKernels) Sinh(x Vector) Vector   { return x.apply(math.Sinh) }
func (VectorKernels) Tanh(x Vector) Vector   { return x.apply(math.Tanh) }
func (VectorKernels) Acosh(x Vector) Vector  { return x.apply(math.Acosh) }
func (VectorKernels) Asinh(x Vector) Vector  { return x.apply(math.Asinh) }
func (VectorKernels) Atanh(x Vector) Vector  { return x.apply(math.Atanh) }
func (VectorKernels) Exp(x Vector) Vector    { return x.apply(math.Exp) }
func (VectorKernels) Log(x Vector) Vector    { return x.apply(math.Log) }
func (VectorKernels) Pow(x, y Vector) Vector { return x.Pow(y) }
func (VectorKernels) Sqrt(x Vector) Vector   { return x.apply(math.Sqrt) }
func (VectorKernels) Square(x Vector) Vector { return x.Mul(x) }
func (VectorKernels) Floor(x Vector) Vector  { return x.apply(math.Floor) }
func (VectorKernels) Relu(x Vector) Vector   { return x.apply(Relu) }
func (VectorKernels) Step(x Vector) Vector   { return x.apply(Step) }

func (VectorKernels) HardTanh(x Vector) Vector           { return x.apply(HardTanh) }
func (VectorKernels) HardTanhDerivative(x Vector) Vector { return x.apply(HardTanhDerivative) }
func (VectorKernels) Sigmoid(x Vector) Vector            { return x.apply(Sigmoid) }
func (VectorKernels) SigmoidDerivative(x Vector) Vector  { return x.apply(SigmoidDerivative) }
func (VectorKernels) Sign(x Vector) Vector               { return x.apply(Sign) }
func (VectorKernels) Softsign(x Vector) Vector           { return x.apply(Softsign) }
func (VectorKernels) SoftsignDerivative(x Vector) Vector { return x.apply(SoftsignDerivative) }
func (VectorKernels) Softplus(x Vector) Vector           { return x.apply(Softplus) }
func (VectorKernels) Elu(x Vector) Vector                { return x.apply(Elu) }
func (VectorKernels) EluDerivative(x Vector) Vector      { return x.apply(EluDerivative) }

// Softmax normalizes exp(x) over all elements, shifting by the maximum for
// numerical stability.
func (VectorKernels) Softmax(x Vector) Vector {
	dst := x.Data()
	maxVal := floats.Max(dst)
	floats.AddConst(-maxVal, dst)
	for i, v := range dst {
		dst[i] = math.Exp(v)
	}
	floats.Scale(1/floats.Sum(dst), dst)
	return Vector{data: dst}
}

func (VectorKernels) LeakyRelu(x Vector, cutoff float64) Vector {
	return x.apply(func(v float64) float64 { return LeakyRelu(v, cutoff) })
}

func (VectorKernels) LeakyReluDerivative(x Vector, cutoff float64) Vector {
	return x.apply(func(v float64) float64 { return LeakyReluDerivative(v, cutoff) })
}

func (v Vector) apply(fn func(float64) float64) Vector {
	dst := make([]float64, len(v.data))
	parallel.Map(dst, v.data, fn, applyConfig)
	return Vector{data: dst}
}
