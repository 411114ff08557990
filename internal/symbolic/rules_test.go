package symbolic_test

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/symdiff/internal/field"
	"github.com/born-ml/symdiff/internal/graph"
	"github.com/born-ml/symdiff/internal/symbolic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numericalDerivative computes df/dx by central differences.
func numericalDerivative(f func(float64) float64, x, epsilon float64) float64 {
	return (f(x+epsilon) - f(x-epsilon)) / (2 * epsilon)
}

type chainCase[X field.Value[X]] struct {
	name  string
	build func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X]
	fn    func(float64) float64
	at    float64
}

// chainRuleCases lists every operation with a true derivative. Placeholder
// helpers are covered separately.
func chainRuleCases[X field.Value[X]]() []chainCase[X] {
	return []chainCase[X]{
		{"cos", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Cos(x) }, math.Cos, 0.4},
		{"sin", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Sin(x) }, math.Sin, 0.4},
		{"tan", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Tan(x) }, math.Tan, 0.4},
		{"acos", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Acos(x) }, math.Acos, 0.3},
		{"asin", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Asin(x) }, math.Asin, 0.3},
		{"atan", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Atan(x) }, math.Atan, 0.3},
		{"cosh", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Cosh(x) }, math.Cosh, 0.7},
		{"sinh", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Sinh(x) }, math.Sinh, 0.7},
		{"tanh", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Tanh(x) }, math.Tanh, 0.7},
		{"acosh", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Acosh(x) }, math.Acosh, 1.5},
		{"asinh", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Asinh(x) }, math.Asinh, 0.3},
		{"atanh", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Atanh(x) }, math.Atanh, 0.3},
		{"exp", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Exp(x) }, math.Exp, 0.5},
		{"log", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Log(x) }, math.Log, 1.7},
		{"sqrt", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Sqrt(x) }, math.Sqrt, 2.0},
		{"square", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Square(x) }, func(v float64) float64 { return v * v }, 1.3},
		{"pow", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.PowScalar(x, 3) }, func(v float64) float64 { return v * v * v }, 1.2},
		{"relu_positive", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Relu(x) }, field.Relu, 0.3},
		{"relu_negative", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Relu(x) }, field.Relu, -0.3},
		{"softmax", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Softmax(x) }, func(float64) float64 { return 1 }, 0.3},
		{"hardtanh", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.HardTanh(x) }, field.HardTanh, 0.3},
		{"sigmoid", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Sigmoid(x) }, field.Sigmoid, 0.2},
		{"softsign", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Softsign(x) }, field.Softsign, -0.6},
		{"softplus", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Softplus(x) }, field.Softplus, 0.4},
		{"elu_positive", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Elu(x) }, field.Elu, 0.5},
		{"elu_negative", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Elu(x) }, field.Elu, -0.5},
		{"leakyrelu", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.LeakyRelu(x, 0.01) }, func(v float64) float64 { return field.LeakyRelu(v, 0.01) }, -0.5},
		{"neg", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Neg(x) }, func(v float64) float64 { return -v }, 0.9},
		{"inverse", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Inverse(x) }, func(v float64) float64 { return 1 / v }, 0.8},
		{"add", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Add(x, f.Sin(x)) }, func(v float64) float64 { return v + math.Sin(v) }, 0.6},
		{"sub", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Sub(f.Exp(x), x) }, func(v float64) float64 { return math.Exp(v) - v }, 0.6},
		{"mul", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Mul(x, f.Cos(x)) }, func(v float64) float64 { return v * math.Cos(v) }, 0.6},
		{"div", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.Div(f.Sin(x), x) }, func(v float64) float64 { return math.Sin(v) / v }, 0.6},
		{"polyterm", func(f *symbolic.Factory[X], x symbolic.Node[X]) symbolic.Node[X] { return f.PolyTerm(2.5, x, 3) }, func(v float64) float64 { return 2.5 * v * v * v }, 0.6},
	}
}

func newRealFactory(t *testing.T, opts ...symbolic.Option) *symbolic.Factory[field.Real] {
	t.Helper()
	f, err := symbolic.New[field.Real](graph.New(), field.NewRealKernels(), opts...)
	require.NoError(t, err)
	return f
}

// TestDiff_FiniteDifference checks every rule against central differences
// with the variable as the direct argument, in both chain-rule modes.
func TestDiff_FiniteDifference(t *testing.T) {
	const epsilon = 1e-6

	modes := map[string][]symbolic.Option{
		"legacy": nil,
		"strict": {symbolic.WithStrictChainRule()},
	}
	for mode, opts := range modes {
		for _, tc := range chainRuleCases[field.Real]() {
			t.Run(mode+"/"+tc.name, func(t *testing.T) {
				f := newRealFactory(t, opts...)
				x := f.Var("x", field.Real(tc.at))

				d, err := tc.build(f, x).Diff(x)
				require.NoError(t, err)

				got, err := d.Real()
				require.NoError(t, err)
				want := numericalDerivative(tc.fn, tc.at, epsilon)
				assert.InDelta(t, want, got, 1e-6, "d/dx %s at %v", d, tc.at)
				assert.InDelta(t, want, float64(d.Value()), 1e-6)
			})
		}
	}
}

// TestDiff_StrictChainRule checks every rule on the composite argument 2x,
// which only strict mode differentiates correctly for every operation.
func TestDiff_StrictChainRule(t *testing.T) {
	const epsilon = 1e-6

	for _, tc := range chainRuleCases[field.Real]() {
		t.Run(tc.name, func(t *testing.T) {
			f := newRealFactory(t, symbolic.WithStrictChainRule())
			x := f.Var("x", field.Real(tc.at/2))
			arg := f.Mul(f.Scalar(2), x)

			d, err := tc.build(f, arg).Diff(x)
			require.NoError(t, err)

			got, err := d.Real()
			require.NoError(t, err)
			want := numericalDerivative(func(v float64) float64 { return tc.fn(2 * v) }, tc.at/2, epsilon)
			assert.InDelta(t, want, got, 1e-5)
		})
	}
}

// TestDiff_DualCrossCheck compares each symbolic derivative with the exact
// derivative that forward-mode dual evaluation carries in its ϵ part.
func TestDiff_DualCrossCheck(t *testing.T) {
	for _, tc := range chainRuleCases[field.Dual]() {
		t.Run(tc.name, func(t *testing.T) {
			f, err := symbolic.New[field.Dual](nil, field.NewDualKernels(), symbolic.WithStrictChainRule())
			require.NoError(t, err)
			x := f.Var("x", field.Seed(tc.at))
			n := tc.build(f, x)

			d, err := n.Diff(x)
			require.NoError(t, err)

			got, err := d.Value().Real()
			require.NoError(t, err)
			assert.InDelta(t, n.Value().Emag(), got, 1e-9)
		})
	}
}

func TestDiff_Leaves(t *testing.T) {
	f := newRealFactory(t)
	x := f.Var("x", 2)
	y := f.Var("x", 2) // same name, different variable

	d, err := f.Scalar(5).Diff(x)
	require.NoError(t, err)
	assert.IsType(t, &symbolic.Zero[field.Real]{}, d)

	d, err = x.Diff(x)
	require.NoError(t, err)
	assert.IsType(t, &symbolic.One[field.Real]{}, d)

	d, err = x.Diff(y)
	require.NoError(t, err)
	assert.IsType(t, &symbolic.Zero[field.Real]{}, d)

	d, err = f.One().Diff(x)
	require.NoError(t, err)
	assert.IsType(t, &symbolic.Zero[field.Real]{}, d)
}

func TestDiff_Floor(t *testing.T) {
	for _, strict := range []bool{false, true} {
		var opts []symbolic.Option
		if strict {
			opts = append(opts, symbolic.WithStrictChainRule())
		}
		f := newRealFactory(t, opts...)
		x := f.Var("x", 1.5)

		_, err := f.Floor(x).Diff(x)
		require.Error(t, err)
		assert.True(t, errors.Is(err, symbolic.ErrUnsupportedOperation))

		var opErr *symbolic.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "floor", opErr.Op)
		assert.Equal(t, "diff", opErr.Path)

		// Failure propagates through enclosing nodes.
		_, err = f.Sin(f.Add(f.Floor(x), x)).Diff(x)
		assert.ErrorIs(t, err, symbolic.ErrUnsupportedOperation)
	}
}

func TestDiff_ZeroRules(t *testing.T) {
	f := newRealFactory(t)
	x := f.Var("x", 0.7)

	for _, n := range []symbolic.Node[field.Real]{
		f.Sign(x),
		f.Step(x),
		f.SoftsignDerivative(x),
		f.EluDerivative(x),
		f.LeakyReluDerivative(x, 0.1),
	} {
		d, err := n.Diff(x)
		require.NoError(t, err, n.String())
		assert.IsType(t, &symbolic.Zero[field.Real]{}, d, n.String())
	}
}

// Derivative helpers report 1·d instead of their true second derivative.
func TestDiff_PlaceholderHelpers(t *testing.T) {
	f := newRealFactory(t)
	x := f.Var("x", 0.7)
	arg := f.Mul(f.Scalar(3), x)

	for _, n := range []symbolic.Node[field.Real]{
		f.SigmoidDerivative(arg),
		f.HardTanhDerivative(arg),
	} {
		d, err := n.Diff(x)
		require.NoError(t, err)
		got, err := d.Real()
		require.NoError(t, err)
		assert.InDelta(t, 3.0, got, 1e-12, n.String())
	}
}

func TestDiff_ReluIsSymbolic(t *testing.T) {
	f := newRealFactory(t)
	x := f.Var("x", 2)

	d, err := f.Relu(x).Diff(x)
	require.NoError(t, err)
	assert.Equal(t, "(step(x) * 1)", d.String())
	assert.InDelta(t, 1.0, float64(d.Value()), 1e-12)

	x.Set(-2)
	assert.InDelta(t, 0.0, float64(d.Value()), 1e-12)
}

func TestDiff_LegacyHyperbolic(t *testing.T) {
	tests := []struct {
		name   string
		build  func(f *symbolic.Factory[field.Real], x symbolic.Node[field.Real]) symbolic.Node[field.Real]
		outer  func(float64) float64 // derivative of the outer function
		at     float64
		scaled float64 // strict result is outer(2x)·2
	}{
		{"cosh", func(f *symbolic.Factory[field.Real], x symbolic.Node[field.Real]) symbolic.Node[field.Real] { return f.Cosh(x) }, math.Sinh, 0.5, 2},
		{"sinh", func(f *symbolic.Factory[field.Real], x symbolic.Node[field.Real]) symbolic.Node[field.Real] { return f.Sinh(x) }, math.Cosh, 0.5, 2},
		{"tanh", func(f *symbolic.Factory[field.Real], x symbolic.Node[field.Real]) symbolic.Node[field.Real] { return f.Tanh(x) }, func(v float64) float64 {
			c := math.Cosh(v)
			return 1 / (c * c)
		}, 0.5, 2},
		{"acosh", func(f *symbolic.Factory[field.Real], x symbolic.Node[field.Real]) symbolic.Node[field.Real] { return f.Acosh(x) }, func(v float64) float64 {
			return 1 / math.Sqrt(v*v-1)
		}, 1.5, 2},
		{"asinh", func(f *symbolic.Factory[field.Real], x symbolic.Node[field.Real]) symbolic.Node[field.Real] { return f.Asinh(x) }, func(v float64) float64 {
			return 1 / math.Sqrt(v*v+1)
		}, 0.2, 2},
		{"atanh", func(f *symbolic.Factory[field.Real], x symbolic.Node[field.Real]) symbolic.Node[field.Real] { return f.Atanh(x) }, func(v float64) float64 {
			return 1 / (1 - v*v)
		}, 0.2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legacy := newRealFactory(t)
			x := legacy.Var("x", field.Real(tt.at))
			other := legacy.Var("y", 1)
			arg := legacy.Mul(legacy.Scalar(2), x)

			// Legacy mode drops the inner derivative.
			d, err := tt.build(legacy, arg).Diff(x)
			require.NoError(t, err)
			got, err := d.Real()
			require.NoError(t, err)
			assert.InDelta(t, tt.outer(2*tt.at), got, 1e-9)

			// It does not depend on the variable either.
			d, err = tt.build(legacy, arg).Diff(other)
			require.NoError(t, err)
			got, err = d.Real()
			require.NoError(t, err)
			assert.InDelta(t, tt.outer(2*tt.at), got, 1e-9)

			strict := newRealFactory(t, symbolic.WithStrictChainRule())
			sx := strict.Var("x", field.Real(tt.at))
			sy := strict.Var("y", 1)
			sarg := strict.Mul(strict.Scalar(2), sx)

			d, err = tt.build(strict, sarg).Diff(sx)
			require.NoError(t, err)
			got, err = d.Real()
			require.NoError(t, err)
			assert.InDelta(t, tt.scaled*tt.outer(2*tt.at), got, 1e-9)

			d, err = tt.build(strict, sarg).Diff(sy)
			require.NoError(t, err)
			got, err = d.Real()
			require.NoError(t, err)
			assert.InDelta(t, 0.0, got, 1e-12)
		})
	}
}

// In legacy mode hardtanh differentiates its evaluated value, so the result
// keeps reflecting the value at Diff time.
func TestDiff_BakedHardTanh(t *testing.T) {
	legacy := newRealFactory(t)
	x := legacy.Var("x", 0.5)
	d, err := legacy.HardTanh(x).Diff(x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(d.Value()), 1e-12)
	x.Set(2)
	assert.InDelta(t, 1.0, float64(d.Value()), 1e-12)

	strict := newRealFactory(t, symbolic.WithStrictChainRule())
	sx := strict.Var("x", 0.5)
	d, err = strict.HardTanh(sx).Diff(sx)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(d.Value()), 1e-12)
	sx.Set(2)
	assert.InDelta(t, 0.0, float64(d.Value()), 1e-12)
}

func TestDiff_BakedSoftmax(t *testing.T) {
	build := func(opts ...symbolic.Option) (*symbolic.Variable[field.Vector], symbolic.Node[field.Vector]) {
		f, err := symbolic.New[field.Vector](nil, field.NewVectorKernels(), opts...)
		require.NoError(t, err)
		x := f.Var("x", field.NewVector(1, 2))
		d, err := f.Softmax(x).Diff(x)
		require.NoError(t, err)
		return x, d
	}

	x, d := build()
	before := d.Value().Data()
	x.Set(field.NewVector(5, -1))
	assert.Equal(t, before, d.Value().Data())

	x, d = build(symbolic.WithStrictChainRule())
	before = d.Value().Data()
	x.Set(field.NewVector(5, -1))
	assert.NotEqual(t, before, d.Value().Data())
}

func TestDiff_Sigmoid(t *testing.T) {
	f := newRealFactory(t)
	x := f.Var("x", 3.0)
	s := f.Sigmoid(x)

	assert.InDelta(t, 0.9525741268224334, float64(s.Value()), 1e-12)

	d, err := s.Diff(x)
	require.NoError(t, err)
	assert.InDelta(t, 0.045176659730912144, float64(d.Value()), 1e-12)
	assert.Equal(t, "(sigmoidDerivative(x) * 1)", d.String())
}

func TestDiff_OtherVariable(t *testing.T) {
	f := newRealFactory(t)
	x := f.Var("x", 0.5)
	y := f.Var("y", 2)
	n := f.Mul(f.Sin(x), f.Exp(y))

	d, err := n.Diff(y)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(0.5)*math.Exp(2), float64(d.Value()), 1e-9)

	d, err = n.Diff(x)
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(0.5)*math.Exp(2), float64(d.Value()), 1e-9)
}

func TestDiff_SecondOrder(t *testing.T) {
	f := newRealFactory(t)
	x := f.Var("x", 0.8)

	d1, err := f.Sin(x).Diff(x)
	require.NoError(t, err)
	d2, err := d1.Diff(x)
	require.NoError(t, err)
	assert.InDelta(t, -math.Sin(0.8), float64(d2.Value()), 1e-12)
}

func TestGradient(t *testing.T) {
	f := newRealFactory(t)
	xs := f.Vars("x", 1, 2)
	x0, x1 := xs.At(0), xs.At(1)
	n := f.Add(f.Square(x0), f.Mul(x0, x1))

	grad, err := f.Gradient(n, xs.Variables()...)
	require.NoError(t, err)
	require.Equal(t, 2, grad.Len())

	got, err := grad.Reals()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2*1 + 2, 1}, got, 1e-12)

	_, err = f.Gradient(f.Floor(x0), x0)
	assert.ErrorIs(t, err, symbolic.ErrUnsupportedOperation)
}
