package field

import "math"

// Real-valued activation functions shared by every field implementation and
// by the factory's real evaluation path.

// Relu returns max(0, x).
func Relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Step is the Heaviside step function: 1 for x > 0, else 0.
func Step(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Sigmoid computes σ(x) = 1 / (1 + exp(-x)).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// SigmoidDerivative computes σ'(x) = σ(x) * (1 - σ(x)).
func SigmoidDerivative(x float64) float64 {
	s := Sigmoid(x)
	return s * (1 - s)
}

// Softsign computes x / (1 + |x|).
func Softsign(x float64) float64 {
	return x / (1 + math.Abs(x))
}

// SoftsignDerivative computes 1 / (1 + |x|)².
func SoftsignDerivative(x float64) float64 {
	d := 1 + math.Abs(x)
	return 1 / (d * d)
}

// Softplus computes ln(1 + exp(x)) without overflowing for large x.
func Softplus(x float64) float64 {
	if x > 30 {
		return x + math.Log1p(math.Exp(-x))
	}
	return math.Log1p(math.Exp(x))
}

// Elu computes x for x > 0, else exp(x) - 1.
func Elu(x float64) float64 {
	if x > 0 {
		return x
	}
	return math.Expm1(x)
}

// EluDerivative computes 1 for x > 0, else exp(x).
func EluDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return math.Exp(x)
}

// LeakyRelu computes x for x > 0, else cutoff * x.
func LeakyRelu(x, cutoff float64) float64 {
	if x > 0 {
		return x
	}
	return cutoff * x
}

// LeakyReluDerivative computes 1 for x > 0, else cutoff.
func LeakyReluDerivative(x, cutoff float64) float64 {
	if x > 0 {
		return 1
	}
	return cutoff
}

// HardTanh clamps x to [-1, 1].
func HardTanh(x float64) float64 {
	switch {
	case x < -1:
		return -1
	case x > 1:
		return 1
	default:
		return x
	}
}

// HardTanhDerivative is 1 inside (-1, 1) and 0 outside.
func HardTanhDerivative(x float64) float64 {
	if x > -1 && x < 1 {
		return 1
	}
	return 0
}
