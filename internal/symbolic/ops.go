package symbolic

// Operation catalogue. Every method allocates exactly one node and never
// validates the argument's shape or type; such errors surface from the kernel
// provider at evaluation time.

// Cos returns cos(x).
func (f *Factory[X]) Cos(x Node[X]) *Unary[X] { return f.unary(OpCos, x) }

// Sin returns sin(x).
func (f *Factory[X]) Sin(x Node[X]) *Unary[X] { return f.unary(OpSin, x) }

// Tan returns tan(x).
func (f *Factory[X]) Tan(x Node[X]) *Unary[X] { return f.unary(OpTan, x) }

// Acos returns acos(x).
func (f *Factory[X]) Acos(x Node[X]) *Unary[X] { return f.unary(OpAcos, x) }

// Asin returns asin(x).
func (f *Factory[X]) Asin(x Node[X]) *Unary[X] { return f.unary(OpAsin, x) }

// Atan returns atan(x).
func (f *Factory[X]) Atan(x Node[X]) *Unary[X] { return f.unary(OpAtan, x) }

// Cosh returns cosh(x).
func (f *Factory[X]) Cosh(x Node[X]) *Unary[X] { return f.unary(OpCosh, x) }

// Sinh returns sinh(x).
func (f *Factory[X]) Sinh(x Node[X]) *Unary[X] { return f.unary(OpSinh, x) }

// Tanh returns tanh(x).
func (f *Factory[X]) Tanh(x Node[X]) *Unary[X] { return f.unary(OpTanh, x) }

// Acosh returns acosh(x). It has no real-valued form.
func (f *Factory[X]) Acosh(x Node[X]) *Unary[X] { return f.unary(OpAcosh, x) }

// Asinh returns asinh(x). It has no real-valued form.
func (f *Factory[X]) Asinh(x Node[X]) *Unary[X] { return f.unary(OpAsinh, x) }

// Atanh returns atanh(x). It has no real-valued form.
func (f *Factory[X]) Atanh(x Node[X]) *Unary[X] { return f.unary(OpAtanh, x) }

// Exp returns eˣ.
func (f *Factory[X]) Exp(x Node[X]) *Unary[X] { return f.unary(OpExp, x) }

// Log returns the natural logarithm of x.
func (f *Factory[X]) Log(x Node[X]) *Unary[X] { return f.unary(OpLog, x) }

// Pow returns xʸ for a constant exponent y. Only x is differentiated.
func (f *Factory[X]) Pow(x Node[X], y *Constant[X]) *Binary[X] {
	return f.binary(OpPow, x, y)
}

// PowScalar returns xᶜ for a numeric literal c.
func (f *Factory[X]) PowScalar(x Node[X], c float64) *Binary[X] {
	return f.Pow(x, f.Scalar(c))
}

// Sqrt returns √x.
func (f *Factory[X]) Sqrt(x Node[X]) *Unary[X] { return f.unary(OpSqrt, x) }

// Square returns x². It dispatches to the pow kernel token.
func (f *Factory[X]) Square(x Node[X]) *Unary[X] { return f.unary(OpSquare, x) }

// Floor returns ⌊x⌋. Its derivative is undefined.
func (f *Factory[X]) Floor(x Node[X]) *Unary[X] { return f.unary(OpFloor, x) }

// Relu returns max(0, x).
func (f *Factory[X]) Relu(x Node[X]) *Unary[X] { return f.unary(OpRelu, x) }

// Step returns the Heaviside step of x.
func (f *Factory[X]) Step(x Node[X]) *Unary[X] { return f.unary(OpStep, x) }

// Softmax returns softmax(x).
func (f *Factory[X]) Softmax(x Node[X]) *Unary[X] { return f.unary(OpSoftmax, x) }

// HardTanh returns x clamped to [-1, 1].
func (f *Factory[X]) HardTanh(x Node[X]) *Unary[X] { return f.unary(OpHardTanh, x) }

// HardTanhDerivative returns the derivative helper of hardtanh.
func (f *Factory[X]) HardTanhDerivative(x Node[X]) *Unary[X] {
	return f.unary(OpHardTanhDerivative, x)
}

// Sigmoid returns σ(x).
func (f *Factory[X]) Sigmoid(x Node[X]) *Unary[X] { return f.unary(OpSigmoid, x) }

// SigmoidDerivative returns σ'(x).
func (f *Factory[X]) SigmoidDerivative(x Node[X]) *Unary[X] {
	return f.unary(OpSigmoidDerivative, x)
}

// Sign returns sign(x).
func (f *Factory[X]) Sign(x Node[X]) *Unary[X] { return f.unary(OpSign, x) }

// Softsign returns x / (1 + |x|).
func (f *Factory[X]) Softsign(x Node[X]) *Unary[X] { return f.unary(OpSoftsign, x) }

// SoftsignDerivative returns the derivative helper of softsign.
func (f *Factory[X]) SoftsignDerivative(x Node[X]) *Unary[X] {
	return f.unary(OpSoftsignDerivative, x)
}

// Softplus returns ln(1 + eˣ).
func (f *Factory[X]) Softplus(x Node[X]) *Unary[X] { return f.unary(OpSoftplus, x) }

// Elu returns elu(x).
func (f *Factory[X]) Elu(x Node[X]) *Unary[X] { return f.unary(OpElu, x) }

// EluDerivative returns the derivative helper of elu.
func (f *Factory[X]) EluDerivative(x Node[X]) *Unary[X] {
	return f.unary(OpEluDerivative, x)
}

// LeakyRelu returns x for x > 0, else cutoff·x.
//
// The cutoff is part of the textual form: String renders
// "leakyrelu(x, 0.01)" and Formula renders "leakyrelu(x,0.01)", so the text
// parses back to the same node.
func (f *Factory[X]) LeakyRelu(x Node[X], cutoff float64) *Unary[X] {
	return f.withCutoff(OpLeakyRelu, x, cutoff)
}

// LeakyReluDerivative returns the derivative helper of leakyrelu. Like
// LeakyRelu it renders its cutoff as a second argument.
func (f *Factory[X]) LeakyReluDerivative(x Node[X], cutoff float64) *Unary[X] {
	return f.withCutoff(OpLeakyReluDerivative, x, cutoff)
}

func (f *Factory[X]) withCutoff(op Op, x Node[X], cutoff float64) *Unary[X] {
	u := &Unary[X]{op: op, arg: x, cutoff: cutoff}
	u.f = f
	u.id = f.register(op.Token(), "", nil, x)
	return u
}

// Neg returns -x.
func (f *Factory[X]) Neg(x Node[X]) *Unary[X] { return f.unary(OpNeg, x) }

// Inverse returns 1/x.
func (f *Factory[X]) Inverse(x Node[X]) *Unary[X] { return f.unary(OpInverse, x) }

// Add returns a + b.
func (f *Factory[X]) Add(a, b Node[X]) *Binary[X] { return f.binary(OpAdd, a, b) }

// Sub returns a - b.
func (f *Factory[X]) Sub(a, b Node[X]) *Binary[X] { return f.binary(OpSub, a, b) }

// Mul returns a * b.
func (f *Factory[X]) Mul(a, b Node[X]) *Binary[X] { return f.binary(OpMul, a, b) }

// Div returns a / b.
func (f *Factory[X]) Div(a, b Node[X]) *Binary[X] { return f.binary(OpDiv, a, b) }

// PolyTerm returns scale·xⁿ.
func (f *Factory[X]) PolyTerm(scale float64, x Node[X], n int) *PolyTerm[X] {
	p := &PolyTerm[X]{scale: scale, arg: x, exponent: n}
	p.f = f
	p.id = f.register(OpPolyTerm.Token(), "", nil, x)
	return p
}

// Apply builds the unary operation op on x. LeakyRelu and its derivative take
// their cutoff from params[0]. It panics for binary operations.
func (f *Factory[X]) Apply(op Op, x Node[X], params ...float64) *Unary[X] {
	info := op.Info()
	if info.Arity != 1 || op == OpPolyTerm {
		panic("apply: " + op.String() + " is not a unary operation")
	}
	if info.Params > 0 {
		cutoff := 0.0
		if len(params) > 0 {
			cutoff = params[0]
		}
		return f.withCutoff(op, x, cutoff)
	}
	return f.unary(op, x)
}
