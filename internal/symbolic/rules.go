package symbolic

// Diff builds the derivative of the node with respect to v by the chain rule.
//
// Rules below write x for the argument and d for its derivative. Unless noted
// every rule is f'(x)·d.
//
// Legacy behavior kept unless the factory is strict:
//   - cosh, sinh, tanh, acosh, asinh, atanh return f'(x) without ·d, and do
//     not differentiate x at all
//   - softmax and hardtanh derive from their own evaluated value wrapped as a
//     constant, so the result no longer tracks later variable updates
//
// Derivative helpers report placeholder derivatives: sigmoidDerivative and
// hardtanhDerivative give 1·d, the softsign, elu and leakyrelu helpers give 0.
func (u *Unary[X]) Diff(v *Variable[X]) (Node[X], error) {
	f := u.f
	x := u.arg

	switch u.op {
	case OpFloor:
		f.logger.Debug("derivative not defined", "op", u.op.Token())
		return nil, errNoDerivative(u.op)
	case OpSign, OpStep, OpSoftsignDerivative, OpEluDerivative, OpLeakyReluDerivative:
		return f.Zero(), nil
	}

	if !f.strict {
		switch u.op {
		case OpCosh:
			return f.Sinh(x), nil
		case OpSinh:
			return f.Cosh(x), nil
		case OpTanh:
			return f.PolyTerm(1, f.Div(f.One(), f.Cosh(x)), 2), nil
		case OpAcosh:
			return f.Div(f.One(), f.Mul(f.Sqrt(f.Sub(x, f.One())), f.Sqrt(f.Add(x, f.One())))), nil
		case OpAsinh:
			return f.Div(f.One(), f.Sqrt(f.Add(f.PolyTerm(1, x, 2), f.One()))), nil
		case OpAtanh:
			return f.Div(f.One(), f.Sub(f.One(), f.PolyTerm(1, x, 2))), nil
		}
	}

	d, err := x.Diff(v)
	if err != nil {
		return nil, err
	}

	switch u.op {
	case OpCos:
		return f.Neg(f.Mul(f.Sin(x), d)), nil
	case OpSin:
		return f.Mul(f.Cos(x), d), nil
	case OpTan:
		return f.Mul(f.PolyTerm(1, f.Cos(x), -2), d), nil
	case OpAcos:
		return f.Mul(f.Neg(f.Div(f.One(), f.Sqrt(f.Sub(f.One(), f.PolyTerm(1, x, 2))))), d), nil
	case OpAsin:
		return f.Mul(f.Div(f.One(), f.Sqrt(f.Sub(f.One(), f.PolyTerm(1, x, 2)))), d), nil
	case OpAtan:
		return f.Mul(f.Div(f.One(), f.Add(f.One(), f.PolyTerm(1, x, 2))), d), nil
	case OpCosh:
		return f.Mul(f.Sinh(x), d), nil
	case OpSinh:
		return f.Mul(f.Cosh(x), d), nil
	case OpTanh:
		return f.Mul(f.PolyTerm(1, f.Div(f.One(), f.Cosh(x)), 2), d), nil
	case OpAcosh:
		outer := f.Div(f.One(), f.Mul(f.Sqrt(f.Sub(x, f.One())), f.Sqrt(f.Add(x, f.One()))))
		return f.Mul(outer, d), nil
	case OpAsinh:
		return f.Mul(f.Div(f.One(), f.Sqrt(f.Add(f.PolyTerm(1, x, 2), f.One()))), d), nil
	case OpAtanh:
		return f.Mul(f.Div(f.One(), f.Sub(f.One(), f.PolyTerm(1, x, 2))), d), nil
	case OpExp:
		return f.Mul(f.Exp(x), d), nil
	case OpLog:
		return f.Mul(f.Inverse(x), d), nil
	case OpSqrt:
		two := f.Scalar(2)
		return f.Mul(f.Div(f.Inverse(f.Sqrt(x)), two), d), nil
	case OpSquare:
		two := f.Scalar(2)
		return f.Mul(f.Mul(x, two), d), nil
	case OpRelu:
		return f.Mul(f.Step(x), d), nil
	case OpSoftmax:
		s := Node[X](f.Softmax(x))
		if !f.strict {
			s = f.Val(u.Value())
		}
		return f.Mul(f.Mul(s, f.Sub(f.One(), s)), d), nil
	case OpHardTanh:
		at := x
		if !f.strict {
			at = f.Val(u.Value())
		}
		return f.Mul(f.HardTanhDerivative(at), d), nil
	case OpHardTanhDerivative, OpSigmoidDerivative:
		return f.Mul(f.One(), d), nil
	case OpSigmoid:
		return f.Mul(f.SigmoidDerivative(x), d), nil
	case OpSoftsign:
		return f.Mul(f.SoftsignDerivative(x), d), nil
	case OpSoftplus:
		return f.Mul(f.Sigmoid(x), d), nil
	case OpElu:
		return f.Mul(f.EluDerivative(x), d), nil
	case OpLeakyRelu:
		return f.Mul(f.LeakyReluDerivative(x, u.cutoff), d), nil
	case OpNeg:
		return f.Neg(d), nil
	case OpInverse:
		return f.Neg(f.Mul(f.PolyTerm(1, x, -2), d)), nil
	default:
		return nil, errNoDerivative(u.op)
	}
}
