package symbolic

import (
	"math"
	"strconv"

	"github.com/born-ml/symdiff/internal/field"
)

// Unary is a single-argument composite node tagged by its operation.
type Unary[X field.Value[X]] struct {
	node[X]
	op     Op
	arg    Node[X]
	cutoff float64 // leakyrelu family only
}

func (f *Factory[X]) unary(op Op, arg Node[X]) *Unary[X] {
	return f.withCutoff(op, arg, 0)
}

// Op returns the node's operation.
func (u *Unary[X]) Op() Op { return u.op }

// Arg returns the node's argument.
func (u *Unary[X]) Arg() Node[X] { return u.arg }

// Cutoff returns the leakyrelu parameter, zero for other operations.
func (u *Unary[X]) Cutoff() float64 { return u.cutoff }

// Children returns the single argument.
func (u *Unary[X]) Children() []Node[X] { return []Node[X]{u.arg} }

// OpName returns the operation's dispatch token.
func (u *Unary[X]) OpName() string { return u.op.Token() }

// Value applies the operation's kernel to the argument's value.
func (u *Unary[X]) Value() X {
	k := u.f.kernels
	x := u.arg.Value()

	switch u.op {
	case OpCos:
		return k.Cos(x)
	case OpSin:
		return k.Sin(x)
	case OpTan:
		return k.Tan(x)
	case OpAcos:
		return k.Acos(x)
	case OpAsin:
		return k.Asin(x)
	case OpAtan:
		return k.Atan(x)
	case OpCosh:
		return k.Cosh(x)
	case OpSinh:
		return k.Sinh(x)
	case OpTanh:
		return k.Tanh(x)
	case OpAcosh:
		return k.Acosh(x)
	case OpAsinh:
		return k.Asinh(x)
	case OpAtanh:
		return k.Atanh(x)
	case OpExp:
		return k.Exp(x)
	case OpLog:
		return k.Log(x)
	case OpSqrt:
		return k.Sqrt(x)
	case OpSquare:
		return k.Square(x)
	case OpFloor:
		return k.Floor(x)
	case OpRelu:
		return k.Relu(x)
	case OpStep:
		return k.Step(x)
	case OpSoftmax:
		return k.Softmax(x)
	case OpHardTanh:
		return k.HardTanh(x)
	case OpHardTanhDerivative:
		return k.HardTanhDerivative(x)
	case OpSigmoid:
		return k.Sigmoid(x)
	case OpSigmoidDerivative:
		return k.SigmoidDerivative(x)
	case OpSign:
		return k.Sign(x)
	case OpSoftsign:
		return k.Softsign(x)
	case OpSoftsignDerivative:
		return k.SoftsignDerivative(x)
	case OpSoftplus:
		return k.Softplus(x)
	case OpElu:
		return k.Elu(x)
	case OpEluDerivative:
		return k.EluDerivative(x)
	case OpLeakyRelu:
		return k.LeakyRelu(x, u.cutoff)
	case OpLeakyReluDerivative:
		return k.LeakyReluDerivative(x, u.cutoff)
	case OpNeg:
		return x.Neg()
	case OpInverse:
		return k.One().Div(x)
	default:
		panic("unary: unknown operation " + u.op.String())
	}
}

// realForms maps each operation with a real-valued form to its float64
// implementation. Operations missing from the table fail in Real.
var realForms = map[Op]func(float64) float64{
	OpCos:                math.Cos,
	OpSin:                math.Sin,
	OpTan:                math.Tan,
	OpAcos:               math.Acos,
	OpAsin:               math.Asin,
	OpAtan:               math.Atan,
	OpCosh:               math.Cosh,
	OpSinh:               math.Sinh,
	OpTanh:               math.Tanh,
	OpExp:                math.Exp,
	OpLog:                math.Log,
	OpSqrt:               math.Sqrt,
	OpSquare:             func(x float64) float64 { return x * x },
	OpFloor:              math.Floor,
	OpRelu:               field.Relu,
	OpStep:               field.Step,
	OpSoftmax:            func(float64) float64 { return 1 },
	OpHardTanh:           field.HardTanh,
	OpHardTanhDerivative: field.HardTanhDerivative,
	OpSigmoid:            field.Sigmoid,
	OpSigmoidDerivative:  field.SigmoidDerivative,
	OpSign:               field.Sign,
	OpSoftsign:           field.Softsign,
	OpSoftsignDerivative: field.SoftsignDerivative,
	OpSoftplus:           field.Softplus,
	OpElu:                field.Elu,
	OpEluDerivative:      field.EluDerivative,
	OpNeg:                func(x float64) float64 { return -x },
	OpInverse:            func(x float64) float64 { return 1 / x },
}

// Real evaluates the operation's float64 form on the argument's real value.
// The inverse hyperbolic functions have no real form and always fail.
func (u *Unary[X]) Real() (float64, error) {
	if !u.op.Info().HasReal {
		u.f.logger.Debug("real evaluation not defined", "op", u.op.Token())
		return 0, errNoReal(u.op)
	}
	x, err := u.arg.Real()
	if err != nil {
		return 0, err
	}

	switch u.op {
	case OpLeakyRelu:
		return field.LeakyRelu(x, u.cutoff), nil
	case OpLeakyReluDerivative:
		return field.LeakyReluDerivative(x, u.cutoff), nil
	}
	fn, ok := realForms[u.op]
	if !ok {
		return 0, errNoReal(u.op)
	}
	return fn(x), nil
}

// String renders "name(arg)", with the cutoff as a second argument for the
// leakyrelu family.
func (u *Unary[X]) String() string {
	if u.op.Info().Params > 0 {
		return u.op.String() + "(" + u.arg.String() + ", " + formatFloat(u.cutoff) + ")"
	}
	return u.op.String() + "(" + u.arg.String() + ")"
}

// Formula renders the node for a formula over vars. Square renders as a
// power of two.
func (u *Unary[X]) Formula(vars []*Variable[X]) string {
	arg := u.arg.Formula(vars)
	info := u.op.Info()
	switch {
	case u.op == OpSquare:
		return "pow(" + arg + ", 2d )"
	case info.Params > 0:
		return info.Formula + "(" + arg + "," + formatFloat(u.cutoff) + ")"
	default:
		return info.Formula + "(" + arg + ")"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
