package symbolic

import (
	"math"
	"strconv"

	"github.com/born-ml/symdiff/internal/field"
)

// Binary is a two-argument composite node: pow with a constant exponent, or
// one of the arithmetic operations add, sub, mul and div.
type Binary[X field.Value[X]] struct {
	node[X]
	op          Op
	left, right Node[X]
}

func (f *Factory[X]) binary(op Op, left, right Node[X]) *Binary[X] {
	b := &Binary[X]{op: op, left: left, right: right}
	b.f = f
	b.id = f.register(op.Token(), "", nil, left, right)
	return b
}

// Op returns the node's operation.
func (b *Binary[X]) Op() Op { return b.op }

// Left returns the left argument.
func (b *Binary[X]) Left() Node[X] { return b.left }

// Right returns the right argument.
func (b *Binary[X]) Right() Node[X] { return b.right }

// Children returns the left and right arguments.
func (b *Binary[X]) Children() []Node[X] { return []Node[X]{b.left, b.right} }

// OpName returns the operation's dispatch token.
func (b *Binary[X]) OpName() string { return b.op.Token() }

// Value combines the arguments' values.
func (b *Binary[X]) Value() X {
	l, r := b.left.Value(), b.right.Value()
	switch b.op {
	case OpAdd:
		return l.Add(r)
	case OpSub:
		return l.Sub(r)
	case OpMul:
		return l.Mul(r)
	case OpDiv:
		return l.Div(r)
	case OpPow:
		return b.f.kernels.Pow(l, r)
	default:
		panic("binary: unknown operation " + b.op.String())
	}
}

// Real combines the arguments' real values.
func (b *Binary[X]) Real() (float64, error) {
	l, err := b.left.Real()
	if err != nil {
		return 0, err
	}
	r, err := b.right.Real()
	if err != nil {
		return 0, err
	}
	switch b.op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		return l / r, nil
	case OpPow:
		return math.Pow(l, r), nil
	default:
		return 0, errNoReal(b.op)
	}
}

// Diff applies the sum, difference, product, quotient or constant-power rule.
func (b *Binary[X]) Diff(v *Variable[X]) (Node[X], error) {
	f := b.f
	dl, err := b.left.Diff(v)
	if err != nil {
		return nil, err
	}
	if b.op == OpPow {
		// d(x^c) = c * x^(c-1) * dx, with c held fixed.
		ym1 := f.Val(b.right.Value().Sub(f.kernels.One()))
		return f.Mul(f.Mul(b.right, f.binary(OpPow, b.left, ym1)), dl), nil
	}

	dr, err := b.right.Diff(v)
	if err != nil {
		return nil, err
	}
	switch b.op {
	case OpAdd:
		return f.Add(dl, dr), nil
	case OpSub:
		return f.Sub(dl, dr), nil
	case OpMul:
		return f.Add(f.Mul(dl, b.right), f.Mul(b.left, dr)), nil
	case OpDiv:
		num := f.Sub(f.Mul(dl, b.right), f.Mul(b.left, dr))
		return f.Div(num, f.PolyTerm(1, b.right, 2)), nil
	default:
		return nil, errNoDerivative(b.op)
	}
}

var infix = map[Op]string{
	OpAdd: " + ",
	OpSub: " - ",
	OpMul: " * ",
	OpDiv: " / ",
}

// String renders arithmetic infix as "(l op r)" and pow as "pow(l, r)".
func (b *Binary[X]) String() string {
	if sym, ok := infix[b.op]; ok {
		return "(" + b.left.String() + sym + b.right.String() + ")"
	}
	return b.op.String() + "(" + b.left.String() + ", " + b.right.String() + ")"
}

// Formula renders like String with the arguments' formulas; pow omits the
// space after the comma.
func (b *Binary[X]) Formula(vars []*Variable[X]) string {
	l, r := b.left.Formula(vars), b.right.Formula(vars)
	if sym, ok := infix[b.op]; ok {
		return "(" + l + sym + r + ")"
	}
	return b.op.Info().Formula + "(" + l + "," + r + ")"
}

// PolyTerm is the term scale·argⁿ for an integer exponent n.
type PolyTerm[X field.Value[X]] struct {
	node[X]
	scale    float64
	arg      Node[X]
	exponent int
}

// Scale returns the term's coefficient.
func (p *PolyTerm[X]) Scale() float64 { return p.scale }

// Exponent returns the term's exponent.
func (p *PolyTerm[X]) Exponent() int { return p.exponent }

// Arg returns the term's base.
func (p *PolyTerm[X]) Arg() Node[X] { return p.arg }

// Children returns the base.
func (p *PolyTerm[X]) Children() []Node[X] { return []Node[X]{p.arg} }

// OpName returns the pow dispatch token.
func (p *PolyTerm[X]) OpName() string { return OpPolyTerm.Token() }

// Value evaluates scale·argⁿ through the pow kernel. A scale of 1 skips the
// multiplication.
func (p *PolyTerm[X]) Value() X {
	k := p.f.kernels
	pow := k.Pow(p.arg.Value(), k.Scalar(float64(p.exponent)))
	if p.scale == 1 {
		return pow
	}
	return k.Scalar(p.scale).Mul(pow)
}

// Real evaluates scale·argⁿ with math.Pow.
func (p *PolyTerm[X]) Real() (float64, error) {
	x, err := p.arg.Real()
	if err != nil {
		return 0, err
	}
	return p.scale * math.Pow(x, float64(p.exponent)), nil
}

// Diff returns (scale·n)·arg^(n-1)·d(arg), or Zero for n = 0.
func (p *PolyTerm[X]) Diff(v *Variable[X]) (Node[X], error) {
	if p.exponent == 0 {
		return p.f.Zero(), nil
	}
	d, err := p.arg.Diff(v)
	if err != nil {
		return nil, err
	}
	outer := p.f.PolyTerm(p.scale*float64(p.exponent), p.arg, p.exponent-1)
	return p.f.Mul(outer, d), nil
}

// String renders "pow(arg, n)", wrapped as "(scale * pow(arg, n))" when the
// scale is not 1.
func (p *PolyTerm[X]) String() string {
	return p.render(p.arg.String())
}

// Formula renders like String with the base's formula.
func (p *PolyTerm[X]) Formula(vars []*Variable[X]) string {
	return p.render(p.arg.Formula(vars))
}

func (p *PolyTerm[X]) render(arg string) string {
	pow := "pow(" + arg + ", " + strconv.Itoa(p.exponent) + ")"
	if p.scale == 1 {
		return pow
	}
	return "(" + formatFloat(p.scale) + " * " + pow + ")"
}
