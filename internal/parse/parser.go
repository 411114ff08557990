// Package parse reads expressions written in the textual form that symbolic
// nodes produce with String and rebuilds them through a Factory.
//
// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("-" | "+") unary | primary
//	primary = number | ident | ident "(" [ expr { "," expr } ] ")" | "(" expr ")"
//
// Calls resolve through the operation catalogue by rendering name, so
// "sigmoidDerivative(x)" and "leakyrelu(x, 0.01)" parse back to the same
// operations. Parsing the String of a node built over a real-valued field
// yields a node with the same String.
package parse

import (
	"fmt"
	"math"
	"strconv"

	"github.com/born-ml/symdiff/internal/field"
	"github.com/born-ml/symdiff/internal/symbolic"
)

type parser[X field.Value[X]] struct {
	f    *symbolic.Factory[X]
	vars map[string]*symbolic.Variable[X]
	toks []token
	pos  int
}

// Parse builds the expression src with f. Identifiers resolve to the
// variables in vars; an unknown identifier is a syntax error.
func Parse[X field.Value[X]](f *symbolic.Factory[X], src string, vars map[string]*symbolic.Variable[X]) (symbolic.Node[X], error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser[X]{f: f, vars: vars, toks: toks}

	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, unexpected(t)
	}
	return n, nil
}

// Idents returns the variable names referenced by src in order of first
// appearance. Operation names and the literals NaN and Inf are excluded.
func Idents(src string) ([]string, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := make(map[string]bool)
	for i, t := range toks {
		if t.kind != tokIdent || isLiteral(t.text) || seen[t.text] {
			continue
		}
		if toks[i+1].kind == tokLParen {
			continue
		}
		seen[t.text] = true
		names = append(names, t.text)
	}
	return names, nil
}

func (p *parser[X]) peek() token {
	return p.toks[p.pos]
}

func (p *parser[X]) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser[X]) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected %s, found %s", kind, describe(t))}
	}
	return t, nil
}

func (p *parser[X]) expr() (symbolic.Node[X], error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOperator || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if t.text == "+" {
			left = p.f.Add(left, right)
		} else {
			left = p.f.Sub(left, right)
		}
	}
}

func (p *parser[X]) term() (symbolic.Node[X], error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOperator || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.text == "*" {
			left = p.f.Mul(left, right)
		} else {
			left = p.f.Div(left, right)
		}
	}
}

func (p *parser[X]) unary() (symbolic.Node[X], error) {
	t := p.peek()
	if t.kind != tokOperator || (t.text != "-" && t.text != "+") {
		return p.primary()
	}
	p.next()

	// A sign directly before a literal belongs to the literal, so that
	// negative constants round-trip as constants.
	if n := p.peek(); n.kind == tokNumber || (n.kind == tokIdent && n.text == "Inf") {
		p.next()
		v, err := literal(n)
		if err != nil {
			return nil, err
		}
		if t.text == "-" {
			v = -v
		}
		return p.f.Scalar(v), nil
	}

	arg, err := p.unary()
	if err != nil {
		return nil, err
	}
	if t.text == "-" {
		return p.f.Neg(arg), nil
	}
	return arg, nil
}

func (p *parser[X]) primary() (symbolic.Node[X], error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := literal(t)
		if err != nil {
			return nil, err
		}
		return p.f.Scalar(v), nil

	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return n, nil

	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.call(t)
		}
		if v, ok := p.vars[t.text]; ok {
			return v, nil
		}
		if isLiteral(t.text) {
			v, err := literal(t)
			if err != nil {
				return nil, err
			}
			return p.f.Scalar(v), nil
		}
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("undefined variable %q", t.text)}

	default:
		return nil, unexpected(t)
	}
}

// call parses the argument list of the operation named by name and builds it.
func (p *parser[X]) call(name token) (symbolic.Node[X], error) {
	op, ok := symbolic.Lookup(name.text)
	if !ok {
		return nil, &SyntaxError{Pos: name.pos, Msg: fmt.Sprintf("unknown operation %q", name.text)}
	}
	info := op.Info()
	p.next() // "("

	args := make([]symbolic.Node[X], 0, info.Arity)
	for len(args) < info.Arity {
		if len(args) > 0 {
			if _, err := p.expect(tokComma); err != nil {
				return nil, err
			}
		}
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	params := make([]float64, 0, info.Params)
	for len(params) < info.Params {
		if _, err := p.expect(tokComma); err != nil {
			return nil, err
		}
		v, err := p.signedLiteral()
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}

	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	switch op {
	case symbolic.OpPow:
		c, ok := args[1].(*symbolic.Constant[X])
		if !ok {
			return nil, &SyntaxError{Pos: name.pos, Msg: "pow exponent must be a constant"}
		}
		return p.f.Pow(args[0], c), nil
	case symbolic.OpAdd:
		return p.f.Add(args[0], args[1]), nil
	case symbolic.OpSub:
		return p.f.Sub(args[0], args[1]), nil
	case symbolic.OpMul:
		return p.f.Mul(args[0], args[1]), nil
	case symbolic.OpDiv:
		return p.f.Div(args[0], args[1]), nil
	default:
		return p.f.Apply(op, args[0], params...), nil
	}
}

// signedLiteral reads a numeric parameter without building a node.
func (p *parser[X]) signedLiteral() (float64, error) {
	sign := 1.0
	if t := p.peek(); t.kind == tokOperator && (t.text == "-" || t.text == "+") {
		p.next()
		if t.text == "-" {
			sign = -1
		}
	}
	t := p.next()
	if t.kind != tokNumber && !(t.kind == tokIdent && isLiteral(t.text)) {
		return 0, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected number, found %s", describe(t))}
	}
	v, err := literal(t)
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}

func literal(t token) (float64, error) {
	switch t.text {
	case "Inf":
		return math.Inf(1), nil
	case "NaN":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("invalid number %q", t.text)}
	}
	return v, nil
}

func isLiteral(name string) bool {
	return name == "Inf" || name == "NaN"
}

func unexpected(t token) error {
	return &SyntaxError{Pos: t.pos, Msg: "unexpected " + describe(t)}
}

func describe(t token) string {
	if t.kind == tokEOF {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}
