package symbolic

import (
	"strconv"

	"github.com/born-ml/symdiff/internal/field"
)

// Constant is an immutable leaf wrapping one field value.
type Constant[X field.Value[X]] struct {
	node[X]
	value X
}

func (c *Constant[X]) Value() X               { return c.value }
func (c *Constant[X]) Real() (float64, error) { return c.value.Real() }
func (c *Constant[X]) String() string         { return c.value.String() }
func (c *Constant[X]) OpName() string         { return "constant" }
func (c *Constant[X]) Children() []Node[X]    { return nil }

// Formula renders the constant's value.
func (c *Constant[X]) Formula([]*Variable[X]) string { return c.value.String() }

// Diff of a constant is always the additive identity.
func (c *Constant[X]) Diff(*Variable[X]) (Node[X], error) {
	return c.f.Zero(), nil
}

// PreEvaluator is invoked on a variable immediately before its value is read,
// typically to refresh it from an external source.
type PreEvaluator[X field.Value[X]] func(v *Variable[X])

// Variable is a named leaf with a reassignable value.
//
// Two variables are the same variable only if they are the same node; equal
// names do not make variables dependent.
type Variable[X field.Value[X]] struct {
	node[X]
	name  string
	value X
	pre   PreEvaluator[X]
}

// Name returns the variable's name.
func (v *Variable[X]) Name() string { return v.name }

// Set replaces the variable's current value.
func (v *Variable[X]) Set(x X) { v.value = x }

// Value runs the pre-evaluation hook, if any, and returns the current value.
func (v *Variable[X]) Value() X {
	if v.pre != nil {
		v.pre(v)
	}
	return v.value
}

func (v *Variable[X]) Real() (float64, error) { return v.Value().Real() }
func (v *Variable[X]) String() string         { return v.name }
func (v *Variable[X]) OpName() string         { return "variable" }
func (v *Variable[X]) Children() []Node[X]    { return nil }

// Diff is One with respect to v itself and Zero with respect to any other variable.
func (v *Variable[X]) Diff(w *Variable[X]) (Node[X], error) {
	if v == w {
		return v.f.One(), nil
	}
	return v.f.Zero(), nil
}

// Formula renders the variable's name. When several variables in scope share
// the name, the variable's position in scope is appended as "name#i".
func (v *Variable[X]) Formula(vars []*Variable[X]) string {
	index, shared := -1, 0
	for i, w := range vars {
		if w.name == v.name {
			shared++
		}
		if w == v {
			index = i
		}
	}
	if index < 0 || shared < 2 {
		return v.name
	}
	return v.name + "#" + strconv.Itoa(index)
}

// Zero is the additive identity leaf.
type Zero[X field.Value[X]] struct {
	node[X]
}

func (z *Zero[X]) Value() X                      { return z.f.kernels.Zero() }
func (z *Zero[X]) Real() (float64, error)        { return z.Value().Real() }
func (z *Zero[X]) String() string                { return "0" }
func (z *Zero[X]) Formula([]*Variable[X]) string { return "0" }
func (z *Zero[X]) OpName() string                { return "zero" }
func (z *Zero[X]) Children() []Node[X]           { return nil }

func (z *Zero[X]) Diff(*Variable[X]) (Node[X], error) {
	return z.f.Zero(), nil
}

// One is the multiplicative identity leaf.
type One[X field.Value[X]] struct {
	node[X]
}

func (o *One[X]) Value() X                      { return o.f.kernels.One() }
func (o *One[X]) Real() (float64, error)        { return o.Value().Real() }
func (o *One[X]) String() string                { return "1" }
func (o *One[X]) Formula([]*Variable[X]) string { return "1" }
func (o *One[X]) OpName() string                { return "one" }
func (o *One[X]) Children() []Node[X]           { return nil }

func (o *One[X]) Diff(*Variable[X]) (Node[X], error) {
	return o.f.Zero(), nil
}

func indexedName(name string, i int) string {
	return name + strconv.Itoa(i)
}
