package symbolic

import (
	"strings"

	"github.com/born-ml/symdiff/internal/field"
)

// ConstantVector is a fixed-length group of constants.
type ConstantVector[X field.Value[X]] struct {
	f     *Factory[X]
	elems []*Constant[X]
}

// Len returns the number of elements.
func (cv *ConstantVector[X]) Len() int { return len(cv.elems) }

// At returns the i-th element.
func (cv *ConstantVector[X]) At(i int) *Constant[X] { return cv.elems[i] }

// Values evaluates every element.
func (cv *ConstantVector[X]) Values() []X {
	out := make([]X, len(cv.elems))
	for i, c := range cv.elems {
		out[i] = c.Value()
	}
	return out
}

// Nodes returns the elements as nodes.
func (cv *ConstantVector[X]) Nodes() []Node[X] {
	out := make([]Node[X], len(cv.elems))
	for i, c := range cv.elems {
		out[i] = c
	}
	return out
}

// Diff returns a function vector of zeros.
func (cv *ConstantVector[X]) Diff(v *Variable[X]) (*FunctionVector[X], error) {
	return diffAll(cv.f, cv.Nodes(), v)
}

func (cv *ConstantVector[X]) String() string {
	return renderList(cv.Nodes(), func(n Node[X]) string { return n.String() })
}

// VariableVector is a fixed-length group of variables.
type VariableVector[X field.Value[X]] struct {
	f     *Factory[X]
	elems []*Variable[X]
}

// Len returns the number of elements.
func (vv *VariableVector[X]) Len() int { return len(vv.elems) }

// At returns the i-th variable.
func (vv *VariableVector[X]) At(i int) *Variable[X] { return vv.elems[i] }

// Variables returns a copy of the element slice, usable as a formula scope.
func (vv *VariableVector[X]) Variables() []*Variable[X] {
	out := make([]*Variable[X], len(vv.elems))
	copy(out, vv.elems)
	return out
}

// Values evaluates every variable, running pre-evaluation hooks.
func (vv *VariableVector[X]) Values() []X {
	out := make([]X, len(vv.elems))
	for i, v := range vv.elems {
		out[i] = v.Value()
	}
	return out
}

// Set assigns xs to the variables in order. Extra values are ignored.
func (vv *VariableVector[X]) Set(xs ...X) {
	for i, x := range xs {
		if i >= len(vv.elems) {
			return
		}
		vv.elems[i].Set(x)
	}
}

// Nodes returns the elements as nodes.
func (vv *VariableVector[X]) Nodes() []Node[X] {
	out := make([]Node[X], len(vv.elems))
	for i, v := range vv.elems {
		out[i] = v
	}
	return out
}

// Diff returns the unit vector selecting v, as a function vector of One and
// Zero nodes.
func (vv *VariableVector[X]) Diff(v *Variable[X]) (*FunctionVector[X], error) {
	return diffAll(vv.f, vv.Nodes(), v)
}

func (vv *VariableVector[X]) String() string {
	return renderList(vv.Nodes(), func(n Node[X]) string { return n.String() })
}

// FunctionVector is a fixed-length group of arbitrary nodes.
type FunctionVector[X field.Value[X]] struct {
	f     *Factory[X]
	elems []Node[X]
}

// Len returns the number of elements.
func (fv *FunctionVector[X]) Len() int { return len(fv.elems) }

// At returns the i-th element.
func (fv *FunctionVector[X]) At(i int) Node[X] { return fv.elems[i] }

// Nodes returns a copy of the element slice.
func (fv *FunctionVector[X]) Nodes() []Node[X] {
	out := make([]Node[X], len(fv.elems))
	copy(out, fv.elems)
	return out
}

// Values evaluates every element.
func (fv *FunctionVector[X]) Values() []X {
	out := make([]X, len(fv.elems))
	for i, n := range fv.elems {
		out[i] = n.Value()
	}
	return out
}

// Reals evaluates every element on the real path. It stops at the first
// failing element.
func (fv *FunctionVector[X]) Reals() ([]float64, error) {
	out := make([]float64, len(fv.elems))
	for i, n := range fv.elems {
		r, err := n.Real()
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Diff differentiates every element with respect to v.
func (fv *FunctionVector[X]) Diff(v *Variable[X]) (*FunctionVector[X], error) {
	return diffAll(fv.f, fv.elems, v)
}

func (fv *FunctionVector[X]) String() string {
	return renderList(fv.elems, func(n Node[X]) string { return n.String() })
}

// Formula renders every element's formula over vars.
func (fv *FunctionVector[X]) Formula(vars []*Variable[X]) string {
	return renderList(fv.elems, func(n Node[X]) string { return n.Formula(vars) })
}

func diffAll[X field.Value[X]](f *Factory[X], nodes []Node[X], v *Variable[X]) (*FunctionVector[X], error) {
	out := make([]Node[X], len(nodes))
	for i, n := range nodes {
		d, err := n.Diff(v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return &FunctionVector[X]{f: f, elems: out}, nil
}

func renderList[X field.Value[X]](nodes []Node[X], render func(Node[X]) string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = render(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
