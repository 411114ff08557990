// Package gradcheck verifies symbolic derivatives against finite differences.
//
// The check builds d(n)/d(v) symbolically, evaluates it at the variable's
// current value, and compares it with a central finite-difference estimate
// obtained by perturbing the variable and re-evaluating n. Both sides use the
// kernel path (Value), so operations without a real-valued form are covered.
package gradcheck

import (
	"math"

	"github.com/born-ml/symdiff/internal/field"
	"github.com/born-ml/symdiff/internal/symbolic"
	"gonum.org/v1/gonum/diff/fd"
)

// Default settings.
const (
	DefaultStep      = 1e-6
	DefaultTolerance = 1e-5
)

// Settings configures a check. A zero field selects its default.
type Settings struct {
	// Step is the finite-difference step size.
	Step float64
	// Tolerance bounds |symbolic - numeric| relative to max(1, |numeric|).
	Tolerance float64
	// Formula is the finite-difference stencil. Central is used when nil.
	Formula *fd.Formula
}

func (s *Settings) resolve() (step, tol float64, formula fd.Formula) {
	step, tol, formula = DefaultStep, DefaultTolerance, fd.Central
	if s == nil {
		return step, tol, formula
	}
	if s.Step > 0 {
		step = s.Step
	}
	if s.Tolerance > 0 {
		tol = s.Tolerance
	}
	if s.Formula != nil {
		formula = *s.Formula
	}
	return step, tol, formula
}

// Result is the outcome of checking one partial derivative.
type Result struct {
	Var        string
	At         float64
	Derivative string // rendered symbolic derivative
	Symbolic   float64
	Numeric    float64
	AbsError   float64
	OK         bool
}

// Check compares d(n)/d(v) with a finite-difference estimate at v's current
// value. v is restored before returning. It fails only when n cannot be
// differentiated.
func Check(n symbolic.Node[field.Real], v *symbolic.Variable[field.Real], s *Settings) (Result, error) {
	step, tol, formula := s.resolve()

	d, err := n.Diff(v)
	if err != nil {
		return Result{}, err
	}

	at := v.Value()
	defer v.Set(at)

	symbolicValue := float64(d.Value())
	numeric := fd.Derivative(func(x float64) float64 {
		v.Set(field.Real(x))
		return float64(n.Value())
	}, float64(at), &fd.Settings{
		Formula: formula,
		Step:    step,
	})

	absErr := math.Abs(symbolicValue - numeric)
	return Result{
		Var:        v.Name(),
		At:         float64(at),
		Derivative: d.String(),
		Symbolic:   symbolicValue,
		Numeric:    numeric,
		AbsError:   absErr,
		OK:         absErr <= tol*math.Max(1, math.Abs(numeric)),
	}, nil
}

// CheckAll checks the partial derivative of n with respect to each of vars.
func CheckAll(n symbolic.Node[field.Real], vars []*symbolic.Variable[field.Real], s *Settings) ([]Result, error) {
	results := make([]Result, 0, len(vars))
	for _, v := range vars {
		r, err := Check(n, v, s)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Failed returns the results that exceeded the tolerance.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}
