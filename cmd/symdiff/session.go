package main

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/born-ml/symdiff/internal/config"
	"github.com/born-ml/symdiff/internal/field"
	"github.com/born-ml/symdiff/internal/graph"
	"github.com/born-ml/symdiff/internal/parse"
	"github.com/born-ml/symdiff/internal/symbolic"
)

// fieldSpec binds a value field to its kernels and to the conversion of
// configured numbers into field values.
type fieldSpec[X field.Value[X]] struct {
	kernels field.Kernels[X]
	// value converts an assignment. seeded marks the variable that dual
	// evaluation differentiates with respect to.
	value func(vals config.Values, seeded bool) (X, error)
}

var realField = fieldSpec[field.Real]{
	kernels: field.NewRealKernels(),
	value: func(vals config.Values, _ bool) (field.Real, error) {
		if len(vals) != 1 {
			return 0, fmt.Errorf("real field takes one value, got %d", len(vals))
		}
		return field.Real(vals[0]), nil
	},
}

var dualField = fieldSpec[field.Dual]{
	kernels: field.NewDualKernels(),
	value: func(vals config.Values, seeded bool) (field.Dual, error) {
		if len(vals) != 1 {
			return field.Dual{}, fmt.Errorf("dual field takes one value, got %d", len(vals))
		}
		if seeded {
			return field.Seed(vals[0]), nil
		}
		return field.NewDual(vals[0], 0), nil
	},
}

var vectorField = fieldSpec[field.Vector]{
	kernels: field.NewVectorKernels(),
	value: func(vals config.Values, _ bool) (field.Vector, error) {
		if len(vals) == 0 {
			return field.Vector{}, fmt.Errorf("vector field needs at least one value")
		}
		return field.NewVector(vals...), nil
	},
}

// expression is the field-independent view of a parsed session.
type expression interface {
	Value() (string, error)
	Formula() string
	Diff(wrt []string) ([]derivative, error)
}

type derivative struct {
	Var     string
	Expr    string
	Formula string
	Value   string
}

func openSession(opts *rootOptions, expr, seed string) (expression, error) {
	switch opts.cfg.Field {
	case config.FieldDual:
		return newSession(opts.cfg, opts.logger, dualField, expr, seed)
	case config.FieldVector:
		return newSession(opts.cfg, opts.logger, vectorField, expr, seed)
	default:
		return newSession(opts.cfg, opts.logger, realField, expr, seed)
	}
}

type session[X field.Value[X]] struct {
	f      *symbolic.Factory[X]
	g      *graph.Graph
	vars   []*symbolic.Variable[X] // in order of first appearance
	byName map[string]*symbolic.Variable[X]
	node   symbolic.Node[X]
	logger *slog.Logger
}

// newSession parses expr into a fresh graph. Variables take their values
// from the configuration; unassigned variables start at zero.
func newSession[X field.Value[X]](cfg config.Config, logger *slog.Logger, spec fieldSpec[X], expr, seed string) (*session[X], error) {
	opts := []symbolic.Option{symbolic.WithLogger(logger)}
	if cfg.Strict {
		opts = append(opts, symbolic.WithStrictChainRule())
	}
	g := graph.New()
	f, err := symbolic.New[X](g, spec.kernels, opts...)
	if err != nil {
		return nil, err
	}

	names, err := parse.Idents(expr)
	if err != nil {
		return nil, err
	}
	if seed != "" && !slices.Contains(names, seed) {
		return nil, fmt.Errorf("variable %q does not appear in the expression", seed)
	}

	s := &session[X]{f: f, g: g, byName: make(map[string]*symbolic.Variable[X]), logger: logger}
	for _, name := range names {
		vals, ok := cfg.Variables[name]
		if !ok {
			logger.Warn("variable not assigned, using zero", "name", name)
			vals = config.Values{0}
		}
		x, err := spec.value(vals, name == seed)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		v := f.Var(name, x)
		s.vars = append(s.vars, v)
		s.byName[name] = v
	}

	s.node, err = parse.Parse(f, expr, s.byName)
	if err != nil {
		return nil, err
	}
	logger.Debug("expression parsed",
		"graph", g.ID().String(),
		"vertices", g.NumVertices(),
		"edges", g.NumEdges())
	return s, nil
}

func (s *session[X]) Value() (string, error) {
	return evaluate(s.node)
}

func (s *session[X]) Formula() string {
	return s.node.Formula(s.vars)
}

// selectVars resolves names to variables. No names selects every variable.
func (s *session[X]) selectVars(names []string) ([]*symbolic.Variable[X], error) {
	if len(names) == 0 {
		return s.vars, nil
	}
	out := make([]*symbolic.Variable[X], len(names))
	for i, name := range names {
		v, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("variable %q does not appear in the expression", name)
		}
		out[i] = v
	}
	return out, nil
}

func (s *session[X]) Diff(wrt []string) ([]derivative, error) {
	vars, err := s.selectVars(wrt)
	if err != nil {
		return nil, err
	}
	grad, err := s.f.Gradient(s.node, vars...)
	if err != nil {
		return nil, err
	}

	out := make([]derivative, grad.Len())
	for i := range out {
		d := grad.At(i)
		val, err := evaluate(d)
		if err != nil {
			return nil, err
		}
		out[i] = derivative{
			Var:     vars[i].Name(),
			Expr:    d.String(),
			Formula: d.Formula(s.vars),
			Value:   val,
		}
	}
	s.logger.Debug("derivatives built", "count", len(out), "vertices", s.g.NumVertices())
	return out, nil
}

// evaluate renders the node's value. Kernel panics, such as mismatched
// vector lengths, become errors; error panic values stay wrapped.
func evaluate[X field.Value[X]](n symbolic.Node[X]) (s string, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = fmt.Errorf("evaluate %s: %w", n, e)
			return
		}
		err = fmt.Errorf("evaluate %s: %v", n, r)
	}()
	return n.Value().String(), nil
}
