package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/born-ml/symdiff/internal/config"
	"github.com/born-ml/symdiff/internal/gradcheck"
	"github.com/born-ml/symdiff/internal/symbolic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("derivative check failed")

func isCheckFailure(err error) bool {
	return errors.Is(err, errCheckFailed)
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath  string
	field       string
	strict      bool
	logLevel    string
	sets        []string
	showMetrics bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "symdiff",
		Short:         "Symbolic differentiation of expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if opts.showMetrics {
				writeMetrics(cmd.ErrOrStderr())
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&opts.field, "field", "", "value field: real, dual or vector")
	flags.BoolVar(&opts.strict, "strict", false, "apply the chain rule to every operation")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringArrayVar(&opts.sets, "set", nil, "assign a variable, e.g. x=1.5 or w=1,2,3")
	flags.BoolVar(&opts.showMetrics, "metrics", false, "print execution graph counters to stderr")

	root.AddCommand(
		newEvalCmd(opts),
		newDiffCmd(opts),
		newCheckCmd(opts),
		newOpsCmd(),
		newVersionCmd(),
	)
	return root
}

// load merges config file, environment and flags, then builds the logger.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("field") {
		cfg.Field = o.field
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	for _, s := range o.sets {
		name, vals, err := parseAssignment(s)
		if err != nil {
			return err
		}
		cfg.Variables[name] = vals
	}
	cfg.Field = strings.ToLower(cfg.Field)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	o.cfg = cfg
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	o.logger.Debug("configuration loaded",
		"field", cfg.Field,
		"strict", cfg.Strict,
		"variables", len(cfg.Variables))
	return nil
}

// parseAssignment splits "name=v" or "name=v1,v2,...".
func parseAssignment(s string) (string, config.Values, error) {
	name, rhs, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid assignment %q: want name=value", s)
	}
	parts := strings.Split(rhs, ",")
	vals := make(config.Values, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid assignment %q: %w", s, err)
		}
		vals[i] = v
	}
	return name, vals, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var (
		wrt     string
		formula bool
	)
	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate an expression",
		Long: "Evaluate an expression at the configured variable values.\n\n" +
			"With the dual field, the variable named by --wrt is seeded so the\n" +
			"infinitesimal part of the result is the derivative.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, args[0], wrt)
			if err != nil {
				return err
			}
			val, err := s.Value()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if formula {
				fmt.Fprintln(out, s.Formula())
			}
			fmt.Fprintln(out, val)
			return nil
		},
	}
	cmd.Flags().StringVar(&wrt, "wrt", "", "variable to seed with the dual field")
	cmd.Flags().BoolVar(&formula, "formula", false, "print the formula before the value")
	return cmd
}

func newDiffCmd(opts *rootOptions) *cobra.Command {
	var (
		wrt       []string
		noEval    bool
		asFormula bool
	)
	cmd := &cobra.Command{
		Use:   "diff EXPR",
		Short: "Differentiate an expression symbolically",
		Long: "Build the partial derivative of EXPR with respect to each --wrt variable\n" +
			"(default: every variable in EXPR) and print it with its value.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, args[0], "")
			if err != nil {
				return err
			}
			derivs, err := s.Diff(wrt)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range derivs {
				text := d.Expr
				if asFormula {
					text = d.Formula
				}
				if noEval {
					fmt.Fprintf(out, "d/d%s = %s\n", d.Var, text)
					continue
				}
				fmt.Fprintf(out, "d/d%s = %s = %s\n", d.Var, text, d.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&wrt, "wrt", nil, "variable to differentiate with respect to (repeatable)")
	cmd.Flags().BoolVar(&noEval, "no-eval", false, "print derivatives without their values")
	cmd.Flags().BoolVar(&asFormula, "formula", false, "print derivatives as formulas")
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var wrt []string
	cmd := &cobra.Command{
		Use:   "check EXPR",
		Short: "Compare symbolic derivatives with finite differences",
		Long: "Check every partial derivative of EXPR against a central finite-difference\n" +
			"estimate on the real field. Exits with status 1 when any check fails.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Field != config.FieldReal {
				return fmt.Errorf("check requires the real field, got %q", opts.cfg.Field)
			}
			s, err := newSession(opts.cfg, opts.logger, realField, args[0], "")
			if err != nil {
				return err
			}
			vars, err := s.selectVars(wrt)
			if err != nil {
				return err
			}

			results, err := gradcheck.CheckAll(s.node, vars, &gradcheck.Settings{
				Step:      opts.cfg.Epsilon,
				Tolerance: opts.cfg.Tolerance,
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VAR\tAT\tSYMBOLIC\tNUMERIC\tABS ERROR\tSTATUS")
			for _, r := range results {
				status := "ok"
				if !r.OK {
					status = "FAIL"
				}
				fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%.3g\t%s\n", r.Var, r.At, r.Symbolic, r.Numeric, r.AbsError, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if failed := gradcheck.Failed(results); len(failed) > 0 {
				opts.logger.Warn("derivative check failed", "failures", len(failed), "strict", opts.cfg.Strict)
				return fmt.Errorf("%d of %d partial derivatives: %w", len(failed), len(results), errCheckFailed)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&wrt, "wrt", nil, "variable to check (repeatable, default: all)")
	return cmd
}

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOps(cmd.OutOrStdout())
		},
	}
}

func writeOps(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTOKEN\tARITY\tPARAMS\tDIFF\tREAL")
	for _, info := range symbolic.Catalogue() {
		if info.Op == symbolic.OpPolyTerm {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			info.Name, info.Token, info.Arity, info.Params,
			yesNo(info.Differentiable), yesNo(info.HasReal))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "symdiff %s\n", version)
		},
	}
}

// writeMetrics prints the execution graph counters of the default registry.
func writeMetrics(w io.Writer) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		fmt.Fprintf(w, "metrics unavailable: %v\n", err)
		return
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "symdiff_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
}
