package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/born-ml/symdiff/internal/config"
	"github.com/born-ml/symdiff/internal/field"
	"github.com/born-ml/symdiff/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "symdiff "+version+"\n", out)
}

func TestOps(t *testing.T) {
	out, _, err := execute(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "sigmoid")
	assert.Contains(t, out, "leakyrelu")
}

func TestEval(t *testing.T) {
	out, _, err := execute(t, "eval", "sigmoid(x)", "--set", "x=3")
	require.NoError(t, err)

	got, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.9525741268224334, got, 1e-12)
}

func TestEval_Formula(t *testing.T) {
	out, _, err := execute(t, "eval", "(x + 1)", "--set", "x=2", "--formula")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "3", lines[1])
}

func TestEval_DualSeed(t *testing.T) {
	out, _, err := execute(t, "eval", "(x * x)", "--field", "dual", "--set", "x=3", "--wrt", "x")
	require.NoError(t, err)
	assert.Equal(t, "(9+6ϵ)\n", out)
}

func TestEval_DualSeedUnknown(t *testing.T) {
	_, _, err := execute(t, "eval", "(x * x)", "--field", "dual", "--wrt", "y")
	assert.Error(t, err)
}

func TestEval_Vector(t *testing.T) {
	out, _, err := execute(t, "eval", "(w + w)", "--field", "vector", "--set", "w=1,2")
	require.NoError(t, err)
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "4")
}

func TestEval_UnassignedDefaultsToZero(t *testing.T) {
	out, stderr, err := execute(t, "eval", "(x + 1)")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
	assert.Contains(t, stderr, "variable not assigned")
}

func TestEval_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variables:\n  x: 2\n"), 0o600))

	out, _, err := execute(t, "eval", "(x * x)", "-c", path)
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	// Flags override the file.
	out, _, err = execute(t, "eval", "(x * x)", "-c", path, "--set", "x=3")
	require.NoError(t, err)
	assert.Equal(t, "9\n", out)
}

func TestEval_FieldFlagOverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variables:\n  w: [1, 2, 3]\n"), 0o600))

	_, _, err := execute(t, "eval", "w", "-c", path)
	assert.ErrorIs(t, err, config.ErrVectorLength)

	out, _, err := execute(t, "eval", "w", "-c", path, "--field", "vector")
	require.NoError(t, err)
	assert.Equal(t, field.NewVector(1, 2, 3).String()+"\n", out)
}

func TestEval_VectorLengthMismatch(t *testing.T) {
	_, _, err := execute(t, "eval", "(a + b)", "--field", "vector", "--set", "a=1,2", "--set", "b=1,2,3")
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrShapeMismatch)
}

func TestEval_SyntaxError(t *testing.T) {
	_, _, err := execute(t, "eval", "(x +")
	require.Error(t, err)

	var se *parse.SyntaxError
	assert.True(t, errors.As(err, &se))
}

func TestDiff(t *testing.T) {
	out, _, err := execute(t, "diff", "(x * y)", "--set", "x=2", "--set", "y=5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "d/dx = "), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], " = 5"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "d/dy = "), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], " = 2"), lines[1])
}

func TestDiff_Wrt(t *testing.T) {
	out, _, err := execute(t, "diff", "(x * y)", "--wrt", "y", "--set", "x=2", "--no-eval")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "d/dy = "))
	assert.Equal(t, 1, strings.Count(lines[0], " = "), "no value printed")
}

func TestDiff_UnknownVariable(t *testing.T) {
	_, _, err := execute(t, "diff", "(x * y)", "--wrt", "z")
	assert.Error(t, err)
}

func TestDiff_Floor(t *testing.T) {
	_, _, err := execute(t, "diff", "floor(x)")
	assert.Error(t, err)
}

func TestCheck_LegacyFails(t *testing.T) {
	out, _, err := execute(t, "check", "tanh((2 * x))", "--set", "x=0.4")
	require.Error(t, err)
	assert.True(t, isCheckFailure(err))
	assert.Contains(t, out, "FAIL")
}

func TestCheck_Strict(t *testing.T) {
	out, _, err := execute(t, "check", "tanh((2 * x))", "--set", "x=0.4", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "FAIL")
}

func TestCheck_RealFieldOnly(t *testing.T) {
	_, _, err := execute(t, "check", "(x * x)", "--field", "dual")
	require.Error(t, err)
	assert.False(t, isCheckFailure(err))
}

func TestInvalidField(t *testing.T) {
	_, _, err := execute(t, "eval", "x", "--field", "complex")
	assert.ErrorIs(t, err, config.ErrUnknownField)
}

func TestInvalidAssignment(t *testing.T) {
	_, _, err := execute(t, "eval", "x", "--set", "x")
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	_, stderr, err := execute(t, "eval", "(x + 1)", "--set", "x=1", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, stderr, "symdiff_graph_vertices_total")
}

func TestDebugLogging(t *testing.T) {
	_, stderr, err := execute(t, "eval", "(x + 1)", "--set", "x=1", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "expression parsed")
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		vals    config.Values
		wantErr bool
	}{
		{"x=1.5", "x", config.Values{1.5}, false},
		{" w = 1, 2 ,3", "w", config.Values{1, 2, 3}, false},
		{"x=-2e-3", "x", config.Values{-0.002}, false},
		{"x", "", nil, true},
		{"=1", "", nil, true},
		{"x=a", "", nil, true},
		{"x=", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, vals, err := parseAssignment(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.vals, vals)
		})
	}
}

func TestRun_ExitCodes(t *testing.T) {
	assert.Equal(t, exitSuccess, run([]string{"version"}))
	assert.Equal(t, exitError, run([]string{"eval"}))
	assert.Equal(t, exitFailure, run([]string{"check", "tanh((2 * x))", "--set", "x=0.4"}))
}
