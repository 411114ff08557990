package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, FieldReal, cfg.Field)
	assert.False(t, cfg.Strict)
	assert.NotNil(t, cfg.Variables)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
field: vector
strict: true
log_level: debug
epsilon: 1e-7
variables:
  x: 0.5
  w: [1, 2, 3]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, FieldVector, cfg.Field)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 1e-7, cfg.Epsilon, 0)
	assert.InDelta(t, 1e-5, cfg.Tolerance, 0, "unset keys keep defaults")
	assert.Equal(t, Values{0.5}, cfg.Variables["x"])
	assert.Equal(t, Values{1, 2, 3}, cfg.Variables["w"])
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(EnvField, "dual")
	t.Setenv(EnvStrict, "true")
	t.Setenv(EnvLogLevel, "info")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FieldDual, cfg.Field)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "info", cfg.LogLevel)

	t.Setenv(EnvStrict, "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_ValidationDeferred(t *testing.T) {
	cfg, err := Load(writeFile(t, "variables:\n  w: [1, 2, 3]\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrVectorLength)

	cfg.Field = FieldVector
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown field", "field: complex\n", ErrUnknownField},
		{"unknown level", "log_level: loud\n", ErrUnknownLogLevel},
		{"bad epsilon", "epsilon: -1\n", ErrInvalidSettings},
		{"list on real field", "variables:\n  w: [1, 2]\n", ErrVectorLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.content))
			require.NoError(t, err)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeFile(t, "variables:\n  x: {a: 1}\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "field: [real\n"))
	assert.Error(t, err)
}
