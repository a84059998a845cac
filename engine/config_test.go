package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/simplify"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "formula.yaml", `name: test
rules:
  canonical:
    severity: "off"
functions:
  - name: f
    params: [t]
    body: t^2 + 1
params:
  a: "2"
max_passes: 10
cache_max_age: 5m
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Name)
	assert.Equal(t, types.SeverityOff, cfg.Rules[simplify.RuleCanonical].Severity)
	require.Len(t, cfg.Functions, 1)
	assert.Equal(t, FunctionDef{Name: "f", Params: []string{"t"}, Body: "t^2 + 1"}, cfg.Functions[0])
	assert.Equal(t, "2", cfg.Params["a"])
	assert.Equal(t, 10, cfg.MaxPasses)
	assert.Equal(t, 5*time.Minute, cfg.CacheMaxAge)
	assert.Equal(t, defaultCacheSize, cfg.CacheSize)
	assert.Equal(t, []string{simplify.RuleCanonical}, cfg.disabledRules())
}

func TestLoadConfigTOML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "formula.toml", `name = "test"
max_passes = 12
cache_max_age = "1m"

[rules.like-terms]
severity = "off"

[params]
k = "3"

[[functions]]
name = "g"
params = ["u", "v"]
body = "u * v"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Name)
	assert.Equal(t, types.SeverityOff, cfg.Rules[simplify.RuleLikeTerms].Severity)
	require.Len(t, cfg.Functions, 1)
	assert.Equal(t, []string{"u", "v"}, cfg.Functions[0].Params)
	assert.Equal(t, "3", cfg.Params["k"])
	assert.Equal(t, 12, cfg.MaxPasses)
	assert.Equal(t, time.Minute, cfg.CacheMaxAge)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadConfig(writeFile(t, dir, "formula.json", `{}`))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, dir, "bad.yaml", "rules:\n  identity:\n    severity: loud\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, dir, "bad.toml", "name = \n"))
	assert.Error(t, err)
}

func TestLoadConfigDefault(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Len(t, cfg.Rules, len(simplify.Names()))
	assert.Empty(t, cfg.disabledRules())
}

func TestWriteConfigRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{DefaultConfigFile, "formula.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteConfig(path, DefaultConfig()))

		cfg, err := LoadConfig(path)
		require.NoError(t, err, name)
		assert.Equal(t, DefaultConfig(), cfg, name)
	}

	assert.Error(t, WriteConfig(filepath.Join(dir, "formula.ini"), DefaultConfig()))
}
