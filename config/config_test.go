package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
log_level: debug
workers: 8
server:
  port: 9000
options:
  target: es2020
  vue_version: 2
  jsx_factory: createElement
`

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML("", []byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "es2020", cfg.Options.Target)
	assert.Equal(t, 2, cfg.Options.VueVersion)
	assert.Equal(t, "createElement", cfg.Options.JSXFactory)

	_, err = LoadYAML("", []byte("nope: 1\n"))
	assert.Error(t, err)

	_, err = LoadYAML("", nil)
	assert.Error(t, err)
}

func TestMergeKeepsUnsetFields(t *testing.T) {
	base := Defaults()
	over, err := LoadYAML("", []byte(sample))
	require.NoError(t, err)
	cfg := Merge(base, over)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "vue", cfg.Options.FrameworkModule)
	assert.Equal(t, "es2020", cfg.Options.Target)
	assert.Equal(t, "Fragment", cfg.Options.JSXFragment)
	assert.Equal(t, "localhost:9000", cfg.Server.Addr())
}

func TestEnvOverlay(t *testing.T) {
	over, err := EnvOverlay([]string{
		"PATH=/bin",
		"SNIPPET_TARGET=esnext",
		"SNIPPET_JSX=true",
		"SNIPPET_VUE_VERSION=2",
		"SNIPPET_PORT=7000",
		"SNIPPET_UNKNOWN=1",
	})
	require.NoError(t, err)
	assert.Equal(t, "esnext", over.Options.Target)
	assert.True(t, over.Options.JSX)
	assert.Equal(t, 2, over.Options.VueVersion)
	assert.Equal(t, 7000, over.Server.Port)

	_, err = EnvOverlay([]string{"SNIPPET_PORT=abc"})
	assert.ErrorContains(t, err, "SNIPPET_PORT")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	cfg, err := Load(path, []string{"SNIPPET_TARGET=es2022", "SNIPPET_LOG_LEVEL=warn"})
	require.NoError(t, err)
	// Environment beats the file, the file beats defaults
	assert.Equal(t, "es2022", cfg.Options.Target)
	assert.Equal(t, 2, cfg.Options.VueVersion)
	assert.Equal(t, slog.LevelWarn, cfg.Level())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SNIPPET_TEST_ONLY_KEY=from-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("SNIPPET_TEST_ONLY_KEY") })

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "from-file", os.Getenv("SNIPPET_TEST_ONLY_KEY"))
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "debug"}.Level())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "chatty"}.Level())
}
