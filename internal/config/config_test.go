package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/config"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TURING_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10_000, cfg.Engine.MaxSteps)
	assert.Equal(t, 1_000, cfg.Engine.MaxTraceSteps)
	assert.Equal(t, "blank", cfg.Engine.BlankAlias)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.UI.Color)
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "turing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
engine:
  max_steps: 500
  blank_alias: _
store:
  backend: redis
  redis:
    addr: cache:6379
    db: 2
ui:
  color: false
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500, cfg.Engine.MaxSteps)
	assert.Equal(t, "_", cfg.Engine.BlankAlias)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.False(t, cfg.UI.Color)
}

func TestLoad_HomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TURING_CONFIG", "")

	dir := filepath.Join(home, ".config", "turing")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("http:\n  port: 9090\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TURING_ENGINE_MAX_STEPS", "42")
	t.Setenv("TURING_STORE_BACKEND", "bolt")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Engine.MaxSteps)
	assert.Equal(t, config.BackendBolt, cfg.Store.Backend)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("TURING_STORE_BACKEND", "postgres")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "unknown store backend")
}
