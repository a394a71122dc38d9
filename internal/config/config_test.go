package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loupe.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
log-level = "debug"
max-dir-entries = 64
include = ["*.go", "*.tmpl"]

[collections]
stdlib = "/usr/lib/loupe/std"
`)

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 64, cfg.MaxDirEntries)
	assert.Equal(t, []string{"*.go", "*.tmpl"}, cfg.Include)
	assert.Equal(t, map[string]string{"stdlib": "/usr/lib/loupe/std"}, cfg.Collections)
	assert.Equal(t, "auto", cfg.WorkspaceScan, "untouched keys keep defaults")
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `log-level = "warn"`)
	t.Setenv("LOUPE_LOG_LEVEL", "trace")

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.LogLevel)
}

func TestLoadExplicitOverridesWinOverEnvironment(t *testing.T) {
	t.Setenv("LOUPE_LOG_LEVEL", "trace")

	cfg, err := Load("", map[string]interface{}{"log-level": "error"})

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `colors = true`)

	_, err := Load(path, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: invalid")
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	_, err := Load("", map[string]interface{}{"log-level": "loud"})

	require.Error(t, err)
}

func TestLoadRejectsNonPositiveFanOut(t *testing.T) {
	_, err := Load("", map[string]interface{}{"max-dir-entries": 0})

	require.Error(t, err)
}

func TestLoadRejectsBadWorkspaceScan(t *testing.T) {
	_, err := Load("", map[string]interface{}{"workspace-scan": "maybe"})

	require.Error(t, err)
}

func TestWorkspaceScanEnabled(t *testing.T) {
	assert.True(t, WorkspaceScanEnabled("on"))
	assert.False(t, WorkspaceScanEnabled("off"))
	// "auto" depends on CI detection; it must resolve without panicking.
	_ = WorkspaceScanEnabled("auto")
}
