package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/registry"
)

func TestOpenShellFallsBackToMemoryPrefs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := loadCLIConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	// A regular file where a directory is expected makes the store unopenable.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.PrefsPath = filepath.Join(blocker, "sub", "prefs.duckdb")

	shell, closeShell, err := openShell(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeShell()

	shell.Start()
	st := shell.Sidebar.State()
	assert.Equal(t, registry.Default().First().ID, st.CurrentSectionID)
	assert.False(t, st.Collapsed)

	// Preferences still work for the session.
	shell.Sidebar.Navigate("sales")
	shell.Sidebar.Toggle()
	assert.Equal(t, "sales", shell.Sidebar.Current())
	assert.True(t, shell.Sidebar.Collapsed())
}

func TestOpenShellPersistsToDatabase(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := loadCLIConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	cfg.PrefsPath = filepath.Join(t.TempDir(), "prefs.duckdb")

	shell, closeShell, err := openShell(cfg, zap.NewNop())
	require.NoError(t, err)
	shell.Start()
	shell.Sidebar.Navigate("reports")
	closeShell()

	shell, closeShell, err = openShell(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeShell()
	shell.Start()
	assert.Equal(t, "reports", shell.Sidebar.Current())
}
