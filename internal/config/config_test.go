package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDBPath(), cfg.DBPath)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, NotifierDesktop, cfg.Notifier)
}

func TestLoad_OverlaysFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "db_path: /tmp/anote-test.db\ntick_interval: 30s\nnotifier: log\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/anote-test.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.TickInterval)
	assert.Equal(t, NotifierLog, cfg.Notifier)
}

func TestLoad_ExpandsHome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: ~/notes.db\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes.db"), cfg.DBPath)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := &Config{DBPath: "/data/notes.db", TickInterval: 2 * time.Minute, Notifier: NotifierLog}

	require.NoError(t, cfg.Save(path))
	assert.True(t, ConfigExists(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
