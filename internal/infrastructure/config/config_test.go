package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_CreatesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := LoadFrom(path).Load()
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.Daemon.RequestTimeout)
	assert.Equal(t, "teamboardd.sock", filepath.Base(cfg.Daemon.SocketPath()))

	_, err = os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(cfg.Storage.BoardsPath)
	assert.NoError(t, err)
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: sqlite
  database_path: /tmp/boards.db
daemon:
  request_timeout: 3s
`), 0644))

	cfg, err := LoadFrom(path).Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/boards.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 3*time.Second, cfg.Daemon.RequestTimeout)
	assert.Equal(t, "teamboardd.sock", cfg.Daemon.SocketName)
	assert.Equal(t, []string{"q", "ctrl+c"}, cfg.Keybindings.Quit)
}

func TestLoader_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: postgres\n"), 0644))

	_, err := LoadFrom(path).Load()
	assert.Error(t, err)
}

func TestNewLoader_HonoursEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	t.Setenv(ConfigPathEnv, path)

	l, err := NewLoader()
	require.NoError(t, err)
	assert.Equal(t, path, l.GetConfigPath())
}
