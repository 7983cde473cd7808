package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/dao"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http-port: ":9100"
  private-http-listen: ""
database:
  type: sqlite
  path: ""
  auto-migrate: true
app:
  history-serialize-writes: true
  write-queue-timeout: 5s
user:
  register-is-enable: false
security:
  token-expiry: 7d
`)

	cfg, realpath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, realpath)

	assert.Equal(t, ":9100", cfg.Server.HttpPort)
	// empty values fall back to defaults
	assert.Equal(t, "127.0.0.1:9001", cfg.Server.PrivateHttpListen)
	assert.Equal(t, "storage/database/db.sqlite3", cfg.Database.Path)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.User.RegisterIsEnable)
	assert.True(t, cfg.App.HistorySerializeWrites)
	assert.Equal(t, "X-Trace-ID", cfg.Tracer.Header)
	assert.Equal(t, "warn", cfg.Log.Level)

	assert.Equal(t, 7*24*time.Hour, cfg.GetTokenExpiry())
	assert.Equal(t, 5*time.Second, cfg.GetWriteQueueConfig().WriteTimeout)
	assert.Equal(t, 16, cfg.GetWorkerPoolConfig().MaxWorkers)
	assert.Equal(t, time.Second, cfg.GetRateLimitFillInterval())

	dbc := cfg.GetDatabaseConfig()
	assert.Equal(t, "sqlite", dbc.Type)
	assert.Equal(t, "release", dbc.RunMode)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "server: [\n"))
	assert.Error(t, err)
}

func TestNewApp(t *testing.T) {
	cfg, _, err := LoadConfig(writeConfig(t, "app:\n  history-serialize-writes: true\n"))
	require.NoError(t, err)

	dbc := cfg.GetDatabaseConfig()
	dbc.Path = "file::memory:"
	dbc.AutoMigrate = true
	dbc.MaxOpenConns = 1
	db, err := dao.NewDBEngineWithConfig(dbc, zap.NewNop())
	require.NoError(t, err)

	a, err := NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	assert.NotNil(t, a.HistoryService)
	assert.NotNil(t, a.writeQueueMgr)
	assert.Equal(t, Version, a.Version().Version)

	require.NoError(t, a.Shutdown(context.Background()))
	require.NoError(t, a.Shutdown(context.Background()))

	_, err = NewApp(nil, zap.NewNop(), db)
	assert.Error(t, err)
}
