package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env or
// collabspace.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/collabspace.db", cfg.DBPath)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 20, cfg.SyncLimit)
	assert.Equal(t, 10, cfg.DetailLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("COLLAB_PORT", "9090")
	t.Setenv("COLLAB_STORE", "local")
	t.Setenv("COLLAB_SESSION_TTL", "30m")
	t.Setenv("COLLAB_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoreLocal, cfg.Store)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_YAMLFileAndDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	yaml := "db_path: /tmp/x.db\nsync_limit: 5\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "collabspace.yaml"), []byte(yaml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COLLAB_JWT_SECRET=from-dotenv-0123456789\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("COLLAB_JWT_SECRET") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.SyncLimit)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "from-dotenv-0123456789", cfg.JWTSecret)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := Config{Port: 8080, Store: StoreSQLite, JWTSecret: "0123456789abcdef"}
	assert.NoError(t, ok.Validate())

	short := ok
	short.JWTSecret = "short"
	assert.ErrorContains(t, short.Validate(), "JWT_SECRET")

	badStore := ok
	badStore.Store = "mongo"
	assert.Error(t, badStore.Validate())

	badPort := ok
	badPort.Port = 0
	assert.Error(t, badPort.Validate())
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, (&Config{LogLevel: in}).SlogLevel(), in)
	}
}
