package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/store/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Database.PingTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	path := writeFile(t, "revenue.yaml", `
server:
  port: 9090
  shutdown_timeout: 3s
database:
  driver: sqlite
  dsn: /var/lib/revenue/revenue.db
  max_open_conns: 2
  migrate: true
auth:
  jwt_secret: from-file
log:
  level: debug
`)
	t.Setenv("REVENUE_AUTH_JWT_SECRET", "from-env")
	t.Setenv("REVENUE_SERVER_HOST", "127.0.0.1")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Log.Level)

	settings := cfg.DatabaseSettings()
	assert.Equal(t, database.DriverSQLite, settings.Driver)
	assert.Equal(t, "/var/lib/revenue/revenue.db", settings.DSN)
	assert.Equal(t, 2, settings.MaxOpenConns)
	assert.True(t, settings.Migrate)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: database.DriverPostgres, DSN: "postgres://localhost/revenue"},
			Auth:     AuthConfig{JWTSecret: "secret"},
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Database.DSN = ""
	assert.ErrorContains(t, cfg.Validate(), "dsn is required")

	cfg = valid()
	cfg.Auth.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "auth.jwt_secret is required")

	cfg = valid()
	cfg.Server.Port = 0
	assert.ErrorContains(t, cfg.Validate(), "server.port must be positive")
}
