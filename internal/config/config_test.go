package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/ideas.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":8080", cfg.Server.Addr())
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9090
  api_prefix: ""
  read_timeout: 5s
  cors_origins: ["https://ideas.example.com"]
database:
  driver: postgres
  dsn: postgres://localhost/ideas?sslmode=disable
log:
  format: json
metrics:
  enabled: false
`)

	cfg, err := load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "", cfg.Server.APIPrefix)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout, "unset keys keep their default")
	assert.Equal(t, []string{"https://ideas.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "server:\n  port: 9090\n")

	cfg, err := load(path, env(map[string]string{
		"PORT":            "7000",
		"DB_PATH":         "/tmp/a.db",
		"DATABASE_URL":    "/tmp/b.db",
		"CORS_ORIGINS":    "http://a.test, http://b.test,",
		"LOG_LEVEL":       "debug",
		"METRICS_ENABLED": "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/tmp/b.db", cfg.Database.DSN)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"non-numeric port", map[string]string{"PORT": "http"}, "PORT must be a number"},
		{"port out of range", map[string]string{"PORT": "70000"}, "server.port"},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "database.driver"},
		{"empty dsn", map[string]string{"DB_PATH": " "}, "database.dsn"},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}, "log.level"},
		{"bad format", map[string]string{"LOG_FORMAT": "xml"}, "log.format"},
		{"bad prefix", map[string]string{"API_PREFIX": "api/"}, "server.api_prefix"},
		{"bad bool", map[string]string{"METRICS_ENABLED": "sometimes"}, "METRICS_ENABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load("", env(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))
	assert.ErrorContains(t, err, "reading config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "server: [unclosed")
	_, err := load(path, env(nil))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestValidate_ReportsEverything(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	cfg.Database.Driver = ""
	cfg.Log.Format = "yaml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "database.driver")
	assert.Contains(t, err.Error(), "log.format")
}
