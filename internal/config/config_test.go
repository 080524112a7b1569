package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "invoiceflow.db", cfg.Store.SQLitePath)
	assert.Equal(t, int32(10), cfg.Store.MaxConns)
	assert.Equal(t, int32(2), cfg.Store.MinConns)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.InDelta(t, 20.0, cfg.Server.RatePerSecond, 0.001)
	assert.Equal(t, int64(25<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 4, cfg.Parse.Concurrency)
	assert.False(t, cfg.Tax.AutoApply)
	assert.Equal(t, "invoiceflow/1.0", cfg.Fetch.UserAgent)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/invoices
log:
  level: debug
  format: console
server:
  port: 9090
parse:
  concurrency: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/invoices", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Parse.Concurrency)
	// Defaults still apply for unset values
	assert.Equal(t, "invoiceflow/1.0", cfg.Fetch.UserAgent)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("INVOICEFLOW_STORE_DRIVER", "postgres")
	t.Setenv("INVOICEFLOW_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("INVOICEFLOW_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

// validDefaults returns a Config with the defaults validation needs.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Driver = "sqlite"
	cfg.Store.SQLitePath = "invoiceflow.db"
	cfg.Server.Port = 8080
	cfg.Server.RatePerSecond = 20
	cfg.Server.MaxUploadBytes = 25 << 20
	cfg.Parse.Concurrency = 4
	return cfg
}

func TestValidateParse_OK(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("parse"))
}

func TestValidateServe_OK(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("serve"))
}

func TestValidatePostgres_MissingURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "postgres"

	err := cfg.Validate("parse")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidateUnknownDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "mysql"

	err := cfg.Validate("parse")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Parse.Concurrency = 0
	err := cfg.Validate("parse")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse.concurrency must be between 1 and 64")

	cfg.Parse.Concurrency = 65
	err = cfg.Validate("parse")
	assert.Error(t, err)

	cfg.Parse.Concurrency = 64
	assert.NoError(t, cfg.Validate("parse"))
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{}
	cfg.Store.Driver = "postgres"
	cfg.Parse.Concurrency = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
	assert.Contains(t, err.Error(), "parse.concurrency")
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
