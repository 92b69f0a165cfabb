package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
user = "smc"
dbname = "availability"

[technician_service]
url = "http://technicians:8080"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv(envConfigPath, "")
	t.Setenv(envDBPassword, "")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "UTC", cfg.Engine.DefaultTimezone)
	assert.Equal(t, 8, cfg.Engine.FleetScanConcurrency)
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL())
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[engine]
default_timezone = "Europe/Moscow"
fleet_scan_concurrency = 3

[redis]
addr = "localhost:6379"
`)
	t.Setenv(envConfigPath, path)
	t.Setenv(envDBPassword, "s3cret")

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
	assert.Contains(t, cfg.Database.DSN(), "dbname=availability")
	assert.Equal(t, 3, cfg.Engine.FleetScanConcurrency)
	assert.True(t, cfg.Redis.Enabled())

	loc, err := cfg.Engine.DefaultLocation()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(envConfigPath, "")

	tests := []struct {
		name    string
		content string
	}{
		{"missing database", "[technician_service]\nurl = \"http://x\"\n"},
		{"missing technician url", "[database]\nhost = \"h\"\nuser = \"u\"\ndbname = \"d\"\n"},
		{"bad timezone", minimalConfig + "[engine]\ndefault_timezone = \"Mars/Olympus\"\n"},
		{"negative concurrency", minimalConfig + "[engine]\nfleet_scan_concurrency = -1\n"},
		{"idle exceeds open", "[database]\nhost = \"h\"\nuser = \"u\"\ndbname = \"d\"\nmax_open_conns = 2\nmax_idle_conns = 5\n" +
			"[technician_service]\nurl = \"http://x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Setenv(envConfigPath, "")

	_, err := Load(writeConfig(t, "[server\nhttp_port = 1"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
