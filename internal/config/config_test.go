package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CHALLENGEGEN_HOST", "CHALLENGEGEN_PORT",
		"CHALLENGEGEN_TELEMETRY_ENABLED", "CHALLENGEGEN_TELEMETRY_ENDPOINT",
		"CHALLENGEGEN_TELEMETRY_SERVICE", "CHALLENGEGEN_DB",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "challengegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "challengegen", cfg.Telemetry.ServiceName)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  host: 0.0.0.0
  port: 9000
telemetry:
  enabled: true
  endpoint: collector:4318
db_path: /tmp/audit.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4318", cfg.Telemetry.Endpoint)
	// Unset keys keep their defaults.
	assert.Equal(t, "challengegen", cfg.Telemetry.ServiceName)
	assert.Equal(t, "/tmp/audit.db", cfg.DBPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "server:\n  port: 9000\n")
	t.Setenv("CHALLENGEGEN_PORT", "9100")
	t.Setenv("CHALLENGEGEN_DB", "/var/lib/cg.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "/var/lib/cg.db", cfg.DBPath)
}

func TestLoad_BadEnvValueIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHALLENGEGEN_PORT", "not-a-number")
	t.Setenv("CHALLENGEGEN_TELEMETRY_ENABLED", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "server: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "server:\n  port: 70000\n"))
	assert.ErrorContains(t, err, "invalid server port")

	_, err = Load(writeFile(t, "telemetry:\n  enabled: true\n  endpoint: \"\"\n"))
	assert.ErrorContains(t, err, "telemetry endpoint")
}
