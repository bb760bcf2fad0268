//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbits/tips-service/internal/platform/config"
)

// writeConfigs creates a configs/ dir with the given files in a temp
// working directory and chdirs into it for the duration of the test.
func writeConfigs(t *testing.T, files map[string]string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))

	for name, content := range files {
		path := filepath.Join(dir, "configs", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// Neutralize any ambient PORT from the host environment
	t.Setenv("PORT", "")
}

// TestConfigLoad_BaseFileOverridesDefaults verifies that configs/base.yaml
// takes precedence over built-in defaults while untouched keys keep theirs.
func TestConfigLoad_BaseFileOverridesDefaults(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": `
server:
  port: 6001
storage:
  path: /var/lib/tips/tips.db
  busy_timeout: 2s
`,
	})

	cfg, err := config.Load("local")
	require.NoError(t, err)

	assert.Equal(t, 6001, cfg.Server.Port)
	assert.Equal(t, "/var/lib/tips/tips.db", cfg.Storage.Path)
	assert.Equal(t, 2*time.Second, cfg.Storage.BusyTimeout)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
}

// TestConfigLoad_ProfileOverridesBase verifies that the profile file wins
// over base.yaml and the merged result validates.
func TestConfigLoad_ProfileOverridesBase(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": `
server:
  port: 6001
log:
  level: info
`,
		"prod.yaml": `
server:
  port: 7001
log:
  level: warn
app:
  environment: prod
`,
	})

	cfg, err := config.Load("prod")
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "prod", cfg.App.Environment)

	require.NoError(t, cfg.Validate())
}

// TestConfigLoad_EnvOverridesFiles verifies that APP_ environment
// variables win over both config files.
func TestConfigLoad_EnvOverridesFiles(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": "server:\n  port: 6001\n",
		"prod.yaml": "server:\n  port: 7001\n",
	})

	t.Setenv("APP_SERVER_PORT", "8001")

	cfg, err := config.Load("prod")
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Server.Port)
}

// TestConfigLoad_PortEnvWinsOverEverything verifies the bare PORT
// variable beats files and APP_ variables for the listen port.
func TestConfigLoad_PortEnvWinsOverEverything(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": "server:\n  port: 6001\n",
		"prod.yaml": "server:\n  port: 7001\n",
	})

	t.Setenv("APP_SERVER_PORT", "8001")
	t.Setenv("PORT", "9001")

	cfg, err := config.Load("prod")
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
}

// TestConfigLoad_LogFileSinkFromYAML verifies the rolling file sink
// block round-trips from YAML into the nested config struct.
func TestConfigLoad_LogFileSinkFromYAML(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": `
log:
  format: pretty
  file:
    enabled: true
    path: /var/log/tips/tips.log
    max_size: 10
    max_backups: 2
    max_age: 14
    compress: true
`,
	})

	cfg, err := config.Load("local")
	require.NoError(t, err)

	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.True(t, cfg.Log.File.Enabled)
	assert.Equal(t, "/var/log/tips/tips.log", cfg.Log.File.Path)
	assert.Equal(t, 10, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, 2, cfg.Log.File.MaxBackups)
	assert.Equal(t, 14, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)

	require.NoError(t, cfg.Validate())
}

// TestConfigLoad_ValidationCatchesBadFiles verifies that a file setting
// an out-of-range value loads but fails validation with a readable path.
func TestConfigLoad_ValidationCatchesBadFiles(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base.yaml": "server:\n  port: 0\n",
	})

	cfg, err := config.Load("local")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
