package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Remote.BaseURL)
	assert.Equal(t, 3, cfg.Remote.MaxRetries)
	assert.Equal(t, "mdb-json", cfg.Legacy.ExportBinary)
	assert.False(t, cfg.Import.DryRun)
	assert.Equal(t, 300, cfg.Import.CacheTTLSeconds)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("REMOTE_BASE_URL", "http://meets.internal:9000")
	t.Setenv("IMPORT_DRY_RUN", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://meets.internal:9000", cfg.Remote.BaseURL)
	assert.True(t, cfg.Import.DryRun)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LEGACY_EXPORT_BINARY=/opt/mdbtools/mdb-json\n"), 0o600)
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("LEGACY_EXPORT_BINARY") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "/opt/mdbtools/mdb-json", cfg.Legacy.ExportBinary)
}
