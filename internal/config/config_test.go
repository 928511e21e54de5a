package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "savethedogs.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[session]
seed = 42
tick_rate = "100ms"

[persist]
driver = "postgres"
`))
	require.NoError(t, err)
	assert.EqualValues(t, 42, cfg.Session.Seed)
	assert.Equal(t, 100*time.Millisecond, cfg.Session.TickRate)
	assert.Equal(t, 5, cfg.Session.MainEvery)
	assert.Equal(t, "postgres", cfg.Persist.Driver)
	assert.Equal(t, "save/profile.dat", cfg.Persist.FilePath)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "savethedogs.toml"))
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, cfg.Session.TickRate)
	assert.Equal(t, "file", cfg.Persist.Driver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	_, err := Load(writeConfig(t, "[persist]\ndriver = \"redis\"\n"))
	assert.ErrorContains(t, err, "persist.driver")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
