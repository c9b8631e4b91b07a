package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")

	cfg := Default()
	cfg.ToggleTheme()
	cfg.ToggleFeed()
	cfg.SetMission("  Ship v2  ")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, loaded.Theme)
	assert.False(t, loaded.FeedVisible)
	assert.Equal(t, "Ship v2", loaded.Mission)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.True(t, cfg.FeedVisible)
	assert.Equal(t, DefaultMission, cfg.Mission)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_Nil(t *testing.T) {
	assert.Error(t, Save(filepath.Join(t.TempDir(), "s.yaml"), nil))
}

func TestSetMission(t *testing.T) {
	cfg := Default()

	assert.False(t, cfg.SetMission("   "))
	assert.Equal(t, DefaultMission, cfg.Mission)

	assert.True(t, cfg.SetMission("\tWin the quarter\n"))
	assert.Equal(t, "Win the quarter", cfg.Mission)

	assert.False(t, cfg.SetMission("Win the quarter"))
}

func TestToggles(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ThemeLight, cfg.ToggleTheme())
	assert.Equal(t, ThemeDark, cfg.ToggleTheme())
	assert.False(t, cfg.ToggleFeed())
	assert.True(t, cfg.ToggleFeed())
}
