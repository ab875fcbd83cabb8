package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, p.DarkMode)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adam", "prefs.yaml")

	require.NoError(t, Save(path, Preferences{DarkMode: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dark_mode: true")

	p, err := Load(path)
	require.NoError(t, err)
	assert.True(t, p.DarkMode)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dark_mode: [oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
