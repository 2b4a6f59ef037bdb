package app

import (
	"os"
	"path/filepath"
	"testing"

	"earthscene/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigOverlays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earth.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
stars = 12
font = "goregular"

[params]
color = "#ff8000"
show_text = false
`), 0o644))

	cfg, err := LoadConfig(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Stars)
	assert.Equal(t, "goregular", cfg.Font)
	assert.Equal(t, gfx.Hex(0xff8000), cfg.Params.Color)
	assert.False(t, cfg.Params.ShowText)
	assert.Equal(t, gfx.Black, cfg.Params.Background)
	assert.Equal(t, "textures/earth-texture.jpg", cfg.EarthTexture)
	assert.Equal(t, "static", cfg.Assets)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"), DefaultConfig())
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("stars = ["), 0o644))
	_, err = LoadConfig(path, DefaultConfig())
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`[params]
color = "blue"`), 0o644))
	_, err = LoadConfig(path, DefaultConfig())
	require.Error(t, err)
}
