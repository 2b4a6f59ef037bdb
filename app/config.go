package app

import (
	"fmt"
	"io/fs"
	"os"

	"earthscene/gfx"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// Params are the values the panel edits.
type Params struct {
	Color      gfx.Color `toml:"color"`
	Background gfx.Color `toml:"background"`
	ShowText   bool      `toml:"show_text"`
}

// Config configures an App. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// Assets is the asset root: a directory on the desktop, a URL in the
	// browser. FS, when set, is used instead.
	Assets string `toml:"assets"`
	FS     fs.FS  `toml:"-"`

	EarthTexture  string `toml:"earth_texture"`
	MatcapTexture string `toml:"matcap_texture"`
	// Font is a typeface JSON or TrueType/OpenType path, or "goregular".
	Font string `toml:"font"`

	Stars int `toml:"stars"`
	// Seed seeds star placement. Zero picks a random seed.
	Seed uint64 `toml:"seed"`

	Workers        int `toml:"workers"`
	MaxTextureSize int `toml:"max_texture_size"`

	// Width and Height are the initial window or headless viewport size.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	Params Params `toml:"params"`
}

func DefaultConfig() Config {
	return Config{
		Assets:         "static",
		EarthTexture:   "textures/earth-texture.jpg",
		MatcapTexture:  "textures/matcaps/8.png",
		Font:           "fonts/helvetiker_regular.typeface.json",
		Stars:          450,
		MaxTextureSize: 2048,
		Width:          960,
		Height:         640,
		Params: Params{
			Color:      gfx.White,
			Background: gfx.Black,
			ShowText:   true,
		},
	}
}

// LoadConfig reads a TOML file over cfg. Keys missing from the file keep
// their value in cfg. A leading "~" in path and in the asset root expands to
// the home directory.
func LoadConfig(path string, cfg Config) (Config, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("app: config %s: %w", path, err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg, fmt.Errorf("app: config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("app: config %s: %w", path, err)
	}
	if cfg.Assets, err = homedir.Expand(cfg.Assets); err != nil {
		return cfg, fmt.Errorf("app: config %s: assets: %w", path, err)
	}
	return cfg, nil
}
