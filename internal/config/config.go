// Package config loads editor settings from a TOML file and watches
// it for live reload.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidSetting is wrapped by validation failures.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings holds the tunables of the layout and highlight layers.
type Settings struct {
	// TabWidth is the tab stop interval in cells.
	TabWidth int `toml:"tab_width"`

	// WrapColumn is the wrap width in cells. 0 disables wrapping.
	WrapColumn int `toml:"wrap_column"`

	// WrapAtWord prefers breaking after whitespace when wrapping.
	WrapAtWord bool `toml:"wrap_at_word"`

	// Theme is the path to a theme JSON file. Empty selects the
	// built-in default theme.
	Theme string `toml:"theme"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		TabWidth:   4,
		WrapColumn: 0,
		WrapAtWord: true,
	}
}

// Load reads settings from a TOML file. A missing file is not an
// error; defaults are returned. Unknown keys are ignored.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML settings. Keys absent from the
// data keep their default values.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first out-of-range setting.
func (s Settings) Validate() error {
	if s.TabWidth < 1 || s.TabWidth > 16 {
		return fmt.Errorf("%w: tab_width %d not in [1,16]", ErrInvalidSetting, s.TabWidth)
	}
	if s.WrapColumn < 0 {
		return fmt.Errorf("%w: wrap_column %d is negative", ErrInvalidSetting, s.WrapColumn)
	}
	if s.WrapColumn > 0 && s.WrapColumn < 2 {
		return fmt.Errorf("%w: wrap_column %d too narrow for wide characters", ErrInvalidSetting, s.WrapColumn)
	}
	return nil
}
