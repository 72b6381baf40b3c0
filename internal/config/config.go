package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/kk-code-lab/hlgrep/internal/textutil"
)

const appName = "hlgrep"

// Config holds all application configuration.
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Display DisplayConfig `toml:"display"`
	Files   FilesConfig   `toml:"files"`
	Colors  ColorsConfig  `toml:"colors"`
}

// SearchConfig holds the default search behaviour.
type SearchConfig struct {
	Terms           []string `toml:"terms"`
	CaseInsensitive bool     `toml:"case_insensitive"`
	Regexp          bool     `toml:"regexp"`
}

// DisplayConfig holds output options.
type DisplayConfig struct {
	LineNumbers bool   `toml:"line_numbers"`
	Highlight   bool   `toml:"highlight"`
	Before      int    `toml:"before"`
	After       int    `toml:"after"`
	TabWidth    int    `toml:"tab_width"`
	Input       string `toml:"input"`
}

// FilesConfig decides which files are scanned.
type FilesConfig struct {
	BannedTypes []string `toml:"banned_types"`
	BannedNames []string `toml:"banned_names"`
	Hidden      bool     `toml:"hidden"`
	Ignore      bool     `toml:"ignore"`
	Extract     bool     `toml:"extract"`
	PDF         bool     `toml:"pdf"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Highlight: true,
			TabWidth:  textutil.DefaultTabWidth,
			Input:     "ansi",
		},
		Files: FilesConfig{
			BannedTypes: []string{"bin", "exe"},
		},
	}
}

// Load reads the config file at the default location, falling back to
// defaults when there is none.
func Load() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads path over the defaults. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges that TOML typing cannot express.
func (c *Config) Validate() error {
	if c.Display.Before < 0 || c.Display.After < 0 {
		return errors.New("display.before and display.after must not be negative")
	}
	if c.Display.TabWidth <= 0 {
		return errors.New("display.tab_width must be positive")
	}
	switch c.Display.Input {
	case "ansi", "tcell":
	default:
		return fmt.Errorf("display.input: unknown key source %q", c.Display.Input)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// DefaultPath returns the config file path: $XDG_CONFIG_HOME first, then
// ~/.config.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
