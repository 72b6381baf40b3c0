package config

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/hlgrep/internal/highlight"
)

// ColorsConfig overrides palette entries. Values are tcell color names or
// "#rrggbb"; empty keeps the default.
type ColorsConfig struct {
	Match           string `toml:"match"`
	MatchBackground string `toml:"match_background"`
	CurrentMatch    string `toml:"current_match"`
	PlainMatch      string `toml:"plain_match"`
	PlainCurrent    string `toml:"plain_current_match"`
	Timestamp       string `toml:"timestamp"`
	LogLevel        string `toml:"log_level"`
	Keyword         string `toml:"keyword"`
	String          string `toml:"string"`
	Number          string `toml:"number"`
	URL             string `toml:"url"`
	Namespace       string `toml:"namespace"`
	Path            string `toml:"path"`
	Separator       string `toml:"separator"`
	LineNumber      string `toml:"line_number"`
	Summary         string `toml:"summary"`
	Warning         string `toml:"warning"`
}

// Apply returns p with every configured override applied.
func (c ColorsConfig) Apply(p highlight.Palette) (highlight.Palette, error) {
	overrides := []struct {
		key   string
		value string
		dst   *tcell.Color
	}{
		{"match", c.Match, &p.MatchFg},
		{"match_background", c.MatchBackground, &p.MatchBg},
		{"current_match", c.CurrentMatch, &p.CurrentMatchBg},
		{"plain_match", c.PlainMatch, &p.PlainMatchFg},
		{"plain_current_match", c.PlainCurrent, &p.PlainCurrentMatchFg},
		{"timestamp", c.Timestamp, &p.Timestamp},
		{"log_level", c.LogLevel, &p.LogLevel},
		{"keyword", c.Keyword, &p.Keyword},
		{"string", c.String, &p.String},
		{"number", c.Number, &p.Number},
		{"url", c.URL, &p.URL},
		{"namespace", c.Namespace, &p.Namespace},
		{"path", c.Path, &p.Path},
		{"separator", c.Separator, &p.Separator},
		{"line_number", c.LineNumber, &p.LineNumber},
		{"summary", c.Summary, &p.Summary},
		{"warning", c.Warning, &p.Warning},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		color := tcell.GetColor(o.value)
		if color == tcell.ColorDefault {
			return p, fmt.Errorf("colors.%s: unknown color %q", o.key, o.value)
		}
		*o.dst = color
	}
	return p, nil
}

// Palette returns the default palette with the configured overrides.
func (c *Config) Palette() (highlight.Palette, error) {
	return c.Colors.Apply(highlight.DefaultPalette())
}
