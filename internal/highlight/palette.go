package highlight

import "github.com/gdamore/tcell/v2"

// Palette maps categories and report chrome to truecolor values.
type Palette struct {
	MatchFg        tcell.Color
	MatchBg        tcell.Color
	CurrentMatchBg tcell.Color
	// PlainMatchFg colors matches when classification highlighting is off;
	// PlainCurrentMatchFg marks the navigator's current match in that mode.
	PlainMatchFg        tcell.Color
	PlainCurrentMatchFg tcell.Color

	Timestamp tcell.Color
	LogLevel  tcell.Color
	Keyword   tcell.Color
	String    tcell.Color
	Number    tcell.Color
	URL       tcell.Color
	Namespace tcell.Color

	Path       tcell.Color
	Separator  tcell.Color
	LineNumber tcell.Color
	Summary    tcell.Color
	Warning    tcell.Color
}

// DefaultPalette returns the built-in color scheme.
func DefaultPalette() Palette {
	return Palette{
		MatchFg:             tcell.NewRGBColor(255, 255, 255),
		MatchBg:             tcell.NewRGBColor(140, 0, 0), // dark red
		CurrentMatchBg:      tcell.NewRGBColor(255, 0, 0),
		PlainMatchFg:        tcell.NewRGBColor(255, 0, 0),
		PlainCurrentMatchFg: tcell.NewRGBColor(255, 165, 0), // orange

		Timestamp: tcell.NewRGBColor(34, 139, 34),   // forest green
		LogLevel:  tcell.NewRGBColor(189, 113, 124), // value red
		Keyword:   tcell.NewRGBColor(125, 249, 255), // electric blue
		String:    tcell.NewRGBColor(189, 113, 124),
		Number:    tcell.NewRGBColor(50, 205, 50), // lime green
		URL:       tcell.NewRGBColor(50, 150, 255),
		Namespace: tcell.NewRGBColor(139, 128, 0), // dark yellow

		Path:       tcell.NewRGBColor(255, 255, 0),
		Separator:  tcell.NewRGBColor(50, 150, 255),
		LineNumber: tcell.NewRGBColor(50, 150, 255),
		Summary:    tcell.NewRGBColor(0, 255, 0),
		Warning:    tcell.NewRGBColor(255, 0, 0),
	}
}

// Foreground returns the foreground color of a classifier category.
func (p Palette) Foreground(c Category) tcell.Color {
	switch c {
	case Timestamp:
		return p.Timestamp
	case LogLevel:
		return p.LogLevel
	case Keyword:
		return p.Keyword
	case StringLiteral:
		return p.String
	case NumericLiteral:
		return p.Number
	case URL:
		return p.URL
	case Namespace:
		return p.Namespace
	case MatchHighlight:
		return p.MatchFg
	default:
		return tcell.ColorDefault
	}
}
