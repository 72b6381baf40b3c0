package highlight

import "github.com/gdamore/tcell/v2"

// Category classifies a span of a line for display.
type Category int

// Categories are listed lowest precedence first; a higher value wins when
// spans overlap.
const (
	PlainText Category = iota
	Namespace
	URL
	NumericLiteral
	StringLiteral
	Keyword
	LogLevel
	Timestamp
	MatchHighlight
)

var categoryNames = map[Category]string{
	PlainText:      "plain",
	Namespace:      "namespace",
	URL:            "url",
	NumericLiteral: "number",
	StringLiteral:  "string",
	Keyword:        "keyword",
	LogLevel:       "loglevel",
	Timestamp:      "timestamp",
	MatchHighlight: "match",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Outranks reports whether c takes precedence over other.
func (c Category) Outranks(other Category) bool {
	return c > other
}

// Span is a half-open byte range [Start, End) within one line.
type Span struct {
	Start    int
	End      int
	Category Category
	Emphasis bool
}

// Valid reports whether the span covers at least one byte.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.End > s.Start
}

// Overlaps reports whether s and other share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// StyledSpan is a span resolved to a concrete terminal color. Background
// selects whether Color applies to the background or the foreground layer.
// Rank orders spans for precedence; higher rank wins.
type StyledSpan struct {
	Start      int
	End        int
	Color      tcell.Color
	Background bool
	Rank       int
}

// rankOf folds category and emphasis into one ordering key so an emphasised
// match wins over a plain match on the same bytes.
func rankOf(s Span) int {
	rank := int(s.Category) * 2
	if s.Emphasis {
		rank++
	}
	return rank
}
