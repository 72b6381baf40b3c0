package highlight

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Producer yields candidate spans of a single category for one line.
type Producer interface {
	Category() Category
	Spans(line string) []Span
}

type regexpProducer struct {
	category Category
	re       *regexp.Regexp
	group    int
}

func (p regexpProducer) Category() Category {
	return p.category
}

func (p regexpProducer) Spans(line string) []Span {
	found := p.re.FindAllStringSubmatchIndex(line, -1)
	if len(found) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(found))
	for _, loc := range found {
		start, end := loc[2*p.group], loc[2*p.group+1]
		if start < 0 || end <= start {
			continue
		}
		spans = append(spans, Span{Start: start, End: end, Category: p.category})
	}
	return spans
}

var (
	timestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d*)?(?:[+-]\d{2}:\d{2}|Z)?`)
	// Longer alternatives first: regexp alternation is leftmost-first.
	logLevelPattern  = regexp.MustCompile(`INFORMATION|INFO|DEBUG|WARNING|WARN|ERROR|FAILURE|FAIL`)
	keywordPattern   = regexp.MustCompile(`null|true|false|class|def`)
	stringPattern    = regexp.MustCompile(`"[^"]*"`)
	numberRunPattern = regexp.MustCompile(`[0-9.]+`)
	urlPattern       = regexp.MustCompile(`(?:https?|ftp)://[^\s/$.?#][^\s]*`)
	namespacePattern = regexp.MustCompile(`(\w+(?:\.\w+)+)(?:\s|$)`)
)

// TimestampProducer finds ISO-8601 date-times such as 2024-01-01T10:00:00.5Z.
func TimestampProducer() Producer {
	return regexpProducer{category: Timestamp, re: timestampPattern}
}

// LogLevelProducer finds upper-case log level names.
func LogLevelProducer() Producer {
	return regexpProducer{category: LogLevel, re: logLevelPattern}
}

// KeywordProducer finds null, boolean and a few language keywords, also
// inside longer words.
func KeywordProducer() Producer {
	return regexpProducer{category: Keyword, re: keywordPattern}
}

// StringProducer finds double-quoted literals. Escapes are not understood.
func StringProducer() Producer {
	return regexpProducer{category: StringLiteral, re: stringPattern}
}

// URLProducer finds http, https and ftp URLs.
func URLProducer() Producer {
	return regexpProducer{category: URL, re: urlPattern}
}

// NamespaceProducer finds dotted identifiers followed by whitespace or the
// end of the line.
func NamespaceProducer() Producer {
	return regexpProducer{category: Namespace, re: namespacePattern, group: 1}
}

type numberProducer struct{}

// NumberProducer finds runs of digits and dots that are not glued to a word.
func NumberProducer() Producer {
	return numberProducer{}
}

func (numberProducer) Category() Category {
	return NumericLiteral
}

func (numberProducer) Spans(line string) []Span {
	var spans []Span
	for _, loc := range numberRunPattern.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]
		if !containsDigit(line[start:end]) {
			continue
		}
		if start > 0 {
			if r, _ := utf8.DecodeLastRuneInString(line[:start]); isWordRune(r) {
				continue
			}
		}
		if end < len(line) {
			if r, _ := utf8.DecodeRuneInString(line[end:]); isWordRune(r) {
				continue
			}
		}
		spans = append(spans, Span{Start: start, End: end, Category: NumericLiteral})
	}
	return spans
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// DefaultProducers returns the classifiers in the order they must run. The
// order doubles as the overlap tie-break, so it follows category precedence.
func DefaultProducers() []Producer {
	return []Producer{
		TimestampProducer(),
		LogLevelProducer(),
		KeywordProducer(),
		StringProducer(),
		NumberProducer(),
		URLProducer(),
		NamespaceProducer(),
	}
}
