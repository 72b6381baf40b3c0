package highlight

import (
	"strings"
	"testing"
)

func spanOf(line, text string, c Category) Span {
	start := strings.Index(line, text)
	return Span{Start: start, End: start + len(text), Category: c}
}

func findCategory(spans []Span, c Category) []Span {
	var out []Span
	for _, s := range spans {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

func TestAnnotateMatchInsideStringLiteral(t *testing.T) {
	line := "The value is \"test=5\" at 2024-01-01T10:00:00Z\n"
	match := spanOf(line, "test", MatchHighlight)

	got := NewAnnotator().Annotate(line, []Span{match})

	want := []Span{
		match,
		spanOf(line, "2024-01-01T10:00:00Z", Timestamp),
		spanOf(line, "5", NumericLiteral),
	}
	if len(got) != len(want) {
		t.Fatalf("span count got %d want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("span %d got %+v want %+v", i, got[i], want[i])
		}
	}
	if s := findCategory(got, StringLiteral); len(s) != 0 {
		t.Fatalf("string literal overlapping the match must be rejected, got %+v", s)
	}
}

func TestAnnotateRejectsPartialOverlap(t *testing.T) {
	line := "ERROR \"WARNING here\" 42\n"
	got := NewAnnotator().Annotate(line, nil)

	levels := findCategory(got, LogLevel)
	if len(levels) != 2 {
		t.Fatalf("expected ERROR and WARNING log levels, got %+v", levels)
	}
	if s := findCategory(got, StringLiteral); len(s) != 0 {
		t.Fatalf("string literal partially overlapping WARNING must be dropped whole, got %+v", s)
	}
	if s := findCategory(got, NumericLiteral); len(s) != 1 || line[s[0].Start:s[0].End] != "42" {
		t.Fatalf("expected numeric literal 42, got %+v", s)
	}
}

func TestAnnotateKeepsOverlappingMatches(t *testing.T) {
	line := "foobar\n"
	matches := []Span{
		{Start: 0, End: 6},
		{Start: 3, End: 6},
		{Start: 2, End: 2},
	}
	got := NewAnnotator().Annotate(line, matches)
	if len(got) != 2 {
		t.Fatalf("expected both valid matches kept and the empty one dropped, got %+v", got)
	}
	for _, s := range got {
		if s.Category != MatchHighlight {
			t.Fatalf("match spans must be tagged MatchHighlight, got %v", s.Category)
		}
	}
}

func TestAnnotateWithoutHighlighting(t *testing.T) {
	line := "INFO test 2024-01-01T10:00:00Z\n"
	a := NewAnnotator(WithHighlighting(false))
	match := spanOf(line, "test", MatchHighlight)

	spans := a.Annotate(line, []Span{match})
	if len(spans) != 1 || spans[0] != match {
		t.Fatalf("only the match should survive without highlighting, got %+v", spans)
	}

	styled := a.Styled(spans)
	if len(styled) != 1 {
		t.Fatalf("plain mode should emit a single foreground span, got %+v", styled)
	}
	if styled[0].Background || styled[0].Color != a.Palette().PlainMatchFg {
		t.Fatalf("plain mode should use the emphasis foreground, got %+v", styled[0])
	}
}

func TestStyledWithoutHighlightingMarksCurrentMatch(t *testing.T) {
	a := NewAnnotator(WithHighlighting(false))
	styled := a.Styled([]Span{
		{Start: 0, End: 3, Category: MatchHighlight},
		{Start: 4, End: 7, Category: MatchHighlight, Emphasis: true},
	})
	if len(styled) != 2 {
		t.Fatalf("expected one foreground span per match, got %+v", styled)
	}
	if styled[0].Color != a.Palette().PlainMatchFg {
		t.Fatalf("other matches should keep the plain color, got %+v", styled[0])
	}
	if styled[1].Color != a.Palette().PlainCurrentMatchFg || styled[1].Background {
		t.Fatalf("current match should use its own foreground, got %+v", styled[1])
	}
	if styled[0].Color == styled[1].Color {
		t.Fatalf("current and other matches must differ in plain mode")
	}
}

func TestStyledEmphasisedMatchUsesCurrentBackground(t *testing.T) {
	a := NewAnnotator()
	styled := a.Styled([]Span{{Start: 0, End: 3, Category: MatchHighlight, Emphasis: true}})
	if len(styled) != 2 {
		t.Fatalf("expected background and foreground spans, got %+v", styled)
	}
	if !styled[0].Background || styled[0].Color != a.Palette().CurrentMatchBg {
		t.Fatalf("expected current match background, got %+v", styled[0])
	}
}

func TestRenderLineScenario(t *testing.T) {
	line := "ts 2024-01-01T10:00:00Z test\n"
	match := spanOf(line, "test", MatchHighlight)
	got := NewAnnotator().RenderLine(line, []Span{match})

	want := "ts " +
		"\x1b[38;2;34;139;34m" + "2024-01-01T10:00:00Z" + Reset + " " +
		fgWhite + bgDark + "test" + Reset + "\n"
	if got != want {
		t.Fatalf("RenderLine mismatch\n got %q\nwant %q", got, want)
	}
}

func TestMatchOutranksEveryClassifier(t *testing.T) {
	for _, c := range []Category{Timestamp, LogLevel, Keyword, StringLiteral, NumericLiteral, URL, Namespace, PlainText} {
		if !MatchHighlight.Outranks(c) {
			t.Fatalf("MatchHighlight should outrank %v", c)
		}
	}
	if !Timestamp.Outranks(LogLevel) || !StringLiteral.Outranks(NumericLiteral) || !URL.Outranks(Namespace) {
		t.Fatalf("category precedence order broken")
	}
}
