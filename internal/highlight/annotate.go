package highlight

// Annotator turns a line and its search matches into styled spans.
type Annotator struct {
	producers []Producer
	palette   Palette
	highlight bool
}

// Option customises an Annotator.
type Option func(*Annotator)

// WithProducers replaces the classifier list. Order matters: earlier
// producers win overlaps.
func WithProducers(producers ...Producer) Option {
	return func(a *Annotator) {
		a.producers = producers
	}
}

// WithPalette sets the colors used by Styled.
func WithPalette(p Palette) Option {
	return func(a *Annotator) {
		a.palette = p
	}
}

// WithHighlighting toggles classification highlighting. Match spans are
// annotated either way.
func WithHighlighting(enabled bool) Option {
	return func(a *Annotator) {
		a.highlight = enabled
	}
}

// NewAnnotator creates an annotator with the default classifiers, palette and
// highlighting enabled.
func NewAnnotator(opts ...Option) *Annotator {
	a := &Annotator{
		producers: DefaultProducers(),
		palette:   DefaultPalette(),
		highlight: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Palette returns the annotator's colors.
func (a *Annotator) Palette() Palette {
	return a.palette
}

// Annotate returns the accepted spans for line. Every valid match span is
// kept, even when matches overlap each other. A classifier span that overlaps
// any span accepted before it is rejected whole.
func (a *Annotator) Annotate(line string, matches []Span) []Span {
	accepted := make([]Span, 0, len(matches)+4)
	for _, m := range matches {
		if !m.Valid() || m.Start >= len(line) {
			continue
		}
		m.Category = MatchHighlight
		accepted = append(accepted, m)
	}
	if !a.highlight {
		return accepted
	}

	for _, p := range a.producers {
		for _, candidate := range p.Spans(line) {
			if !candidate.Valid() || overlapsAny(candidate, accepted) {
				continue
			}
			accepted = append(accepted, candidate)
		}
	}
	return accepted
}

func overlapsAny(s Span, spans []Span) bool {
	for _, other := range spans {
		if s.Overlaps(other) {
			return true
		}
	}
	return false
}

// Styled maps annotated spans to palette colors. With highlighting on a match
// becomes a background plus foreground pair; with highlighting off it is a
// single foreground color. Emphasis picks the current-match variant in both
// modes.
func (a *Annotator) Styled(spans []Span) []StyledSpan {
	styled := make([]StyledSpan, 0, len(spans)+2)
	for _, s := range spans {
		rank := rankOf(s)
		if s.Category != MatchHighlight {
			styled = append(styled, StyledSpan{Start: s.Start, End: s.End, Color: a.palette.Foreground(s.Category), Rank: rank})
			continue
		}
		if !a.highlight {
			fg := a.palette.PlainMatchFg
			if s.Emphasis {
				fg = a.palette.PlainCurrentMatchFg
			}
			styled = append(styled, StyledSpan{Start: s.Start, End: s.End, Color: fg, Rank: rank})
			continue
		}
		bg := a.palette.MatchBg
		if s.Emphasis {
			bg = a.palette.CurrentMatchBg
		}
		styled = append(styled,
			StyledSpan{Start: s.Start, End: s.End, Color: bg, Background: true, Rank: rank},
			StyledSpan{Start: s.Start, End: s.End, Color: a.palette.MatchFg, Rank: rank},
		)
	}
	return styled
}

// RenderLine annotates and renders line in one step.
func (a *Annotator) RenderLine(line string, matches []Span) string {
	return Render(line, a.Styled(a.Annotate(line, matches)))
}
