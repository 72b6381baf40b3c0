package search

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/hlgrep/internal/highlight"
	"github.com/kk-code-lab/hlgrep/internal/textutil"
)

// PrinterOptions controls the streaming report.
type PrinterOptions struct {
	LineNumbers bool
	FilesOnly   bool
}

// Printer writes scan output as truecolor ANSI text. It implements Sink.
type Printer struct {
	w         *bufio.Writer
	annotator *highlight.Annotator
	palette   highlight.Palette
	opts      PrinterOptions
}

// NewPrinter wraps w. Call Flush when done.
func NewPrinter(w io.Writer, annotator *highlight.Annotator, opts PrinterOptions) *Printer {
	if annotator == nil {
		annotator = highlight.NewAnnotator()
	}
	return &Printer{
		w:         bufio.NewWriter(w),
		annotator: annotator,
		palette:   annotator.Palette(),
		opts:      opts,
	}
}

// BeginFile prints the path of a file with its first match.
func (p *Printer) BeginFile(path string) {
	_, _ = p.w.WriteString(p.paintPath(p.palette.Path, path) + "\n")
}

// paintPath colors a file name after neutralising control and formatting
// runes, so a crafted name cannot emit escape sequences.
func (p *Printer) paintPath(color tcell.Color, path string) string {
	return highlight.Paint(color, textutil.SanitizeTerminalText(path))
}

// Line prints one content line, highlighting hits.
func (p *Printer) Line(number int, text string, hits []Occurrence) {
	if p.opts.FilesOnly {
		return
	}
	if p.opts.LineNumbers {
		_, _ = p.w.WriteString(highlight.Paint(p.palette.LineNumber, fmt.Sprintf("%5d:", number)))
	}
	_, _ = p.w.WriteString(p.annotator.RenderLine(text, hitSpans(hits)))
}

// Separator marks a gap between printed blocks of one file.
func (p *Printer) Separator() {
	if p.opts.FilesOnly {
		return
	}
	_, _ = p.w.WriteString(highlight.Paint(p.palette.Separator, "------") + "\n")
}

// Summary prints the match totals.
func (p *Printer) Summary(r *Result) {
	msg := fmt.Sprintf("Found %d matches inside %d different files", r.MatchCount(), r.FilesWithMatches())
	_, _ = p.w.WriteString(highlight.Paint(p.palette.Summary, msg) + "\n")
}

// SkippedReport lists skipped files and files without matches.
func (p *Printer) SkippedReport(r *Result) {
	_, _ = p.w.WriteString(highlight.Paint(p.palette.Path, "Skipped:") + "\n")
	for _, s := range r.Skipped {
		_, _ = fmt.Fprintf(p.w, "%s (%s)\n", p.paintPath(p.palette.Warning, s.Path), s.Reason)
	}
	_, _ = p.w.WriteString(highlight.Paint(p.palette.Path, "Found nothing:") + "\n")
	for _, path := range r.NothingFound {
		_, _ = p.w.WriteString(p.paintPath(p.palette.Warning, path) + "\n")
	}
}

// Flush writes buffered output.
func (p *Printer) Flush() error {
	return p.w.Flush()
}

// hitSpans converts occurrences to match spans for the annotator.
func hitSpans(hits []Occurrence) []highlight.Span {
	if len(hits) == 0 {
		return nil
	}
	spans := make([]highlight.Span, len(hits))
	for i, h := range hits {
		spans[i] = highlight.Span{Start: h.Start, End: h.End, Category: highlight.MatchHighlight}
	}
	return spans
}
