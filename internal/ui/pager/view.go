package pager

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kk-code-lab/hlgrep/internal/highlight"
	"github.com/kk-code-lab/hlgrep/internal/textutil"
)

const (
	defaultCols = 80
	defaultRows = 24

	statusText = "←/→ match  shift+←/→ file  ↑/↓ scroll  l numbers  h help  q quit"
)

// rowRef points at one terminal row of a file line. Line 0 is padding.
type rowRef struct {
	Line int
	Row  int
}

// layoutWindow places lines around the anchor. The anchor's first row lands
// on anchorRow; lines above it are shown only when they fit whole, while the
// anchor and the lines after it fill downward and the last one is cut.
// height returns the number of terminal rows a 1-based line occupies.
func layoutWindow(height func(line int) int, lineCount, anchor, anchorRow, rows int) []rowRef {
	out := make([]rowRef, rows)
	if anchorRow < 0 {
		anchorRow = 0
	}
	if anchorRow >= rows {
		anchorRow = rows - 1
	}

	free := anchorRow
	line := anchor - 1
	for line >= 1 && free > 0 {
		h := height(line)
		if h > free {
			break
		}
		free -= h
		for r := 0; r < h; r++ {
			out[free+r] = rowRef{Line: line, Row: r}
		}
		line--
	}

	pos := anchorRow
	for line = anchor; line <= lineCount && pos < rows; line++ {
		h := height(line)
		for r := 0; r < h && pos < rows; r++ {
			out[pos] = rowRef{Line: line, Row: r}
			pos++
		}
	}
	return out
}

// renderedLine is a display line cut into terminal rows.
type renderedLine struct {
	rows [][]highlight.Segment
}

func (n *Navigator) gutterWidth(lineCount int) int {
	if !n.state.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(lineCount)) + 2
}

// renderLine styles one file line and splits it into rows of width columns.
func (n *Navigator) renderLine(path string, number int, text string, width int) renderedLine {
	var matches []highlight.Span
	for _, i := range n.index.InLine(path, number) {
		m := n.index.At(i)
		if m.End <= m.Start {
			continue
		}
		matches = append(matches, highlight.Span{
			Start:    m.Start,
			End:      m.End,
			Category: highlight.MatchHighlight,
			Emphasis: i == n.state.Current,
		})
	}
	styled := n.annotator.Styled(n.annotator.Annotate(text, matches))

	display, offsets := textutil.DisplayText(text, n.tabWidth)
	remap := func(pos int) int {
		if pos < 0 {
			return 0
		}
		if pos >= len(offsets) {
			return len(display)
		}
		return offsets[pos]
	}
	for i := range styled {
		styled[i].Start = remap(styled[i].Start)
		styled[i].End = remap(styled[i].End)
	}

	segments := highlight.Compose(display, styled)
	breaks := textutil.RowBreaks(display, width, width)
	out := renderedLine{rows: make([][]highlight.Segment, len(breaks))}
	for r, start := range breaks {
		end := len(display)
		if r+1 < len(breaks) {
			end = breaks[r+1]
		}
		out.rows[r] = highlight.SliceSegments(segments, start, end)
	}
	return out
}

// Render draws the current frame.
func (n *Navigator) Render() error {
	n.refreshSize()
	n.clampScroll()
	var sb strings.Builder
	sb.WriteString("\x1b[H")

	if n.mode == ModeHelp {
		n.writeHelp(&sb)
	} else if err := n.writeView(&sb); err != nil {
		return err
	}

	if _, err := n.out.Write([]byte(sb.String())); err != nil {
		return err
	}
	if f, ok := n.out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func moveTo(sb *strings.Builder, row int) {
	fmt.Fprintf(sb, "\x1b[%d;1H\x1b[2K", row)
}

func (n *Navigator) writeView(sb *strings.Builder) error {
	cols, rows := n.state.Cols, n.state.Rows
	match := n.index.At(n.state.Current)
	palette := n.annotator.Palette()

	lines, err := n.load(match.Path)
	if err != nil {
		n.logger.Debug("load failed", "path", match.Path, "err", err)
		lines = nil
	}

	header := fmt.Sprintf("%s  [%d/%d]  line %d", match.Path, n.state.Current+1, n.index.Len(), match.Line)
	moveTo(sb, 1)
	sb.WriteString(highlight.Paint(palette.Path, textutil.TruncateToWidth(textutil.SanitizeTerminalText(header), cols)))

	content := contentRows(rows)
	gutter := n.gutterWidth(len(lines))
	width := cols - gutter
	if width < 1 {
		width = 1
	}

	cache := make(map[int]renderedLine)
	rendered := func(line int) renderedLine {
		if r, ok := cache[line]; ok {
			return r
		}
		r := n.renderLine(match.Path, line, lines[line-1], width)
		cache[line] = r
		return r
	}
	height := func(line int) int {
		return len(rendered(line).rows)
	}

	half := content / 2
	var layout []rowRef
	if match.Line >= 1 && match.Line <= len(lines) {
		layout = layoutWindow(height, len(lines), match.Line, half-n.state.Scroll, content)
	} else {
		layout = make([]rowRef, content)
	}

	for i, ref := range layout {
		moveTo(sb, i+2)
		if ref.Line == 0 {
			continue
		}
		if gutter > 0 {
			if ref.Row == 0 {
				num := fmt.Sprintf("%*d: ", gutter-2, ref.Line)
				sb.WriteString(highlight.Paint(palette.LineNumber, num))
			} else {
				sb.WriteString(strings.Repeat(" ", gutter))
			}
		}
		highlight.WriteSegments(sb, rendered(ref.Line).rows[ref.Row])
	}

	if rows >= 2 {
		moveTo(sb, rows)
		sb.WriteString("\x1b[7m")
		sb.WriteString(textutil.TruncateToWidth(statusText, cols))
		sb.WriteString(highlight.Reset)
	}
	return nil
}
