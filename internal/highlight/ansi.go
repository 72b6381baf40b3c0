package highlight

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Reset restores the default terminal style.
const Reset = "\x1b[0m"

// ColorSequence returns the truecolor SGR sequence for c, or "" when c has no
// RGB value.
func ColorSequence(c tcell.Color, background bool) string {
	if c == tcell.ColorDefault || !c.Valid() {
		return ""
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return ""
	}
	layer := "38"
	if background {
		layer = "48"
	}
	var sb strings.Builder
	sb.Grow(20)
	sb.WriteString("\x1b[")
	sb.WriteString(layer)
	sb.WriteString(";2;")
	sb.WriteString(strconv.Itoa(int(r)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(g)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(b)))
	sb.WriteByte('m')
	return sb.String()
}

// Paint wraps text in a foreground color followed by a reset.
func Paint(c tcell.Color, text string) string {
	seq := ColorSequence(c, false)
	if seq == "" {
		return text
	}
	return seq + text + Reset
}

// WriteSegments serializes segments as ANSI text. A color sequence is written
// whenever a layer changes; dropping a layer writes a reset followed by the
// layers that stay active. The output always ends in the default style.
func WriteSegments(sb *strings.Builder, segments []Segment) {
	var fg, bg tcell.Color
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		if seg.Fg != fg || seg.Bg != bg {
			dropped := (fg != tcell.ColorDefault && seg.Fg == tcell.ColorDefault) ||
				(bg != tcell.ColorDefault && seg.Bg == tcell.ColorDefault)
			if dropped {
				sb.WriteString(Reset)
				fg, bg = tcell.ColorDefault, tcell.ColorDefault
			}
			if seg.Fg != fg {
				sb.WriteString(ColorSequence(seg.Fg, false))
			}
			if seg.Bg != bg {
				sb.WriteString(ColorSequence(seg.Bg, true))
			}
			fg, bg = seg.Fg, seg.Bg
		}
		sb.WriteString(seg.Text)
	}
	if fg != tcell.ColorDefault || bg != tcell.ColorDefault {
		sb.WriteString(Reset)
	}
}

// Render composes spans over line and returns the ANSI text.
func Render(line string, spans []StyledSpan) string {
	var sb strings.Builder
	sb.Grow(len(line) + len(spans)*24)
	WriteSegments(&sb, Compose(line, spans))
	return sb.String()
}
