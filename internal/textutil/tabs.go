package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// rewrite walks text once, expanding tabs and replacing control and
// formatting runes, while recording where every source byte lands in the
// output. The map has len(text)+1 entries so a half-open range [s, e)
// translates to [offsets[s], offsets[e]).
func rewrite(text string, tabWidth int) (string, []int) {
	offsets := make([]int, len(text)+1)
	var builder strings.Builder
	builder.Grow(len(text))
	column := 0
	for i, ru := range text {
		start := builder.Len()
		offsets[i] = start
		switch {
		case ru == '\t' && tabWidth > 0:
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		case isFormattingRune(ru):
			label := formattingRuneLabels[ru]
			builder.WriteString(label)
			column += DisplayWidth(label)
		case isControlRune(ru):
			builder.WriteByte('?')
			column++
		default:
			builder.WriteRune(ru)
			column += runeColumns(ru)
		}
		// Continuation bytes of a multi-byte rune point inside its output.
		written := builder.Len() - start
		for j := 1; j < written && i+j < len(text); j++ {
			offsets[i+j] = start + j
		}
	}
	offsets[len(text)] = builder.Len()
	return builder.String(), offsets
}

func runeColumns(ru rune) int {
	width := runewidth.RuneWidth(ru)
	if width < 1 {
		width = 1
	}
	return width
}
