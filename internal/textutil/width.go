package textutil

import "github.com/rivo/uniseg"

// DisplayWidth reports the printable width of text, measured per grapheme
// cluster so emoji sequences count once.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// TruncateToWidth cuts text to at most width columns without splitting a
// grapheme cluster.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	cut := 0
	used := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		used += w
		cut += len(cluster)
	}
	return text[:cut]
}

// RowBreaks splits text into terminal rows and returns the byte offset where
// each row starts. The first row holds firstWidth columns, every following
// row holds width columns. A cluster wider than an empty row is placed on it
// anyway so the split always advances.
func RowBreaks(text string, firstWidth, width int) []int {
	if firstWidth < 1 {
		firstWidth = 1
	}
	if width < 1 {
		width = 1
	}
	breaks := []int{0}
	limit := firstWidth
	used := 0
	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used > 0 && used+w > limit {
			breaks = append(breaks, offset)
			limit = width
			used = 0
		}
		used += w
		offset += len(cluster)
	}
	return breaks
}
