package highlight

import (
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Segment is a run of text rendered with a single style. A zero color means
// the terminal default.
type Segment struct {
	Text string
	Fg   tcell.Color
	Bg   tcell.Color
}

type activeSpan struct {
	end   int
	color tcell.Color
	rank  int
	seq   int
}

// activeStack holds the open spans of one color layer, ordered by end offset
// so the soonest-ending span is always at the front.
type activeStack struct {
	spans []activeSpan
}

// open pushes s, dropping spans that s covers until their end and outranks.
func (st *activeStack) open(s activeSpan) {
	kept := st.spans[:0]
	for _, a := range st.spans {
		if a.end <= s.end && a.rank <= s.rank {
			continue
		}
		kept = append(kept, a)
	}
	st.spans = kept

	idx := sort.Search(len(st.spans), func(i int) bool {
		return st.spans[i].end > s.end
	})
	st.spans = append(st.spans, activeSpan{})
	copy(st.spans[idx+1:], st.spans[idx:])
	st.spans[idx] = s
}

func (st *activeStack) nextEnd() (int, bool) {
	if len(st.spans) == 0 {
		return 0, false
	}
	return st.spans[0].end, true
}

func (st *activeStack) closeAt(pos int) {
	n := 0
	for n < len(st.spans) && st.spans[n].end <= pos {
		n++
	}
	st.spans = st.spans[n:]
}

// color returns the winning color: highest rank, then latest opened.
func (st *activeStack) color() tcell.Color {
	best := -1
	for i, a := range st.spans {
		if best < 0 {
			best = i
			continue
		}
		b := st.spans[best]
		if a.rank > b.rank || (a.rank == b.rank && a.seq > b.seq) {
			best = i
		}
	}
	if best < 0 {
		return tcell.ColorDefault
	}
	return st.spans[best].color
}

// Compose resolves spans over line into styled segments whose texts
// concatenate to line. Spans with End <= Start or Start < 0 are dropped,
// spans starting at or past the end of line are dropped, and spans running
// past the end are clipped. Spans sharing a start offset are applied in rank
// order so the higher rank wins regardless of insertion order.
func Compose(line string, spans []StyledSpan) []Segment {
	valid := make([]StyledSpan, 0, len(spans))
	for _, s := range spans {
		if s.End > len(line) {
			s.End = len(line)
		}
		if s.Start < 0 || s.End <= s.Start {
			continue
		}
		valid = append(valid, s)
	}
	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].Rank < valid[j].Rank
	})

	var fg, bg activeStack
	segments := make([]Segment, 0, 2*len(valid)+1)
	pos := 0

	emit := func(to int) {
		if to <= pos {
			return
		}
		seg := Segment{Text: line[pos:to], Fg: fg.color(), Bg: bg.color()}
		pos = to
		if n := len(segments); n > 0 && segments[n-1].Fg == seg.Fg && segments[n-1].Bg == seg.Bg {
			segments[n-1].Text += seg.Text
			return
		}
		segments = append(segments, seg)
	}

	closeUntil := func(limit int) {
		for {
			end, ok := fg.nextEnd()
			if bgEnd, bgOK := bg.nextEnd(); bgOK && (!ok || bgEnd < end) {
				end, ok = bgEnd, true
			}
			if !ok || end > limit {
				return
			}
			emit(end)
			fg.closeAt(end)
			bg.closeAt(end)
		}
	}

	for i, s := range valid {
		closeUntil(s.Start)
		emit(s.Start)
		entry := activeSpan{end: s.End, color: s.Color, rank: s.Rank, seq: i}
		if s.Background {
			bg.open(entry)
		} else {
			fg.open(entry)
		}
	}
	closeUntil(len(line))
	emit(len(line))

	return segments
}

// SliceSegments returns the part of segments covering bytes [from, to) of the
// line they were composed from. Styles are kept.
func SliceSegments(segments []Segment, from, to int) []Segment {
	var out []Segment
	pos := 0
	for _, seg := range segments {
		start, end := pos, pos+len(seg.Text)
		pos = end
		if end <= from || start >= to {
			continue
		}
		lo, hi := 0, len(seg.Text)
		if start < from {
			lo = from - start
		}
		if end > to {
			hi = to - start
		}
		out = append(out, Segment{Text: seg.Text[lo:hi], Fg: seg.Fg, Bg: seg.Bg})
	}
	return out
}
