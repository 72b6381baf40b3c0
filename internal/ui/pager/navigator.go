package pager

import (
	"errors"
	"io"
	"log/slog"

	"github.com/kk-code-lab/hlgrep/internal/debuglog"
	"github.com/kk-code-lab/hlgrep/internal/highlight"
	"github.com/kk-code-lab/hlgrep/internal/search"
	"github.com/kk-code-lab/hlgrep/internal/textutil"
)

// ErrNothingToNavigate is returned when the match index is empty.
var ErrNothingToNavigate = errors.New("nothing to navigate")

// Mode is the navigator's state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeViewing
	ModeHelp
	ModeExiting
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeViewing:
		return "viewing"
	case ModeHelp:
		return "help"
	case ModeExiting:
		return "exiting"
	}
	return "unknown"
}

// State is the navigator's view state. Current is always a valid index
// into the match index once viewing has started.
type State struct {
	Current     int
	Scroll      int
	Rows        int
	Cols        int
	LineNumbers bool
}

// Options configures a Navigator.
type Options struct {
	Annotator   *highlight.Annotator
	Load        func(path string) ([]string, error)
	Size        func() (cols, rows int)
	LineNumbers bool
	TabWidth    int
	Logger      *slog.Logger
}

// Navigator steps through a match index and draws the context around the
// current match.
type Navigator struct {
	index     *search.MatchIndex
	out       io.Writer
	annotator *highlight.Annotator
	load      func(path string) ([]string, error)
	size      func() (cols, rows int)
	tabWidth  int
	logger    *slog.Logger

	state State
	mode  Mode
}

// NewNavigator creates an idle navigator writing frames to out.
func NewNavigator(index *search.MatchIndex, out io.Writer, opts Options) *Navigator {
	n := &Navigator{
		index:     index,
		out:       out,
		annotator: opts.Annotator,
		load:      opts.Load,
		size:      opts.Size,
		tabWidth:  opts.TabWidth,
		logger:    debuglog.OrDiscard(opts.Logger),
		state:     State{LineNumbers: opts.LineNumbers},
	}
	if n.annotator == nil {
		n.annotator = highlight.NewAnnotator()
	}
	if n.load == nil {
		n.load = func(path string) ([]string, error) {
			return search.LoadLines(search.File{Path: path})
		}
	}
	if n.size == nil {
		n.size = func() (int, int) { return defaultCols, defaultRows }
	}
	if n.tabWidth <= 0 {
		n.tabWidth = textutil.DefaultTabWidth
	}
	return n
}

// State returns a copy of the view state.
func (n *Navigator) State() State {
	return n.state
}

// Mode returns the current mode.
func (n *Navigator) Mode() Mode {
	return n.mode
}

// Start enters Viewing at the first match and draws it.
func (n *Navigator) Start() error {
	if n.index.Len() == 0 {
		return ErrNothingToNavigate
	}
	n.state.Current = 0
	n.state.Scroll = 0
	n.mode = ModeViewing
	return n.Render()
}

// Run starts the navigator and handles keys until Quit or the key source
// ends.
func (n *Navigator) Run(keys KeySource) error {
	if err := n.Start(); err != nil {
		return err
	}
	for n.mode != ModeExiting {
		key, err := keys.ReadKey()
		if errors.Is(err, io.EOF) {
			n.mode = ModeExiting
			break
		}
		if err != nil {
			return err
		}
		n.logger.Debug("key", "kind", key.Kind.String(), "modifier", key.Modifier, "mode", n.mode.String())
		if !n.Handle(key) {
			continue
		}
		if err := n.Render(); err != nil {
			return err
		}
	}
	return nil
}

// Handle applies one key and reports whether the screen must be redrawn.
func (n *Navigator) Handle(k Key) bool {
	switch n.mode {
	case ModeIdle, ModeExiting:
		return false
	case ModeHelp:
		switch k.Kind {
		case KeyUnknown:
			return false
		case KeyResize:
			return true
		}
		n.mode = ModeViewing
		n.handleViewing(k)
		return n.mode != ModeExiting
	}
	return n.handleViewing(k)
}

func (n *Navigator) handleViewing(k Key) bool {
	switch k.Kind {
	case KeyUp:
		n.scrollBy(-1)
	case KeyDown:
		n.scrollBy(1)
	case KeyLeft:
		if k.Modifier {
			n.jumpFile(-1)
		} else {
			n.step(-1)
		}
	case KeyRight:
		if k.Modifier {
			n.jumpFile(1)
		} else {
			n.step(1)
		}
	case KeyToggleLineNumbers:
		n.state.LineNumbers = !n.state.LineNumbers
	case KeyShowHelp:
		n.mode = ModeHelp
	case KeyQuit:
		n.mode = ModeExiting
		return false
	case KeyResize:
	default:
		return false
	}
	return true
}

// step moves to the neighbouring match, wrapping around the ends.
func (n *Navigator) step(delta int) {
	total := n.index.Len()
	n.state.Current = ((n.state.Current+delta)%total + total) % total
	n.state.Scroll = 0
}

// jumpFile moves in direction dir until the path differs from the starting
// match's path, stopping at the first or last match without wrapping.
func (n *Navigator) jumpFile(dir int) {
	last := n.index.Len() - 1
	path := n.index.At(n.state.Current).Path
	i := n.state.Current
	for {
		next := i + dir
		if next < 0 || next > last {
			break
		}
		i = next
		if n.index.At(i).Path != path {
			break
		}
	}
	n.state.Current = i
	n.state.Scroll = 0
}

func (n *Navigator) scrollBy(delta int) {
	n.refreshSize()
	n.state.Scroll += delta
	n.clampScroll()
}

func (n *Navigator) clampScroll() {
	lo, hi := scrollBounds(contentRows(n.state.Rows))
	if n.state.Scroll < lo {
		n.state.Scroll = lo
	}
	if n.state.Scroll > hi {
		n.state.Scroll = hi
	}
}

func (n *Navigator) refreshSize() {
	cols, rows := n.size()
	if cols <= 0 || rows <= 0 {
		cols, rows = defaultCols, defaultRows
	}
	n.state.Cols = cols
	n.state.Rows = rows
}

// contentRows is the screen height minus the header and status rows.
func contentRows(rows int) int {
	if rows-2 < 1 {
		return 1
	}
	return rows - 2
}

// scrollBounds keeps the anchor's first row on screen. The anchor sits at
// content row half-scroll, so scroll may range over [half-(rows-1), half].
func scrollBounds(rows int) (int, int) {
	half := rows / 2
	return half - (rows - 1), half
}
