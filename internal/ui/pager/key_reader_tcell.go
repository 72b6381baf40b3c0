package pager

import (
	"io"

	"github.com/gdamore/tcell/v2"
)

// TcellKeyReader reads keys from a tcell screen event queue.
type TcellKeyReader struct {
	screen tcell.Screen
}

// NewTcellKeyReader wraps an initialised screen.
func NewTcellKeyReader(screen tcell.Screen) *TcellKeyReader {
	return &TcellKeyReader{screen: screen}
}

// ReadKey blocks on PollEvent. A finalised screen yields io.EOF.
func (r *TcellKeyReader) ReadKey() (Key, error) {
	for {
		ev := r.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return Key{}, io.EOF
		case *tcell.EventKey:
			return translateTcellKey(ev), nil
		case *tcell.EventResize:
			return Key{Kind: KeyResize}, nil
		}
	}
}

// Close finalises the screen.
func (r *TcellKeyReader) Close() error {
	r.screen.Fini()
	return nil
}

func translateTcellKey(ev *tcell.EventKey) Key {
	modifier := ev.Modifiers()&(tcell.ModShift|tcell.ModCtrl|tcell.ModAlt) != 0
	switch ev.Key() {
	case tcell.KeyUp:
		return Key{Kind: KeyUp}
	case tcell.KeyDown:
		return Key{Kind: KeyDown}
	case tcell.KeyLeft:
		return Key{Kind: KeyLeft, Modifier: modifier}
	case tcell.KeyRight:
		return Key{Kind: KeyRight, Modifier: modifier}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Key{Kind: KeyQuit}
	case tcell.KeyRune:
		return runeToKey(ev.Rune())
	}
	return Key{Kind: KeyUnknown}
}
