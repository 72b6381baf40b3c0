package pager

// KeyKind is an abstract navigator key. Every platform adapter maps its raw
// input onto these.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyToggleLineNumbers
	KeyShowHelp
	KeyQuit
	// KeyResize carries no state change; it only asks for a redraw.
	KeyResize
)

var keyKindNames = map[KeyKind]string{
	KeyUnknown:           "unknown",
	KeyUp:                "up",
	KeyDown:              "down",
	KeyLeft:              "left",
	KeyRight:             "right",
	KeyToggleLineNumbers: "toggle-line-numbers",
	KeyShowHelp:          "help",
	KeyQuit:              "quit",
	KeyResize:            "resize",
}

func (k KeyKind) String() string {
	if name, ok := keyKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Key is one decoded key press. Modifier is only meaningful for Left and
// Right and means "jump to another file".
type Key struct {
	Kind     KeyKind
	Modifier bool
}

// KeySource yields one key per call, blocking until a key is available.
type KeySource interface {
	ReadKey() (Key, error)
}

// runeToKey maps printable shortcuts shared by every key source.
func runeToKey(ch rune) Key {
	switch ch {
	case 'l', 'L':
		return Key{Kind: KeyToggleLineNumbers}
	case 'h', 'H', '?':
		return Key{Kind: KeyShowHelp}
	case 'q', 'Q', 0x03:
		return Key{Kind: KeyQuit}
	case 'k':
		return Key{Kind: KeyUp}
	case 'j':
		return Key{Kind: KeyDown}
	case 'a':
		return Key{Kind: KeyLeft}
	case 'd':
		return Key{Kind: KeyRight}
	case 'A':
		return Key{Kind: KeyLeft, Modifier: true}
	case 'D':
		return Key{Kind: KeyRight, Modifier: true}
	}
	return Key{Kind: KeyUnknown}
}
