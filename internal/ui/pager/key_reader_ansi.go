package pager

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ANSIKeyReader decodes keys from a VT byte stream, as delivered by a Unix
// terminal in raw mode or a Windows console with VT input enabled.
type ANSIKeyReader struct {
	reader *bufio.Reader
}

// NewANSIKeyReader wraps r.
func NewANSIKeyReader(r io.Reader) *ANSIKeyReader {
	return &ANSIKeyReader{reader: bufio.NewReader(r)}
}

// ReadKey blocks for the next key. A lone ESC, with nothing else buffered,
// is Quit.
func (r *ANSIKeyReader) ReadKey() (Key, error) {
	b, err := r.reader.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch {
	case b == 0x1b:
		return r.parseEscape()
	case b < utf8.RuneSelf:
		return runeToKey(rune(b)), nil
	}

	// Consume the rest of a multi-byte rune.
	if err := r.reader.UnreadByte(); err != nil {
		return Key{Kind: KeyUnknown}, nil
	}
	ch, _, err := r.reader.ReadRune()
	if err != nil {
		return Key{}, err
	}
	return runeToKey(ch), nil
}

func (r *ANSIKeyReader) parseEscape() (Key, error) {
	if r.reader.Buffered() == 0 {
		return Key{Kind: KeyQuit}, nil
	}
	next, err := r.reader.ReadByte()
	if err != nil {
		return Key{Kind: KeyQuit}, nil
	}
	switch next {
	case '[':
		return r.parseCSI(false), nil
	case 'O':
		return r.parseSS3(false), nil
	case 0x1b:
		// ESC ESC [ C: some terminals send Alt as an ESC prefix.
		if r.reader.Buffered() == 0 {
			return Key{Kind: KeyQuit}, nil
		}
		intro, err := r.reader.ReadByte()
		if err != nil {
			return Key{Kind: KeyQuit}, nil
		}
		switch intro {
		case '[':
			return r.parseCSI(true), nil
		case 'O':
			return r.parseSS3(true), nil
		}
		return Key{Kind: KeyUnknown}, nil
	}
	return Key{Kind: KeyUnknown}, nil
}

// parseCSI reads parameters and the final byte of ESC [ ... sequences.
func (r *ANSIKeyReader) parseCSI(modifier bool) Key {
	var params strings.Builder
	for params.Len() < 16 {
		b, err := r.reader.ReadByte()
		if err != nil {
			return Key{Kind: KeyUnknown}
		}
		if b >= 0x40 && b <= 0x7e {
			return arrowKey(b, modifier || csiModifier(params.String()))
		}
		params.WriteByte(b)
	}
	return Key{Kind: KeyUnknown}
}

func (r *ANSIKeyReader) parseSS3(modifier bool) Key {
	final, err := r.reader.ReadByte()
	if err != nil {
		return Key{Kind: KeyUnknown}
	}
	return arrowKey(final, modifier)
}

// csiModifier reports a modifier parameter ("1;2", "1;3", "1;5", ...).
func csiModifier(params string) bool {
	_, mod, ok := strings.Cut(params, ";")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(mod)
	return err == nil && n >= 2
}

// arrowKey maps a CSI or SS3 final byte. Lowercase finals are the rxvt
// encoding of modified arrows.
func arrowKey(final byte, modifier bool) Key {
	switch final {
	case 'A', 'a':
		return Key{Kind: KeyUp}
	case 'B', 'b':
		return Key{Kind: KeyDown}
	case 'C':
		return Key{Kind: KeyRight, Modifier: modifier}
	case 'D':
		return Key{Kind: KeyLeft, Modifier: modifier}
	case 'c':
		return Key{Kind: KeyRight, Modifier: true}
	case 'd':
		return Key{Kind: KeyLeft, Modifier: true}
	}
	return Key{Kind: KeyUnknown}
}
