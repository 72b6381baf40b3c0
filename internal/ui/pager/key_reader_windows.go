//go:build windows

package pager

import (
	"errors"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	evtKey       = 0x0001
	evtBufResize = 0x0004
)

// Minimal INPUT_RECORD definition for ReadConsoleInputW.
type inputRecord struct {
	EventType uint16
	_         uint16
	Event     [16]byte
}

type keyEventRecord struct {
	KeyDown         int32
	RepeatCount     uint16
	VirtualKeyCode  uint16
	VirtualScanCode uint16
	UnicodeChar     uint16
	ControlKeyState uint32
}

const modifierKeyState = windows.SHIFT_PRESSED |
	windows.LEFT_CTRL_PRESSED | windows.RIGHT_CTRL_PRESSED |
	windows.LEFT_ALT_PRESSED | windows.RIGHT_ALT_PRESSED

var procReadConsoleInput = windows.NewLazySystemDLL("kernel32.dll").NewProc("ReadConsoleInputW")

// ConsoleKeyReader reads key records from a Windows console input handle.
type ConsoleKeyReader struct {
	handle   windows.Handle
	origMode uint32
}

// NewConsoleKeyReader switches the console to record input: VT input and
// line editing off, window events on. Close restores the previous mode.
func NewConsoleKeyReader(f *os.File) (*ConsoleKeyReader, error) {
	if f == nil {
		return nil, errors.New("no console input available")
	}
	handle := windows.Handle(f.Fd())
	var origMode uint32
	if err := windows.GetConsoleMode(handle, &origMode); err != nil {
		return nil, err
	}
	mode := origMode &^ (windows.ENABLE_VIRTUAL_TERMINAL_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT | windows.ENABLE_PROCESSED_INPUT)
	mode |= windows.ENABLE_WINDOW_INPUT
	if err := windows.SetConsoleMode(handle, mode); err != nil {
		return nil, err
	}
	return &ConsoleKeyReader{handle: handle, origMode: origMode}, nil
}

// ReadKey blocks until a key-down or resize record arrives.
func (r *ConsoleKeyReader) ReadKey() (Key, error) {
	var rec inputRecord
	for {
		var read uint32
		r1, _, e1 := procReadConsoleInput.Call(
			uintptr(r.handle),
			uintptr(unsafe.Pointer(&rec)),
			1,
			uintptr(unsafe.Pointer(&read)),
		)
		if r1 == 0 {
			return Key{}, e1
		}
		if read == 0 {
			continue
		}
		switch rec.EventType {
		case evtKey:
			ev := (*keyEventRecord)(unsafe.Pointer(&rec.Event[0]))
			if ev.KeyDown == 0 {
				continue
			}
			if key, ok := translateConsoleKey(*ev); ok {
				return key, nil
			}
		case evtBufResize:
			return Key{Kind: KeyResize}, nil
		}
	}
}

// Close restores the console mode.
func (r *ConsoleKeyReader) Close() error {
	return windows.SetConsoleMode(r.handle, r.origMode)
}

// translateConsoleKey maps a key-down record. Bare modifier presses (shift,
// ctrl, alt on their own) report ok=false so they are not seen as keys.
func translateConsoleKey(ev keyEventRecord) (Key, bool) {
	modifier := ev.ControlKeyState&modifierKeyState != 0
	switch ev.VirtualKeyCode {
	case windows.VK_UP:
		return Key{Kind: KeyUp}, true
	case windows.VK_DOWN:
		return Key{Kind: KeyDown}, true
	case windows.VK_LEFT:
		return Key{Kind: KeyLeft, Modifier: modifier}, true
	case windows.VK_RIGHT:
		return Key{Kind: KeyRight, Modifier: modifier}, true
	case windows.VK_ESCAPE:
		return Key{Kind: KeyQuit}, true
	case windows.VK_SHIFT, windows.VK_CONTROL, windows.VK_MENU:
		return Key{}, false
	}
	if ev.UnicodeChar == 0 {
		return Key{}, false
	}
	return runeToKey(rune(ev.UnicodeChar)), true
}
