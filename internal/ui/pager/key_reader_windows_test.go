//go:build windows

package pager

import (
	"testing"

	"golang.org/x/sys/windows"
)

func TestTranslateConsoleKey(t *testing.T) {
	tests := []struct {
		name string
		ev   keyEventRecord
		want Key
		ok   bool
	}{
		{"right", keyEventRecord{VirtualKeyCode: windows.VK_RIGHT}, Key{Kind: KeyRight}, true},
		{"shift left", keyEventRecord{VirtualKeyCode: windows.VK_LEFT, ControlKeyState: windows.SHIFT_PRESSED}, Key{Kind: KeyLeft, Modifier: true}, true},
		{"ctrl right", keyEventRecord{VirtualKeyCode: windows.VK_RIGHT, ControlKeyState: windows.LEFT_CTRL_PRESSED}, Key{Kind: KeyRight, Modifier: true}, true},
		{"alt right", keyEventRecord{VirtualKeyCode: windows.VK_RIGHT, ControlKeyState: windows.RIGHT_ALT_PRESSED}, Key{Kind: KeyRight, Modifier: true}, true},
		{"numlock is not a modifier", keyEventRecord{VirtualKeyCode: windows.VK_RIGHT, ControlKeyState: windows.NUMLOCK_ON}, Key{Kind: KeyRight}, true},
		{"up", keyEventRecord{VirtualKeyCode: windows.VK_UP}, Key{Kind: KeyUp}, true},
		{"escape", keyEventRecord{VirtualKeyCode: windows.VK_ESCAPE}, Key{Kind: KeyQuit}, true},
		{"ctrl c", keyEventRecord{UnicodeChar: 0x03, ControlKeyState: windows.LEFT_CTRL_PRESSED}, Key{Kind: KeyQuit}, true},
		{"rune l", keyEventRecord{UnicodeChar: 'l'}, Key{Kind: KeyToggleLineNumbers}, true},
		{"unmapped rune", keyEventRecord{UnicodeChar: 'z'}, Key{Kind: KeyUnknown}, true},
		{"bare shift", keyEventRecord{VirtualKeyCode: windows.VK_SHIFT, ControlKeyState: windows.SHIFT_PRESSED}, Key{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateConsoleKey(tt.ev)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("got (%+v, %v) want (%+v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
