package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeTerminalText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"safe path untouched", "logs/app-1.log", "logs/app-1.log"},
		{"escape sequence neutralised", "bad\x1b[31m\npath", "bad?[31m path"},
		{"tab and carriage return become spaces", "a\tb\rc", "a b c"},
		{"delete byte", "x\x7fy", "x?y"},
		{"bidi override labelled", "report" + string(rune(0x202E)) + "gol.txt", "report⟪RLO⟫gol.txt"},
		{"zero width space labelled", "a" + string(rune(0x200B)) + "b", "a⟪ZWSP⟫b"},
		{"unicode kept", "zażółć.log", "zażółć.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTerminalText(tt.in)
			if got != tt.want {
				t.Fatalf("SanitizeTerminalText(%q) got %q want %q", tt.in, got, tt.want)
			}
			if containsControl(got) {
				t.Fatalf("sanitized text should not contain control characters: %q", got)
			}
		})
	}
}

func TestDisplayTextLabelsFormattingRunes(t *testing.T) {
	text := "a" + string(rune(0x200B)) + "test"
	out, offsets := DisplayText(text, 4)
	if out != "a⟪ZWSP⟫test" {
		t.Fatalf("DisplayText got %q", out)
	}
	// The match on "test" must land after the label.
	start := strings.Index(text, "test")
	if got := out[offsets[start]:offsets[start+4]]; got != "test" {
		t.Fatalf("span after label got %q", got)
	}
}

func TestDisplayTextKeepsLineFreeOfControls(t *testing.T) {
	out, _ := DisplayText("x\x00y\x1b]0;title\x07z\r\n", 4)
	if containsControl(out) {
		t.Fatalf("display text should not contain control characters: %q", out)
	}
	if out != "x?y?]0;title?z" {
		t.Fatalf("DisplayText got %q", out)
	}
}

func containsControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
