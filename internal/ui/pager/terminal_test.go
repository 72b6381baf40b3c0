package pager

import (
	"errors"
	"os"
	"testing"
)

func TestTerminalSizeFallback(t *testing.T) {
	original := termGetSize
	t.Cleanup(func() { termGetSize = original })

	term := &Terminal{output: os.Stdout}

	termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	if cols, rows := term.Size(); cols != 80 || rows != 24 {
		t.Fatalf("expected 80x24 fallback, got %dx%d", cols, rows)
	}

	termGetSize = func(int) (int, int, error) { return 120, 40, nil }
	if cols, rows := term.Size(); cols != 120 || rows != 40 {
		t.Fatalf("expected 120x40, got %dx%d", cols, rows)
	}
}
