package pager

import (
	"bufio"
	"errors"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"
)

var termGetSize = term.GetSize

// Terminal is the interactive session's tty: raw input plus a buffered
// writer for frames.
type Terminal struct {
	input   *os.File
	output  *os.File
	writer  *bufio.Writer
	restore *term.State
	ownsTTY bool
}

// OpenTerminal opens /dev/tty, falling back to stdin and stdout on Windows.
// With raw set the input is switched to raw mode until Close.
func OpenTerminal(raw bool) (*Terminal, error) {
	t := &Terminal{}
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		if runtime.GOOS != "windows" {
			return nil, err
		}
		t.input = os.Stdin
		t.output = os.Stdout
	} else {
		t.input = tty
		t.output = tty
		t.ownsTTY = true
	}
	if t.input == nil {
		return nil, errors.New("no tty available")
	}
	t.writer = bufio.NewWriter(t.output)

	if raw {
		state, err := term.MakeRaw(int(t.input.Fd()))
		if err != nil {
			t.closeTTY()
			return nil, err
		}
		t.restore = state
	}
	_, _ = t.writer.WriteString("\x1b[?1049h\x1b[?25l\x1b[?7l\x1b[2J")
	return t, t.writer.Flush()
}

// Writer buffers frame output; the navigator flushes it after each frame.
func (t *Terminal) Writer() io.Writer {
	return t.writer
}

// Size reports the terminal size, or 80x24 when it cannot be queried.
func (t *Terminal) Size() (cols, rows int) {
	cols, rows, err := termGetSize(int(t.output.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return defaultCols, defaultRows
	}
	return cols, rows
}

// Close leaves the alternate screen, shows the cursor and restores the
// terminal mode.
func (t *Terminal) Close() error {
	_, _ = t.writer.WriteString("\x1b[0m\x1b[?7h\x1b[?25h\x1b[?1049l")
	err := t.writer.Flush()
	if t.restore != nil {
		if rerr := term.Restore(int(t.input.Fd()), t.restore); err == nil {
			err = rerr
		}
	}
	t.closeTTY()
	return err
}

func (t *Terminal) closeTTY() {
	if t.ownsTTY && t.input != nil {
		_ = t.input.Close()
	}
}
