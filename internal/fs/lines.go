package fs

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/mmap"
)

var (
	// ErrBinary marks content that does not look like text.
	ErrBinary = errors.New("binary content")
	// ErrUndecodable marks text that is neither UTF-8 nor BOM-marked UTF-16.
	ErrUndecodable = errors.New("undecodable content")
)

// ReadLines maps path read-only and returns its text split into lines. Every
// returned line ends with exactly one "\n", the last one included.
func ReadLines(path string) ([]string, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()

	content := make([]byte, r.Len())
	if len(content) > 0 {
		if _, err := r.ReadAt(content, 0); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if !IsTextFile(path, content) {
		return nil, ErrBinary
	}
	text, ok := DecodeText(content)
	if !ok {
		return nil, ErrUndecodable
	}
	return SplitLines(text), nil
}

// SplitLines splits text on "\n", drops a "\r" before it and terminates every
// line, including a last line lacking one, with a single "\n".
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	lines := make([]string, len(parts))
	for i, part := range parts {
		part = strings.TrimSuffix(part, "\n")
		part = strings.TrimSuffix(part, "\r")
		lines[i] = part + "\n"
	}
	return lines
}
