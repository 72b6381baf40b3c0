//go:build windows

package pager

// KeySource returns the console record reader, or the escape sequence
// reader when the input is not a console.
func (t *Terminal) KeySource() (KeySource, func() error) {
	reader, err := NewConsoleKeyReader(t.input)
	if err != nil {
		return NewANSIKeyReader(t.input), func() error { return nil }
	}
	return reader, reader.Close
}
