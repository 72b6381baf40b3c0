//go:build !windows

package pager

// KeySource returns the platform key source for the terminal and a function
// that releases it.
func (t *Terminal) KeySource() (KeySource, func() error) {
	return WithResizeSignals(NewANSIKeyReader(t.input))
}
