//go:build windows || plan9 || js || wasip1

package pager

import "os"

// The Windows console reader reports resizes itself.
func resizeSignals() []os.Signal {
	return nil
}
