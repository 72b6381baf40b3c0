//go:build !windows

package fs

// IsHidden reports whether a directory entry is hidden. On Unix-like systems
// that is a leading dot.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}
