//go:build windows

package fs

import "golang.org/x/sys/windows"

// IsHidden reports whether a directory entry is hidden, honouring both the
// dot prefix and the FILE_ATTRIBUTE_HIDDEN flag.
func IsHidden(fullPath string, name string) bool {
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	if fullPath == "" {
		return false
	}
	ptr, err := windows.UTF16PtrFromString(fullPath)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
