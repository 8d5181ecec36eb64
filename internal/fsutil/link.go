package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// IsSymlink reports whether path itself is a symbolic link. Dangling links
// count; regular files and directories do not.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// RelativeSymlink creates link pointing at target, expressed relative to the
// directory holding link. The target does not have to exist. It returns the
// relative target that was written.
func RelativeSymlink(target, link string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(link), target)
	if err != nil {
		return "", fmt.Errorf("relative target for %s: %w", link, err)
	}
	if err := os.Symlink(rel, link); err != nil {
		return "", err
	}
	return rel, nil
}
