package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirPerm is the mode used for every directory the scaffolder creates.
const DirPerm os.FileMode = 0o755

// DirError is a single failure reported by MakeDirectories. Path is empty
// when the failure cannot be attributed to one directory.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	if e.Path == "" {
		return "General error: " + e.Err.Error()
	}
	return fmt.Sprintf("Problem creating %s: %s", e.Path, e.Err.Error())
}

func (e *DirError) Unwrap() error { return e.Err }

// MakeDirectories creates every path, including missing parents. A failure
// on one path does not stop attempts on the rest. Existing directories are
// not an error. The returned slice is empty when everything was created.
func MakeDirectories(paths []string) []error {
	errs := []error{}
	for _, p := range paths {
		if p == "" {
			errs = append(errs, &DirError{Err: errors.New("empty directory path")})
			continue
		}
		if err := os.MkdirAll(p, DirPerm); err != nil {
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) {
				errs = append(errs, &DirError{Err: err})
				continue
			}
			errs = append(errs, &DirError{Path: p, Err: err})
		}
	}
	return errs
}
