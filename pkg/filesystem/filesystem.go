// Package filesystem writes whole files in one shot.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultFilePerm is used for files written by testsift.
const DefaultFilePerm os.FileMode = 0o644

// WriteFileAtomic writes data to filename, creating parent directories.
// On the OS file system the write is atomic; other afero file systems (such as
// the in-memory one used in tests) get a plain write.
func WriteFileAtomic(fs afero.Fs, filename string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if _, ok := fs.(*afero.OsFs); ok {
		return writeFileAtomicOS(filename, data, perm)
	}
	return afero.WriteFile(fs, filename, data, perm)
}
