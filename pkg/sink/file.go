package sink

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// FileTarget appends to a mirror file. The file is opened on the first
// write, so no file is created when nothing is ever emitted.
type FileTarget struct {
	fs   afero.Fs
	path string
	f    afero.File
}

// NewFileTarget returns a target appending to path on fs.
func NewFileTarget(fs afero.Fs, path string) *FileTarget {
	return &FileTarget{fs: fs, path: path}
}

// Write implements io.Writer.
func (t *FileTarget) Write(p []byte) (int, error) {
	if t.f == nil {
		f, err := t.fs.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return 0, errors.Wrapf(err, "open %s", t.path)
		}
		t.f = f
	}
	return t.f.Write(p)
}

// Path returns the mirror file path.
func (t *FileTarget) Path() string {
	return t.path
}

// Close closes the file if it was opened.
func (t *FileTarget) Close() error {
	if t.f == nil {
		return nil
	}
	err := t.f.Close()
	t.f = nil
	return err
}
