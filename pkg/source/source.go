// Package source opens the results file for each filter pass.
package source

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	errUtils "github.com/cloudposse/testsift/errors"
	"github.com/cloudposse/testsift/pkg/event"
)

// Source can be opened any number of times, each time from the beginning.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Open returns a fresh reader positioned at the start of the results.
	Open() (io.ReadCloser, error)
}

// File is a results file on an afero file system.
type File struct {
	fs   afero.Fs
	path string
}

// NewFile returns a Source reading path from fs.
func NewFile(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

// Name returns the file path.
func (f *File) Name() string {
	return f.path
}

// Open opens the file for reading.
func (f *File) Open() (io.ReadCloser, error) {
	r, err := f.fs.Open(f.path)
	if err != nil {
		return nil, errUtils.Build(errors.Wrapf(err, "open %s", f.path)).
			WithSentinel(errUtils.ErrReadResults).
			WithHint("Check that the results file exists; generate it with `go test -json ./... > results.json`").
			WithContext("path", f.path).
			Err()
	}
	return r, nil
}

// Scan opens src and hands a record scanner over it to fn. The reader is
// closed when fn returns; a read error from the scanner is reported as
// ErrReadResults.
func Scan(ctx context.Context, src Source, fn func(event.RecordScanner) error) error {
	r, err := src.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	s := event.NewScanner(ctx, r)
	err = fn(s)
	if err == nil {
		return nil
	}
	if s.Err() != nil && ctx.Err() == nil {
		return errors.Mark(errors.Wrapf(err, "read %s", src.Name()), errUtils.ErrReadResults)
	}
	return err
}

// ReadAll materializes every record of src.
func ReadAll(ctx context.Context, src Source) ([]event.Record, error) {
	var records []event.Record
	err := Scan(ctx, src, func(s event.RecordScanner) error {
		var err error
		records, err = event.Collect(s)
		return err
	})
	return records, err
}
