package filter

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	errUtils "github.com/cloudposse/testsift/errors"
	"github.com/cloudposse/testsift/pkg/classify"
	"github.com/cloudposse/testsift/pkg/event"
	"github.com/cloudposse/testsift/pkg/filesystem"
	log "github.com/cloudposse/testsift/pkg/logger"
	"github.com/cloudposse/testsift/pkg/sink"
	"github.com/cloudposse/testsift/pkg/source"
)

// Options configures a filter run.
type Options struct {
	Source source.Source
	Mode   Mode
	Format Format
	// Console receives the rendered output. Nil disables console output.
	Console io.Writer
	// Fs hosts the mirror file. Defaults to the OS file system.
	Fs afero.Fs
	// OutputFile mirrors the rendered output when set.
	OutputFile     string
	FlushThreshold int
}

// Run classifies the source and renders its failures. When the run failed the
// Result is returned together with errors.ErrTestFailuresFound.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Source == nil {
		return nil, errUtils.Build(errUtils.ErrMissingResultsFile).
			WithHint("Pass the path of a `go test -json` results file").
			Err()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	renderer, err := New(opts.Mode, opts.Format)
	if err != nil {
		return nil, err
	}

	log.Debug("Filtering test results", "source", opts.Source.Name(), "mode", opts.Mode, "format", opts.Format)

	var res *Result
	switch opts.Mode {
	case ModeBatch:
		res, err = runBatch(ctx, opts, renderer)
	default:
		res, err = runStream(ctx, opts, renderer)
	}
	if err != nil {
		return res, err
	}

	log.Info("Filtered test results",
		"failed", res.Failed,
		"failed_tests", len(res.FailedTests),
		"malformed_lines", res.Malformed,
	)

	if res.Failed {
		return res, errUtils.Build(errUtils.ErrTestFailuresFound).WithExitCode(1).Err()
	}
	return res, nil
}

// runStream reads the source twice: once to classify, once to render.
func runStream(ctx context.Context, opts Options, renderer Renderer) (*Result, error) {
	var idx *classify.Index
	err := source.Scan(ctx, opts.Source, func(s event.RecordScanner) error {
		var err error
		idx, err = classify.Scan(s)
		return err
	})
	if err != nil {
		return nil, err
	}

	var targets []io.Writer
	if opts.Console != nil {
		targets = append(targets, opts.Console)
	}
	var mirror *sink.FileTarget
	if opts.OutputFile != "" {
		mirror = sink.NewFileTarget(opts.Fs, opts.OutputFile)
		targets = append(targets, mirror)
	}
	out := sink.New(opts.FlushThreshold, targets...)

	var res *Result
	err = source.Scan(ctx, opts.Source, func(s event.RecordScanner) error {
		var err error
		res, err = renderer.Render(s, idx, out)
		return err
	})
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if mirror != nil {
		if closeErr := mirror.Close(); err == nil && closeErr != nil {
			err = errors.Mark(errors.Wrapf(closeErr, "close %s", opts.OutputFile), errUtils.ErrWriteOutput)
		}
	}
	return res, err
}

// runBatch reads the source once and writes the mirror file in one shot.
func runBatch(ctx context.Context, opts Options, renderer Renderer) (*Result, error) {
	records, err := source.ReadAll(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	idx := classify.Records(records)

	var targets []io.Writer
	if opts.Console != nil {
		targets = append(targets, opts.Console)
	}
	out := sink.New(opts.FlushThreshold, targets...)

	res, err := renderer.Render(event.NewSliceScanner(records), idx, out)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return res, err
	}

	if opts.OutputFile != "" && res.Text != "" {
		if err := filesystem.WriteFileAtomic(opts.Fs, opts.OutputFile, []byte(res.Text), filesystem.DefaultFilePerm); err != nil {
			return res, errors.Mark(errors.Wrapf(err, "write %s", opts.OutputFile), errUtils.ErrWriteOutput)
		}
	}
	return res, nil
}
