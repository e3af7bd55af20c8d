package ci

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	errUtils "github.com/cloudposse/testsift/errors"
)

// NoopOutputWriter is an OutputWriter that does nothing.
// Used when not running in CI or when CI outputs are disabled.
type NoopOutputWriter struct{}

// WriteOutput implements OutputWriter.
func (w *NoopOutputWriter) WriteOutput(_, _ string) error {
	return nil
}

// WriteSummary implements OutputWriter.
func (w *NoopOutputWriter) WriteSummary(_ string) error {
	return nil
}

// FileOutputWriter writes outputs to a file (like $GITHUB_OUTPUT).
type FileOutputWriter struct {
	fs          afero.Fs
	outputPath  string
	summaryPath string
}

// NewFileOutputWriter creates a new FileOutputWriter. Empty paths disable the
// corresponding output.
func NewFileOutputWriter(fs afero.Fs, outputPath, summaryPath string) *FileOutputWriter {
	return &FileOutputWriter{
		fs:          fs,
		outputPath:  outputPath,
		summaryPath: summaryPath,
	}
}

// WriteOutput writes a key-value pair to the output file.
// Format: key=value (single line) or key<<EOF\nvalue\nEOF (multiline).
func (w *FileOutputWriter) WriteOutput(key, value string) error {
	if w.outputPath == "" {
		return nil
	}

	f, err := w.fs.OpenFile(w.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open output file")
	}
	defer f.Close()

	// Use heredoc format for multiline values.
	if strings.Contains(value, "\n") {
		delimiter := "EOF"
		// Ensure delimiter doesn't appear in value.
		for strings.Contains(value, delimiter) {
			delimiter += "_"
		}
		_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
	} else {
		_, err = fmt.Fprintf(f, "%s=%s\n", key, value)
	}

	return err
}

// WriteSummary appends content to the job summary file.
func (w *FileOutputWriter) WriteSummary(content string) error {
	if w.summaryPath == "" {
		return nil
	}

	f, err := w.fs.OpenFile(w.summaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to open summary file"), errUtils.ErrWriteSummary)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

// OutputHelpers provides helper methods for common CI output patterns.
type OutputHelpers struct {
	Writer OutputWriter
}

// NewOutputHelpers creates a new OutputHelpers.
func NewOutputHelpers(writer OutputWriter) *OutputHelpers {
	return &OutputHelpers{Writer: writer}
}

// ResultOutputOptions contains the outcome of a filter run.
type ResultOutputOptions struct {
	Failed         bool
	FailedTests    int
	FailedPackages int
	// OutputFile is the mirror file, when one was written.
	OutputFile string
}

// WriteResultOutputs writes the standard step outputs of a filter run.
func (h *OutputHelpers) WriteResultOutputs(opts ResultOutputOptions) error {
	outputs := [][2]string{
		{"failed", strconv.FormatBool(opts.Failed)},
		{"failed-tests", strconv.Itoa(opts.FailedTests)},
		{"failed-packages", strconv.Itoa(opts.FailedPackages)},
	}
	if opts.OutputFile != "" {
		outputs = append(outputs, [2]string{"output-file", opts.OutputFile})
	}

	for _, kv := range outputs {
		if err := h.Writer.WriteOutput(kv[0], kv[1]); err != nil {
			return errors.Wrapf(err, "write output %s", kv[0])
		}
	}
	return nil
}
