// Package filter re-emits the part of a test2json stream that explains its failures.
package filter

import (
	"strings"

	errUtils "github.com/cloudposse/testsift/errors"
	"github.com/cloudposse/testsift/pkg/classify"
	"github.com/cloudposse/testsift/pkg/event"
	"github.com/cloudposse/testsift/pkg/sink"
)

// Mode selects the rendering strategy.
type Mode string

const (
	// ModeStream re-reads the source and keeps memory bounded.
	ModeStream Mode = "stream"
	// ModeBatch materializes the whole stream and supports every format.
	ModeBatch Mode = "batch"
)

// Format selects the shape of the rendered output.
type Format string

const (
	// FormatPlain emits the captured log text.
	FormatPlain Format = "plain"
	// FormatJSON emits the retained events as JSON lines.
	FormatJSON Format = "json"
)

// ParseMode accepts a mode name. Empty selects ModeStream.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeStream), "streaming":
		return ModeStream, nil
	case string(ModeBatch):
		return ModeBatch, nil
	}
	return "", errUtils.Build(errUtils.ErrInvalidMode).
		WithHintf("Use %q or %q", ModeStream, ModeBatch).
		WithContext("mode", s).
		Err()
}

// ParseFormat accepts a format name or one of its aliases. Empty selects FormatPlain.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatPlain), "standard", "raw", "text":
		return FormatPlain, nil
	case string(FormatJSON), "structured", "jsonl":
		return FormatJSON, nil
	}
	return "", errUtils.Build(errUtils.ErrInvalidOutputFormat).
		WithHintf("Use %q or %q", FormatPlain, FormatJSON).
		WithContext("format", s).
		Err()
}

// Result describes what a renderer retained.
type Result struct {
	// Failed is the overall verdict.
	Failed        bool
	FailedTests   []classify.TestRef
	PackageFailed bool
	// Events holds the retained events. Only the batch renderer fills it.
	Events []event.Event
	// Malformed counts lines that could not be decoded and were echoed verbatim.
	Malformed int
	// Text is the rendered output. Only the batch renderer fills it.
	Text string
	// Index is the failure index the rendering was based on.
	Index *classify.Index
}

// Renderer writes the failure-relevant part of a record stream to a sink.
type Renderer interface {
	Render(s event.RecordScanner, idx *classify.Index, out *sink.Buffer) (*Result, error)
}

// New returns the renderer for mode and format.
func New(mode Mode, format Format) (Renderer, error) {
	switch mode {
	case ModeStream:
		if format != FormatPlain {
			return nil, errUtils.Build(errUtils.ErrInvalidOutputFormat).
				WithHint("Structured output needs the whole stream in memory; use --mode batch").
				WithContext("mode", mode).
				WithContext("format", format).
				Err()
		}
		return &StreamRenderer{}, nil
	case ModeBatch:
		if format != FormatPlain && format != FormatJSON {
			return nil, errUtils.Build(errUtils.ErrInvalidOutputFormat).WithContext("format", format).Err()
		}
		return &BatchRenderer{Format: format}, nil
	}
	return nil, errUtils.Build(errUtils.ErrInvalidMode).WithContext("mode", mode).Err()
}

func newResult(idx *classify.Index) *Result {
	return &Result{
		Failed:        idx.Failed(),
		FailedTests:   idx.FailedTests(),
		PackageFailed: idx.PackageFailed(),
		Index:         idx,
	}
}

// testSelected reports whether output of test belongs in the rendering of a
// failing package. A panic aborts the binary before running tests report, so
// when panics were attributed a test that never completed is kept only if it
// is the panicking one. Tests that completed with a fail are always kept.
func testSelected(e classify.Entry, test string) bool {
	if len(e.PanicTestNames) > 0 {
		return e.TestCompletedFailed(test) || e.IsPanicTest(test)
	}
	return e.TestFailed(test)
}
