// Package sink accumulates rendered output and flushes it to its targets.
package sink

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	errUtils "github.com/cloudposse/testsift/errors"
)

// DefaultThreshold is the buffered size, in bytes, above which the buffer flushes.
const DefaultThreshold = 64000

// Buffer accumulates text and writes it to every target once its length
// exceeds the threshold, and on Flush.
type Buffer struct {
	threshold int
	targets   []io.Writer
	buf       strings.Builder
	written   int
	flushes   int
}

// New returns a Buffer writing to targets. A non-positive threshold selects DefaultThreshold.
func New(threshold int, targets ...io.Writer) *Buffer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Buffer{threshold: threshold, targets: targets}
}

// WriteString appends s and flushes when the buffered text exceeds the threshold.
func (b *Buffer) WriteString(s string) error {
	b.buf.WriteString(s)
	if b.buf.Len() > b.threshold {
		return b.Flush()
	}
	return nil
}

// Flush writes the buffered text to every target and empties the buffer.
// A failing target does not stop delivery to the others; errors are joined.
func (b *Buffer) Flush() error {
	if b.buf.Len() == 0 {
		return nil
	}

	text := b.buf.String()
	b.buf.Reset()
	b.written += len(text)
	b.flushes++

	var errs []error
	for _, t := range b.targets {
		if _, err := io.WriteString(t, text); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Mark(errors.Wrap(errors.Join(errs...), "flush"), errUtils.ErrWriteOutput)
}

// Len returns the number of buffered bytes not yet flushed.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// Written returns the number of bytes flushed so far.
func (b *Buffer) Written() int {
	return b.written
}

// Flushes returns how many times the buffer was flushed.
func (b *Buffer) Flushes() int {
	return b.flushes
}
