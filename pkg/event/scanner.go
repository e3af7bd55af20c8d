package event

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// RecordScanner iterates over records in input order, bufio.Scanner style.
type RecordScanner interface {
	Scan() bool
	Record() Record
	Err() error
}

// Scanner reads records line by line from a reader. Lines have no length
// limit; a trailing "\r" is dropped and a final line without newline is kept.
type Scanner struct {
	ctx   context.Context
	r     *bufio.Reader
	rec   Record
	err   error
	done  bool
	lines int
}

// NewScanner returns a Scanner over r. The context is checked before each line.
func NewScanner(ctx context.Context, r io.Reader) *Scanner {
	return &Scanner{ctx: ctx, r: bufio.NewReader(r)}
}

// Scan advances to the next record. It returns false at end of input or on error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		s.done = true
		return false
	}

	line, err := s.r.ReadString('\n')
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
			return false
		}
		if line == "" {
			return false
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	s.rec = NewRecord(line)
	s.lines++
	return true
}

// Record returns the record produced by the last call to Scan.
func (s *Scanner) Record() Record {
	return s.rec
}

// Err returns the first non-EOF error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// Lines returns the number of lines read so far.
func (s *Scanner) Lines() int {
	return s.lines
}

// SliceScanner replays a materialized sequence of records.
type SliceScanner struct {
	records []Record
	pos     int
}

// NewSliceScanner returns a scanner over records.
func NewSliceScanner(records []Record) *SliceScanner {
	return &SliceScanner{records: records}
}

// Scan advances to the next record.
func (s *SliceScanner) Scan() bool {
	if s.pos >= len(s.records) {
		return false
	}
	s.pos++
	return true
}

// Record returns the current record.
func (s *SliceScanner) Record() Record {
	return s.records[s.pos-1]
}

// Err always returns nil.
func (s *SliceScanner) Err() error {
	return nil
}

// Collect drains a scanner into a slice.
func Collect(s RecordScanner) ([]Record, error) {
	var records []Record
	for s.Scan() {
		records = append(records, s.Record())
	}
	return records, s.Err()
}

// FromEvents wraps already decoded events as valid records, re-encoding each
// one to fill Record.Line. Events that cannot be encoded (a NaN Elapsed, for
// instance) fail the whole call.
func FromEvents(events []Event) ([]Record, error) {
	records := make([]Record, 0, len(events))
	for i, ev := range events {
		line, err := Encode(ev)
		if err != nil {
			return nil, errors.Wrapf(err, "encode event %d", i)
		}
		records = append(records, Record{Line: line, Event: ev})
	}
	return records, nil
}
