// Package event decodes and encodes the JSON-lines stream written by
// `go test -json` (cmd/test2json).
package event

import "time"

// Action is the discriminator of a test2json event.
type Action string

// Actions understood by the decoder. Any other value makes the line malformed.
const (
	ActionRun    Action = "run"
	ActionPass   Action = "pass"
	ActionFail   Action = "fail"
	ActionSkip   Action = "skip"
	ActionOutput Action = "output"
	ActionStart  Action = "start"
	ActionPause  Action = "pause"
	ActionCont   Action = "cont"
)

// Event is one validated line of test2json output.
//
// Which fields are set depends on Action: Elapsed only for pass, fail and
// skip; Output only for output; Test is always set for run. An empty Test
// means the event concerns the whole package.
type Event struct {
	Time    *time.Time `json:"Time,omitempty"`
	Action  Action     `json:"Action"`
	Package string     `json:"Package,omitempty"`
	Test    string     `json:"Test,omitempty"`
	Output  string     `json:"Output,omitempty"`
	Elapsed *float64   `json:"Elapsed,omitempty"`
}

// HasTest reports whether the event is scoped to a single test.
func (e Event) HasTest() bool {
	return e.Test != ""
}

// IsOutput reports whether the event carries output text.
func (e Event) IsOutput() bool {
	return e.Action == ActionOutput
}

// ElapsedSeconds returns a pointer suitable for Event.Elapsed.
func ElapsedSeconds(v float64) *float64 {
	return &v
}

// Record is one input line together with its decoding outcome.
type Record struct {
	// Line is the raw text without the trailing newline.
	Line  string
	Event Event
	// Err is non-nil (and wraps ErrMalformedEvent) when Line is not a valid event.
	Err error
}

// NewRecord decodes line into a Record.
func NewRecord(line string) Record {
	ev, err := Decode(line)
	return Record{Line: line, Event: ev, Err: err}
}

// Valid reports whether the line decoded into an event.
func (r Record) Valid() bool {
	return r.Err == nil
}
