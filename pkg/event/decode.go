package event

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	errUtils "github.com/cloudposse/testsift/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// wireEvent mirrors the JSON object before validation. Pointers tell absent
// fields apart from explicit zero values.
type wireEvent struct {
	Time    *string  `json:"Time"`
	Action  *string  `json:"Action"`
	Package *string  `json:"Package"`
	Test    *string  `json:"Test"`
	Output  *string  `json:"Output"`
	Elapsed *float64 `json:"Elapsed"`
}

// Decode parses one line into an Event. Lines that are not JSON objects, or
// that do not satisfy the rules of their action, return an error wrapping
// errors.ErrMalformedEvent.
func Decode(line string) (Event, error) {
	var w wireEvent
	if err := json.UnmarshalFromString(line, &w); err != nil {
		return Event{}, fmt.Errorf("%w: %v", errUtils.ErrMalformedEvent, err)
	}
	if err := rejectNulls(line, &w); err != nil {
		return Event{}, err
	}
	return w.validate()
}

// rejectNulls fails when a string field is present as JSON null. Absent and
// null both unmarshal to a nil pointer, so the line is consulted again only
// for fields that came back nil.
func rejectNulls(line string, w *wireEvent) error {
	fields := []struct {
		name string
		v    *string
	}{
		{"Package", w.Package},
		{"Test", w.Test},
		{"Output", w.Output},
	}
	for _, f := range fields {
		if f.v != nil {
			continue
		}
		if json.Get([]byte(line), f.name).ValueType() == jsoniter.NilValue {
			return malformed("%s must not be null", f.name)
		}
	}
	return nil
}

func (w *wireEvent) validate() (Event, error) {
	if w.Action == nil {
		return Event{}, malformed("missing Action")
	}

	pkg, err := optional("Package", w.Package)
	if err != nil {
		return Event{}, err
	}
	test, err := optional("Test", w.Test)
	if err != nil {
		return Event{}, err
	}

	ev := Event{
		Time:    parseTime(w.Time),
		Action:  Action(*w.Action),
		Package: pkg,
		Test:    test,
	}

	switch ev.Action {
	case ActionPass, ActionFail, ActionSkip:
		if w.Elapsed == nil {
			return Event{}, malformed("%s event requires Elapsed", ev.Action)
		}
		if *w.Elapsed < 0 {
			return Event{}, malformed("%s event has negative Elapsed %v", ev.Action, *w.Elapsed)
		}
		ev.Elapsed = ElapsedSeconds(*w.Elapsed)
	case ActionRun:
		if test == "" {
			return Event{}, malformed("run event requires Test")
		}
	case ActionOutput:
		if w.Output == nil || *w.Output == "" {
			return Event{}, malformed("output event requires non-empty Output")
		}
		ev.Output = *w.Output
	case ActionStart, ActionPause, ActionCont:
	default:
		return Event{}, malformed("unknown Action %q", ev.Action)
	}

	return ev, nil
}

func optional(field string, v *string) (string, error) {
	if v == nil {
		return "", nil
	}
	if *v == "" {
		return "", malformed("%s must not be empty", field)
	}
	return *v, nil
}

// parseTime keeps the timestamp when it is valid RFC3339 and drops it otherwise.
func parseTime(v *string) *time.Time {
	if v == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, *v)
	if err != nil {
		return nil
	}
	return &t
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errUtils.ErrMalformedEvent, fmt.Sprintf(format, args...))
}
