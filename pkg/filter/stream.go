package filter

import (
	"fmt"

	"github.com/cloudposse/testsift/pkg/classify"
	"github.com/cloudposse/testsift/pkg/event"
	"github.com/cloudposse/testsift/pkg/sink"
)

const passLine = "PASS\n"

// TriageNotice is emitted once before the output of a package that failed
// without a failing test.
func TriageNotice(pkg string) string {
	return fmt.Sprintf("%s has failure logging but no test failures, the output below may be useful for triage\n", pkg)
}

// StreamRenderer emits output as records arrive. It keeps no copy of the
// stream, so Result.Text and Result.Events stay empty.
type StreamRenderer struct{}

// Render implements Renderer.
func (r *StreamRenderer) Render(s event.RecordScanner, idx *classify.Index, out *sink.Buffer) (*Result, error) {
	res := newResult(idx)
	noticed := make(map[string]bool)

	for s.Scan() {
		rec := s.Record()
		if !rec.Valid() {
			res.Malformed++
			if err := out.WriteString(rec.Line + "\n"); err != nil {
				return res, err
			}
			continue
		}

		text, ok := streamOutput(rec.Event, idx, noticed)
		if !ok {
			continue
		}
		if err := out.WriteString(text); err != nil {
			return res, err
		}
	}

	return res, s.Err()
}

// streamOutput returns the text to emit for ev, if any.
func streamOutput(ev event.Event, idx *classify.Index, noticed map[string]bool) (string, bool) {
	if ev.Package == "" || !ev.IsOutput() {
		return "", false
	}
	entry, ok := idx.Lookup(ev.Package)
	if !ok {
		return "", false
	}

	if entry.NeedsTriage() {
		var text string
		if !noticed[ev.Package] {
			noticed[ev.Package] = true
			text = TriageNotice(ev.Package)
		}
		if len(entry.PanicTestNames) > 0 && ev.HasTest() && !entry.IsPanicTest(ev.Test) {
			return text, text != ""
		}
		return text + ev.Output, true
	}

	if ev.HasTest() {
		return ev.Output, testSelected(entry, ev.Test)
	}
	return ev.Output, ev.Output != passLine
}
