package filter

import (
	"strings"

	"github.com/cloudposse/testsift/pkg/classify"
	"github.com/cloudposse/testsift/pkg/event"
	"github.com/cloudposse/testsift/pkg/sink"
)

// BatchRenderer materializes the stream and renders it in one of the supported formats.
type BatchRenderer struct {
	Format Format
}

// Render implements Renderer. The whole text is handed to the sink in one write.
func (r *BatchRenderer) Render(s event.RecordScanner, idx *classify.Index, out *sink.Buffer) (*Result, error) {
	records, err := event.Collect(s)
	if err != nil {
		return nil, err
	}

	res := newResult(idx)
	// Nothing can be attributed to a single test, so every output line is kept.
	triage := len(res.FailedTests) == 0 && res.PackageFailed

	var sb strings.Builder
	for _, rec := range records {
		if !rec.Valid() {
			res.Malformed++
			sb.WriteString(rec.Line)
			sb.WriteString("\n")
			continue
		}

		ev := rec.Event
		if !r.retains(ev, idx) && !(triage && ev.IsOutput()) {
			continue
		}
		res.Events = append(res.Events, ev)

		if r.Format == FormatJSON {
			line, err := event.Encode(ev)
			if err != nil {
				return nil, err
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		} else {
			sb.WriteString(ev.Output)
		}
	}

	res.Text = sb.String()
	if err := out.WriteString(res.Text); err != nil {
		return res, err
	}
	return res, nil
}

func (r *BatchRenderer) retains(ev event.Event, idx *classify.Index) bool {
	if r.Format == FormatPlain {
		return ev.IsOutput() && failedTestEvent(ev, idx)
	}

	switch ev.Action {
	case event.ActionStart:
		return true
	case event.ActionOutput, event.ActionRun, event.ActionFail:
		return !ev.HasTest() || failedTestEvent(ev, idx)
	}
	return false
}

func failedTestEvent(ev event.Event, idx *classify.Index) bool {
	if !ev.HasTest() {
		return false
	}
	entry, ok := idx.Lookup(ev.Package)
	return ok && testSelected(entry, ev.Test)
}
