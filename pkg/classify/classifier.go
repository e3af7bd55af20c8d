package classify

import (
	"strings"

	"github.com/samber/lo"

	"github.com/cloudposse/testsift/pkg/event"
	log "github.com/cloudposse/testsift/pkg/logger"
)

// entryBuilder is the mutable form of an Entry used while scanning.
type entryBuilder struct {
	entry  Entry
	byTest map[string]int
}

func newEntryBuilder(pkg string) *entryBuilder {
	return &entryBuilder{entry: Entry{Package: pkg}, byTest: make(map[string]int)}
}

func (b *entryBuilder) test(name string) *TestStatus {
	i, ok := b.byTest[name]
	if !ok {
		i = len(b.entry.Tests)
		b.byTest[name] = i
		b.entry.Tests = append(b.entry.Tests, TestStatus{Name: name})
	}
	return &b.entry.Tests[i]
}

func (b *entryBuilder) addPanic(name string) {
	if !lo.Contains(b.entry.PanicTestNames, name) {
		b.entry.PanicTestNames = append(b.entry.PanicTestNames, name)
	}
}

// Classifier accumulates records into a failure index.
type Classifier struct {
	order     []string
	builders  map[string]*entryBuilder
	records   int
	malformed int
}

// NewClassifier returns an empty Classifier.
func NewClassifier() *Classifier {
	return &Classifier{builders: make(map[string]*entryBuilder)}
}

// Add feeds one record to the classifier.
func (c *Classifier) Add(rec event.Record) {
	c.records++
	if !rec.Valid() {
		c.malformed++
		return
	}
	ev := rec.Event
	if ev.Package == "" {
		return
	}

	b, ok := c.builders[ev.Package]
	if !ok {
		b = newEntryBuilder(ev.Package)
		c.builders[ev.Package] = b
		c.order = append(c.order, ev.Package)
	}

	if ev.HasTest() {
		status := b.test(ev.Test)
		if ev.Action == event.ActionPass || ev.Action == event.ActionFail {
			status.Passed = ev.Action == event.ActionPass
			status.Completed = true
		}
	}

	if packagePassed(ev) {
		c.remove(ev.Package)
		return
	}

	if ev.IsOutput() {
		if name, ok := ExtractPanicTestName(ev.Output); ok {
			b.addPanic(name)
		}
	}
}

// packagePassed reports whether ev marks its whole package as passed or as
// having nothing to test.
func packagePassed(ev event.Event) bool {
	if !ev.HasTest() && (ev.Action == event.ActionPass || ev.Action == event.ActionSkip) {
		return true
	}
	return ev.IsOutput() && strings.Contains(ev.Output, noTestsMarker)
}

func (c *Classifier) remove(pkg string) {
	delete(c.builders, pkg)
	c.order = lo.Without(c.order, pkg)
}

// Index finalizes the accumulated state. The returned index does not share
// memory with the classifier, which may keep accepting records.
func (c *Classifier) Index() *Index {
	entries := make([]Entry, 0, len(c.order))
	for _, pkg := range c.order {
		e := c.builders[pkg].entry.clone()
		if !lo.SomeBy(e.Tests, TestStatus.Failed) {
			e.PackageFailedWithoutTestFailure = true
		}
		entries = append(entries, e)
	}
	return newIndex(entries)
}

// Scan classifies every record produced by s.
func Scan(s event.RecordScanner) (*Index, error) {
	c := NewClassifier()
	for s.Scan() {
		c.Add(s.Record())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	idx := c.Index()
	log.Debug("Classified test results",
		"records", c.records,
		"malformed", c.malformed,
		"failing_packages", idx.Len(),
	)
	return idx, nil
}

// Records classifies a materialized record sequence.
func Records(records []event.Record) *Index {
	// SliceScanner never fails.
	idx, _ := Scan(event.NewSliceScanner(records))
	return idx
}

// Events classifies already decoded events.
func Events(events []event.Event) *Index {
	c := NewClassifier()
	for _, ev := range events {
		c.Add(event.Record{Event: ev})
	}
	return c.Index()
}
