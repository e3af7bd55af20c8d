// Package classify builds the failure index of a test2json run.
package classify

import (
	"github.com/samber/lo"
)

// TestStatus is the last known outcome of a single test.
type TestStatus struct {
	Name      string `json:"name" yaml:"name"`
	Passed    bool   `json:"passed" yaml:"passed"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Failed reports whether the test did not pass. Tests that started and never
// completed count as failed.
func (s TestStatus) Failed() bool {
	return !s.Passed
}

// Entry holds the failure bookkeeping of one failing package.
type Entry struct {
	Package string       `json:"package" yaml:"package"`
	Tests   []TestStatus `json:"tests" yaml:"tests"`
	// PackageFailedWithoutTestFailure is set when the package failed but no
	// test inside it did (build failures, TestMain crashes, panics outside tests).
	PackageFailedWithoutTestFailure bool     `json:"packageFailedWithoutTestFailure" yaml:"packageFailedWithoutTestFailure"`
	PanicTestNames                  []string `json:"panicTestNames,omitempty" yaml:"panicTestNames,omitempty"`
}

// TestFailed reports whether the named test is recorded as failed.
func (e Entry) TestFailed(name string) bool {
	for _, t := range e.Tests {
		if t.Name == name {
			return t.Failed()
		}
	}
	return false
}

// TestCompletedFailed reports whether the named test finished with a fail action.
func (e Entry) TestCompletedFailed(name string) bool {
	for _, t := range e.Tests {
		if t.Name == name {
			return t.Completed && t.Failed()
		}
	}
	return false
}

// IsPanicTest reports whether name was attributed a panic.
func (e Entry) IsPanicTest(name string) bool {
	return lo.Contains(e.PanicTestNames, name)
}

// NeedsTriage reports whether the package output cannot be narrowed to failed tests.
func (e Entry) NeedsTriage() bool {
	return len(e.Tests) == 0 || e.PackageFailedWithoutTestFailure
}

// FailedTestNames returns the names of failed tests in first-seen order.
func (e Entry) FailedTestNames() []string {
	return lo.FilterMap(e.Tests, func(t TestStatus, _ int) (string, bool) {
		return t.Name, t.Failed()
	})
}

func (e Entry) clone() Entry {
	e.Tests = append([]TestStatus(nil), e.Tests...)
	e.PanicTestNames = append([]string(nil), e.PanicTestNames...)
	return e
}

// TestRef names a failed test within its package.
type TestRef struct {
	Package string `json:"package" yaml:"package"`
	Test    string `json:"test" yaml:"test"`
}

// Index maps each failing package to its entry. An Index is built once by the
// classifier and never modified afterwards; an empty Index means the run passed.
type Index struct {
	entries []Entry
	byName  map[string]int
}

func newIndex(entries []Entry) *Index {
	idx := &Index{entries: entries, byName: make(map[string]int, len(entries))}
	for i, e := range entries {
		idx.byName[e.Package] = i
	}
	return idx
}

// Lookup returns the entry for pkg.
func (idx *Index) Lookup(pkg string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	i, ok := idx.byName[pkg]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// Len returns the number of failing packages.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Failed reports whether any package failed.
func (idx *Index) Failed() bool {
	return idx.Len() > 0
}

// Packages returns the failing package names in first-seen order.
func (idx *Index) Packages() []string {
	return lo.Map(idx.Entries(), func(e Entry, _ int) string { return e.Package })
}

// Entries returns a copy of all entries in first-seen order.
func (idx *Index) Entries() []Entry {
	if idx == nil {
		return nil
	}
	return lo.Map(idx.entries, func(e Entry, _ int) Entry { return e.clone() })
}

// FailedTests returns every failed test across all packages.
func (idx *Index) FailedTests() []TestRef {
	var refs []TestRef
	for _, e := range idx.Entries() {
		for _, name := range e.FailedTestNames() {
			refs = append(refs, TestRef{Package: e.Package, Test: name})
		}
	}
	return refs
}

// PackageFailed reports whether some package failed without a failing test.
func (idx *Index) PackageFailed() bool {
	return lo.SomeBy(idx.Entries(), func(e Entry) bool { return e.PackageFailedWithoutTestFailure })
}

// PanicTests returns every test attributed a panic.
func (idx *Index) PanicTests() []TestRef {
	var refs []TestRef
	for _, e := range idx.Entries() {
		for _, name := range e.PanicTestNames {
			refs = append(refs, TestRef{Package: e.Package, Test: name})
		}
	}
	return refs
}

// TriagePackages returns the packages whose whole output is needed for triage.
func (idx *Index) TriagePackages() []string {
	return lo.FilterMap(idx.Entries(), func(e Entry, _ int) (string, bool) {
		return e.Package, e.NeedsTriage()
	})
}
