// Package report renders the failure index as a markdown job summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudposse/testsift/pkg/classify"
)

// Options tunes the summary.
type Options struct {
	// Title defaults to "Test Results".
	Title string
	// OutputFile is linked from the summary when set.
	OutputFile string
}

// WriteSummary writes a markdown summary of idx.
func WriteSummary(w io.Writer, idx *classify.Index, opts Options) {
	title := opts.Title
	if title == "" {
		title = "Test Results"
	}
	fmt.Fprintf(w, "# %s\n\n", title)

	if !idx.Failed() {
		fmt.Fprintf(w, "[![Passed](https://shields.io/badge/RESULT-passed-success?style=for-the-badge)](#)\n\n")
		fmt.Fprintf(w, "All packages passed.\n")
		return
	}

	failed := idx.FailedTests()
	fmt.Fprintf(w, "[![Failed](https://shields.io/badge/FAILED_TESTS-%d-critical?style=for-the-badge)](#user-content-failed) ", len(failed))
	fmt.Fprintf(w, "[![Packages](https://shields.io/badge/FAILED_PACKAGES-%d-critical?style=for-the-badge)](#user-content-packages)\n\n", idx.Len())

	writePackagesTable(w, idx)
	writeFailedTests(w, failed)
	writePanics(w, idx.PanicTests())
	writeTriage(w, idx.TriagePackages())

	if opts.OutputFile != "" {
		fmt.Fprintf(w, "Filtered output was written to `%s`.\n", opts.OutputFile)
	}
}

// Summary returns the markdown summary as a string.
func Summary(idx *classify.Index, opts Options) string {
	var sb strings.Builder
	WriteSummary(&sb, idx, opts)
	return sb.String()
}

func writePackagesTable(w io.Writer, idx *classify.Index) {
	fmt.Fprintf(w, "## Failing packages\n\n")
	fmt.Fprintf(w, "| Package | Tests | Failed | Panics |\n")
	fmt.Fprintf(w, "|---------|------:|-------:|-------:|\n")
	for _, e := range idx.Entries() {
		fmt.Fprintf(w, "| `%s` | %d | %d | %d |\n", e.Package, len(e.Tests), len(e.FailedTestNames()), len(e.PanicTestNames))
	}
	fmt.Fprintf(w, "\n")
}

func writeFailedTests(w io.Writer, refs []classify.TestRef) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(w, "## ❌ Failed tests (%d)\n\n", len(refs))
	for _, ref := range refs {
		fmt.Fprintf(w, "- `%s` in `%s`\n", ref.Test, ref.Package)
	}
	fmt.Fprintf(w, "\n")
}

func writePanics(w io.Writer, refs []classify.TestRef) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(w, "## 💥 Panics\n\n")
	for _, ref := range refs {
		fmt.Fprintf(w, "- `%s` in `%s`\n", ref.Test, ref.Package)
	}
	fmt.Fprintf(w, "\n")
}

func writeTriage(w io.Writer, pkgs []string) {
	if len(pkgs) == 0 {
		return
	}
	fmt.Fprintf(w, "## ⚠️ Failed without a failing test\n\n")
	fmt.Fprintf(w, "No single test could be blamed; the full package output is included for triage.\n\n")
	for _, pkg := range pkgs {
		fmt.Fprintf(w, "- `%s`\n", pkg)
	}
	fmt.Fprintf(w, "\n")
}
