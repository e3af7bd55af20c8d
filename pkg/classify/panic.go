package classify

import (
	"regexp"
	"strings"
)

const (
	panicMarker   = "panic:"
	noTestsMarker = "[no test files]"
)

// panicPattern captures the last Test… token on a panic line. The greedy .*
// makes the final match win.
var panicPattern = regexp.MustCompile(`^panic:.* (Test[A-Z]\w*)`)

// ExtractPanicTestName returns the test named on a "panic:" output line.
func ExtractPanicTestName(text string) (string, bool) {
	if !strings.Contains(text, panicMarker) {
		return "", false
	}
	m := panicPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
