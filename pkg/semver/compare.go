// Package semver compares two semantic versions with a named operator.
package semver

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	errUtils "github.com/cloudposse/testsift/errors"
)

// Operator names a comparison.
type Operator string

// Supported operators.
const (
	GreaterThan Operator = "gt"
	LessThan    Operator = "lt"
	Equal       Operator = "eq"
)

// Compare reports whether v1 op v2 holds. Versions must be full
// MAJOR.MINOR.PATCH versions; a leading "v" is accepted.
func Compare(v1 string, op Operator, v2 string) (bool, error) {
	if v1 == "" || v2 == "" || op == "" {
		return false, errUtils.ErrSemverInputsRequired
	}

	a, errA := parse(v1)
	b, errB := parse(v2)
	if errA != nil || errB != nil {
		return false, errUtils.Build(errUtils.ErrInvalidVersion).
			WithContext("version1", v1).
			WithContext("version2", v2).
			Err()
	}

	switch op {
	case GreaterThan:
		return a.GreaterThan(b), nil
	case LessThan:
		return a.LessThan(b), nil
	case Equal:
		return a.Equal(b), nil
	}
	return false, errUtils.Build(errUtils.ErrInvalidOperator).
		WithHintf("Use one of %s, %s or %s", GreaterThan, LessThan, Equal).
		WithContext("operator", op).
		Err()
}

func parse(v string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(v), "v"))
}
