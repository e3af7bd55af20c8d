// Package errors holds the sentinel errors, exit code helpers and the error
// builder shared by every testsift package.
package errors

import "github.com/cockroachdb/errors"

// Input errors.
var (
	// ErrMalformedEvent is returned by the decoder for lines that are not a valid test2json event.
	// It is never fatal: the classifier skips such lines and the filters echo them verbatim.
	ErrMalformedEvent = errors.New("malformed test event")

	ErrMissingResultsFile  = errors.New("no results file provided")
	ErrReadResults         = errors.New("failed to read results file")
	ErrInvalidMode         = errors.New("invalid filter mode")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidIndexFormat  = errors.New("invalid index format")
	ErrInvalidLogLevel     = errors.New("invalid log level")
)

// Output errors.
var (
	ErrWriteOutput  = errors.New("failed to write filtered output")
	ErrWriteSummary = errors.New("failed to write job summary")
)

// ErrTestFailuresFound signals a run that completed normally but found failing
// tests or packages. It carries no payload: the filtered output has already
// been emitted by the time it is returned.
var ErrTestFailuresFound = errors.New("Test Failures Found") //nolint:staticcheck // message matches the CI status text.

// Semver comparison errors.
var (
	ErrSemverInputsRequired = errors.New("Required inputs not specified.") //nolint:staticcheck
	ErrInvalidVersion       = errors.New("Invalid version(s).")            //nolint:staticcheck
	ErrInvalidOperator      = errors.New("Invalid operator.")              //nolint:staticcheck
)

// CI provider errors.
var (
	ErrCIProviderNotFound    = errors.New("CI provider not found")
	ErrCIProviderNotDetected = errors.New("no CI provider detected")
)
