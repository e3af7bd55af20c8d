// Package ci provides the CI collaborator used to read action inputs, publish
// step outputs and job summaries, and mark a job as failed.
package ci

// Provider represents a CI environment (GitHub Actions, a plain shell, ...).
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
type Provider interface {
	// Name returns the provider name (e.g., "github-actions", "generic").
	Name() string

	// Detect returns true if this provider is active in the current environment.
	Detect() bool

	// Input returns the value of an action input such as "results-file".
	// Missing inputs are returned as the empty string.
	Input(name string) string

	// OutputWriter returns a writer for CI outputs ($GITHUB_OUTPUT, etc.).
	OutputWriter() OutputWriter

	// SetFailed marks the current job as failed with message.
	SetFailed(message string)
}

// OutputWriter writes CI outputs (step outputs, job summaries, etc.).
type OutputWriter interface {
	// WriteOutput writes a key-value pair to CI outputs (e.g., $GITHUB_OUTPUT).
	WriteOutput(key, value string) error

	// WriteSummary writes content to the job summary (e.g., $GITHUB_STEP_SUMMARY).
	WriteSummary(content string) error
}
