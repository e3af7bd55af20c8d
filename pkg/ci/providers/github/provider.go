// Package github implements the GitHub Actions CI provider.
package github

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/cloudposse/testsift/pkg/ci"
)

const (
	// ProviderName is the name of the GitHub Actions provider.
	ProviderName = "github-actions"
)

// Provider implements ci.Provider for GitHub Actions.
type Provider struct {
	fs     afero.Fs
	out    io.Writer
	getenv func(string) string
}

// NewProvider creates a GitHub Actions provider bound to the process
// environment, the OS file system and stdout.
func NewProvider() *Provider {
	return NewProviderWith(afero.NewOsFs(), os.Stdout, os.Getenv)
}

// NewProviderWith creates a provider with explicit collaborators.
func NewProviderWith(fs afero.Fs, out io.Writer, getenv func(string) string) *Provider {
	return &Provider{fs: fs, out: out, getenv: getenv}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return ProviderName
}

// Detect returns true if running in GitHub Actions.
func (p *Provider) Detect() bool {
	return p.getenv("GITHUB_ACTIONS") == "true"
}

// Input returns an action input. The runner exposes inputs as INPUT_<NAME>
// with spaces replaced by underscores and the name upper-cased; hyphens are kept.
func (p *Provider) Input(name string) string {
	return strings.TrimSpace(p.getenv(InputEnv(name)))
}

// InputEnv returns the environment variable holding the action input name.
func InputEnv(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// OutputWriter returns a writer for $GITHUB_OUTPUT and $GITHUB_STEP_SUMMARY.
func (p *Provider) OutputWriter() ci.OutputWriter {
	return ci.NewFileOutputWriter(p.fs, p.getenv("GITHUB_OUTPUT"), p.getenv("GITHUB_STEP_SUMMARY"))
}

// SetFailed emits an error workflow command, which marks the step failed and
// annotates the run.
func (p *Provider) SetFailed(message string) {
	fmt.Fprintf(p.out, "::error::%s\n", escapeData(message))
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

func init() {
	ci.Register(NewProvider())
}
