// Package generic implements the fallback CI provider used outside a known CI system.
package generic

import (
	"github.com/cloudposse/testsift/pkg/ci"
	log "github.com/cloudposse/testsift/pkg/logger"
)

// ProviderName is the name of the generic provider.
const ProviderName = "generic"

// Provider has no inputs and discards outputs.
type Provider struct{}

// NewProvider creates a generic provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return ProviderName
}

// Detect always returns false; the generic provider is only used as a fallback.
func (p *Provider) Detect() bool {
	return false
}

// Input returns the empty string.
func (p *Provider) Input(string) string {
	return ""
}

// OutputWriter returns a writer that discards everything.
func (p *Provider) OutputWriter() ci.OutputWriter {
	return &ci.NoopOutputWriter{}
}

// SetFailed logs the failure.
func (p *Provider) SetFailed(message string) {
	log.Error(message)
}

func init() {
	ci.Register(NewProvider())
}
