package ci

import (
	"sort"
	"sync"

	errUtils "github.com/cloudposse/testsift/errors"
	log "github.com/cloudposse/testsift/pkg/logger"
)

var (
	providersMu sync.RWMutex
	providers   = make(map[string]Provider)
)

// Register registers a CI provider.
// Providers should call this in their init() function.
func Register(p Provider) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[p.Name()] = p
}

// Get returns a provider by name.
func Get(name string) (Provider, error) {
	providersMu.RLock()
	defer providersMu.RUnlock()

	p, ok := providers[name]
	if !ok {
		return nil, errUtils.Build(errUtils.ErrCIProviderNotFound).WithContext("provider", name).Err()
	}
	return p, nil
}

// Detect returns a provider that detects it is active in the current
// environment. Providers are checked in name order.
func Detect() Provider {
	for _, name := range List() {
		p, err := Get(name)
		if err != nil {
			continue
		}
		if p.Detect() {
			log.Debug("CI provider detected", "provider", name)
			return p
		}
		log.Debug("CI provider not detected", "provider", name)
	}
	return nil
}

// DetectOrError returns the detected provider or an error if none is detected.
func DetectOrError() (Provider, error) {
	p := Detect()
	if p == nil {
		return nil, errUtils.ErrCIProviderNotDetected
	}
	return p, nil
}

// DetectOrDefault returns the detected provider, or the provider registered
// under fallback when none is detected.
func DetectOrDefault(fallback string) (Provider, error) {
	if p := Detect(); p != nil {
		return p, nil
	}
	return Get(fallback)
}

// List returns all registered provider names, sorted.
func List() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsCI returns true if any CI provider is detected.
func IsCI() bool {
	return Detect() != nil
}
