package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	errUtils "github.com/cloudposse/testsift/errors"
)

func withProviders(t *testing.T, ps ...Provider) {
	t.Helper()
	providersMu.Lock()
	saved := providers
	providers = make(map[string]Provider)
	providersMu.Unlock()

	for _, p := range ps {
		Register(p)
	}

	t.Cleanup(func() {
		providersMu.Lock()
		providers = saved
		providersMu.Unlock()
	})
}

func mockProvider(ctrl *gomock.Controller, name string, detected bool) *MockProvider {
	p := NewMockProvider(ctrl)
	p.EXPECT().Name().Return(name).AnyTimes()
	p.EXPECT().Detect().Return(detected).AnyTimes()
	return p
}

func TestRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	active := mockProvider(ctrl, "github-actions", true)
	fallback := mockProvider(ctrl, "generic", false)
	withProviders(t, active, fallback)

	assert.Equal(t, []string{"generic", "github-actions"}, List())

	got, err := Get("generic")
	require.NoError(t, err)
	assert.Same(t, fallback, got)

	_, err = Get("jenkins")
	assert.ErrorIs(t, err, errUtils.ErrCIProviderNotFound)

	assert.Same(t, active, Detect())
	assert.True(t, IsCI())

	p, err := DetectOrError()
	require.NoError(t, err)
	assert.Same(t, active, p)
}

func TestDetectOrDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	fallback := mockProvider(ctrl, "generic", false)
	withProviders(t, mockProvider(ctrl, "github-actions", false), fallback)

	assert.Nil(t, Detect())
	assert.False(t, IsCI())

	_, err := DetectOrError()
	assert.ErrorIs(t, err, errUtils.ErrCIProviderNotDetected)

	p, err := DetectOrDefault("generic")
	require.NoError(t, err)
	assert.Same(t, fallback, p)

	_, err = DetectOrDefault("missing")
	assert.ErrorIs(t, err, errUtils.ErrCIProviderNotFound)
}
