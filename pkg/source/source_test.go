package source

import (
	"context"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/testsift/errors"
	"github.com/cloudposse/testsift/pkg/event"
)

func TestFileCanBeReopened(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "results.json", []byte("a\nb\n"), 0o644))
	src := NewFile(fs, "results.json")

	for i := 0; i < 2; i++ {
		r, err := src.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, "a\nb\n", string(data))
	}
	assert.Equal(t, "results.json", src.Name())
}

func TestFileMissing(t *testing.T) {
	src := NewFile(afero.NewMemMapFs(), "missing.json")

	_, err := src.Open()
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrReadResults)

	_, err = ReadAll(context.Background(), src)
	assert.ErrorIs(t, err, errUtils.ErrReadResults)
}

func TestReadAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "results.json", []byte(
		`{"Action":"start","Package":"p"}`+"\nnot json\n"), 0o644))

	records, err := ReadAll(context.Background(), NewFile(fs, "results.json"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Valid())
	assert.Equal(t, event.Event{Action: event.ActionStart, Package: "p"}, records[0].Event)
	assert.False(t, records[1].Valid())
}

func TestScanCanceled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "results.json", []byte("x\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadAll(ctx, NewFile(fs, "results.json"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, errUtils.ErrReadResults)
}
