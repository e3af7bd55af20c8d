package sink

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/testsift/errors"
)

func TestBufferThreshold(t *testing.T) {
	var out bytes.Buffer
	b := New(10, &out)

	require.NoError(t, b.WriteString("12345"))
	require.NoError(t, b.WriteString("67890"))
	assert.Empty(t, out.String(), "exactly at the threshold does not flush")
	assert.Equal(t, 10, b.Len())

	require.NoError(t, b.WriteString("x"))
	assert.Equal(t, "1234567890x", out.String())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, b.Flushes())

	require.NoError(t, b.WriteString("tail\n"))
	require.NoError(t, b.Flush())
	assert.Equal(t, "1234567890xtail\n", out.String())
	assert.Equal(t, 16, b.Written())
}

func TestBufferFlushEmptyIsNoop(t *testing.T) {
	var out bytes.Buffer
	b := New(0, &out)

	require.NoError(t, b.Flush())
	assert.Equal(t, 0, b.Flushes())
	assert.Equal(t, DefaultThreshold, b.threshold)
}

func TestBufferDefaultThreshold(t *testing.T) {
	var out bytes.Buffer
	b := New(DefaultThreshold, &out)

	line := strings.Repeat("a", 999) + "\n"
	for i := 0; i < 64; i++ {
		require.NoError(t, b.WriteString(line))
	}
	assert.Empty(t, out.String())

	require.NoError(t, b.WriteString(line))
	assert.Equal(t, 65000, out.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestBufferFanOutContinuesPastFailures(t *testing.T) {
	var first, second bytes.Buffer
	b := New(100, &first, failingWriter{}, &second)

	require.NoError(t, b.WriteString("fail msg\n"))
	err := b.Flush()

	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrWriteOutput)
	assert.Contains(t, err.Error(), "pipe closed")
	assert.Equal(t, "fail msg\n", first.String())
	assert.Equal(t, "fail msg\n", second.String())
}
