package event

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	input := strings.Join([]string{
		`{"Action":"start","Package":"p"}`,
		`not json`,
		``,
		`{"Action":"pass","Package":"p","Elapsed":0.1}`,
	}, "\n")

	s := NewScanner(context.Background(), strings.NewReader(input))
	records, err := Collect(s)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.True(t, records[0].Valid())
	assert.False(t, records[1].Valid())
	assert.Equal(t, "not json", records[1].Line)
	assert.False(t, records[2].Valid())
	assert.Equal(t, "", records[2].Line)
	assert.True(t, records[3].Valid(), "final line without newline is kept")
	assert.Equal(t, 4, s.Lines())
}

func TestScannerCRLF(t *testing.T) {
	s := NewScanner(context.Background(), strings.NewReader("{\"Action\":\"start\",\"Package\":\"p\"}\r\nplain\r\n"))
	records, err := Collect(s)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Valid())
	assert.Equal(t, "plain", records[1].Line)
}

func TestScannerLongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	line := `{"Action":"output","Package":"p","Output":"` + long + `"}`

	s := NewScanner(context.Background(), strings.NewReader(line+"\n"))
	records, err := Collect(s)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, long, records[0].Event.Output)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestScannerReadError(t *testing.T) {
	s := NewScanner(context.Background(), failingReader{})
	assert.False(t, s.Scan())
	assert.EqualError(t, s.Err(), "disk on fire")
}

func TestScannerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner(ctx, strings.NewReader(`{"Action":"start","Package":"p"}`))
	assert.False(t, s.Scan())
	assert.ErrorIs(t, s.Err(), context.Canceled)
}

func TestSliceScanner(t *testing.T) {
	records, err := FromEvents([]Event{
		{Action: ActionStart, Package: "p"},
		{Action: ActionPass, Package: "p", Elapsed: ElapsedSeconds(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"Action":"start","Package":"p"}`, records[0].Line)

	got, err := Collect(NewSliceScanner(records))
	require.NoError(t, err)
	assert.Equal(t, records, got)

	empty, err := Collect(NewSliceScanner(nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFromEventsEncodeError(t *testing.T) {
	records, err := FromEvents([]Event{
		{Action: ActionStart, Package: "p"},
		{Action: ActionPass, Package: "p", Elapsed: ElapsedSeconds(math.NaN())},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode event 1")
	assert.Nil(t, records)
}
