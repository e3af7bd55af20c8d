package filter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudposse/testsift/pkg/classify"
	"github.com/cloudposse/testsift/pkg/event"
	"github.com/cloudposse/testsift/pkg/sink"
)

const (
	failingTestInput = `{"Action":"run","Test":"T1","Package":"p"}
{"Action":"output","Test":"T1","Package":"p","Output":"fail msg\n"}
{"Action":"fail","Test":"T1","Package":"p","Elapsed":0.1}
{"Action":"fail","Package":"p","Elapsed":0.1}
`

	packagePassInput = `{"Action":"run","Test":"T1","Package":"p"}
{"Action":"output","Test":"T1","Package":"p","Output":"partial\n"}
{"Action":"pass","Package":"p","Elapsed":1.0}
`

	mixedInput = `{"Action":"start","Package":"p"}
{"Action":"run","Test":"TestOne","Package":"p"}
{"Action":"run","Test":"TestTwo","Package":"p"}
{"Action":"run","Test":"TestThree","Package":"p"}
{"Action":"output","Test":"TestOne","Package":"p","Output":"=== RUN   TestOne\n"}
{"Action":"output","Test":"TestTwo","Package":"p","Output":"=== RUN   TestTwo\n"}
{"Action":"output","Test":"TestTwo","Package":"p","Output":"    two_test.go:9: want 1, got 2\n"}
{"Action":"output","Test":"TestTwo","Package":"p","Output":"--- FAIL: TestTwo (0.00s)\n"}
{"Action":"fail","Test":"TestTwo","Package":"p","Elapsed":0}
{"Action":"output","Test":"TestOne","Package":"p","Output":"--- PASS: TestOne (0.00s)\n"}
{"Action":"pass","Test":"TestOne","Package":"p","Elapsed":0}
{"Action":"pass","Test":"TestThree","Package":"p","Elapsed":0}
{"Action":"output","Package":"p","Output":"PASS\n"}
{"Action":"output","Package":"p","Output":"FAIL\tp\t0.01s\n"}
{"Action":"fail","Package":"p","Elapsed":0.01}
{"Action":"start","Package":"q"}
{"Action":"output","Package":"q","Output":"ok  \tq\t0.01s\n"}
{"Action":"pass","Package":"q","Elapsed":0.01}
`

	buildFailureInput = `{"Action":"start","Package":"p"}
{"Action":"output","Package":"p","Output":"# p\n"}
{"Action":"output","Package":"p","Output":"./x.go:1:2: undefined: y\n"}
{"Action":"output","Package":"p","Output":"FAIL\tp [build failed]\n"}
{"Action":"fail","Package":"p","Elapsed":0}
`

	panicInput = `{"Action":"start","Package":"p"}
{"Action":"run","Test":"TestFoo","Package":"p"}
{"Action":"run","Test":"TestBar","Package":"p"}
{"Action":"run","Test":"TestBaz","Package":"p"}
{"Action":"output","Test":"TestBar","Package":"p","Output":"bar log\n"}
{"Action":"output","Test":"TestFoo","Package":"p","Output":"foo log\n"}
{"Action":"output","Test":"TestBaz","Package":"p","Output":"baz log\n"}
{"Action":"output","Test":"TestFoo","Package":"p","Output":"panic: nil map write in TestFoo\n"}
{"Action":"output","Test":"TestBar","Package":"p","Output":"bar log 2\n"}
{"Action":"output","Package":"p","Output":"FAIL\tp\t0.02s\n"}
{"Action":"fail","Package":"p","Elapsed":0.02}
`

	panicBesideFailureInput = `{"Action":"run","Test":"TestA","Package":"p"}
{"Action":"run","Test":"TestB","Package":"p"}
{"Action":"run","Test":"TestC","Package":"p"}
{"Action":"output","Test":"TestA","Package":"p","Output":"a_test.go:3: want 1 got 2\n"}
{"Action":"fail","Test":"TestA","Package":"p","Elapsed":0}
{"Action":"output","Test":"TestC","Package":"p","Output":"c log\n"}
{"Action":"output","Test":"TestB","Package":"p","Output":"panic: boom in TestB\n"}
{"Action":"output","Package":"p","Output":"FAIL\tp\n"}
{"Action":"fail","Package":"p","Elapsed":0}
`
)

func records(t *testing.T, input string) []event.Record {
	t.Helper()
	recs, err := event.Collect(event.NewScanner(context.Background(), strings.NewReader(input)))
	require.NoError(t, err)
	return recs
}

// render classifies input and renders it with r, returning the result and
// everything that reached the sink target.
func render(t *testing.T, r Renderer, input string) (*Result, string) {
	t.Helper()
	recs := records(t, input)
	idx := classify.Records(recs)

	var out bytes.Buffer
	buf := sink.New(sink.DefaultThreshold, &out)
	res, err := r.Render(event.NewSliceScanner(recs), idx, buf)
	require.NoError(t, err)
	require.NoError(t, buf.Flush())
	return res, out.String()
}
