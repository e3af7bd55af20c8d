package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/testsift/errors"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		v1   string
		op   Operator
		v2   string
		want bool
	}{
		{"1.2.3", GreaterThan, "1.2.2", true},
		{"1.2.3", GreaterThan, "1.2.3", false},
		{"1.2.3", LessThan, "1.10.0", true},
		{"2.0.0-rc.1", LessThan, "2.0.0", true},
		{"v1.0.0", Equal, "1.0.0", true},
		{"1.0.0+build.5", Equal, "1.0.0", true},
		{"1.0.0", Equal, "1.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.v1+" "+string(tt.op)+" "+tt.v2, func(t *testing.T) {
			got, err := Compare(tt.v1, tt.op, tt.v2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareErrors(t *testing.T) {
	tests := []struct {
		name    string
		v1      string
		op      Operator
		v2      string
		wantErr error
		wantMsg string
	}{
		{name: "missing version", v1: "", op: Equal, v2: "1.0.0", wantErr: errUtils.ErrSemverInputsRequired, wantMsg: "Required inputs not specified."},
		{name: "missing operator", v1: "1.0.0", op: "", v2: "1.0.0", wantErr: errUtils.ErrSemverInputsRequired, wantMsg: "Required inputs not specified."},
		{name: "partial version", v1: "1.2", op: Equal, v2: "1.2.0", wantErr: errUtils.ErrInvalidVersion, wantMsg: "Invalid version(s)."},
		{name: "garbage version", v1: "1.0.0", op: Equal, v2: "latest", wantErr: errUtils.ErrInvalidVersion, wantMsg: "Invalid version(s)."},
		{name: "unknown operator", v1: "1.0.0", op: "gte", v2: "1.0.0", wantErr: errUtils.ErrInvalidOperator, wantMsg: "Invalid operator."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare(tt.v1, tt.op, tt.v2)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
