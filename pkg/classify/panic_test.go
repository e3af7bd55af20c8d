package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPanicTestName(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "test named after panic",
			text:   "panic: runtime error: index out of range [recovered] TestFoo\n",
			want:   "TestFoo",
			wantOK: true,
		},
		{
			name:   "last test token wins",
			text:   "panic: TestA failed while TestBar_sub2 was running",
			want:   "TestBar_sub2",
			wantOK: true,
		},
		{
			name:   "test timeout",
			text:   "panic: test timed out after 10m0s\n\trunning tests:\n\t\tTestSlow (10m0s)\n",
			wantOK: false,
		},
		{
			name:   "timeout on one line",
			text:   "panic: test timed out after 2s running TestSlow (2s)",
			want:   "TestSlow",
			wantOK: true,
		},
		{
			name:   "not anchored at start",
			text:   "    panic: nil map write TestFoo",
			wantOK: false,
		},
		{
			name:   "no test token",
			text:   "panic: assignment to entry in nil map\n",
			wantOK: false,
		},
		{
			name:   "lowercase after Test is not a test name",
			text:   "panic: boom Testify",
			wantOK: false,
		},
		{
			name:   "no panic marker",
			text:   "--- FAIL: TestFoo (0.00s)\n",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPanicTestName(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
