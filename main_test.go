package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExitCodes(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "")

	dir := t.TempDir()
	failing := filepath.Join(dir, "failing.json")
	require.NoError(t, os.WriteFile(failing, []byte(`{"Action":"fail","Package":"p","Elapsed":0}`+"\n"), 0o644))
	passing := filepath.Join(dir, "passing.json")
	require.NoError(t, os.WriteFile(passing, []byte(`{"Action":"pass","Package":"p","Elapsed":0}`+"\n"), 0o644))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "version", args: []string{"version"}, want: 0},
		{name: "passing results", args: []string{passing, "--summary=false"}, want: 0},
		{name: "failing results", args: []string{failing, "--console=false", "--summary=false"}, want: 1},
		{name: "missing results file", args: []string{"--results-file", ""}, want: 2},
		{name: "invalid operator", args: []string{"semver-compare", "1.0.0", "gte", "1.0.0"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.args))
		})
	}
}
