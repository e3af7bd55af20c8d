package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/testsift/errors"
)

func TestIndexJSON(t *testing.T) {
	app := newTestApp(t, failingResults)

	err := Execute(context.Background(), app.App, []string{"index", "results.json"})

	assert.ErrorIs(t, err, errUtils.ErrTestFailuresFound)
	assert.JSONEq(t, `{
		"failed": true,
		"failedTests": [{"package": "p", "test": "T1"}],
		"packages": [{
			"package": "p",
			"tests": [{"name": "T1", "passed": false, "completed": true}],
			"packageFailedWithoutTestFailure": false
		}]
	}`, app.stdout.String())
}

func TestIndexYAML(t *testing.T) {
	app := newTestApp(t, passingResults)

	err := Execute(context.Background(), app.App, []string{"index", "--results-file", "results.json", "--format", "yaml"})

	require.NoError(t, err)
	assert.Equal(t, "failed: false\nfailedTests: []\npackages: []\n", app.stdout.String())
}

func TestIndexErrors(t *testing.T) {
	app := newTestApp(t, passingResults)
	err := Execute(context.Background(), app.App, []string{"index", "results.json", "--format", "toml"})
	assert.ErrorIs(t, err, errUtils.ErrInvalidIndexFormat)

	app = newTestApp(t, passingResults)
	err = Execute(context.Background(), app.App, []string{"index"})
	assert.ErrorIs(t, err, errUtils.ErrMissingResultsFile)
}
