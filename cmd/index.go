package cmd

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	errUtils "github.com/cloudposse/testsift/errors"
	"github.com/cloudposse/testsift/pkg/classify"
	"github.com/cloudposse/testsift/pkg/config"
	"github.com/cloudposse/testsift/pkg/event"
	log "github.com/cloudposse/testsift/pkg/logger"
	"github.com/cloudposse/testsift/pkg/source"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// indexDocument is the printed form of a failure index.
type indexDocument struct {
	Failed      bool               `json:"failed" yaml:"failed"`
	FailedTests []classify.TestRef `json:"failedTests" yaml:"failedTests"`
	Packages    []classify.Entry   `json:"packages" yaml:"packages"`
}

func newIndexDocument(idx *classify.Index) indexDocument {
	doc := indexDocument{
		Failed:      idx.Failed(),
		FailedTests: idx.FailedTests(),
		Packages:    idx.Entries(),
	}
	if doc.FailedTests == nil {
		doc.FailedTests = []classify.TestRef{}
	}
	if doc.Packages == nil {
		doc.Packages = []classify.Entry{}
	}
	return doc
}

func newIndexCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "index [results-file]",
		Short: "Print the failure index of a results file",
		Long: `Classify a go test -json results file without rendering its output and print
which packages and tests failed, which tests panicked and which packages need
triage. Exits with status 1 when failures are found.`,
		Example: `  testsift index results.json
  testsift index results.json --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.viper.Set(config.KeyResultsFile, args[0])
			}
			path := strings.TrimSpace(app.viper.GetString(config.KeyResultsFile))
			if path == "" {
				return errUtils.Build(errUtils.ErrMissingResultsFile).
					WithHint("Pass the results file as an argument or with --results-file").
					WithExitCode(2).
					Err()
			}

			var idx *classify.Index
			err := source.Scan(cmd.Context(), source.NewFile(app.Fs, path), func(s event.RecordScanner) error {
				var err error
				idx, err = classify.Scan(s)
				return err
			})
			if err != nil {
				return err
			}

			out, err := renderIndex(newIndexDocument(idx), format)
			if err != nil {
				return err
			}
			fmt.Fprint(app.Stdout, out)

			log.Debug("Printed failure index", "packages", idx.Len(), "format", format)
			if idx.Failed() {
				return errUtils.Build(errUtils.ErrTestFailuresFound).WithExitCode(1).Err()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func renderIndex(doc indexDocument, format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "yaml", "yml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", errUtils.Build(errUtils.ErrInvalidIndexFormat).
		WithHint("Use json or yaml").
		WithContext("format", format).
		Err()
}
