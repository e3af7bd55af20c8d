// Package cmd implements the testsift command line.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/testsift/errors"
	"github.com/cloudposse/testsift/pkg/ci"
	"github.com/cloudposse/testsift/pkg/ci/providers/generic"
	// Registers the GitHub Actions provider.
	_ "github.com/cloudposse/testsift/pkg/ci/providers/github"
	"github.com/cloudposse/testsift/pkg/config"
	"github.com/cloudposse/testsift/pkg/filter"
	log "github.com/cloudposse/testsift/pkg/logger"
	"github.com/cloudposse/testsift/pkg/report"
	"github.com/cloudposse/testsift/pkg/sink"
	"github.com/cloudposse/testsift/pkg/source"
)

// App holds the collaborators shared by every command.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Fs     afero.Fs
	// Provider overrides CI provider detection.
	Provider ci.Provider

	viper      *viper.Viper
	configFile string
}

// NewApp returns an App bound to the process streams and the OS file system.
func NewApp() *App {
	return &App{Stdout: os.Stdout, Stderr: os.Stderr, Fs: afero.NewOsFs()}
}

func (a *App) provider() ci.Provider {
	if a.Provider != nil {
		return a.Provider
	}
	p, err := ci.DetectOrDefault(generic.ProviderName)
	if err != nil {
		return generic.NewProvider()
	}
	a.Provider = p
	return p
}

// NewRootCmd builds the command tree for app.
func NewRootCmd(app *App) *cobra.Command {
	app.viper = viper.New()

	rootCmd := &cobra.Command{
		Use:   "testsift [results-file]",
		Short: "Show only the failures of a go test -json run",
		Long: `testsift reads the JSON lines written by 'go test -json', works out which
tests and packages failed, and prints only the output that explains those
failures. Panicking tests are isolated from the logs of concurrent tests, and
packages that failed without a failing test get their full output for triage.`,
		Example: `  # Filter a results file
  go test -json ./... > results.json
  testsift results.json

  # Mirror the filtered output to a file
  testsift --results-file results.json --output-file failures.log

  # Keep the retained events as JSON lines
  testsift results.json --mode batch --output-mode json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runFilter(cmd.Context(), args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&app.configFile, "config", "", "Config file (default is ./.testsift.yaml)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String(config.KeyResultsFile, "", "Path to the go test -json results file")

	f := rootCmd.Flags()
	f.String(config.KeyOutputFile, "", "Also write the filtered output to this file")
	f.String(config.KeyMode, string(filter.ModeStream), "Filter mode: stream (two passes, bounded memory) or batch")
	f.String(config.KeyOutputMode, string(filter.FormatPlain), "Output format in batch mode: plain or json")
	f.Bool(config.KeyConsole, true, "Print the filtered output to stdout")
	f.Int(config.KeyFlushThreshold, sink.DefaultThreshold, "Buffered bytes before output is flushed")
	f.Bool(config.KeySummary, true, "Write a markdown job summary when running in CI")

	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	rootCmd.AddCommand(newIndexCmd(app))
	rootCmd.AddCommand(newSemverCompareCmd(app))
	rootCmd.AddCommand(newVersionCmd(app))

	return rootCmd
}

// initConfig loads the config file and environment, binds the command's flags
// and applies the log level.
func (a *App) initConfig(cmd *cobra.Command) error {
	if err := config.Init(a.viper, a.configFile); err != nil {
		return err
	}
	if err := config.BindFlags(a.viper, cmd.Flags()); err != nil {
		return err
	}
	if err := log.SetLevel(a.viper.GetString(config.KeyLogLevel)); err != nil {
		log.Warn("Ignoring invalid log level", "error", err)
	}
	if used := a.viper.ConfigFileUsed(); used != "" {
		log.Debug("Loaded config file", "file", used)
	}
	return nil
}

func (a *App) loadConfig(args []string) (*config.Config, error) {
	if len(args) == 1 {
		a.viper.Set(config.KeyResultsFile, args[0])
	}
	return config.Load(a.viper)
}

func (a *App) runFilter(ctx context.Context, args []string) error {
	cfg, err := a.loadConfig(args)
	if err != nil {
		return err
	}

	opts := filter.Options{
		Source:         source.NewFile(a.Fs, cfg.ResultsFile),
		Mode:           cfg.FilterMode(),
		Format:         cfg.FilterFormat(),
		Fs:             a.Fs,
		OutputFile:     cfg.OutputFile,
		FlushThreshold: cfg.FlushThreshold,
	}
	if cfg.Console {
		opts.Console = a.Stdout
	}

	res, runErr := filter.Run(ctx, opts)
	if res == nil || (runErr != nil && !errors.Is(runErr, errUtils.ErrTestFailuresFound)) {
		return runErr
	}

	if err := a.publish(cfg, res); err != nil {
		log.Warn("Failed to publish CI outputs", "error", err)
	}
	return runErr
}

// publish writes step outputs and the job summary through the CI provider.
func (a *App) publish(cfg *config.Config, res *filter.Result) error {
	writer := a.provider().OutputWriter()

	// A passing run leaves no mirror file behind.
	outputFile := ""
	if res.Failed {
		outputFile = cfg.OutputFile
	}
	err := ci.NewOutputHelpers(writer).WriteResultOutputs(ci.ResultOutputOptions{
		Failed:         res.Failed,
		FailedTests:    len(res.FailedTests),
		FailedPackages: res.Index.Len(),
		OutputFile:     outputFile,
	})
	if err != nil {
		return err
	}

	if !cfg.Summary {
		return nil
	}
	return writer.WriteSummary(report.Summary(res.Index, report.Options{OutputFile: outputFile}))
}

// Execute runs the command line and marks the CI job failed on error.
func Execute(ctx context.Context, app *App, args []string) error {
	rootCmd := NewRootCmd(app)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		app.provider().SetFailed(err.Error())
	}
	return err
}
