// Package config loads testsift settings from flags, environment variables,
// GitHub Actions inputs and an optional .testsift.yaml file.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/testsift/errors"
	"github.com/cloudposse/testsift/pkg/ci/providers/github"
	"github.com/cloudposse/testsift/pkg/filter"
	"github.com/cloudposse/testsift/pkg/sink"
)

const (
	// EnvPrefix prefixes every environment variable read by testsift.
	EnvPrefix = "TESTSIFT"
	// FileName is the config file searched in the working directory, without extension.
	FileName = ".testsift"
)

// Configuration keys.
const (
	KeyResultsFile    = "results-file"
	KeyOutputFile     = "output-file"
	KeyMode           = "mode"
	KeyOutputMode     = "output-mode"
	KeyConsole        = "console"
	KeyFlushThreshold = "flush-threshold"
	KeySummary        = "summary"
	KeyLogLevel       = "log.level"
)

// actionInputs are the keys that can also be set as GitHub Actions inputs.
var actionInputs = []string{KeyResultsFile, KeyOutputFile, KeyMode, KeyOutputMode, KeySummary}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config holds all runtime configuration for a filter run.
type Config struct {
	ResultsFile    string    `mapstructure:"results-file"`
	OutputFile     string    `mapstructure:"output-file"`
	Mode           string    `mapstructure:"mode"`
	OutputMode     string    `mapstructure:"output-mode"`
	Console        bool      `mapstructure:"console"`
	FlushThreshold int       `mapstructure:"flush-threshold"`
	Summary        bool      `mapstructure:"summary"`
	Log            LogConfig `mapstructure:"log"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyResultsFile, "")
	v.SetDefault(KeyOutputFile, "")
	v.SetDefault(KeyMode, string(filter.ModeStream))
	v.SetDefault(KeyOutputMode, string(filter.FormatPlain))
	v.SetDefault(KeyConsole, true)
	v.SetDefault(KeyFlushThreshold, sink.DefaultThreshold)
	v.SetDefault(KeySummary, true)
	v.SetDefault(KeyLogLevel, "info")
}

// Init wires environment variables and the config file into v. An explicit
// configFile must exist; the default .testsift.yaml is optional.
func Init(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for _, key := range actionInputs {
		if err := v.BindEnv(key, envName(key), github.InputEnv(key)); err != nil {
			return err
		}
	}
	if err := v.BindEnv(KeyLogLevel, envName(KeyLogLevel)); err != nil {
		return err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "read config")
	}
	return nil
}

// BindFlags binds every flag of fs whose name is a configuration key. The
// log-level flag is bound to log.level.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if key == "log-level" {
			key = KeyLogLevel
		}
		if !isKey(key) {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

func isKey(key string) bool {
	switch key {
	case KeyResultsFile, KeyOutputFile, KeyMode, KeyOutputMode, KeyConsole, KeyFlushThreshold, KeySummary, KeyLogLevel:
		return true
	}
	return false
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required values and normalizes mode names and aliases.
func (c *Config) Validate() error {
	c.ResultsFile = strings.TrimSpace(c.ResultsFile)
	if c.ResultsFile == "" {
		return errUtils.Build(errUtils.ErrMissingResultsFile).
			WithHint("Pass the file as an argument, with --results-file, TESTSIFT_RESULTS_FILE or the results-file action input").
			WithExitCode(2).
			Err()
	}

	mode, err := filter.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	format, err := filter.ParseFormat(c.OutputMode)
	if err != nil {
		return err
	}
	if mode == filter.ModeStream && format != filter.FormatPlain {
		return errUtils.Build(errUtils.ErrInvalidOutputFormat).
			WithHint("Structured output needs --mode batch").
			WithContext("output-mode", c.OutputMode).
			Err()
	}
	c.Mode = string(mode)
	c.OutputMode = string(format)

	if c.FlushThreshold <= 0 {
		c.FlushThreshold = sink.DefaultThreshold
	}
	return nil
}

// FilterMode returns the validated mode.
func (c *Config) FilterMode() filter.Mode {
	return filter.Mode(c.Mode)
}

// FilterFormat returns the validated output format.
func (c *Config) FilterFormat() filter.Format {
	return filter.Format(c.OutputMode)
}
