// Package logger wraps charmbracelet/log with the styling and level parsing
// used across testsift. Logs always go to stderr so they never mix with the
// filtered test output written to stdout.
package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"

	errUtils "github.com/cloudposse/testsift/errors"
)

// New creates a styled logger writing to w.
func New(w io.Writer) *charm.Logger {
	l := charm.NewWithOptions(w, charm.Options{
		ReportTimestamp: false,
		Level:           charm.InfoLevel,
	})
	l.SetStyles(logStyles())
	return l
}

// ParseLevel converts a level name into a charm level. An empty name means info.
func ParseLevel(level string) (charm.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return charm.InfoLevel, nil
	case "debug", "trace":
		return charm.DebugLevel, nil
	case "info":
		return charm.InfoLevel, nil
	case "warn", "warning":
		return charm.WarnLevel, nil
	case "error":
		return charm.ErrorLevel, nil
	case "fatal":
		return charm.FatalLevel, nil
	default:
		return charm.InfoLevel, errUtils.Build(errUtils.ErrInvalidLogLevel).
			WithHint("Supported log levels are debug, info, warn, error, fatal").
			WithContext("level", level).
			Err()
	}
}

// logStyles returns solid-background level badges with dimmed keys.
func logStyles() *charm.Styles {
	styles := charm.DefaultStyles()
	styles.Levels = map[charm.Level]lipgloss.Style{
		charm.DebugLevel: levelStyle("DEBUG", "#3F51B5", "#000000"),
		charm.InfoLevel:  levelStyle("INFO", "#4CAF50", "#000000"),
		charm.WarnLevel:  levelStyle("WARN", "#FF9800", "#000000"),
		charm.ErrorLevel: levelStyle("ERROR", "#F44336", "#000000"),
		charm.FatalLevel: levelStyle("FATAL", "#F44336", "#FFFFFF"),
	}
	styles.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Bold(true)
	styles.Value = lipgloss.NewStyle()
	styles.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	return styles
}

func levelStyle(label, background, foreground string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(foreground)).
		Padding(0, 1)
}
