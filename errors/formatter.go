package errors

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

var (
	errorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F44336"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

// Format renders an error and its hints for display on stderr.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(errorTitleStyle.Render("Error:"))
	sb.WriteString(" ")
	sb.WriteString(err.Error())

	for _, hint := range errors.GetAllHints(err) {
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render("    💡 " + hint))
	}

	return sb.String()
}
