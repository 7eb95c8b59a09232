package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModuleRow renders one aligned line of the module list
func ModuleRow(name, state string, category Category, summary string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		ModuleNameStyle.Render(name),
		StateStyle.Render(CategoryStyle(category).Render(state)),
		MutedStyle.Render(summary),
	)
}

// CategoryStyle returns the lipgloss style matching a category
func CategoryStyle(c Category) lipgloss.Style {
	switch c {
	case Success:
		return SuccessStyle
	case Warning:
		return WarningStyle
	case Error:
		return ErrorStyle
	default:
		return InfoStyle
	}
}

// Indent prefixes every line of text with n levels of two-space indentation
func Indent(text string, n int) string {
	prefix := strings.Repeat("  ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
