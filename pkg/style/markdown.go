package style

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders module documentation for the terminal. Without
// color support the plain "notty" style is used. Rendering errors fall back
// to the raw markdown.
func RenderMarkdown(content string, color bool, width int) string {
	var options []glamour.TermRendererOption
	if color {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle("notty"))
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
