package style_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/tuna/pkg/style"
	"github.com/stretchr/testify/assert"
)

func TestPlainPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := style.NewPlainPrinter(&buf)

	p.Printf(style.Success, "%s switched to mirror", "pypi")
	p.Printf(style.Warning, "operation cancelled")
	p.Println("raw")

	assert.False(t, p.Color())
	assert.Equal(t, "[success] pypi switched to mirror\n[warning] operation cancelled\nraw\n", buf.String())
}

func TestNewPrinter_NonTerminalHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	p := style.NewPrinter(&buf)
	assert.False(t, p.Color(), "a buffer is never a terminal")

	p.Printf(style.Error, "boom")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestSupportsColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	assert.False(t, style.SupportsColor(&buf))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "info", style.Info.String())
	assert.Equal(t, "success", style.Success.String())
	assert.Equal(t, "warning", style.Warning.String())
	assert.Equal(t, "error", style.Error.String())
}

func TestModuleRow(t *testing.T) {
	row := style.ModuleRow("pypi", "online", style.Success, "Python package index")
	assert.Contains(t, row, "pypi")
	assert.Contains(t, row, "online")
	assert.Contains(t, row, "Python package index")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", style.Indent("a\n\nb", 1))
}

func TestRenderMarkdown_Plain(t *testing.T) {
	out := style.RenderMarkdown("# PyPI\n\nSets `global.index-url`.", false, 60)
	assert.Contains(t, out, "PyPI")
	assert.Contains(t, out, "global.index-url")
	assert.False(t, strings.Contains(out, "\x1b[38"), "notty style has no colors")
}
