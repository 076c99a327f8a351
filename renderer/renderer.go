// Package renderer provides a way to render analysis results in different formats.
package renderer

import (
	"fmt"
	"io"

	"github.com/asm2table/asm2table/analyzer"
)

// Renderer defines the interface for rendering analysis results in different formats.
type Renderer interface {
	// Render writes one row per instruction of the report to output.
	Render(report *analyzer.Report, output io.Writer) error

	// RenderIssues writes the issues found by validation to output.
	RenderIssues(issues []*analyzer.Issue, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text", "csv").
	Format() string
}

// Options tune the tabular formats. JSON always carries every line.
type Options struct {
	AllLines bool // keep blank and directive lines, with zero length and cycles
	NoHeader bool // leave out the header and the totals
}

// Formats lists the names accepted by New.
var Formats = []string{"text", "csv", "markdown", "json"}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case "text", "":
		return NewTextRenderer(opts), nil
	case "csv":
		return NewCSVRenderer(opts), nil
	case "markdown":
		return NewMarkdownRenderer(opts), nil
	case "json":
		return NewJSONRenderer(), nil
	}
	return nil, fmt.Errorf("invalid format: %s", format)
}
