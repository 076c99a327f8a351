package renderer

import (
	"encoding/json"
	"io"

	"github.com/asm2table/asm2table/analyzer"
)

// JSONRenderer renders reports and issues in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(report *analyzer.Report, output io.Writer) error {
	return r.encode(report, output)
}

func (r *JSONRenderer) RenderIssues(issues []*analyzer.Issue, output io.Writer) error {
	return r.encode(issues, output)
}

func (r *JSONRenderer) encode(v any, output io.Writer) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *JSONRenderer) Format() string {
	return "json"
}
