package renderer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asm2table/asm2table/analyzer"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// failedValue stands in for the length and cycles of a line that did not resolve.
const failedValue = -1

// tableRenderer lays out reports with go-pretty and differs only in the
// final rendering call.
type tableRenderer struct {
	format string
	render func(table.Writer) string
	style  *table.Style
	title  bool
	opts   Options
}

// NewTextRenderer creates a renderer drawing a boxed table for terminals.
func NewTextRenderer(opts Options) Renderer {
	return &tableRenderer{
		format: "text",
		render: table.Writer.Render,
		style:  &table.StyleLight,
		title:  true,
		opts:   opts,
	}
}

// NewCSVRenderer creates a renderer writing comma separated values.
func NewCSVRenderer(opts Options) Renderer {
	return &tableRenderer{format: "csv", render: table.Writer.RenderCSV, opts: opts}
}

// NewMarkdownRenderer creates a renderer writing a markdown table.
func NewMarkdownRenderer(opts Options) Renderer {
	return &tableRenderer{format: "markdown", render: table.Writer.RenderMarkdown, opts: opts}
}

func (r *tableRenderer) newWriter() table.Writer {
	t := table.NewWriter()
	if r.style != nil {
		t.SetStyle(*r.style)
	}
	return t
}

// Render writes instruction and failed rows. Blank lines and directives are
// left out unless AllLines is set; the totals only count resolved lines.
func (r *tableRenderer) Render(report *analyzer.Report, output io.Writer) error {
	t := r.newWriter()
	if !r.opts.NoHeader {
		if r.title {
			t.SetTitle("%s (%s)", report.File, report.InstructionSet)
		}
		t.AppendHeader(table.Row{"Instruction", "Modes", "Bytes", "Cycles"})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	for _, row := range report.Rows {
		if row.Failed() {
			t.AppendRow(table.Row{row.Instruction, "", failedValue, failedValue})
			continue
		}
		if row.Kind != "instruction" && !r.opts.AllLines {
			continue
		}
		t.AppendRow(table.Row{row.Instruction, joinModes(row), row.Bytes, row.Cycles})
	}
	if !r.opts.NoHeader {
		t.AppendFooter(table.Row{"Total", failedSummary(report.Failed), report.TotalBytes, report.TotalCycles})
	}

	_, err := io.WriteString(output, r.render(t)+"\n")
	return err
}

// RenderIssues writes one row per issue ordered by line.
func (r *tableRenderer) RenderIssues(issues []*analyzer.Issue, output io.Writer) error {
	if len(issues) == 0 {
		if r.format == "text" {
			_, err := io.WriteString(output, "No issues found\n")
			return err
		}
		return nil
	}

	t := r.newWriter()
	t.AppendHeader(table.Row{"Location", "Severity", "Line", "Message"})
	critical := 0
	for _, issue := range issues {
		if issue.Severity == analyzer.IssueSeverityCritical {
			critical++
		}
		location := issue.Source.File + ":" + strconv.Itoa(issue.Source.Line)
		t.AppendRow(table.Row{location, issue.Severity, issue.Source.Text, issue.Message})
	}
	if r.title {
		t.AppendFooter(table.Row{"", "", "Critical", critical})
		t.AppendFooter(table.Row{"", "", "Warnings", len(issues) - critical})
	}

	_, err := io.WriteString(output, r.render(t)+"\n")
	return err
}

func (r *tableRenderer) Format() string {
	return r.format
}

func joinModes(row *analyzer.Row) string {
	names := make([]string, len(row.Modes))
	for i, mode := range row.Modes {
		names[i] = mode.String()
	}
	return strings.Join(names, ", ")
}

func failedSummary(failed int) string {
	if failed == 0 {
		return ""
	}
	return fmt.Sprintf("%d failed", failed)
}
