// Package analyzer provides an interface for analyzing assembly source files line by line.
package analyzer

import (
	"context"

	"github.com/asm2table/asm2table/isa"
)

// Analyzer represents the interface for the analyzer.
type Analyzer interface {
	// Analyze resolves every line of the file at path.
	Analyze(ctx context.Context, path string) (*Report, error)

	// Validate checks every line of the file at path without computing
	// lengths or cycles and returns the lines that need attention.
	Validate(ctx context.Context, path string) ([]*Issue, error)
}

// IssueSeverity represents the severity level of an issue.
type IssueSeverity string

const (
	IssueSeverityCritical IssueSeverity = "CRITICAL"
	IssueSeverityWarning  IssueSeverity = "WARNING"
)

// Issue represents a single line found by the validator.
type Issue struct {
	Source   *IssueSource  `json:"source"`
	Message  string        `json:"message"` // A description of the issue.
	Severity IssueSeverity `json:"severity"`
}

// IssueSource represents the location of an issue.
type IssueSource struct {
	File    string `json:"file"`
	Line    int    `json:"line"`    // The line number where the issue was found.
	Text    string `json:"text"`    // The line without its comment.
	AbsPath string `json:"absPath"` // The absolute file path.
}

// Row is the analysis of one source line.
type Row struct {
	Line        int                  `json:"line"`
	Instruction string               `json:"instruction"` // source text without comment
	Kind        string               `json:"kind"`
	Modes       []isa.AddressingMode `json:"modes"`
	Bytes       int                  `json:"bytes"`
	Cycles      int                  `json:"cycles"`
	Error       string               `json:"error,omitempty"`
}

// Failed reports whether the line did not resolve.
func (r *Row) Failed() bool {
	return r.Error != ""
}

// Report is the analysis of a whole file, rows in source order.
type Report struct {
	File           string `json:"file"`
	InstructionSet string `json:"instructionSet"`
	Rows           []*Row `json:"rows"`
	TotalBytes     int    `json:"totalBytes"`  // over resolved lines
	TotalCycles    int    `json:"totalCycles"` // over resolved lines
	Failed         int    `json:"failed"`
}
