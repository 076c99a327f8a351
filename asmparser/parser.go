// Package asmparser splits assembly source lines into their label, mnemonic,
// operand and comment parts. It knows nothing about any instruction set.
package asmparser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// Parser holds interface for reading assembly sources
type Parser interface {
	Parse(path string) ([]*Line, error)
	Read(r io.Reader) ([]*Line, error)
}

const commentMarker = ";"

// A label is an identifier followed by a colon at the start of the line.
var labelRegex = regexp.MustCompile(`^\s*([A-Za-z_?@][A-Za-z0-9_?@]*)\s*:`)

// Line is one source line taken apart.
type Line struct {
	Number      int      // 1-based line number, 0 when parsed standalone
	Raw         string   // line as read
	Label       string   // label without the colon
	Comment     string   // text after the comment marker
	Text        string   // line without label and comment, trimmed
	Mnemonic    string   // first word of Text
	RawOperands string   // rest of Text after the mnemonic, trimmed
	Operands    []string // RawOperands split on commas, each trimmed
}

// ParseLine strips decoration from a raw line and tokenizes what is left.
func ParseLine(raw string) *Line {
	line := &Line{Raw: raw}
	rest := raw
	if idx := strings.Index(rest, commentMarker); idx >= 0 {
		line.Comment = strings.TrimSpace(rest[idx+len(commentMarker):])
		rest = rest[:idx]
	}
	if m := labelRegex.FindStringSubmatchIndex(rest); m != nil {
		line.Label = rest[m[2]:m[3]]
		rest = rest[m[1]:]
	}
	line.Text = strings.TrimSpace(rest)
	line.tokenize()
	return line
}

func (l *Line) tokenize() {
	l.Mnemonic, l.RawOperands, l.Operands = "", "", nil
	if l.Text == "" {
		return
	}
	idx := strings.IndexFunc(l.Text, unicode.IsSpace)
	if idx < 0 {
		l.Mnemonic = l.Text
		return
	}
	l.Mnemonic = l.Text[:idx]
	l.RawOperands = strings.TrimSpace(l.Text[idx:])
	if l.RawOperands == "" {
		return
	}
	for _, op := range strings.Split(l.RawOperands, ",") {
		l.Operands = append(l.Operands, strings.TrimSpace(op))
	}
}

// IsBlank reports whether nothing but a label or a comment is on the line.
func (l *Line) IsBlank() bool {
	return l.Text == ""
}

// Source returns the raw line without its comment, label kept.
func (l *Line) Source() string {
	src := l.Raw
	if idx := strings.Index(src, commentMarker); idx >= 0 {
		src = src[:idx]
	}
	return strings.TrimSpace(src)
}

// Upper returns a copy with the instruction text upper-cased and tokenized
// again. Label and comment keep their case.
func (l *Line) Upper() *Line {
	upper := *l
	upper.Text = strings.ToUpper(l.Text)
	upper.tokenize()
	return &upper
}

// parserImpl implements the Parser interface.
type parserImpl struct{}

// NewParser returns a new instance of a line parser.
func NewParser() Parser {
	return &parserImpl{}
}

// Parse reads and splits every line of an assembly file.
func (p *parserImpl) Parse(path string) ([]*Line, error) {
	fpath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving absolute filepath: %w", err)
	}

	codefile, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		_ = codefile.Close()
	}()
	return p.Read(codefile)
}

// Read splits every line read from r.
func (p *parserImpl) Read(r io.Reader) ([]*Line, error) {
	lines := make([]*Line, 0)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := ParseLine(strings.TrimSuffix(scanner.Text(), "\r"))
		line.Number = lineNum
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
	}
	return lines, nil
}
