package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asm2table/asm2table/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"golang.org/x/tools/txtar"
)

func runApp(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := cli.NewApp()
	app.Name = "asm2table"
	app.Writer = &out
	app.ErrWriter = io.Discard
	if stdin != nil {
		app.Reader = stdin
	}
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Flags = GlobalFlags
	app.Commands = []*cli.Command{
		CreateAnalyzeCommand(AnalyzeSource),
		CreateValidateCommand(ValidateSource),
		CreateExplainCommand(ExplainLine),
		CreateInstructionsCommand(ListInstructions),
	}
	err := app.RunContext(context.Background(), append([]string{"asm2table", "--quiet"}, args...))
	return out.String(), err
}

// extract writes the files of a txtar archive to a temporary directory and
// makes it the working directory.
func extract(t *testing.T, name string) map[string]string {
	t.Helper()
	archive, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	dir := t.TempDir()
	files := make(map[string]string, len(archive.Files))
	for _, f := range archive.Files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0600))
		files[f.Name] = string(f.Data)
	}
	t.Chdir(dir)
	return files
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.asm")
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))
	return path
}

func TestAnalyzeJSON(t *testing.T) {
	files := extract(t, "analyze.txtar")

	_, err := runApp(t, nil, "analyze", "--format", "json", "-o", "report.json", "--workers", "3", "prog.asm")
	require.NoError(t, err)

	got, err := os.ReadFile("report.json")
	require.NoError(t, err)
	assert.JSONEq(t, files["want.json"], string(got))
}

func TestAnalyzeFoldCase(t *testing.T) {
	extract(t, "analyze.txtar")

	out, err := runApp(t, nil, "analyze", "--format", "json", "--fold-case", "prog.asm")
	require.NoError(t, err)

	var report analyzer.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.Failed)
	assert.Equal(t, 9, report.TotalBytes)
	assert.Equal(t, 8, report.TotalCycles)
}

func TestAnalyzeCSV(t *testing.T) {
	path := writeSource(t, "MAIN: NOP ; idle\n SJMP MAIN\n FOO\n")

	out, err := runApp(t, nil, "analyze", "--format", "csv", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "MAIN: NOP,,1,1", lines[1])
	assert.Equal(t, "SJMP MAIN,Direct,2,2", lines[2])
	assert.Equal(t, "FOO,,-1,-1", lines[3])
}

func TestAnalyzeEveryLine(t *testing.T) {
	path := writeSource(t, "MAIN: NOP ; idle\n\n ORG 10H\n FOO\n")

	out, err := runApp(t, nil, "analyze", "--format", "csv", "--all-lines", "--no-header", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"MAIN: NOP,,1,1", ",,0,0", "ORG 10H,,0,0", "FOO,,-1,-1"},
		strings.Split(strings.TrimSuffix(out, "\n"), "\n"))
}

func TestInstructions(t *testing.T) {
	out, err := runApp(t, nil, "instructions")
	require.NoError(t, err)
	got := strings.ToLower(out)

	assert.Contains(t, got, "mcs51 operands")
	assert.Contains(t, got, "mcs51 instructions")
	assert.Contains(t, got, "@a+dptr")
	assert.Contains(t, got, "dptr, imm2b")
	assert.Contains(t, got, "37 cycle rules, baseline 1")
}

func TestAnalyzeErrors(t *testing.T) {
	path := writeSource(t, "NOP\n")

	_, err := runApp(t, nil, "analyze", "--format", "html", path)
	assert.EqualError(t, err, "invalid format: html")

	_, err = runApp(t, nil, "analyze")
	assert.EqualError(t, err, "expected one assembly file, got 0 arguments")

	_, err = runApp(t, nil, "analyze", filepath.Join(t.TempDir(), "missing.asm"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = runApp(t, nil, "analyze", "--profile", filepath.Join(t.TempDir(), "missing.yaml"), path)
	assert.ErrorContains(t, err, "error loading profile")
}

func TestAnalyzeCustomProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "tiny.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(`name: tiny
baseline_cycles: 3
operands:
  - {tag: A, mode: register, pattern: '^A$'}
instructions:
  - {mnemonic: CLR, variants: [[A]]}
`), 0600))
	path := writeSource(t, "CLR A\n")

	out, err := runApp(t, nil, "analyze", "--profile", profilePath, "--format", "json", path)
	require.NoError(t, err)

	var report analyzer.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "tiny", report.InstructionSet)
	assert.Equal(t, 1, report.TotalBytes)
	assert.Equal(t, 3, report.TotalCycles)
}

func TestAnalyzePause(t *testing.T) {
	restore := isTerminal
	t.Cleanup(func() { isTerminal = restore })
	path := writeSource(t, "NOP\n")

	isTerminal = func() bool { return true }
	out, err := runApp(t, strings.NewReader("\n"), "analyze", "--pause", path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Press Enter to quit..."))

	isTerminal = func() bool { return false }
	out, err = runApp(t, strings.NewReader(""), "analyze", "--pause", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "Press Enter")
}

func TestValidate(t *testing.T) {
	clean := writeSource(t, "NOP\nSJMP 10H\n")
	out, err := runApp(t, nil, "validate", clean)
	require.NoError(t, err)
	assert.Equal(t, "No issues found\n", out)

	broken := writeSource(t, "NOP\nRET A\n")
	out, err = runApp(t, nil, "validate", broken)
	require.Error(t, err)
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitInvalid, exitErr.ExitCode())
	assert.Contains(t, out, "prog.asm:2")
	assert.Contains(t, out, "CRITICAL")
}

func TestValidateWarningsOnly(t *testing.T) {
	path := writeSource(t, "MOV A, R0, R1\n")

	out, err := runApp(t, nil, "validate", "--format", "json", path)
	require.NoError(t, err)

	var issues []*analyzer.Issue
	require.NoError(t, json.Unmarshal([]byte(out), &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, analyzer.IssueSeverityWarning, issues[0].Severity)
}

func TestExplain(t *testing.T) {
	out, err := runApp(t, nil, "explain", "LOOP:", "MOV", "DPTR,", "#1234H", ";", "load")
	require.NoError(t, err)
	assert.Contains(t, out, "LOOP")
	assert.Contains(t, out, "DPTR | #1234H")
	assert.Contains(t, out, "#7 [DPTR, imm2B]")
	assert.Contains(t, out, "Register (0 byte), Immediate (2 byte)")
	assert.Contains(t, out, "2 (MOV DPTR, imm2B => 2)")

	out, err = runApp(t, nil, "explain", "CLR C")
	require.NoError(t, err)
	assert.Contains(t, out, "1 (baseline)")

	out, err = runApp(t, nil, "explain", "ORG 100H")
	require.NoError(t, err)
	assert.Contains(t, out, "directive")
	assert.NotContains(t, out, "Cycles")

	_, err = runApp(t, nil, "explain", "FOO R1")
	assert.EqualError(t, err, `explain "FOO R1": FOO: unknown instruction`)

	_, err = runApp(t, nil, "explain")
	assert.EqualError(t, err, "expected a source line")
}
