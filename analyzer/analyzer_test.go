package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/asm2table/asm2table/isa"
	"github.com/asm2table/asm2table/resolver"
	"github.com/retroenv/retrogolib/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T, workers int) Analyzer {
	t.Helper()
	r, err := resolver.Default()
	require.NoError(t, err)
	return NewSourceAnalyzer(log.NewTestLogger(t), r, workers)
}

func TestAnalyze(t *testing.T) {
	report, err := newTestAnalyzer(t, 4).Analyze(context.Background(), "testdata/blink.asm")
	require.NoError(t, err)

	assert.Equal(t, "mcs51", report.InstructionSet)
	require.Len(t, report.Rows, 16)
	for i, row := range report.Rows {
		assert.Equal(t, i+1, row.Line)
	}

	mov := report.Rows[4]
	assert.Equal(t, "START:  MOV A, #0FFH", mov.Instruction)
	assert.Equal(t, "instruction", mov.Kind)
	assert.Equal(t, []isa.AddressingMode{isa.RegisterDirect, isa.Immediate(1)}, mov.Modes)
	assert.Equal(t, 2, mov.Bytes)
	assert.Equal(t, 1, mov.Cycles)

	dptr := report.Rows[5]
	assert.Equal(t, 3, dptr.Bytes)
	assert.Equal(t, 2, dptr.Cycles)

	org := report.Rows[1]
	assert.Equal(t, "directive", org.Kind)
	assert.Zero(t, org.Bytes)
	assert.Zero(t, org.Cycles)

	assert.Equal(t, "blank", report.Rows[0].Kind)
	assert.Equal(t, "blank", report.Rows[3].Kind)

	foo := report.Rows[13]
	assert.True(t, foo.Failed())
	assert.Equal(t, "FOO: unknown instruction", foo.Error)
	assert.Empty(t, foo.Modes)
	assert.Equal(t, "FOO R1", foo.Instruction)
	assert.Equal(t, "directive", report.Rows[15].Kind)

	// 2+3+2+2+2+2+2+1+1 bytes, 1+2+1+2+2+1+2+4+2 cycles
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 17, report.TotalBytes)
	assert.Equal(t, 17, report.TotalCycles)
}

func TestAnalyzeWorkerCountDoesNotChangeReport(t *testing.T) {
	serial, err := newTestAnalyzer(t, 1).Analyze(context.Background(), "testdata/blink.asm")
	require.NoError(t, err)
	parallel, err := newTestAnalyzer(t, 8).Analyze(context.Background(), "testdata/blink.asm")
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := newTestAnalyzer(t, 1).Analyze(context.Background(), "testdata/missing.asm")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestAnalyzer(t, 2).Analyze(ctx, "testdata/blink.asm")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.asm")
	src := "        NOP\n" +
		"        RET A\n" +
		"        MOV A, R0, R1\n" +
		"        MOV @R0, @R1\n" +
		"        FOO\n" +
		"        ORG 100H\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))

	issues, err := newTestAnalyzer(t, 2).Validate(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, issues, 4)

	assert.Equal(t, 2, issues[0].Source.Line)
	assert.Equal(t, IssueSeverityCritical, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "takes no operands")

	assert.Equal(t, 3, issues[1].Source.Line)
	assert.Equal(t, IssueSeverityWarning, issues[1].Severity)
	assert.Equal(t, "1 trailing operand(s) ignored by MOV [A, Rn]", issues[1].Message)

	assert.Equal(t, 4, issues[2].Source.Line)
	assert.Equal(t, IssueSeverityCritical, issues[2].Severity)
	assert.Contains(t, issues[2].Message, "match no form")

	assert.Equal(t, 5, issues[3].Source.Line)
	assert.Contains(t, issues[3].Message, "Unknown instruction")
	assert.Equal(t, "FOO", issues[3].Source.Text)
	assert.Equal(t, "prog.asm", issues[3].Source.File)
	assert.Equal(t, path, issues[3].Source.AbsPath)
}

func TestValidateCleanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.asm")
	require.NoError(t, os.WriteFile(path, []byte("MAIN: NOP ; idle\n SJMP MAIN\n"), 0600))

	issues, err := newTestAnalyzer(t, 1).Validate(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
