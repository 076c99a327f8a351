package analyzer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/asm2table/asm2table/asmparser"
	"github.com/asm2table/asm2table/isa"
	"github.com/asm2table/asm2table/resolver"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// sourceAnalyzer analyzes assembly source files with a resolver.
type sourceAnalyzer struct {
	logger   *log.Logger
	resolver *resolver.Resolver
	parser   asmparser.Parser
	workers  int
}

// NewSourceAnalyzer returns an analyzer that resolves up to workers lines
// at a time. A workers value below one means one.
func NewSourceAnalyzer(logger *log.Logger, r *resolver.Resolver, workers int) Analyzer {
	if workers < 1 {
		workers = 1
	}
	return &sourceAnalyzer{
		logger:   logger,
		resolver: r,
		parser:   asmparser.NewParser(),
		workers:  workers,
	}
}

// Analyze resolves every line of the file. Lines are resolved in parallel and
// reported in source order.
func (a *sourceAnalyzer) Analyze(ctx context.Context, path string) (*Report, error) {
	lines, err := a.parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing assembly file: %w", err)
	}

	rows := make([]*Row, len(lines))
	if err := a.forEach(ctx, lines, func(i int, line *asmparser.Line) {
		rows[i] = a.analyzeLine(line)
	}); err != nil {
		return nil, err
	}

	report := &Report{
		File:           path,
		InstructionSet: a.resolver.InstructionSet().Name(),
		Rows:           rows,
	}
	for _, row := range rows {
		if row.Failed() {
			report.Failed++
			a.logger.Debug("Line did not resolve",
				log.Int("line", row.Line),
				log.String("text", row.Instruction),
				log.String("error", row.Error))
			continue
		}
		report.TotalBytes += row.Bytes
		report.TotalCycles += row.Cycles
	}

	a.logger.Info("Analysis complete",
		log.String("file", path),
		log.Int("lines", len(rows)),
		log.Int("failed", report.Failed),
		log.Int("bytes", report.TotalBytes),
		log.Int("cycles", report.TotalCycles))
	return report, nil
}

func (a *sourceAnalyzer) analyzeLine(line *asmparser.Line) *Row {
	row := &Row{
		Line:        line.Number,
		Instruction: line.Source(),
	}
	res, err := a.resolver.Resolve(line.Raw)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Kind = res.Kind.String()
	row.Modes = res.Modes
	row.Bytes = res.Length
	row.Cycles, _ = a.resolver.CycleCost(res)
	return row
}

// Validate reports lines that do not resolve as critical and lines whose
// trailing operands were ignored as warnings.
func (a *sourceAnalyzer) Validate(ctx context.Context, path string) ([]*Issue, error) {
	lines, err := a.parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing assembly file: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	found := make([]*Issue, len(lines))
	if err := a.forEach(ctx, lines, func(i int, line *asmparser.Line) {
		found[i] = a.validateLine(line)
	}); err != nil {
		return nil, err
	}

	issues := make([]*Issue, 0)
	for _, issue := range found {
		if issue == nil {
			continue
		}
		issue.Source.File = filepath.Base(path)
		issue.Source.AbsPath = absPath
		issues = append(issues, issue)
	}
	a.logger.Info("Validation complete",
		log.String("file", path),
		log.Int("lines", len(lines)),
		log.Int("issues", len(issues)))
	return issues, nil
}

func (a *sourceAnalyzer) validateLine(line *asmparser.Line) *Issue {
	source := &IssueSource{Line: line.Number, Text: line.Source()}
	if err := a.resolver.IsStructurallyValid(line.Raw); err != nil {
		return &Issue{
			Source:   source,
			Severity: IssueSeverityCritical,
			Message:  describe(err),
		}
	}
	if a.resolver.IsSkippable(line.Raw) {
		return nil
	}
	res, err := a.resolver.Resolve(line.Raw)
	if err != nil {
		return nil
	}
	if extra := len(res.Line.Operands) - len(res.Tags); extra > 0 && len(res.Tags) > 0 {
		return &Issue{
			Source:   source,
			Severity: IssueSeverityWarning,
			Message:  fmt.Sprintf("%d trailing operand(s) ignored by %s %s", extra, res.Mnemonic, variantOf(res)),
		}
	}
	return nil
}

func (a *sourceAnalyzer) forEach(ctx context.Context, lines []*asmparser.Line, fn func(int, *asmparser.Line)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i, line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func describe(err error) string {
	switch {
	case errors.Is(err, resolver.ErrUnknownInstruction):
		return fmt.Sprintf("Unknown instruction: %v", err)
	case errors.Is(err, resolver.ErrUnexpectedOperands):
		return fmt.Sprintf("Instruction takes no operands: %v", err)
	case errors.Is(err, resolver.ErrNoMatchingVariant):
		return fmt.Sprintf("Operands match no form of the instruction: %v", err)
	}
	return err.Error()
}

func variantOf(res *resolver.Resolution) string {
	return "[" + isa.Variant(res.Tags).String() + "]"
}
