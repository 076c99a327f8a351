package cmd

import (
	"fmt"

	"github.com/asm2table/asm2table/analyzer"
	"github.com/asm2table/asm2table/renderer"
	"github.com/urfave/cli/v2"
)

var (
	PauseFlag = &cli.BoolFlag{
		Name:     "pause",
		Usage:    "wait for Enter before exiting when run from a terminal",
		Required: false,
		Value:    false,
	}
	AllLinesFlag = &cli.BoolFlag{
		Name:     "all-lines",
		Usage:    "list blank lines and directives too, one row per source line",
		Required: false,
		Value:    false,
	}
	NoHeaderFlag = &cli.BoolFlag{
		Name:     "no-header",
		Usage:    "leave out the header and totals of text, csv and markdown output",
		Required: false,
		Value:    false,
	}
)

func CreateAnalyzeCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "analyze",
		Usage:       "Tabulates addressing modes, length and cycles of every instruction",
		Description: "Resolves each line of an assembly file and reports its addressing modes, byte length and machine cycles",
		ArgsUsage:   "<file.asm>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			FormatFlag,
			OutputFlag,
			FoldCaseFlag,
			WorkersFlag,
			PauseFlag,
			AllLinesFlag,
			NoHeaderFlag,
		},
	}
}

var AnalyzeCommand = CreateAnalyzeCommand(AnalyzeSource)

func AnalyzeSource(ctx *cli.Context) error {
	source, err := sourceArg(ctx)
	if err != nil {
		return err
	}
	format := ctx.String(FormatFlag.Name)
	render, err := renderer.New(format, renderer.Options{
		AllLines: ctx.Bool(AllLinesFlag.Name),
		NoHeader: ctx.Bool(NoHeaderFlag.Name),
	})
	if err != nil {
		return err
	}
	res, err := loadResolver(ctx)
	if err != nil {
		return err
	}

	logger := loggerFor(ctx)
	report, err := analyzer.NewSourceAnalyzer(logger, res, ctx.Int(WorkersFlag.Name)).Analyze(ctx.Context, source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	outputPath := ctx.Path(OutputFlag.Name)
	output, closeOutput, err := openOutput(ctx.App.Writer, outputPath)
	if err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	defer closeOutput()
	if err := render.Render(report, output); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}

	if ctx.Bool(PauseFlag.Name) && outputPath == "" && format == "text" {
		return pause(ctx.App.Reader, ctx.App.Writer)
	}
	return nil
}
