package cmd

import (
	"fmt"

	"github.com/asm2table/asm2table/analyzer"
	"github.com/asm2table/asm2table/renderer"
	"github.com/urfave/cli/v2"
)

// exitInvalid is the exit code when validation finds critical issues.
const exitInvalid = 2

func CreateValidateCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "validate",
		Usage:       "Checks that every line of an assembly file resolves",
		Description: "Checks that every line of an assembly file resolves, without computing lengths or cycles",
		ArgsUsage:   "<file.asm>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			FormatFlag,
			OutputFlag,
			FoldCaseFlag,
			WorkersFlag,
		},
	}
}

var ValidateCommand = CreateValidateCommand(ValidateSource)

func ValidateSource(ctx *cli.Context) error {
	source, err := sourceArg(ctx)
	if err != nil {
		return err
	}
	render, err := renderer.New(ctx.String(FormatFlag.Name), renderer.Options{})
	if err != nil {
		return err
	}
	res, err := loadResolver(ctx)
	if err != nil {
		return err
	}

	logger := loggerFor(ctx)
	issues, err := analyzer.NewSourceAnalyzer(logger, res, ctx.Int(WorkersFlag.Name)).Validate(ctx.Context, source)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	output, closeOutput, err := openOutput(ctx.App.Writer, ctx.Path(OutputFlag.Name))
	if err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	defer closeOutput()
	if err := render.RenderIssues(issues, output); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}

	critical := 0
	for _, issue := range issues {
		if issue.Severity == analyzer.IssueSeverityCritical {
			critical++
		}
	}
	if critical > 0 {
		return cli.Exit(fmt.Sprintf("%s: %d line(s) do not resolve", source, critical), exitInvalid)
	}
	return nil
}
