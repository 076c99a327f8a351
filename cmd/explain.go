package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/asm2table/asm2table/isa"
	"github.com/asm2table/asm2table/resolver"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

func CreateExplainCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "explain",
		Usage:       "Shows how a single source line resolves",
		Description: "Shows the tokens, matched operand form, addressing modes, length and cycle rule of a single source line",
		ArgsUsage:   "<line>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			FoldCaseFlag,
		},
	}
}

var ExplainCommand = CreateExplainCommand(ExplainLine)

func ExplainLine(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("expected a source line")
	}
	res, err := loadResolver(ctx)
	if err != nil {
		return err
	}

	raw := strings.Join(ctx.Args().Slice(), " ")
	resolution, err := res.Resolve(raw)
	if err != nil {
		return fmt.Errorf("explain %q: %w", raw, err)
	}
	return writeExplanation(ctx.App.Writer, res, resolution)
}

func writeExplanation(w io.Writer, res *resolver.Resolver, resolution *resolver.Resolution) error {
	line := resolution.Line
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendRow(table.Row{"Text", line.Text})
	if line.Label != "" {
		t.AppendRow(table.Row{"Label", line.Label})
	}
	if line.Comment != "" {
		t.AppendRow(table.Row{"Comment", line.Comment})
	}
	t.AppendRow(table.Row{"Kind", resolution.Kind})

	if resolution.Kind == resolver.KindInstruction {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Mnemonic", resolution.Mnemonic})
		t.AppendRow(table.Row{"Operands", strings.Join(line.Operands, " | ")})
		if resolution.Variant >= 0 {
			t.AppendRow(table.Row{"Variant", fmt.Sprintf("#%d [%s]", resolution.Variant, isa.Variant(resolution.Tags))})
		}
		modes := make([]string, len(resolution.Modes))
		for i, mode := range resolution.Modes {
			modes[i] = fmt.Sprintf("%s (%d byte)", mode, mode.ByteWidth())
		}
		t.AppendRow(table.Row{"Modes", strings.Join(modes, ", ")})
		t.AppendRow(table.Row{"Bytes", resolution.Length})

		cycles, rule := res.CycleCost(resolution)
		source := "baseline"
		if rule != nil {
			source = rule.String()
		}
		t.AppendRow(table.Row{"Cycles", fmt.Sprintf("%d (%s)", cycles, source)})
	}

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}
