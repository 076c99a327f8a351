package cmd

import (
	"fmt"
	"io"

	"github.com/asm2table/asm2table/isa"
	"github.com/asm2table/asm2table/resolver"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"
)

func CreateInstructionsCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "instructions",
		Usage:       "Lists the operand tags and instruction forms of a profile",
		Description: "Lists every operand tag with its addressing mode, and every instruction form with its length and cycles",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
		},
	}
}

var InstructionsCommand = CreateInstructionsCommand(ListInstructions)

func ListInstructions(ctx *cli.Context) error {
	res, err := loadResolver(ctx)
	if err != nil {
		return err
	}
	return writeInstructionSet(ctx.App.Writer, res)
}

func writeInstructionSet(w io.Writer, res *resolver.Resolver) error {
	set := res.InstructionSet()

	tags := table.NewWriter()
	tags.SetStyle(table.StyleLight)
	tags.SetTitle("%s operands", set.Name())
	tags.AppendHeader(table.Row{"Tag", "Mode", "Bytes"})
	for _, tag := range set.Tags() {
		mode, _ := set.AddressingModeOf(tag)
		tags.AppendRow(table.Row{tag, mode, set.ByteWidthOf(tag)})
	}

	forms := table.NewWriter()
	forms.SetStyle(table.StyleLight)
	forms.SetTitle("%s instructions", set.Name())
	forms.AppendHeader(table.Row{"Mnemonic", "Operands", "Bytes", "Cycles"})
	forms.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, mnemonic := range set.Mnemonics() {
		variants, _ := set.VariantsOf(mnemonic)
		if len(variants) == 0 {
			variants = []isa.Variant{nil}
		}
		for _, variant := range variants {
			cycles, _ := set.Cycles().Cost(mnemonic, variant)
			forms.AppendRow(table.Row{mnemonic, variant, res.Length(variant), cycles})
		}
	}
	cycles := set.Cycles()
	forms.AppendFooter(table.Row{"", fmt.Sprintf("%d cycle rules, baseline %d", cycles.Len(), cycles.Baseline()), "", ""})

	_, err := io.WriteString(w, tags.Render()+"\n"+forms.Render()+"\n")
	return err
}
