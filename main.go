package main

import (
	"os"

	"github.com/asm2table/asm2table/cmd"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	app := cli.NewApp()
	app.Name = "asm2table"
	app.Usage = "MCS-51 assembly line analyzer"
	app.Description = "Tabulates addressing modes, byte length and machine cycles of 8051 assembly source"
	app.Version = buildinfo.Version(version, commit, date)
	app.Flags = cmd.GlobalFlags
	app.Commands = []*cli.Command{
		cmd.AnalyzeCommand,
		cmd.ValidateCommand,
		cmd.ExplainCommand,
		cmd.InstructionsCommand,
	}
	err := app.RunContext(retroapp.Context(), os.Args)
	if err != nil {
		cmd.CreateLogger(false, false).Fatal(err.Error())
	}
}
