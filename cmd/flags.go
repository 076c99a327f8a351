// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/asm2table/asm2table/isa"
	"github.com/asm2table/asm2table/profile"
	"github.com/asm2table/asm2table/renderer"
	"github.com/asm2table/asm2table/resolver"
	"github.com/urfave/cli/v2"
)

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to an instruction set profile. Default: built-in MCS-51",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:     "format",
		Usage:    "format of the output. Options: " + strings.Join(renderer.Formats, ", "),
		Required: false,
		Value:    "text",
	}
	OutputFlag = &cli.PathFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "output file path for the report. Default: stdout",
		Required: false,
	}
	FoldCaseFlag = &cli.BoolFlag{
		Name:     "fold-case",
		Usage:    "match mnemonics and operands regardless of case",
		Required: false,
		Value:    false,
	}
	WorkersFlag = &cli.IntFlag{
		Name:     "workers",
		Usage:    "number of lines resolved in parallel",
		Required: false,
		Value:    runtime.GOMAXPROCS(0),
	}
	DebugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logging",
	}
	QuietFlag = &cli.BoolFlag{
		Name:  "quiet",
		Usage: "only log errors",
	}
)

// GlobalFlags are accepted before any command.
var GlobalFlags = []cli.Flag{DebugFlag, QuietFlag}

// loadResolver builds a resolver from the profile flag, falling back to the
// built-in instruction set.
func loadResolver(ctx *cli.Context) (*resolver.Resolver, error) {
	var (
		set *isa.InstructionSet
		err error
	)
	if path := ctx.Path(ProfileFlag.Name); path != "" {
		var prof *profile.Profile
		prof, err = profile.LoadProfile(path)
		if err != nil {
			return nil, fmt.Errorf("error loading profile: %w", err)
		}
		set, err = prof.Build()
	} else {
		set, err = profile.DefaultInstructionSet()
	}
	if err != nil {
		return nil, fmt.Errorf("error building instruction set: %w", err)
	}
	return resolver.New(set, resolver.Options{FoldCase: ctx.Bool(FoldCaseFlag.Name)}), nil
}

// openOutput returns the writer for outputPath, or w when it is empty. The
// returned function closes the file.
func openOutput(w io.Writer, outputPath string) (io.Writer, func(), error) {
	if outputPath == "" {
		return w, func() {}, nil
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to determine absolute path: %w", err)
	}
	output, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open output file: %w", err)
	}
	return output, func() { _ = output.Close() }, nil
}

// sourceArg returns the single file argument of a command.
func sourceArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("expected one assembly file, got %d arguments", ctx.NArg())
	}
	return ctx.Args().First(), nil
}
