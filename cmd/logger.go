package cmd

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/urfave/cli/v2"
)

// CreateLogger creates a logger with the requested verbosity. Debug wins
// over quiet.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func loggerFor(ctx *cli.Context) *log.Logger {
	return CreateLogger(ctx.Bool(DebugFlag.Name), ctx.Bool(QuietFlag.Name))
}
