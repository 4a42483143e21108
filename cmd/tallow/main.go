// Command tallow is a thin CLI driver over the lexer/parser/eval
// pipeline: none of its behavior is part of the importable API.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&fmtCmd{}, "")

	os.Exit(int(subcommands.Execute(context.Background())))
}

func debugLogger() *slog.Logger {
	if os.Getenv("TALLOW_DEBUG") == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
