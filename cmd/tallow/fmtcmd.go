package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tallow-lang/tallow/lexer"
)

// fmtCmd is a diagnostic aid, not a real source formatter: tallow's
// AST has no stable textual form, so it lexes a file and prints its
// token stream one token per line instead.
type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "print a file's token stream, one token per line" }
func (*fmtCmd) Usage() string {
	return `fmt <file>:
  Lex a file and print its tokens, one per line.
`
}
func (r *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (r *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "fmt: no file provided")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fmt: failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	s := lexer.Tokenize(string(data))
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		fmt.Printf("%-6s %v\n", tok.Kind, tok.Literal)
	}
	return subcommands.ExitSuccess
}
