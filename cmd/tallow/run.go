package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tallow-lang/tallow/eval"
	"github.com/tallow-lang/tallow/lexer"
	"github.com/tallow-lang/tallow/parser"
	"github.com/tallow-lang/tallow/value"
)

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "execute a tallow source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Lex, parse and evaluate a file, then call its 'main' function.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "run: no file provided")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}
	source := string(data)

	logger := debugLogger()
	s := lexer.Tokenize(source, lexer.WithLogger(logger))
	nodes, err := parser.Parse(s)
	if err != nil {
		printFormatted(err, source, "parse error")
		return subcommands.ExitFailure
	}

	ctx2, err := eval.Build(nodes, eval.WithLogger(logger))
	if err != nil {
		printFormatted(err, source, "eval error")
		return subcommands.ExitFailure
	}

	cliArgs := make(value.Array, len(args[1:]))
	for i, a := range args[1:] {
		cliArgs[i] = value.String(a)
	}

	result, err := ctx2.Execute("main", []value.Value{cliArgs})
	if err != nil {
		printFormatted(err, source, "runtime error")
		return subcommands.ExitFailure
	}
	if result != nil {
		fmt.Println(result.String())
	}
	return subcommands.ExitSuccess
}

// formattable is implemented by parser.Error and eval.Error.
type formattable interface {
	FormatWith(input, title string) string
}

func printFormatted(err error, source, title string) {
	if fe, ok := err.(formattable); ok {
		fmt.Fprintln(os.Stderr, fe.FormatWith(source, title))
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
}
