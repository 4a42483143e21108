package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/tallow-lang/tallow/eval"
	"github.com/tallow-lang/tallow/lexer"
	"github.com/tallow-lang/tallow/parser"
)

type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive session" }
func (*replCmd) Usage() string {
	return `repl:
  Evaluate one line at a time against a persistent context.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("tallow repl - type 'exit' to quit")
	runRepl(os.Stdin, os.Stdout)
	return subcommands.ExitSuccess
}

func runRepl(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	logger := debugLogger()
	evalCtx, _ := eval.Build(nil, eval.WithLogger(logger), eval.WithOutput(out))

	for {
		fmt.Fprint(out, ">>> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "exit" {
			return
		}

		s := lexer.Tokenize(line, lexer.WithLogger(logger))
		nodes, err := parser.Parse(s)
		if err != nil {
			printFormatted(err, line, "parse error")
			continue
		}

		if err := evalCtx.Eval(nodes); err != nil {
			printFormatted(err, line, "eval error")
			continue
		}
	}
}
