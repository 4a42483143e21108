// Package eval walks a parsed program and executes it. Building
// collects every function declaration first, then evaluates the
// top-level nodes in order; executing an entry point looks it up by
// name and runs its body against a fresh copy of the declared
// variables.
//
// Every nested evaluation runs against a forked copy of the current
// Context (see (*Context).clone), so a callee — or an expression
// nested inside a declaration, call, or array literal — can never
// mutate a variable visible to its caller. Only the node that owns a
// binding (a var declaration or assignment, a function's own
// argument bindings) commits its result back into the Context that
// produced it.
package eval

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tallow-lang/tallow/ast"
	"github.com/tallow-lang/tallow/value"
)

type function struct {
	args    []ast.Argument
	returns string
	body    ast.Node
}

// Context holds every variable binding and function declaration
// reachable at a point in the program.
type Context struct {
	variables map[string]value.Value
	functions map[string]function
	logger    *slog.Logger
	output    io.Writer
}

// Option configures a Context built by Build.
type Option func(*Context)

// WithLogger attaches a structured logger; Build and Execute emit
// debug records as they walk the tree. Omit for the default no-op
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) { c.logger = logger }
}

// WithOutput redirects the print builtin's output. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Context) { c.output = w }
}

func newContext() *Context {
	return &Context{
		variables: make(map[string]value.Value),
		functions: make(map[string]function),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		output:    os.Stdout,
	}
}

// clone returns an independent copy of the Context: every variable
// and function binding is copied by value, so mutations the caller
// makes against the clone never become visible to c.
func (c *Context) clone() *Context {
	vars := make(map[string]value.Value, len(c.variables))
	for k, v := range c.variables {
		vars[k] = v
	}
	fns := make(map[string]function, len(c.functions))
	for k, v := range c.functions {
		fns[k] = v
	}
	return &Context{variables: vars, functions: fns, logger: c.logger, output: c.output}
}

// Build collects every function declaration in nodes, evaluates the
// top-level nodes in order, and returns the resulting Context ready
// for Execute.
func Build(nodes []ast.Node, opts ...Option) (*Context, error) {
	ctx := newContext()
	for _, opt := range opts {
		opt(ctx)
	}
	if err := ctx.Eval(nodes); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Eval collects any function declarations in nodes and evaluates the
// top-level nodes in order against c, in place. Unlike Build, it
// extends an existing Context rather than starting from a fresh one —
// the shape a REPL needs to keep prior declarations alive between
// lines.
func (c *Context) Eval(nodes []ast.Node) error {
	c.collectFunctions(nodes)
	for _, n := range nodes {
		if _, err := c.handleNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) collectFunctions(nodes []ast.Node) {
	for _, n := range nodes {
		if fn, ok := n.(ast.FnDeclaration); ok {
			c.logger.Debug("declared function", "name", fn.Name)
			c.functions[fn.Name] = function{args: fn.Args, returns: fn.Returns, body: fn.Body}
		}
	}
}

// Execute calls the named function with args and returns its result.
// A function whose block body runs to completion without hitting a
// return statement carrying a value yields a nil Value, not an error;
// a wrapped-expression body yields the expression's value.
func (c *Context) Execute(entry string, args []value.Value) (value.Value, error) {
	return c.callFunction(entry, args, 0)
}

func (c *Context) callFunction(name string, args []value.Value, at int) (value.Value, error) {
	if result, ok := callBuiltin(c, name, args); ok {
		return result, nil
	}

	fn, ok := c.functions[name]
	if !ok {
		return nil, Error{At: at, Cause: fmt.Sprintf("function '%s' is not declared", name)}
	}
	if len(fn.args) != len(args) {
		return nil, Error{At: at, Cause: fmt.Sprintf(
			"invalid function arguments, expected %d value(s), found: %d", len(fn.args), len(args))}
	}

	call := c.clone()
	for i, arg := range fn.args {
		call.variables[arg.Name] = args[i]
	}
	return call.handleNode(fn.body)
}

func (c *Context) handleNode(n ast.Node) (value.Value, error) {
	c.logger.Debug("evaluating node", "type", fmt.Sprintf("%T", n))
	switch node := n.(type) {

	case ast.Block:
		for _, stmt := range node.Statements {
			result, err := c.handleNode(stmt)
			if err != nil {
				return nil, err
			}
			if _, isReturn := stmt.(ast.Return); isReturn {
				return result, nil
			}
		}
		return nil, nil

	case ast.Wrap:
		return c.handleNode(node.Inner)

	case ast.FnCall:
		fork := c.clone()
		args := make([]value.Value, len(node.Args))
		for i, argNode := range node.Args {
			v, err := fork.handleNode(argNode)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, Error{At: argNode.Pos(), Cause: fmt.Sprintf("invalid function argument: %s", node.Name)}
			}
			args[i] = v
		}
		result, err := c.callFunction(node.Name, args, node.Index)
		if err != nil {
			if pe, ok := err.(Error); ok {
				pe.At = node.Index
				return nil, pe
			}
			return nil, err
		}
		return result, nil

	case ast.VarDeclaration:
		fork := c.clone()
		v, err := fork.handleNode(node.Value)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, Error{At: node.Index, Cause: "invalid variable declaration: value cannot be empty"}
		}
		c.variables[node.Name] = v
		return nil, nil

	case ast.VarAssign:
		fork := c.clone()
		v, err := fork.handleNode(node.Value)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, Error{At: node.Index, Cause: "invalid variable assignment: value cannot be empty"}
		}
		if _, declared := c.variables[node.Name]; !declared {
			return nil, Error{At: node.Index, Cause: fmt.Sprintf("cannot assign to '%s': variable is not declared", node.Name)}
		}
		c.variables[node.Name] = v
		return nil, nil

	case ast.BinaryOperation:
		left, err := c.handleNode(node.Left)
		if err != nil {
			return nil, err
		}
		if left == nil {
			return nil, Error{At: node.Left.Pos(), Cause: "left-hand side cannot be evaluated"}
		}
		right, err := c.handleNode(node.Right)
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, Error{At: node.Right.Pos(), Cause: "right-hand side cannot be evaluated"}
		}
		result, opErr := applyBinaryOp(node.Op, left, right)
		if opErr != nil {
			return nil, Error{At: node.Right.Pos(), Cause: opErr.Error()}
		}
		return result, nil

	case ast.Return:
		if node.Value == nil {
			return nil, nil
		}
		fork := c.clone()
		return fork.handleNode(node.Value)

	case ast.Identifier:
		v, ok := c.variables[node.Name]
		if !ok {
			return nil, Error{At: node.Index, Cause: fmt.Sprintf("variable: '%s' is not declared", node.Name)}
		}
		return v, nil

	case ast.DataLiteral:
		return node.Value, nil

	case ast.DataArray:
		fork := c.clone()
		elements := make(value.Array, len(node.Elements))
		for i, el := range node.Elements {
			v, err := fork.handleNode(el)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, Error{At: el.Pos(), Cause: "could not evaluate array element"}
			}
			elements[i] = v
		}
		return elements, nil

	case ast.FnDeclaration:
		// Already collected by collectFunctions; declaring one mid-walk
		// has no further effect.
		return nil, nil

	case ast.IfStatement:
		return nil, Error{At: node.Index, Cause: "if statements are not supported"}

	default:
		return nil, Error{Cause: fmt.Sprintf("cannot evaluate node of type %T", n)}
	}
}

func applyBinaryOp(op ast.BinaryOp, l, r value.Value) (value.Value, error) {
	switch op {
	case ast.Add:
		return value.Add(l, r)
	case ast.Sub:
		return value.Sub(l, r)
	case ast.Mul:
		return value.Mul(l, r)
	case ast.Div:
		return value.Div(l, r)
	default:
		return nil, fmt.Errorf("unknown operator: %v", op)
	}
}
