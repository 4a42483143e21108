// Package ast defines the abstract syntax tree tallow's parser
// produces and its evaluator walks. Every node carries the byte
// offset of the source token it was built from, preserved end to end
// for diagnostics (spec invariant P1).
package ast

import "github.com/tallow-lang/tallow/value"

// Node is implemented by every AST node variant.
type Node interface {
	Pos() int
}

// Block is a braced statement list: `{ a; b; c; }`.
type Block struct {
	Statements []Node
	Index      int
}

func (b Block) Pos() int { return b.Index }

// Wrap is a parenthesized expression: `( expr )`.
type Wrap struct {
	Inner Node
	Index int
}

func (w Wrap) Pos() int { return w.Index }

// Argument is one formal parameter of an FnDeclaration.
type Argument struct {
	Name     string
	TypeName string
}

// FnDeclaration declares a named function. Returns is empty when no
// `-> type` clause was parsed. Body is always a Block or a Wrap.
type FnDeclaration struct {
	Name    string
	Args    []Argument
	Returns string
	Body    Node
	Index   int
}

func (f FnDeclaration) Pos() int { return f.Index }

// FnCall invokes a built-in or user-defined function by name.
type FnCall struct {
	Name  string
	Args  []Node
	Index int
}

func (f FnCall) Pos() int { return f.Index }

// VarDeclaration introduces a new binding in the current scope.
type VarDeclaration struct {
	Name  string
	Value Node
	Index int
}

func (v VarDeclaration) Pos() int { return v.Index }

// VarAssign mutates an existing binding; it is an error if the name
// was never declared.
type VarAssign struct {
	Name  string
	Value Node
	Index int
}

func (v VarAssign) Pos() int { return v.Index }

// BinaryOp identifies the operator of a BinaryOperation node.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
)

func (o BinaryOp) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	default:
		return "/"
	}
}

// BinaryOperation is a right-associative binary expression with no
// operator precedence beyond that associativity (spec §4.4).
type BinaryOperation struct {
	Op    BinaryOp
	Left  Node
	Right Node
	Index int
}

func (b BinaryOperation) Pos() int { return b.Index }

// Return optionally carries a value; Value is nil for a bare `return`.
type Return struct {
	Value Node
	Index int
}

func (r Return) Pos() int { return r.Index }

// Identifier is a variable reference.
type Identifier struct {
	Name  string
	Index int
}

func (i Identifier) Pos() int { return i.Index }

// DataLiteral is a scalar literal: a string, int, float or bool.
type DataLiteral struct {
	Value value.Value
	Index int
}

func (d DataLiteral) Pos() int { return d.Index }

// DataArray is an array literal; each element is itself a Node so
// that `[1+1, f()]` and the `[v; n]` repetition form are expressible.
type DataArray struct {
	Elements []Node
	Index    int
}

func (d DataArray) Pos() int { return d.Index }

// IfStatement is reserved for future use: the lexer recognizes `if`
// and `else`, but no parser rule currently produces this node (spec
// Open Question O4).
type IfStatement struct {
	Condition Node
	Then      Node
	Else      Node
	Index     int
}

func (i IfStatement) Pos() int { return i.Index }
