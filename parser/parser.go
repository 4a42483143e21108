// Package parser implements a backtracking recursive-descent parser
// over a token stream. Every grammar rule is tried in a fixed order at
// each position (see the rules table in node()); the first that
// succeeds wins, and the stream's cursor is rolled back between
// attempts so failed alternatives never leave partial state behind.
//
// Statements that bound a nested region — blocks, parenthesized
// expressions, function-call argument lists, array literals — parse
// their inner tokens as an independent sub-stream sliced out by
// balanced-delimiter matching, so a missing closing delimiter fails
// cleanly instead of consuming tokens belonging to the surrounding
// construct.
package parser

import (
	"fmt"

	"github.com/tallow-lang/tallow/ast"
	"github.com/tallow-lang/tallow/stream"
	"github.com/tallow-lang/tallow/token"
	"github.com/tallow-lang/tallow/value"
)

// Parse consumes every token in s as a sequence of top-level
// statements, each optionally followed by a semicolon.
func Parse(s *stream.Stream) ([]ast.Node, error) {
	var nodes []ast.Node
	for !s.IsEmpty() {
		n, err := node(s, 0)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		s.SkipIf(token.Semicolon)
	}
	return nodes, nil
}

type namedRule struct {
	name string
	fn   rule
}

// rules lists every node alternative in priority order. Order matters:
// binary must be tried before its own operands, fn_declaration and
// fncall before the bare identifier they'd otherwise be mistaken for.
// It is filled in init because the rules themselves recurse through
// node(), which reads this table.
var rules []namedRule

func init() {
	rules = []namedRule{
		{"binary", parseBinary},
		{"fn_declaration", parseFnDeclaration},
		{"fncall", parseFnCall},
		{"block", parseBlock},
		{"wrap", parseWrap},
		{"var_declaration", parseVarDeclaration},
		{"var_assign", parseVarAssign},
		{"return", parseReturn},
		{"data", parseData},
		{"identifier", parseIdentifier},
	}
}

func node(s *stream.Stream, depth int) (ast.Node, error) {
	return nodeExcluding(s, depth, "")
}

// nodeExcluding parses a node while skipping the alternative named
// exclude. binary uses this to parse its left-hand operand, since
// trying binary again there would recurse forever.
func nodeExcluding(s *stream.Stream, depth int, exclude string) (ast.Node, error) {
	fns := make([]rule, 0, len(rules))
	for _, r := range rules {
		if r.name == exclude {
			continue
		}
		fns = append(fns, r.fn)
	}
	return any(fns, s, depth)
}

func currentIndex(s *stream.Stream, depth int) (int, error) {
	i, ok := s.CurrentIndex()
	if !ok {
		return 0, Error{Depth: depth, Cause: "unexpected end of input"}
	}
	return i, nil
}

// parseBinary parses `<node> <op> <node>`, right-associative with no
// precedence climbing: `1 + 2 * 3` parses as `1 + (2 * 3)` only
// because the right operand recurses through node() again, not
// because `*` binds tighter (spec §4.4).
func parseBinary(s *stream.Stream, depth int) (ast.Node, error) {
	left, err := nodeExcluding(s, depth, "binary")
	if err != nil {
		return nil, err
	}
	idx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	opTok, ok := s.Next()
	if !ok {
		return nil, Error{At: idx, Depth: depth + 1, Cause: "expected an operator"}
	}
	op, ok := binaryOpFromKind(opTok.Kind)
	if !ok {
		return nil, Error{At: idx, Depth: depth + 1, Cause: fmt.Sprintf("invalid operator: %s", opTok.Kind)}
	}
	right, err := node(s, depth+2)
	if err != nil {
		return nil, err
	}
	return ast.BinaryOperation{Op: op, Left: left, Right: right, Index: idx}, nil
}

func binaryOpFromKind(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.Plus:
		return ast.Add, true
	case token.Minus:
		return ast.Sub, true
	case token.Star:
		return ast.Mul, true
	case token.Slash:
		return ast.Div, true
	default:
		return 0, false
	}
}

// parseBlock parses `{ stmt; stmt; ... }`. Every statement inside the
// braces must be terminated by a semicolon (spec §4.4).
func parseBlock(s *stream.Stream, depth int) (ast.Node, error) {
	if !s.SkipIf(token.LBrace) {
		return nil, Error{Depth: depth, Cause: "expected '{'"}
	}
	idx, err := currentIndex(s, depth+1)
	if err != nil {
		return nil, err
	}
	inner, ok := s.BalancedSlice(token.LBrace, token.RBrace)
	if !ok {
		return nil, Error{At: idx, Depth: depth + 1, Cause: "missing closing '}' delimiter"}
	}
	innerLen := len(inner)
	innerStream := stream.New(inner)

	var statements []ast.Node
	d := depth + 1
	for !innerStream.SkipIf(token.RBrace) {
		stmtIdx, err := currentIndex(innerStream, d)
		if err != nil {
			return nil, err
		}
		n, err := node(innerStream, d)
		if err != nil {
			return nil, err
		}
		statements = append(statements, n)
		if !innerStream.SkipIf(token.Semicolon) {
			return nil, Error{At: stmtIdx, Depth: d, Cause: "expected ';' at the end of the statement"}
		}
		d++
	}
	s.Advance(innerLen)
	return ast.Block{Statements: statements, Index: idx}, nil
}

// parseWrap parses a parenthesized expression: `( expr )`.
func parseWrap(s *stream.Stream, depth int) (ast.Node, error) {
	idx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	if !s.SkipIf(token.LParen) {
		return nil, Error{At: idx, Depth: depth, Cause: "expected '('"}
	}
	inner, ok := s.BalancedSlice(token.LParen, token.RParen)
	if !ok {
		return nil, Error{At: idx, Depth: depth + 1, Cause: "missing closing ')' delimiter"}
	}
	innerLen := len(inner)
	innerStream := stream.New(inner)
	n, err := node(innerStream, depth)
	if err != nil {
		return nil, err
	}
	s.Advance(innerLen)
	return ast.Wrap{Inner: n, Index: idx}, nil
}

// parseFnDeclaration parses `fn name(arg: type, ...) -> type? body`,
// where body is a block or a wrapped expression.
func parseFnDeclaration(s *stream.Stream, depth int) (ast.Node, error) {
	idx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	if !s.SkipIf(token.Fn) {
		return nil, Error{At: idx, Depth: depth, Cause: "expected 'fn'"}
	}

	nameTok, ok := s.Next()
	if !ok || nameTok.Kind != token.Identifier {
		return nil, Error{At: idx, Depth: depth + 1, Cause: "expected a function name"}
	}
	name := nameTok.Ident()

	args, err := parseFnArguments(s, depth)
	if err != nil {
		return nil, err
	}
	returns := parseFnReturn(s)

	bodyIdx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	body, err := node(s, depth)
	if err != nil {
		return nil, err
	}
	switch body.(type) {
	case ast.Wrap, ast.Block:
	default:
		return nil, Error{At: bodyIdx, Depth: depth + 3, Cause: "function body must be a block or a wrapped expression"}
	}

	return ast.FnDeclaration{Name: name, Args: args, Returns: returns, Body: body, Index: idx}, nil
}

func parseFnReturn(s *stream.Stream) string {
	mark := s.Mark()
	if !s.SkipIf(token.Arrow) {
		return ""
	}
	tok, ok := s.Next()
	if !ok || tok.Kind != token.Identifier {
		s.Reset(mark)
		return ""
	}
	return tok.Ident()
}

func parseFnArguments(s *stream.Stream, depth int) ([]ast.Argument, error) {
	if !s.SkipIf(token.LParen) {
		return nil, Error{Depth: depth, Cause: "expected '(' to begin the argument list"}
	}
	var args []ast.Argument
	for {
		nameTok, ok := s.Peek(0)
		if !ok || nameTok.Kind != token.Identifier {
			break
		}
		s.Advance(1)
		if !s.SkipIf(token.Colon) {
			break
		}
		typeTok, ok := s.Peek(0)
		if !ok || typeTok.Kind != token.Identifier {
			break
		}
		s.Advance(1)
		args = append(args, ast.Argument{Name: nameTok.Ident(), TypeName: typeTok.Ident()})
		if !s.SkipIf(token.Comma) {
			break
		}
	}
	if !s.SkipIf(token.RParen) {
		return nil, Error{Depth: depth, Cause: "expected ')' to close the argument list"}
	}
	return args, nil
}

// parseFnCall parses `name(arg, arg, ...)`.
func parseFnCall(s *stream.Stream, depth int) (ast.Node, error) {
	nameTok, ok := s.Peek(0)
	if !ok || nameTok.Kind != token.Identifier {
		return nil, Error{Depth: depth, Cause: "expected an identifier"}
	}
	idx := nameTok.Index
	s.Advance(1)
	name := nameTok.Ident()

	parenIdx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	if !s.SkipIf(token.LParen) {
		return nil, Error{At: parenIdx, Depth: depth, Cause: "expected '('"}
	}
	inner, ok := s.BalancedSlice(token.LParen, token.RParen)
	if !ok {
		return nil, Error{At: parenIdx, Depth: depth + 1, Cause: "missing closing ')' delimiter"}
	}
	innerLen := len(inner)
	innerStream := stream.New(inner)

	var args []ast.Node
	if !innerStream.SkipIf(token.RParen) {
		for {
			arg, err := node(innerStream, depth)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !innerStream.SkipIf(token.Comma) {
				if !innerStream.SkipIf(token.RParen) {
					return nil, Error{At: parenIdx, Depth: depth + 1, Cause: "expected ',' or ')'"}
				}
				break
			}
		}
	}
	s.Advance(innerLen)
	return ast.FnCall{Name: name, Args: args, Index: idx}, nil
}

// parseIdentifier parses a bare variable reference.
func parseIdentifier(s *stream.Stream, depth int) (ast.Node, error) {
	tok, ok := s.Peek(0)
	if !ok || tok.Kind != token.Identifier {
		return nil, Error{Depth: depth, Cause: "expected an identifier"}
	}
	s.Advance(1)
	return ast.Identifier{Name: tok.Ident(), Index: tok.Index}, nil
}

// parseData parses a scalar or array literal.
func parseData(s *stream.Stream, depth int) (ast.Node, error) {
	return any([]rule{parseDataLiteral, parseDataArray}, s, depth)
}

func parseDataLiteral(s *stream.Stream, depth int) (ast.Node, error) {
	tok, ok := s.Peek(0)
	if !ok {
		return nil, Error{Depth: depth, Cause: "expected a literal"}
	}
	switch tok.Kind {
	case token.String:
		s.Advance(1)
		return ast.DataLiteral{Value: value.String(tok.Literal.(string)), Index: tok.Index}, nil
	case token.Int:
		s.Advance(1)
		return ast.DataLiteral{Value: value.Int(tok.Literal.(int64)), Index: tok.Index}, nil
	case token.Float:
		s.Advance(1)
		return ast.DataLiteral{Value: value.Float(tok.Literal.(float64)), Index: tok.Index}, nil
	case token.True:
		s.Advance(1)
		return ast.DataLiteral{Value: value.Bool(true), Index: tok.Index}, nil
	case token.False:
		s.Advance(1)
		return ast.DataLiteral{Value: value.Bool(false), Index: tok.Index}, nil
	default:
		return nil, Error{At: tok.Index, Depth: depth, Cause: "expected a string, number or boolean literal"}
	}
}

// parseDataArray parses `[elem, elem, ...]` and the repetition form
// `[elem; n]`, which expands to n copies of elem.
func parseDataArray(s *stream.Stream, depth int) (ast.Node, error) {
	idx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	if !s.SkipIf(token.LBracket) {
		return nil, Error{At: idx, Depth: depth, Cause: "expected '['"}
	}
	inner, ok := s.BalancedSlice(token.LBracket, token.RBracket)
	if !ok {
		return nil, Error{At: idx, Depth: depth + 1, Cause: "missing closing ']' delimiter"}
	}
	innerLen := len(inner)
	innerStream := stream.New(inner)

	var elements []ast.Node
	d := depth + 1
	for {
		if innerStream.SkipIf(token.RBracket) {
			break
		}
		el, err := node(innerStream, d)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)

		if innerStream.SkipIf(token.Comma) {
			d++
			continue
		}
		if len(elements) == 1 && innerStream.SkipIf(token.Semicolon) {
			count, err := parseRepeatCount(innerStream, idx, d)
			if err != nil {
				return nil, err
			}
			for i := int64(1); i < count; i++ {
				elements = append(elements, elements[0])
			}
		}
		if !innerStream.SkipIf(token.RBracket) {
			return nil, Error{At: idx, Depth: d, Cause: "expected ',', ';' or ']'"}
		}
		break
	}
	s.Advance(innerLen)
	return ast.DataArray{Elements: elements, Index: idx}, nil
}

func parseRepeatCount(s *stream.Stream, at, depth int) (int64, error) {
	tok, ok := s.Peek(0)
	if !ok {
		return 0, Error{At: at, Depth: depth, Cause: "expected a repetition count"}
	}
	switch tok.Kind {
	case token.Int:
		s.Advance(1)
		if n := tok.Literal.(int64); n > 0 {
			return n, nil
		}
		return 0, nil
	case token.Float:
		s.Advance(1)
		if n := int64(tok.Literal.(float64)); n > 0 {
			return n, nil
		}
		return 0, nil
	default:
		return 0, Error{At: at, Depth: depth, Cause: "expected a repetition count"}
	}
}

// parseReturn parses `return;` or `return <expr>;`.
func parseReturn(s *stream.Stream, depth int) (ast.Node, error) {
	idx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	if !s.SkipIf(token.Return) {
		return nil, Error{At: idx, Depth: depth, Cause: "expected 'return'"}
	}

	mark := s.Mark()
	retVal, valErr := node(s, depth)
	if valErr != nil {
		s.Reset(mark)
		retVal = nil
	}

	tok, ok := s.Peek(0)
	if !ok || tok.Kind != token.Semicolon {
		return nil, Error{At: idx, Depth: depth + 1, Cause: "expected ';' after the return statement"}
	}
	return ast.Return{Value: retVal, Index: idx}, nil
}

// parseVarDeclaration parses `let name = <expr>`.
func parseVarDeclaration(s *stream.Stream, depth int) (ast.Node, error) {
	idx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	if !s.SkipIf(token.Let) {
		return nil, Error{At: idx, Depth: depth, Cause: "expected 'let'"}
	}
	nameTok, ok := s.Next()
	if !ok || nameTok.Kind != token.Identifier {
		return nil, Error{At: idx, Depth: depth + 1, Cause: "expected a variable name"}
	}
	if !s.SkipIf(token.Equal) {
		return nil, Error{At: idx, Depth: depth + 1, Cause: "expected '='"}
	}
	val, err := node(s, depth)
	if err != nil {
		return nil, err
	}
	return ast.VarDeclaration{Name: nameTok.Ident(), Value: val, Index: idx}, nil
}

// parseVarAssign parses `name = <expr>` for an already-declared name.
func parseVarAssign(s *stream.Stream, depth int) (ast.Node, error) {
	idx, err := currentIndex(s, depth)
	if err != nil {
		return nil, err
	}
	nameTok, ok := s.Next()
	if !ok || nameTok.Kind != token.Identifier {
		return nil, Error{At: idx, Depth: depth, Cause: "expected a variable name"}
	}
	if !s.SkipIf(token.Equal) {
		return nil, Error{At: idx, Depth: depth, Cause: "expected '='"}
	}
	val, err := node(s, depth)
	if err != nil {
		return nil, err
	}
	return ast.VarAssign{Name: nameTok.Ident(), Value: val, Index: idx}, nil
}
