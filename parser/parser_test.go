package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallow-lang/tallow/ast"
	"github.com/tallow-lang/tallow/lexer"
	"github.com/tallow-lang/tallow/value"
)

func parseSrc(t *testing.T, src string) []ast.Node {
	t.Helper()
	s := lexer.Tokenize(src)
	nodes, err := Parse(s)
	require.NoError(t, err)
	return nodes
}

func TestVarDeclarationAndLiteral(t *testing.T) {
	nodes := parseSrc(t, `let x = 5;`)
	require.Len(t, nodes, 1)
	decl, ok := nodes[0].(ast.VarDeclaration)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	lit, ok := decl.Value.(ast.DataLiteral)
	require.True(t, ok)
	require.Equal(t, value.Int(5), lit.Value)
}

func TestBinaryIsRightAssociativeNoPrecedence(t *testing.T) {
	nodes := parseSrc(t, `1 + 2 * 3;`)
	require.Len(t, nodes, 1)
	bin, ok := nodes[0].(ast.BinaryOperation)
	require.True(t, ok)
	require.Equal(t, ast.Add, bin.Op)
	right, ok := bin.Right.(ast.BinaryOperation)
	require.True(t, ok, "right operand should itself be the '2 * 3' binary node")
	require.Equal(t, ast.Mul, right.Op)
}

func TestBlockRequiresSemicolonBetweenStatements(t *testing.T) {
	nodes := parseSrc(t, `{ let a = 1; let b = 2; }`)
	require.Len(t, nodes, 1)
	block, ok := nodes[0].(ast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)
}

func TestFnDeclarationWithBlockBody(t *testing.T) {
	nodes := parseSrc(t, `fn add(a: int, b: int) -> int { return a + b; }`)
	require.Len(t, nodes, 1)
	fn, ok := nodes[0].(ast.FnDeclaration)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Equal(t, "int", fn.Returns)
	require.Equal(t, []ast.Argument{{Name: "a", TypeName: "int"}, {Name: "b", TypeName: "int"}}, fn.Args)
	_, isBlock := fn.Body.(ast.Block)
	require.True(t, isBlock)
}

func TestFnDeclarationWithWrapBody(t *testing.T) {
	nodes := parseSrc(t, `fn double(x: int) (x * 2);`)
	require.Len(t, nodes, 1)
	fn, ok := nodes[0].(ast.FnDeclaration)
	require.True(t, ok)
	_, isWrap := fn.Body.(ast.Wrap)
	require.True(t, isWrap)
}

func TestFnCall(t *testing.T) {
	nodes := parseSrc(t, `print(1, 2);`)
	require.Len(t, nodes, 1)
	call, ok := nodes[0].(ast.FnCall)
	require.True(t, ok)
	require.Equal(t, "print", call.Name)
	require.Len(t, call.Args, 2)
}

func TestArrayLiteral(t *testing.T) {
	nodes := parseSrc(t, `let xs = [1, 2, 3];`)
	require.Len(t, nodes, 1)
	decl := nodes[0].(ast.VarDeclaration)
	arr, ok := decl.Value.(ast.DataArray)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
}

func TestEmptyArrayLiteral(t *testing.T) {
	nodes := parseSrc(t, `let xs = [];`)
	decl := nodes[0].(ast.VarDeclaration)
	arr, ok := decl.Value.(ast.DataArray)
	require.True(t, ok)
	require.Len(t, arr.Elements, 0)
}

func TestArrayRepetitionForm(t *testing.T) {
	nodes := parseSrc(t, `let xs = [0; 4];`)
	decl := nodes[0].(ast.VarDeclaration)
	arr, ok := decl.Value.(ast.DataArray)
	require.True(t, ok)
	require.Len(t, arr.Elements, 4)
	for _, el := range arr.Elements {
		require.Equal(t, value.Int(0), el.(ast.DataLiteral).Value)
	}
}

func TestVarAssign(t *testing.T) {
	nodes := parseSrc(t, `x = 9;`)
	require.Len(t, nodes, 1)
	assign, ok := nodes[0].(ast.VarAssign)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
}

func TestBareReturn(t *testing.T) {
	nodes := parseSrc(t, `{ return; }`)
	block := nodes[0].(ast.Block)
	ret, ok := block.Statements[0].(ast.Return)
	require.True(t, ok)
	require.Nil(t, ret.Value)
}

func TestReturnWithValue(t *testing.T) {
	nodes := parseSrc(t, `{ return 1 + 1; }`)
	block := nodes[0].(ast.Block)
	ret, ok := block.Statements[0].(ast.Return)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

// P7: a missing closing delimiter fails the parse instead of letting
// the block consume tokens that belong to whatever follows it.
func TestMissingClosingBraceFailsCleanly(t *testing.T) {
	s := lexer.Tokenize(`{ let a = 1;`)
	_, err := Parse(s)
	require.Error(t, err)
	var pe Error
	require.ErrorAs(t, err, &pe)
}

// P6: when every alternative fails, the reported error is the one
// that progressed furthest (highest depth), not simply the last tried.
func TestDepthRankedErrorIsFurthestAlternative(t *testing.T) {
	// "let" with no identifier: var_declaration fails deep (after
	// consuming 'let'), while plain identifier/data alternatives fail
	// immediately at depth 0. The reported cause should be
	// var_declaration's, not the last-tried identifier's.
	s := lexer.Tokenize(`let ;`)
	_, err := Parse(s)
	require.Error(t, err)
	var pe Error
	require.ErrorAs(t, err, &pe)
	require.Greater(t, pe.Depth, 0)
}

func TestFormatWithRendersCaretDiagnostic(t *testing.T) {
	src := `let ;`
	s := lexer.Tokenize(src)
	_, err := Parse(s)
	require.Error(t, err)
	var pe Error
	require.ErrorAs(t, err, &pe)
	out := pe.FormatWith(src, "parse error")
	require.Contains(t, out, "parse error:")
	require.Contains(t, out, "^^^^^")
}
