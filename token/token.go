// Package token defines the lexical vocabulary of tallow: the set of
// token kinds the lexer emits and the Token type carrying a kind, an
// optional literal payload, and the byte offset where it begins.
package token

import "fmt"

// Kind classifies a single token produced by the lexer.
type Kind int

const (
	// Single-character punctuation.
	LParen Kind = iota
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Colon
	Bang
	Equal
	Greater
	Less

	// Two-character punctuation.
	BangEqual
	EqualEqual
	GreaterEqual
	LessEqual
	Arrow

	// Literals. Int and Float are distinct kinds even though one
	// number scanner produces both — this disambiguates what the
	// payload's dynamic type already implies.
	Identifier
	String
	Int
	Float

	// Keywords.
	If
	Else
	True
	False
	Fn
	Return
	Let
	While

	EOF
)

// Keywords maps reserved words to their token kind. Checked before an
// identifier is accepted as a plain Identifier.
var Keywords = map[string]Kind{
	"if":     If,
	"else":   Else,
	"true":   True,
	"false":  False,
	"fn":     Fn,
	"return": Return,
	"let":    Let,
	"while":  While,
}

var names = map[Kind]string{
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Dot: ".",
	Minus: "-", Plus: "+", Semicolon: ";", Slash: "/", Star: "*",
	Colon: ":", Bang: "!", Equal: "=", Greater: ">", Less: "<",
	BangEqual: "!=", EqualEqual: "==", GreaterEqual: ">=", LessEqual: "<=",
	Arrow: "->", Identifier: "IDENTIFIER", String: "STRING", Int: "INT",
	Float: "FLOAT", If: "if", Else: "else", True: "true", False: "false",
	Fn: "fn", Return: "return", Let: "let", While: "while", EOF: "EOF",
}

// String returns the canonical textual form of a Kind, used both for
// punctuation rendering and for diagnostics.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical unit: a kind, an optional literal payload
// (populated for String, Int, Float and Identifier tokens — a string,
// int64, float64 or identifier name respectively), and the byte offset
// of its first byte in the original source.
type Token struct {
	Kind    Kind
	Literal any
	Index   int
}

// New constructs a Token with no literal payload at the given offset.
func New(kind Kind, index int) Token {
	return Token{Kind: kind, Index: index}
}

// NewLiteral constructs a Token carrying a literal payload.
func NewLiteral(kind Kind, literal any, index int) Token {
	return Token{Kind: kind, Literal: literal, Index: index}
}

// Ident returns the identifier name carried by an Identifier token.
// It panics if called on a token of any other kind — callers must
// check Kind first, mirroring how the parser is structured.
func (t Token) Ident() string {
	if t.Kind != Identifier {
		panic(fmt.Sprintf("token.Ident called on a %s token", t.Kind))
	}
	return t.Literal.(string)
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s(%v)@%d", t.Kind, t.Literal, t.Index)
	}
	return fmt.Sprintf("%s@%d", t.Kind, t.Index)
}
