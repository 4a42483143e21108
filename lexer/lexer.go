// Package lexer turns tallow source text into a token stream. It
// scans longest-match-first: string literals, then float literals,
// then int literals, then identifiers/keywords, then two-character and
// finally single-character punctuation (spec §4.3). Whitespace between
// tokens is skipped; a token's Index is the byte offset of its first
// character in the original input.
//
// Lexing is infallible: the first character that cannot start any
// recognized category ends scanning silently, truncating the token
// stream rather than producing an error (spec Open Question O2).
package lexer

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/tallow-lang/tallow/stream"
	"github.com/tallow-lang/tallow/token"
)

// Lexer scans one source string into a token stream.
type Lexer struct {
	characters []rune
	offsets    []int // byte offset in the input of each entry of characters
	tokens     []token.Token
	pos        int
	logger     *slog.Logger
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithLogger attaches a structured logger; the lexer emits one debug
// record per token it scans. Omit for the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) { l.logger = logger }
}

// New constructs a Lexer over input.
func New(input string, opts ...Option) *Lexer {
	offsets := make([]int, 0, len(input))
	for i := range input {
		offsets = append(offsets, i)
	}
	lexer := &Lexer{
		characters: []rune(input),
		offsets:    offsets,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(lexer)
	}
	return lexer
}

// Tokenize scans input and returns the resulting token stream. It is a
// package-level convenience over New(input, opts...).Tokenize() for
// callers that don't need to keep the Lexer around.
func Tokenize(input string, opts ...Option) *stream.Stream {
	return New(input, opts...).Tokenize()
}

func (lexer *Lexer) current() rune {
	if lexer.pos >= len(lexer.characters) {
		return rune(0)
	}
	return lexer.characters[lexer.pos]
}

func (lexer *Lexer) peek() rune {
	if lexer.pos+1 >= len(lexer.characters) {
		return rune(0)
	}
	return lexer.characters[lexer.pos+1]
}

func (lexer *Lexer) isFinished() bool {
	return lexer.pos >= len(lexer.characters)
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c rune) bool { return isIdentStart(c) || isDigit(c) }

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (lexer *Lexer) skipWhitespace() {
	for !lexer.isFinished() && isWhitespace(lexer.current()) {
		lexer.pos++
	}
}

// Tokenize runs the scanner to completion and returns a Stream over
// the tokens found. See the package doc for truncation behavior.
func (lexer *Lexer) Tokenize() *stream.Stream {
	for {
		lexer.skipWhitespace()
		if lexer.isFinished() {
			break
		}
		if !lexer.scanOne() {
			break
		}
	}
	return stream.New(lexer.tokens)
}

// scanOne scans exactly one token starting at the current character.
// It reports false if no category matches, leaving the cursor
// untouched.
func (lexer *Lexer) scanOne() bool {
	start := lexer.pos
	c := lexer.current()

	switch {
	case c == '"':
		return lexer.scanString(start)
	case isDigit(c):
		return lexer.scanNumber(start)
	case isIdentStart(c):
		return lexer.scanIdentifier(start)
	}

	if lexer.scanTwoCharPunct(start) {
		return true
	}
	return lexer.scanOneCharPunct(start)
}

func (lexer *Lexer) emit(tok token.Token) {
	tok.Index = lexer.offsets[tok.Index]
	lexer.logger.Debug("token", "kind", tok.Kind.String(), "index", tok.Index)
	lexer.tokens = append(lexer.tokens, tok)
}

// scanString consumes a double-quoted string literal. A backslash
// followed by a quote is treated as part of the content — no other
// escape sequences are interpreted.
func (lexer *Lexer) scanString(start int) bool {
	lexer.pos++ // opening quote
	var content []rune
	for {
		if lexer.isFinished() {
			// unclosed string: truncate, consuming nothing
			lexer.pos = start
			return false
		}
		if lexer.current() == '\\' && lexer.peek() == '"' {
			content = append(content, '"')
			lexer.pos += 2
			continue
		}
		if lexer.current() == '"' {
			lexer.pos++ // closing quote
			lexer.emit(token.NewLiteral(token.String, string(content), start))
			return true
		}
		content = append(content, lexer.current())
		lexer.pos++
	}
}

// scanNumber consumes a run of digits, optionally followed by a dot
// and a further run of digits (a float). A bare run of digits not
// followed by a dot is an int.
func (lexer *Lexer) scanNumber(start int) bool {
	var digits []rune
	for !lexer.isFinished() && isDigit(lexer.current()) {
		digits = append(digits, lexer.current())
		lexer.pos++
	}
	if !lexer.isFinished() && lexer.current() == '.' && isDigit(lexer.peek()) {
		digits = append(digits, '.')
		lexer.pos++
		for !lexer.isFinished() && isDigit(lexer.current()) {
			digits = append(digits, lexer.current())
			lexer.pos++
		}
		f, err := strconv.ParseFloat(string(digits), 64)
		if err != nil {
			lexer.pos = start
			return false
		}
		lexer.emit(token.NewLiteral(token.Float, f, start))
		return true
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		lexer.pos = start
		return false
	}
	lexer.emit(token.NewLiteral(token.Int, n, start))
	return true
}

// scanIdentifier consumes a maximal run of [A-Za-z0-9_] with embedded
// "::" permitted, then classifies it as a keyword or a plain
// identifier.
func (lexer *Lexer) scanIdentifier(start int) bool {
	var name []rune
	for !lexer.isFinished() {
		if isIdentPart(lexer.current()) {
			name = append(name, lexer.current())
			lexer.pos++
			continue
		}
		if lexer.current() == ':' && lexer.peek() == ':' {
			name = append(name, ':', ':')
			lexer.pos += 2
			continue
		}
		break
	}
	text := string(name)
	if kind, ok := token.Keywords[text]; ok {
		lexer.emit(token.New(kind, start))
		return true
	}
	lexer.emit(token.NewLiteral(token.Identifier, text, start))
	return true
}

var twoCharPunct = map[string]token.Kind{
	"!=": token.BangEqual,
	"==": token.EqualEqual,
	">=": token.GreaterEqual,
	"<=": token.LessEqual,
	"->": token.Arrow,
}

func (lexer *Lexer) scanTwoCharPunct(start int) bool {
	pair := string([]rune{lexer.current(), lexer.peek()})
	kind, ok := twoCharPunct[pair]
	if !ok {
		return false
	}
	lexer.pos += 2
	lexer.emit(token.New(kind, start))
	return true
}

var oneCharPunct = map[rune]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
	',': token.Comma, '.': token.Dot,
	'-': token.Minus, '+': token.Plus,
	';': token.Semicolon, '/': token.Slash, '*': token.Star,
	':': token.Colon, '!': token.Bang, '=': token.Equal,
	'>': token.Greater, '<': token.Less,
}

func (lexer *Lexer) scanOneCharPunct(start int) bool {
	kind, ok := oneCharPunct[lexer.current()]
	if !ok {
		return false
	}
	lexer.pos++
	lexer.emit(token.New(kind, start))
	return true
}
