// Package stream implements a mutable cursor over a token slice, the
// primitive the parser builds on: lookahead, consumption, a save/reset
// checkpoint for backtracking, and balanced-delimiter slicing.
package stream

import "github.com/tallow-lang/tallow/token"

// Stream is a cursor over a fixed slice of tokens.
type Stream struct {
	tokens  []token.Token
	pointer int
}

// New wraps tokens in a Stream positioned at its first token.
func New(tokens []token.Token) *Stream {
	return &Stream{tokens: tokens}
}

// IsEmpty reports whether the cursor has consumed every token.
func (s *Stream) IsEmpty() bool {
	return s.pointer >= len(s.tokens)
}

// Mark returns a checkpoint that Reset can later rewind the cursor to.
// This is the backtracking primitive the parser's alternative
// combinator relies on.
func (s *Stream) Mark() int { return s.pointer }

// Reset rewinds the cursor to a previously captured Mark.
func (s *Stream) Reset(mark int) { s.pointer = mark }

// Peek returns the token k positions ahead of the cursor without
// consuming it. ok is false past the end of the stream.
func (s *Stream) Peek(k int) (token.Token, bool) {
	i := s.pointer + k
	if i < 0 || i >= len(s.tokens) {
		return token.Token{}, false
	}
	return s.tokens[i], true
}

// CurrentIndex returns the byte offset of the token under the cursor,
// or false if the cursor is at the end of the stream.
func (s *Stream) CurrentIndex() (int, bool) {
	t, ok := s.Peek(0)
	if !ok {
		return 0, false
	}
	return t.Index, true
}

// Next consumes and returns the token under the cursor.
func (s *Stream) Next() (token.Token, bool) {
	t, ok := s.Peek(0)
	if ok {
		s.pointer++
	}
	return t, ok
}

// Advance moves the cursor forward by n tokens without inspecting them.
func (s *Stream) Advance(n int) { s.pointer += n }

// SkipIf consumes the token under the cursor if its kind matches, and
// reports whether it did.
func (s *Stream) SkipIf(kind token.Kind) bool {
	t, ok := s.Peek(0)
	if !ok || t.Kind != kind {
		return false
	}
	s.pointer++
	return true
}

// BalancedSlice returns the span of tokens starting at the cursor up
// to and including the matching closing delimiter, given that the
// opening delimiter has already been consumed by the caller. Nesting
// of open/close pairs is counted. It reports false if the stream runs
// out before the matching close is found — the cursor is left
// unmoved in that case, so callers never consume past a missing
// delimiter (P7).
func (s *Stream) BalancedSlice(open, close token.Kind) ([]token.Token, bool) {
	depth := 1
	for i := s.pointer; i < len(s.tokens); i++ {
		switch s.tokens[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s.tokens[s.pointer : i+1], true
			}
		}
	}
	return nil, false
}
