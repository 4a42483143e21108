package stream

import (
	"testing"

	"github.com/tallow-lang/tallow/token"
)

func toks(kinds ...token.Kind) []token.Token {
	out := make([]token.Token, len(kinds))
	for i, k := range kinds {
		out[i] = token.New(k, i)
	}
	return out
}

func TestPeekNextAdvance(t *testing.T) {
	s := New(toks(token.LParen, token.Identifier, token.RParen))

	tok, ok := s.Peek(0)
	if !ok || tok.Kind != token.LParen {
		t.Fatalf("Peek(0) = %+v, %v", tok, ok)
	}
	tok, ok = s.Peek(1)
	if !ok || tok.Kind != token.Identifier {
		t.Fatalf("Peek(1) = %+v, %v", tok, ok)
	}

	tok, ok = s.Next()
	if !ok || tok.Kind != token.LParen {
		t.Fatalf("Next() = %+v, %v", tok, ok)
	}
	s.Advance(1)
	tok, ok = s.Next()
	if !ok || tok.Kind != token.RParen {
		t.Fatalf("Next() after Advance = %+v, %v", tok, ok)
	}
	if !s.IsEmpty() {
		t.Error("IsEmpty() = false, want true after consuming all tokens")
	}
}

func TestMarkReset(t *testing.T) {
	s := New(toks(token.Plus, token.Minus))
	mark := s.Mark()
	s.Next()
	s.Reset(mark)
	tok, _ := s.Peek(0)
	if tok.Kind != token.Plus {
		t.Errorf("Reset did not rewind cursor, Peek(0).Kind = %v", tok.Kind)
	}
}

func TestSkipIf(t *testing.T) {
	s := New(toks(token.Semicolon, token.Plus))
	if !s.SkipIf(token.Semicolon) {
		t.Fatal("SkipIf(Semicolon) = false, want true")
	}
	if s.SkipIf(token.Semicolon) {
		t.Fatal("SkipIf(Semicolon) = true on a Plus token")
	}
}

// P7: balanced slicing never consumes past the matching delimiter.
func TestBalancedSliceNested(t *testing.T) {
	// already consumed the opening '{'; stream holds: { } }
	s := New(toks(token.LBrace, token.RBrace, token.RBrace))
	slice, ok := s.BalancedSlice(token.LBrace, token.RBrace)
	if !ok {
		t.Fatal("BalancedSlice() ok = false")
	}
	if len(slice) != 3 {
		t.Fatalf("BalancedSlice() len = %d, want 3 (nested brace pair + closing brace)", len(slice))
	}
}

func TestBalancedSliceMissingCloseFails(t *testing.T) {
	s := New(toks(token.Identifier, token.Plus))
	_, ok := s.BalancedSlice(token.LBrace, token.RBrace)
	if ok {
		t.Fatal("BalancedSlice() ok = true, want false for missing closing delimiter")
	}
}
