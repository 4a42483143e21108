package parser

import (
	"github.com/tallow-lang/tallow/ast"
	"github.com/tallow-lang/tallow/stream"
)

// rule parses one node alternative. On failure it must leave the
// stream's cursor wherever it likes — any() resets it before trying
// the next alternative.
type rule func(s *stream.Stream, depth int) (ast.Node, error)

// any tries each rule in order against the same cursor position,
// rolling back on failure. If every rule fails, it reports the
// failure with the greatest depth — the alternative that progressed
// furthest before giving up — with ties resolved by whichever rule was
// tried first (spec invariant P6).
func any(rules []rule, s *stream.Stream, depth int) (ast.Node, error) {
	var errs []Error
	for _, r := range rules {
		mark := s.Mark()
		node, err := r(s, depth)
		if err == nil {
			return node, nil
		}
		s.Reset(mark)
		errs = append(errs, toParseError(err))
	}

	best := errs[0]
	for _, e := range errs[1:] {
		if e.Depth > best.Depth {
			best = e
		}
	}
	return nil, best
}

func toParseError(err error) Error {
	if pe, ok := err.(Error); ok {
		return pe
	}
	return Error{Cause: err.Error()}
}
