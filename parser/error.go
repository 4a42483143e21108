package parser

import "github.com/tallow-lang/tallow/diag"

// Error is a parse failure anchored to a source offset. Depth records
// how far into a nested rule the failure occurred; when every
// alternative in an any() call fails, the one with the greatest depth
// is reported, since it represents the parse that got furthest before
// giving up (spec invariant P6).
type Error struct {
	At    int
	Depth int
	Cause string
}

func (e Error) Error() string { return e.Cause }

// FormatWith renders the error as a caret-pointer diagnostic (see
// package diag) against the original source text.
func (e Error) FormatWith(input, title string) string {
	return diag.FormatWith(input, e.At, title, e.Cause)
}
