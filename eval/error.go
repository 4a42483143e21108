package eval

import "github.com/tallow-lang/tallow/diag"

// Error is an evaluation failure anchored to a source offset.
type Error struct {
	At    int
	Cause string
}

func (e Error) Error() string { return e.Cause }

// FormatWith renders the error as a caret-pointer diagnostic (see
// package diag) against the original source text.
func (e Error) FormatWith(input, title string) string {
	return diag.FormatWith(input, e.At, title, e.Cause)
}
