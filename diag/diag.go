// Package diag renders a byte offset into the original source plus a
// title and cause into a five-line, human-readable diagnostic: the
// title, a "  |" gutter line, the numbered source line containing the
// offset, a caret-pointer line under it, and the cause. It is purely presentational — parser.Error and
// eval.Error both delegate their FormatWith method to this package.
package diag

import (
	"strconv"
	"strings"
)

// underscoreWidth is the number of carets drawn under the offending
// position, matching the original renderer's fixed-width pointer.
const underscoreWidth = 5

// Renderer formats a diagnostic into a display string. Format's plain
// text rendering is the package default; a host that wants color or a
// different layout can implement Renderer and set Default, without
// parser.Error or eval.Error needing to change.
type Renderer interface {
	Render(input string, at int, title, cause string) string
}

// textRenderer is the plain-text Renderer used by FormatWith unless a
// host overrides Default.
type textRenderer struct{}

func (textRenderer) Render(input string, at int, title, cause string) string {
	return Format(input, at, title, cause)
}

// Default is the Renderer used by FormatWith. Replace it to change
// how every parser.Error/eval.Error is displayed without touching
// either package.
var Default Renderer = textRenderer{}

// FormatWith renders a diagnostic through Default. parser.Error and
// eval.Error both call this rather than Format directly, so swapping
// Default retargets every diagnostic in the program at once.
func FormatWith(input string, at int, title, cause string) string {
	return Default.Render(input, at, title, cause)
}

// Format renders title, the source line containing at, and a
// tab-preserving caret line pointing at at, followed by cause.
//
// Line numbers are 1-based. Tabs appearing before the caret in the
// source line are preserved in the pointer line so that the caret
// still lines up under a tab-rendering terminal.
func Format(input string, at int, title, cause string) string {
	line, column := lineAt(input, at)
	lineNumber := lineNumberAt(input, at)

	pad := make([]byte, column)
	for i, c := range []byte(line) {
		if i >= column {
			break
		}
		if c == '\t' {
			pad[i] = '\t'
		} else {
			pad[i] = ' '
		}
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString(":\n  |\n")
	b.WriteString(strconv.Itoa(lineNumber))
	b.WriteString(" | ")
	b.WriteString(line)
	b.WriteString("\n  | ")
	b.Write(pad)
	b.WriteString(strings.Repeat("^", underscoreWidth))
	b.WriteString("\n")
	b.WriteString(cause)
	return b.String()
}

// lineAt returns the full line of input containing byte offset at,
// and at's column offset (0-based, bytes) within that line.
func lineAt(input string, at int) (string, int) {
	start := 0
	end := len(input)
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			if i >= at {
				end = i
				break
			}
			start = i + 1
		}
	}
	if at > len(input) {
		at = len(input)
	}
	if start > end {
		start = end
	}
	col := at - start
	if col < 0 {
		col = 0
	}
	return input[start:end], col
}

// lineNumberAt returns the 1-based line number of the line containing
// byte offset at.
func lineNumberAt(input string, at int) int {
	if at > len(input) {
		at = len(input)
	}
	return strings.Count(input[:at], "\n") + 1
}

