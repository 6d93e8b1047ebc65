package diag

import (
	"fmt"
	"strings"
)

// Excerpt renders the source line at line with one line of context before and
// after it, and a caret run under [column, column+length) of that line:
//
//	   2 | s = "abc
//	     |     ^^^^
//	   3 | "
//
// Lines and columns are 1-based and clamped to the source, so a position past the
// end of the text still renders. The caret run is at least one character wide and
// never extends past the end of the line.
func Excerpt(src string, line, column, length int) string {
	lines := strings.Split(lineBreaks.Replace(src), "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if column < 1 {
		column = 1
	}
	text := lines[line-1]

	width := length
	if rest := len(text) - (column - 1); width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, text)
	fmt.Fprintf(&b, "     | %s%s\n", padding(text, column-1), strings.Repeat("^", width))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// lineBreaks folds \r\n and lone \r into \n, counting lines the way the lexer does.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// padding returns blanks as wide as the first n bytes of text, keeping tabs so the
// caret lines up in a terminal.
func padding(text string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i < len(text) && text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
