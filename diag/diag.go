// Package diag holds the diagnostics of the OScript front end: the message catalog
// with stable codes, the fatal Error and the non-fatal Warning records, and the
// rendering of source excerpts with a caret under the offending range.
//
// Messages are templates with positional placeholders %1 .. %9 which are replaced
// by the arguments passed to [Format]. The codes never change, so tools can filter
// diagnostics without matching message text.
package diag

import (
	"fmt"
	"strings"

	"github.com/metaphox/oscript/token"
)

// Message is a catalog entry: a stable code and a message template.
type Message struct {
	Code string
	Text string
}

// Errors.
var (
	Unexpected              = Message{"E001", "unexpected %1 '%2' near '%3'"}
	UnexpectedEOF           = Message{"E002", "unexpected symbol near '<eof>'"}
	Expected                = Message{"E003", "'%1' expected near '%2'"}
	ExpectedToken           = Message{"E004", "%1 expected near '%2'"}
	MalformedNumber         = Message{"E005", "malformed number near '%1'"}
	MalformedDate           = Message{"E006", "malformed date near '%1'"}
	MalformedHash           = Message{"E007", "malformed hashquote or objref near '%1'"}
	UnfinishedString        = Message{"E008", "unfinished string near '%1'"}
	UnfinishedLongString    = Message{"E009", "unfinished long string (starting at line %1) near '%2'"}
	UnfinishedLongComment   = Message{"E010", "unfinished long comment (starting at line %1) near '%2'"}
	UnfinishedHashQuote     = Message{"E011", "unfinished hash quote (starting at line %1) near '%2'"}
	UnfinishedPrepDirective = Message{"E012", "unfinished preprocessor directive (starting at line %1) near '%2'"}
	UnbalancedPrepDirective = Message{"E013", "unbalanced preprocessor directive %1 near '%2'"}
	UnexpectedCharacter     = Message{"E014", "unexpected character '%1'"}
)

// Warnings.
var (
	LineBreakInString            = Message{"W001", "multi-line string not delimited by back-ticks: %1%2%1"}
	UselessBackslash             = Message{"W002", "backslash not followed by a line-break near '%1'"}
	PrepDirectiveWithoutName     = Message{"W003", "missing name identifier after %1 near '%2'"}
	ObjectNotPublic              = Message{"W004", "modifier %1 used instead of public for an object"}
	CharactersAfterPrepDirective = Message{"W005", "unexpected characters after %1 near '%2'"}
	UnexpectedSemicolon          = Message{"W006", "unexpected semicolon after %1 declaration near '%2'"}
	UnfinishedStatement          = Message{"W007", "missing semicolon after the %1 statement near '%2'"}
)

// Format substitutes the placeholders %1 .. %9 of the message template with args.
// A placeholder without a matching argument is replaced by an empty string.
func Format(m Message, args ...string) string {
	var b strings.Builder
	text := m.Text
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '%' && i+1 < len(text) && text[i+1] >= '1' && text[i+1] <= '9' {
			if n := int(text[i+1] - '1'); n < len(args) {
				b.WriteString(args[n])
			}
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Diagnostic is the part shared by errors and warnings: what happened and where.
type Diagnostic struct {
	Message string
	Code    string
	Source  string // display name of the source, e.g. a file name
	Line    int    // 1-based
	Column  int    // 1-based
	Offset  int    // 0-based
	Length  int
}

// Location returns "source:line:column".
func (d *Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d:%d", d.Source, d.Line, d.Column)
}

// Warning is a non-fatal diagnostic. Warnings are collected in parse order and
// returned with a successful result.
type Warning struct {
	Diagnostic
}

func (w *Warning) String() string {
	return fmt.Sprintf("%s: warning %s: %s", w.Location(), w.Code, w.Message)
}

// Pretty renders the warning with a source excerpt.
func (w *Warning) Pretty(src string) string {
	return "WARNING " + w.String() + "\n\n" + Excerpt(src, w.Line, w.Column, w.Length)
}

// Error is a fatal lexical or syntax error. Tokens and Warnings hold what had been
// produced before the failure, for tools that want to recover partially.
type Error struct {
	Diagnostic
	Tokens   []token.Token
	Warnings []*Warning
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Location(), e.Message)
}

// Pretty renders the error with a source excerpt.
func (e *Error) Pretty(src string) string {
	return fmt.Sprintf("ERROR %s: %s %s\n\n%s", e.Location(), e.Code, e.Message,
		Excerpt(src, e.Line, e.Column, e.Length))
}

// At describes where a diagnostic points to.
type At struct {
	Source string
	Offset int
	Line   int
	Column int
	Length int
}

// AtToken returns the location covered by tok.
func AtToken(source string, tok token.Token) At {
	return At{
		Source: source,
		Offset: tok.Start,
		Line:   tok.Line,
		Column: tok.Start - tok.LineStart + 1,
		Length: tok.End - tok.Start,
	}
}

func (a At) diagnostic(m Message, args []string) Diagnostic {
	return Diagnostic{
		Message: Format(m, args...),
		Code:    m.Code,
		Source:  a.Source,
		Line:    a.Line,
		Column:  a.Column,
		Offset:  a.Offset,
		Length:  a.Length,
	}
}

// NewError creates a fatal error from a catalog message.
func NewError(at At, m Message, args ...string) *Error {
	return &Error{Diagnostic: at.diagnostic(m, args)}
}

// NewWarning creates a warning from a catalog message.
func NewWarning(at At, m Message, args ...string) *Warning {
	return &Warning{Diagnostic: at.diagnostic(m, args)}
}
