// Package lexer implements the OScript lexer (tokeniser) together with its
// conditional-compilation preprocessor.
//
// The lexer converts an OScript source string into a stream of [token.Token]
// values. Call [New] to create a lexer and then call [Lexer.NextToken] repeatedly
// until you receive a token with Type == [token.EOF]. [Tokenize] and
// [StartTokenization] wrap that loop for callers that only need the tokens.
//
// Design notes:
//   - Single-pass, byte-by-byte scanning using an offset cursor; OScript source
//     syntax is ASCII, other bytes only appear inside strings and comments.
//   - No global state; every [Lexer] is independent and owns its defines table
//     and conditional scope stack.
//   - Whitespace, comments, preprocessor directives and the text skipped by a
//     false #ifdef region never reach the parser. They are reported to the
//     observer registered by [Lexer.Observe] only when the options ask for them.
//   - Words are lowercased and classified as keywords, boolean and undefined
//     literals or identifiers according to the language version.
//   - Lexical errors are returned as *diag.Error; warnings are collected and
//     available from [Lexer.Warnings].
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/token"
)

// DefaultSourceFile is the source name used in diagnostics when none is set.
const DefaultSourceFile = "snippet"

// Options configures a [Lexer]. The zero value scans modern OScript with no
// preprocessor names defined and reports significant tokens only.
type Options struct {
	// Defines seeds the preprocessor names. Keys are matched case-insensitively.
	Defines map[string]string
	// Legacy selects the old language version: a different keyword set, no
	// back-quoted strings, no #'hash quotes'# and no "::".
	Legacy bool

	// Whitespace, Comments and Preprocessor report the corresponding
	// insignificant tokens to the observer.
	Whitespace   bool
	Comments     bool
	Preprocessor bool

	// SourceFile names the source in diagnostics; DefaultSourceFile when empty.
	SourceFile string
}

// Lexer holds all state required to tokenise a single OScript source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input  string
	opts   Options
	source string

	offset    int // current read position
	line      int // current 1-based line
	lineStart int // offset of the first character of line
	tokStart  int // offset of the token being scanned

	afterLineBreak bool // a significant line break precedes the token
	afterScript    bool // the previous token was the "script" keyword

	conds   condStack
	enabled bool
	defines map[string]string

	warnings []*diag.Warning
	observer func(token.Token)
	onScope  func(enabled bool)
}

// New creates a [Lexer] that tokenises src.
func New(src string, opts Options) *Lexer {
	l := &Lexer{
		input:   src,
		opts:    opts,
		source:  opts.SourceFile,
		line:    1,
		enabled: true,
		defines: make(map[string]string, len(opts.Defines)),
	}
	if l.source == "" {
		l.source = DefaultSourceFile
	}
	for name, value := range opts.Defines {
		l.defines[strings.ToLower(name)] = value
	}
	return l
}

// Observe registers f to be called with every token the lexer creates, in source
// order: the significant tokens returned by NextToken (EOF included) and the
// insignificant ones requested by the options.
func (l *Lexer) Observe(f func(token.Token)) {
	l.observer = f
}

// OnScopeChange registers f to be called whenever a conditional directive turns
// tokenization off (false) or back on (true).
func (l *Lexer) OnScopeChange(f func(enabled bool)) {
	l.onScope = f
}

// Warnings returns the warnings collected so far.
func (l *Lexer) Warnings() []*diag.Warning {
	return l.warnings
}

// Source returns the source name used in diagnostics.
func (l *Lexer) Source() string {
	return l.source
}

// NextToken returns the next significant token from the input.
//
// Blanks, line breaks, comments, preprocessor directives and disabled regions
// are skipped before each token. When the input is exhausted NextToken returns a
// token with Type == [token.EOF] on every subsequent call.
func (l *Lexer) NextToken() (token.Token, error) {
	l.afterLineBreak = false
	blank := l.here()
	joinLines := false

	for l.offset < len(l.input) {
		switch l.input[l.offset] {
		case ' ', '\t', '\v', '\f':
			l.offset++
			continue

		case '\n', '\r':
			l.newLine()
			// A line break escaped by a backslash is not significant.
			if joinLines {
				joinLines = false
			} else {
				l.afterLineBreak = true
			}
			continue

		case '/':
			if next := l.peek(1); next == '/' || next == '*' {
				l.flushWhitespace(blank)
				comment, err := l.scanComment(next == '*')
				if err != nil {
					return token.Token{}, err
				}
				if l.opts.Comments {
					l.emit(comment)
				}
				joinLines = false
				blank = l.here()
				continue
			}

		case '#':
			if !l.hashStartsToken() {
				l.flushWhitespace(blank)
				if err := l.scanDirectiveLine(); err != nil {
					return token.Token{}, err
				}
				joinLines = false
				blank = l.here()
				continue
			}

		case '\\':
			if isWhitespace(l.peek(1)) {
				joinLines = true
			} else if !l.commentAt(l.offset + 1) {
				l.warnHere(diag.UselessBackslash, `\`)
			}
			l.offset++
			continue
		}
		break
	}

	l.flushWhitespace(blank)
	l.tokStart = l.offset

	if l.offset >= len(l.input) {
		tok := l.place(token.EOF, "<eof>")
		l.emit(tok)
		return tok, nil
	}

	var (
		tok token.Token
		err error
	)
	if isIdentStart(l.input[l.offset]) {
		tok = l.scanWord()
		// Script names may contain blanks and dashes.
		l.afterScript = tok.Value == "script"
	} else {
		tok, err = l.scanOther()
		if err != nil {
			return token.Token{}, err
		}
		l.afterScript = false
	}
	l.emit(tok)
	return tok, nil
}

// ── Words ─────────────────────────────────────────────────────────────────────

// scanWord scans an identifier, keyword, boolean or undefined literal.
//
//	general names:  ($ $?)? [a-z_] [a-z_0-9$]*   blanks allowed after the sigils
//	script names:   [a-z_] [a-z_0-9$]* ( *- *[a-z_0-9$]+)*
func (l *Lexer) scanWord() token.Token {
	var value string

	switch {
	case l.afterScript:
		wordEnd := l.offset
		var blank, dash bool
		for {
			l.offset++
			c := l.peek(0)
			if c == ' ' || c == '\t' {
				blank = true
				continue
			}
			if c == '-' {
				dash = true
				continue
			}
			// Only words joined by dashes may have blanks between them.
			if blank && !dash {
				l.offset = wordEnd + 1
				break
			}
			if !isIdentPart(c) {
				break
			}
			blank, dash = false, false
			wordEnd = l.offset
		}
		value = stripBlanks(strings.ToLower(l.input[l.tokStart:l.offset]))

	case l.input[l.offset] == '$':
		for {
			l.offset++
			if c := l.peek(0); c != ' ' && c != '\t' && c != '$' {
				break
			}
		}
		nameStart := l.offset
		for isIdentPart(l.peek(0)) {
			l.offset++
		}
		value = stripBlanks(l.input[l.tokStart:nameStart]) +
			strings.ToLower(l.input[nameStart:l.offset])

	default:
		for {
			l.offset++
			if !isIdentPart(l.peek(0)) {
				break
			}
		}
		value = strings.ToLower(l.input[l.tokStart:l.offset])
	}

	switch {
	case token.IsKeyword(value, l.opts.Legacy):
		return l.place(token.Keyword, value)
	case value == "true" || value == "false":
		return l.place(token.BooleanLiteral, value == "true")
	case value == "undefined":
		return l.place(token.UndefinedLiteral, nil)
	}
	return l.place(token.Identifier, value)
}

// ── Punctuators and dispatch ──────────────────────────────────────────────────

// scanOther scans every token that does not start with a word character.
func (l *Lexer) scanOther() (token.Token, error) {
	c, next := l.input[l.offset], l.peek(1)

	switch c {
	case '\'', '"':
		return l.scanString(false)
	case '`':
		if !l.opts.Legacy {
			return l.scanString(true)
		}

	case '#':
		if next == '\'' && !l.opts.Legacy {
			return l.scanHashQuote()
		}
		if isHexDigit(next) {
			return l.scanObjRef()
		}
		end := min(l.offset+2, len(l.input))
		return token.Token{}, l.errorHere(diag.MalformedHash, l.input[l.offset:end])

	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.scanNumber(true)

	case '.':
		if isDigit(next) {
			return l.scanNumber(false)
		}
		return l.punctuator("...", "..", "."), nil
	case ':':
		if !l.opts.Legacy {
			return l.punctuator("::", ":"), nil
		}
		return l.punctuator(":"), nil
	case '<':
		return l.punctuator("<<", "<>", "<=", "<"), nil
	case '>':
		return l.punctuator(">>", ">=", ">"), nil
	case '&':
		if isHexDigit(next) {
			return l.scanLegacyAlias()
		}
		return l.punctuator("&&", "&=", "&"), nil
	case '^':
		return l.punctuator("^=", "^"), nil
	case '|':
		return l.punctuator("||", "|=", "|"), nil
	case '!':
		return l.punctuator("!=", "!"), nil
	case '*':
		return l.punctuator("*=", "*"), nil
	case '+':
		return l.punctuator("+=", "+"), nil
	case '-':
		return l.punctuator("-=", "-"), nil
	case '=':
		return l.punctuator("==", "="), nil

	case '%', ',', '/', '?', '@', '{', '}', '[', '\\', ']', '(', ')', ';', '~':
		return l.punctuator(string(c)), nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return token.Token{}, l.errorHere(diag.UnexpectedCharacter, string(r))
}

// punctuator consumes the first of candidates found at the cursor. The last
// candidate is the single character under the cursor and always matches.
func (l *Lexer) punctuator(candidates ...string) token.Token {
	value := candidates[len(candidates)-1]
	for _, p := range candidates {
		if strings.HasPrefix(l.input[l.offset:], p) {
			value = p
			break
		}
	}
	l.offset += len(value)
	return l.place(token.Punctuator, value)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// mark is a remembered scanner position.
type mark struct {
	offset, line, lineStart int
}

func (l *Lexer) here() mark {
	return mark{offset: l.offset, line: l.line, lineStart: l.lineStart}
}

// peek returns the byte n positions after the cursor, or 0 past the end.
func (l *Lexer) peek(n int) byte {
	if i := l.offset + n; i < len(l.input) {
		return l.input[i]
	}
	return 0
}

// newLine consumes one line break under the cursor; \r\n counts once.
func (l *Lexer) newLine() {
	if l.input[l.offset] == '\r' && l.peek(1) == '\n' {
		l.offset++
	}
	l.offset++
	l.line++
	l.lineStart = l.offset
}

// hashStartsToken reports whether the # under the cursor starts a hash quote or
// an object reference rather than a preprocessor directive.
func (l *Lexer) hashStartsToken() bool {
	next := l.peek(1)
	return (next == '\'' && !l.opts.Legacy) || isDigit(next)
}

// commentAt reports whether a comment starts at offset i.
func (l *Lexer) commentAt(i int) bool {
	return i+1 < len(l.input) && l.input[i] == '/' && (l.input[i+1] == '/' || l.input[i+1] == '*')
}

// place builds a single-line token ending at the cursor.
func (l *Lexer) place(typ token.Type, value any) token.Token {
	return token.Token{
		Type:           typ,
		Value:          value,
		Line:           l.line,
		Col:            l.tokStart - l.lineStart + 1,
		LineStart:      l.lineStart,
		LastLine:       l.line,
		LastLineStart:  l.lineStart,
		Start:          l.tokStart,
		End:            l.offset,
		AfterLineBreak: l.afterLineBreak,
	}
}

// span builds a token that may cover several lines, from m to the cursor.
func (l *Lexer) span(typ token.Type, value any, m mark) token.Token {
	return token.Token{
		Type:           typ,
		Value:          value,
		Line:           m.line,
		Col:            m.offset - m.lineStart + 1,
		LineStart:      m.lineStart,
		LastLine:       l.line,
		LastLineStart:  l.lineStart,
		Start:          m.offset,
		End:            l.offset,
		AfterLineBreak: l.afterLineBreak,
	}
}

func (l *Lexer) emit(tok token.Token) {
	if l.observer != nil {
		l.observer(tok)
	}
}

// flushWhitespace reports the blanks scanned since m when requested.
func (l *Lexer) flushWhitespace(m mark) {
	if l.opts.Whitespace && m.offset < l.offset {
		l.emit(l.span(token.Whitespace, l.input[m.offset:l.offset], m))
	}
}

// errorFrom creates an error covering the source from m to the cursor.
func (l *Lexer) errorFrom(m mark, msg diag.Message, args ...string) *diag.Error {
	return diag.NewError(diag.At{
		Source: l.source,
		Offset: m.offset,
		Line:   m.line,
		Column: m.offset - m.lineStart + 1,
		Length: max(l.offset-m.offset, 1),
	}, msg, args...)
}

// errorHere creates an error pointing at the character under the cursor.
func (l *Lexer) errorHere(msg diag.Message, args ...string) *diag.Error {
	return diag.NewError(l.atHere(), msg, args...)
}

func (l *Lexer) warnHere(msg diag.Message, args ...string) {
	l.warnings = append(l.warnings, diag.NewWarning(l.atHere(), msg, args...))
}

func (l *Lexer) warnToken(tok token.Token, msg diag.Message, args ...string) {
	l.warnings = append(l.warnings, diag.NewWarning(diag.AtToken(l.source, tok), msg, args...))
}

func (l *Lexer) atHere() diag.At {
	return diag.At{
		Source: l.source,
		Offset: l.offset,
		Line:   l.line,
		Column: l.offset - l.lineStart + 1,
		Length: 1,
	}
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLineTerminator(c byte) bool {
	return c == '\n' || c == '\r'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f' || isLineTerminator(c)
}

// stripBlanks removes spaces and tabs.
func stripBlanks(s string) string {
	return strings.NewReplacer(" ", "", "\t", "").Replace(s)
}
