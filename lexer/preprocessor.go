package lexer

import (
	"strconv"
	"strings"

	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/token"
)

// Preprocessor directives occupy the rest of the line after a '#':
//
//	#define NAME [VALUE]     VALUE defaults to "1", surrounding quotes are dropped
//	#undef NAME
//	#ifdef NAME              include the following lines if NAME is defined
//	#ifndef NAME             include the following lines if NAME is not defined
//	#else                    flip the innermost #ifdef or #ifndef
//	#endif                   close the innermost #ifdef or #ifndef
//
// Directive keywords are case-insensitive and names are lowercased. Comments on
// a directive line are removed before it is evaluated; a block comment that
// continues on the next line ends the directive.

// ── Conditionals ──────────────────────────────────────────────────────────────

// condStack holds one frame per open #ifdef or #ifndef.
type condStack struct {
	frames []condFrame
}

type condFrame struct {
	parentActive bool
	cond         bool
}

// Active reports whether the current region and all enclosing ones are included.
func (c *condStack) Active() bool {
	if len(c.frames) == 0 {
		return true
	}
	top := c.frames[len(c.frames)-1]
	return top.parentActive && top.cond
}

func (c *condStack) Push(cond bool) {
	c.frames = append(c.frames, condFrame{parentActive: c.Active(), cond: cond})
}

// Else flips the innermost region. It reports false when no region is open.
func (c *condStack) Else() bool {
	if len(c.frames) == 0 {
		return false
	}
	top := &c.frames[len(c.frames)-1]
	top.cond = !top.cond
	return true
}

// Pop closes the innermost region. It reports false when no region is open.
func (c *condStack) Pop() bool {
	if len(c.frames) == 0 {
		return false
	}
	c.frames = c.frames[:len(c.frames)-1]
	return true
}

// ── Directive scanning ────────────────────────────────────────────────────────

// directive is a split directive line.
type directive struct {
	kind  string // lowercase directive keyword
	name  string // lowercase name, may be empty
	value string // trimmed rest of the line, may be empty
}

// scanDirectiveLine scans and executes a directive found between tokens. When the
// directive disables tokenization, the following region is skipped as well.
func (l *Lexer) scanDirectiveLine() error {
	tok, comments, err := l.scanDirective(true)
	if err != nil {
		return err
	}
	if l.opts.Preprocessor {
		l.emit(tok)
	}
	if l.opts.Comments {
		for _, c := range comments {
			l.emit(c)
		}
	}
	if !l.enabled {
		return l.skipDisabled()
	}
	return nil
}

// scanDirective scans the directive line under the cursor and executes it.
//
// With full set every directive is validated and evaluated. Otherwise the line is
// inside a disabled region: only the conditional directives are evaluated, so that
// nested regions keep their balance, and everything else is ignored.
//
// The returned token covers the whole line; comments are the comments removed
// from it.
func (l *Lexer) scanDirective(full bool) (token.Token, []token.Token, error) {
	begin := l.here()
	l.tokStart = l.offset
	l.offset++ // #

	var (
		content  strings.Builder
		comments []token.Token
		segStart = l.offset
	)
	for l.offset < len(l.input) {
		c := l.input[l.offset]
		if isLineTerminator(c) {
			break
		}
		if next := l.peek(1); c == '/' && (next == '/' || next == '*') {
			commentStart := l.here()
			content.WriteString(l.input[segStart:l.offset])
			comment, err := l.scanComment(next == '*')
			if err != nil {
				return token.Token{}, nil, err
			}
			if l.line != commentStart.line {
				// The comment belongs to the following lines; scan it again there.
				l.offset, l.line, l.lineStart = commentStart.offset, commentStart.line, commentStart.lineStart
				segStart = l.offset
				break
			}
			comments = append(comments, comment)
			segStart = l.offset
			continue
		}
		l.offset++
	}
	content.WriteString(l.input[segStart:l.offset])

	text := content.String()
	d := splitDirective(text)
	tok := l.span(token.PreprocessorDirective, text, begin)
	tok.Directive, tok.Name, tok.NamedValue = d.kind, d.name, d.value

	if full {
		if err := l.checkDirective(d, tok); err != nil {
			return token.Token{}, nil, err
		}
	} else if !isConditional(d.kind) {
		return tok, comments, nil
	} else if (d.kind == "else" || d.kind == "endif") && (d.name != "" || d.value != "") {
		l.warnToken(tok, diag.CharactersAfterPrepDirective, d.kind, text)
	}

	if err := l.execute(d, tok); err != nil {
		return token.Token{}, nil, err
	}
	return tok, comments, nil
}

// checkDirective validates a directive line evaluated outside disabled regions.
func (l *Lexer) checkDirective(d directive, tok token.Token) error {
	unfinished := func() error {
		return l.errorFrom(mark{offset: tok.Start, line: tok.Line, lineStart: tok.LineStart},
			diag.UnfinishedPrepDirective, strconv.Itoa(tok.Line), l.input[tok.Start:tok.End])
	}
	text := tok.Value.(string)

	switch d.kind {
	case "define", "undef":
		if d.name == "" {
			return unfinished()
		}
	case "ifdef", "ifndef":
		// The VM accepts a missing name and trailing characters.
		if d.name == "" {
			l.warnToken(tok, diag.PrepDirectiveWithoutName, d.kind, text)
		}
		if d.value != "" {
			l.warnToken(tok, diag.CharactersAfterPrepDirective, d.kind, text)
		}
	case "else", "endif":
		if d.name != "" || d.value != "" {
			l.warnToken(tok, diag.CharactersAfterPrepDirective, d.kind, text)
		}
	default:
		return unfinished()
	}
	return nil
}

// execute applies a directive to the defines table or the conditional stack.
func (l *Lexer) execute(d directive, tok token.Token) error {
	switch d.kind {
	case "define":
		value := d.value
		if value == "" {
			value = "1"
		}
		l.defines[d.name] = unquote(value)
	case "undef":
		delete(l.defines, d.name)
	case "ifdef", "ifndef":
		_, defined := l.defines[d.name]
		defined = defined && d.name != ""
		l.conds.Push(defined == (d.kind == "ifdef"))
	case "else":
		if !l.conds.Else() {
			return l.unbalanced(d, tok)
		}
	case "endif":
		if !l.conds.Pop() {
			return l.unbalanced(d, tok)
		}
	}
	l.updateEnabled()
	return nil
}

func (l *Lexer) unbalanced(d directive, tok token.Token) error {
	return diag.NewError(diag.AtToken(l.source, tok), diag.UnbalancedPrepDirective,
		"#"+d.kind, l.input[tok.Start:tok.End])
}

// updateEnabled recomputes whether tokens are produced and tells the scope
// observer when that changes.
func (l *Lexer) updateEnabled() {
	enabled := l.conds.Active()
	if enabled == l.enabled {
		return
	}
	l.enabled = enabled
	if l.onScope != nil {
		l.onScope(enabled)
	}
}

// ── Disabled regions ──────────────────────────────────────────────────────────

// skipDisabled walks the lines of a disabled region until a conditional
// directive enables tokenization again. The text of a disabled region may not be
// valid OScript, so only comments and directives are recognised in it. The
// skipped text is reported as one PreprocessedAway token followed by the
// directive that closed the region.
func (l *Lexer) skipDisabled() error {
	begin := l.here()
	for l.offset < len(l.input) {
		c := l.input[l.offset]
		switch {
		case isLineTerminator(c):
			l.newLine()
			continue

		case c == '/' && (l.peek(1) == '/' || l.peek(1) == '*'):
			if _, err := l.scanComment(l.peek(1) == '*'); err != nil {
				return err
			}
			continue

		case c == '#' && !l.hashStartsToken():
			end := l.here()
			tok, _, err := l.scanDirective(false)
			if err != nil {
				return err
			}
			if l.enabled {
				l.emitSkipped(begin, end)
				if l.opts.Preprocessor {
					l.emit(tok)
				}
				return nil
			}
			continue
		}
		l.offset++
	}
	// A region left open at the end of the input is accepted.
	l.emitSkipped(begin, l.here())
	return nil
}

func (l *Lexer) emitSkipped(begin, end mark) {
	if !l.opts.Preprocessor || end.offset <= begin.offset {
		return
	}
	l.emit(token.Token{
		Type:          token.PreprocessedAway,
		Value:         l.input[begin.offset:end.offset],
		Line:          begin.line,
		Col:           begin.offset - begin.lineStart + 1,
		LineStart:     begin.lineStart,
		LastLine:      end.line,
		LastLineStart: end.lineStart,
		Start:         begin.offset,
		End:           end.offset,
	})
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func isConditional(kind string) bool {
	switch kind {
	case "ifdef", "ifndef", "else", "endif":
		return true
	}
	return false
}

// splitDirective splits the text after '#' into a keyword, an optional name
// separated by blanks and the trimmed rest of the line.
func splitDirective(text string) directive {
	rest := strings.TrimLeft(text, " \t\v\f")
	n := wordLen(rest)
	d := directive{kind: strings.ToLower(rest[:n])}
	rest = rest[n:]

	if trimmed := strings.TrimLeft(rest, " \t\v\f"); len(trimmed) < len(rest) {
		if n := wordLen(trimmed); n > 0 {
			d.name = strings.ToLower(trimmed[:n])
			rest = trimmed[n:]
		}
	}
	d.value = strings.TrimSpace(rest)
	return d
}

// wordLen returns the length of the [A-Za-z0-9_] run at the start of s.
func wordLen(s string) int {
	n := 0
	for n < len(s) && (isDigit(s[n]) || s[n] == '_' || (isIdentStart(s[n]) && s[n] != '$')) {
		n++
	}
	return n
}

// unquote drops one leading and one trailing quote character.
func unquote(value string) string {
	if value != "" && (value[0] == '"' || value[0] == '\'') {
		value = value[1:]
	}
	if n := len(value); n > 0 && (value[n-1] == '"' || value[n-1] == '\'') {
		value = value[:n-1]
	}
	return value
}
