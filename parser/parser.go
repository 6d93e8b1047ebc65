// Package parser implements the OScript recursive-descent parser.
//
// The parser pulls significant tokens from a [lexer.Lexer], or replays a token
// slice produced earlier, and builds an [ast.Program]. It keeps three token
// slots: the previous token, the current token and one token of lookahead.
// Binary operators are grouped by precedence climbing over an explicit spine of
// open operator nodes, see expressions.go.
//
// Usage:
//
//	prog, err := parser.ParseText(src, parser.Options{Locations: true})
//	if err != nil {
//		var de *diag.Error
//		if errors.As(err, &de) { fmt.Println(de.Pretty(src)) }
//	}
//
// The first error stops parsing: there is no recovery. Non-fatal problems are
// collected as warnings on the Program, or on the *diag.Error together with the
// tokens scanned before the failure.
package parser

import (
	"strings"

	"github.com/metaphox/oscript/ast"
	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/lexer"
	"github.com/metaphox/oscript/token"
)

// ── Public API ────────────────────────────────────────────────────────────────

// ParseText parses src into a Program.
//
// Errors are *diag.Error values for lexical and syntax errors, or wrap
// ErrInvalidOptions when opts cannot be used.
func ParseText(src string, opts Options) (*ast.Program, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	p := newParser(src, opts)
	p.lex = lexer.New(src, opts.lexerOptions())
	p.pull = p.scan
	if opts.Tokens {
		p.lex.Observe(func(tok token.Token) {
			if tok.Type != token.EOF {
				p.tokens = append(p.tokens, tok)
			}
		})
	}
	p.lex.OnScopeChange(p.scopeChanged)
	return p.run()
}

// ParseTokens parses tokens obtained from [Tokenize] for the same src and opts.
// Insignificant tokens are skipped. The result is the same tree ParseText
// returns; lexer warnings are not repeated.
func ParseTokens(src string, tokens []token.Token, opts Options) (*ast.Program, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	p := newParser(src, opts)
	p.input = tokens
	p.tokens = tokens
	p.pull = p.replay
	return p.run()
}

// Tokenize returns the tokens of src without parsing it.
func Tokenize(src string, opts Options) ([]token.Token, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	return lexer.Tokenize(src, opts.lexerOptions())
}

// StartTokenization returns a lazily scanned token stream over src.
func StartTokenization(src string, opts Options) (*lexer.Stream, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	return lexer.StartTokenization(src, opts.lexerOptions()), nil
}

// ── Parser ────────────────────────────────────────────────────────────────────

// parser holds the state of one parse. It is not reused.
type parser struct {
	src  string
	opts Options

	// pull returns the next significant token; scan or replay.
	pull func() token.Token

	lex         *lexer.Lexer
	lexWarnings int // lexer warnings already merged

	input []token.Token // replayed tokens
	pos   int

	eof    token.Token
	atEOF  bool
	prev   token.Token
	tok    token.Token
	next   token.Token
	parked [3]token.Token // slots saved while a preprocessor region is skipped

	tokens   []token.Token
	warnings []*diag.Warning
}

// bailout carries a fatal error up to run.
type bailout struct{ err error }

func newParser(src string, opts Options) *parser {
	return &parser{src: src, opts: opts, warnings: []*diag.Warning{}}
}

// run primes the token slots, parses the program and converts a bailout into
// the returned error.
func (p *parser) run() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, lexer.Attach(b.err, p.tokens, p.warnings)
		}
	}()

	p.next = p.pull()
	p.advance()
	prog = p.parseProgram()
	if p.opts.Tokens {
		prog.Tokens = p.tokens
	}
	prog.Warnings = p.warnings
	return prog, nil
}

// fail aborts the parse with err.
func (p *parser) fail(err error) {
	panic(bailout{err})
}

// advance shifts the token slots by one.
func (p *parser) advance() {
	p.prev, p.tok = p.tok, p.next
	p.next = p.pull()
}

// scan pulls the next token from the lexer and merges its new warnings.
func (p *parser) scan() token.Token {
	if p.atEOF {
		return p.eof
	}
	tok, err := p.lex.NextToken()
	if w := p.lex.Warnings(); len(w) > p.lexWarnings {
		p.warnings = append(p.warnings, w[p.lexWarnings:]...)
		p.lexWarnings = len(w)
	}
	if err != nil {
		p.fail(err)
	}
	if tok.Type == token.EOF {
		p.eof, p.atEOF = tok, true
	}
	return tok
}

// replay returns the next significant token of the input slice. The EOF token
// is synthesized at the end of the source.
func (p *parser) replay() token.Token {
	for !p.atEOF && p.pos < len(p.input) {
		tok := p.input[p.pos]
		p.pos++
		if !tok.Type.Is(token.NoCode) && tok.Type != token.EOF {
			return tok
		}
	}
	if !p.atEOF {
		p.eof, p.atEOF = p.endOfInput(), true
	}
	return p.eof
}

// endOfInput returns an EOF token placed after the last character of the source.
func (p *parser) endOfInput() token.Token {
	line, lineStart := 1, 0
	for i := 0; i < len(p.src); i++ {
		switch p.src[i] {
		case '\r':
			if i+1 < len(p.src) && p.src[i+1] == '\n' {
				i++
			}
			fallthrough
		case '\n':
			line++
			lineStart = i + 1
		}
	}

	lastEnd := 0
	if n := len(p.input); n > 0 {
		lastEnd = p.input[n-1].End
	}
	return token.Token{
		Type:           token.EOF,
		Value:          "<eof>",
		Line:           line,
		Col:            len(p.src) - lineStart + 1,
		LineStart:      lineStart,
		LastLine:       line,
		LastLineStart:  lineStart,
		Start:          len(p.src),
		End:            len(p.src),
		AfterLineBreak: lastEnd <= len(p.src) && strings.ContainsAny(p.src[lastEnd:], "\r\n"),
	}
}

// scopeChanged keeps the token slots intact while the lexer skips a region
// excluded by the preprocessor.
func (p *parser) scopeChanged(enabled bool) {
	if enabled {
		p.prev, p.tok, p.next = p.parked[0], p.parked[1], p.parked[2]
		return
	}
	p.parked = [3]token.Token{p.prev, p.tok, p.next}
}

// ── Token helpers ─────────────────────────────────────────────────────────────

// consumePunctuator advances past the current token if it is the punctuator.
func (p *parser) consumePunctuator(value string) bool {
	if p.tok.IsPunctuator(value) {
		p.advance()
		return true
	}
	return false
}

// consumeKeyword advances past the current token if it is the word.
func (p *parser) consumeKeyword(value string) bool {
	if p.tok.IsWord(value) {
		p.advance()
		return true
	}
	return false
}

// expectPunctuator consumes the punctuator or fails with E003.
func (p *parser) expectPunctuator(value string) {
	if !p.consumePunctuator(value) {
		p.errorAt(p.tok, diag.Expected, value, p.text(p.tok))
	}
}

// expectKeyword consumes the word or fails with E003.
func (p *parser) expectKeyword(value string) {
	if !p.consumeKeyword(value) {
		p.errorAt(p.tok, diag.Expected, value, p.text(p.tok))
	}
}

// requireLineBreak fails unless the current token starts a new line.
func (p *parser) requireLineBreak() {
	if !p.tok.AfterLineBreak {
		p.errorAt(p.tok, diag.Expected, "line break", p.text(p.tok))
	}
}

// closers are the keywords that end a block or start its next clause.
var closers = map[string]bool{
	"end": true, "else": true, "elseif": true, "case": true, "default": true,
	"until": true, "endscript": true, "scriptend": true,
}

// separated reports whether the current token cannot continue the previous
// statement on the same line.
func (p *parser) separated() bool {
	switch {
	case p.tok.AfterLineBreak, p.tok.Type == token.EOF:
		return true
	case p.tok.Type == token.Keyword:
		return closers[p.tok.Text()]
	}
	return false
}

// endStatement checks what follows a complete statement. A ';' is left in place;
// the enclosing block turns it into an EmptyStatement.
func (p *parser) endStatement() {
	if p.separated() || p.tok.IsPunctuator(";") {
		return
	}
	p.errorAt(p.tok, diag.Expected, "line break", p.text(p.tok))
}

// endHeader moves past the end of a block header, which is a line break or ';'.
func (p *parser) endHeader() {
	if p.separated() || p.consumePunctuator(";") {
		return
	}
	p.errorAt(p.tok, diag.Expected, ";", p.text(p.tok))
}

// endForHeader is endHeader for loops. The VM runs a loop whose body starts on
// the header line, so a missing separator is only a warning.
func (p *parser) endForHeader() {
	if p.separated() || p.consumePunctuator(";") {
		return
	}
	p.warn(p.prev, diag.UnfinishedStatement, "for", p.text(p.tok))
}

// text returns the source text of tok for messages.
func (p *parser) text(tok token.Token) string {
	if tok.Type == token.EOF {
		return "<eof>"
	}
	if 0 <= tok.Start && tok.Start <= tok.End && tok.End <= len(p.src) {
		return p.src[tok.Start:tok.End]
	}
	return tok.Text()
}

// ── Diagnostics ───────────────────────────────────────────────────────────────

func (p *parser) errorAt(tok token.Token, m diag.Message, args ...string) {
	p.fail(diag.NewError(diag.AtToken(p.opts.SourceFile, tok), m, args...))
}

func (p *parser) warn(tok token.Token, m diag.Message, args ...string) {
	p.warnings = append(p.warnings, diag.NewWarning(diag.AtToken(p.opts.SourceFile, tok), m, args...))
}

// unexpected fails on tok, quoting the token after it.
func (p *parser) unexpected(tok token.Token) {
	switch tok.Type {
	case token.EOF:
		p.errorAt(tok, diag.UnexpectedEOF)
	case token.UndefinedLiteral:
		p.errorAt(tok, diag.Unexpected, "literal", "undefined", p.text(p.next))
	}
	p.errorAt(tok, diag.Unexpected, tok.Type.String(), p.text(tok), p.text(p.next))
}

// expected fails with E004 naming what should have been at the current token.
func (p *parser) expected(what string) {
	if p.tok.Type == token.EOF {
		p.unexpected(p.tok)
	}
	p.errorAt(p.tok, diag.ExpectedToken, what, p.text(p.tok))
}

// ── Node placement ────────────────────────────────────────────────────────────

// place sets the span of node from the start token to the previous token.
func place[N interface{ SetSpan(token.Span) }](p *parser, node N, start token.Token) N {
	if p.opts.Locations || p.opts.Ranges {
		end := p.prev
		if start.Type == token.EOF {
			end = start
		}
		node.SetSpan(p.span(start, end))
	}
	return node
}

func (p *parser) span(start, end token.Token) token.Span {
	var s token.Span
	if p.opts.Locations {
		s.Start.Line = start.Line
		s.Start.Column = start.Start - start.LineStart + 1
		s.End.Line = end.LastLine
		s.End.Column = end.End - end.LastLineStart + 1
	}
	if p.opts.Ranges {
		s.Start.Offset = start.Start
		s.End.Offset = end.End
	}
	return s
}
