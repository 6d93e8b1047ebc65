package lexer

import (
	"errors"

	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/token"
)

// Tokenize scans the whole of src and returns its tokens in source order, EOF
// excluded. Whitespace, comment and preprocessor tokens are included when the
// options ask for them.
//
// A lexical error is returned as *diag.Error carrying the tokens and warnings
// produced before it.
func Tokenize(src string, opts Options) ([]token.Token, error) {
	l := New(src, opts)
	var tokens []token.Token
	l.Observe(func(tok token.Token) { tokens = append(tokens, tok) })

	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, Attach(err, tokens, l.Warnings())
		}
		if tok.Type == token.EOF {
			return tokens[:len(tokens)-1], nil
		}
	}
}

// Attach records the tokens and warnings produced before err on a *diag.Error.
// Other errors are returned unchanged.
func Attach(err error, tokens []token.Token, warnings []*diag.Warning) error {
	var de *diag.Error
	if errors.As(err, &de) {
		de.Tokens = tokens
		de.Warnings = warnings
	}
	return err
}

// Stream is a lazily scanned token sequence created by [StartTokenization].
// Each call to Next scans only as far as the next significant token. A stream
// may be abandoned at any point.
type Stream struct {
	lex     *Lexer
	pending []token.Token
	done    bool
	err     error
}

// StartTokenization returns a [Stream] over the tokens of src.
func StartTokenization(src string, opts Options) *Stream {
	s := &Stream{lex: New(src, opts)}
	s.lex.Observe(func(tok token.Token) { s.pending = append(s.pending, tok) })
	return s
}

// Next returns the next token. Insignificant tokens requested by the options are
// returned before the significant token that follows them. ok is false once the
// input is exhausted or scanning failed; the error is returned again by every
// later call.
func (s *Stream) Next() (tok token.Token, ok bool, err error) {
	for len(s.pending) == 0 {
		if s.done {
			return token.Token{}, false, s.err
		}
		if _, err := s.lex.NextToken(); err != nil {
			s.done, s.err = true, err
			return token.Token{}, false, err
		}
	}

	tok, s.pending = s.pending[0], s.pending[1:]
	if tok.Type == token.EOF {
		s.done, s.pending = true, nil
		return token.Token{}, false, nil
	}
	return tok, true, nil
}

// Warnings returns the warnings collected so far.
func (s *Stream) Warnings() []*diag.Warning {
	return s.lex.Warnings()
}
