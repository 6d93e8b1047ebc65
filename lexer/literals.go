package lexer

import (
	"strconv"
	"strings"

	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/token"
)

// ── Strings ───────────────────────────────────────────────────────────────────

// scanString scans a '…', "…" or (when multiline) `…` string literal. A doubled
// delimiter inside the string stands for one delimiter character.
//
// The language allows line breaks only in back-quoted strings; the VM accepts
// them in the other two as well, so they only produce a warning.
func (l *Lexer) scanString(multiline bool) (token.Token, error) {
	begin := l.here()
	delim := l.input[l.offset]
	l.offset++

	var (
		b         strings.Builder
		segStart  = l.offset
		lineBreak bool
	)
	for {
		if l.offset >= len(l.input) {
			if multiline {
				return token.Token{}, l.errorFrom(begin, diag.UnfinishedLongString,
					strconv.Itoa(begin.line), l.input[begin.offset:])
			}
			return token.Token{}, l.errorFrom(begin, diag.UnfinishedString, l.input[begin.offset:])
		}
		c := l.input[l.offset]
		if c == delim {
			l.offset++
			if l.peek(0) != delim {
				break
			}
			b.WriteString(l.input[segStart:l.offset])
			l.offset++
			segStart = l.offset
			continue
		}
		if isLineTerminator(c) {
			l.newLine()
			if !multiline {
				lineBreak = true
			}
			continue
		}
		l.offset++
	}
	b.WriteString(l.input[segStart : l.offset-1])

	value := b.String()
	tok := l.span(token.StringLiteral, value, begin)
	if lineBreak {
		quote := string(delim)
		l.warnToken(tok, diag.LineBreakInString, quote, value)
	}
	return tok, nil
}

// ── Numbers and dates ─────────────────────────────────────────────────────────

// scanNumber scans an integer, a real or (when allowDate) a date literal.
//
//	integer: [0-9]+
//	real:    [0-9]* (\.[0-9]*)? ([eE][-+]?[0-9]+)?
//	date:    [0-9]+-[0-9]+-[0-9]+T[0-9]+:[0-9]+:[0-9]+
//
// A date is tried first; when the text after the first digits does not continue
// as a date up to the T, the scanner backs off and reads a number.
func (l *Lexer) scanNumber(allowDate bool) (token.Token, error) {
	l.skipDigits()

	if allowDate && l.peek(0) == '-' {
		beforeDate := l.offset
		l.offset++
		l.skipDigits()
		if l.peek(0) == '-' {
			l.offset++
			l.skipDigits()
			if l.peek(0) == 'T' {
				l.offset++
				l.skipDigits()
				for i := 0; i < 2; i++ {
					if l.peek(0) != ':' {
						return token.Token{}, l.errorFrom(l.tokMark(), diag.MalformedDate,
							l.input[l.tokStart:l.offset])
					}
					l.offset++
					l.skipDigits()
				}
				return l.place(token.DateLiteral, l.input[l.tokStart:l.offset]), nil
			}
		}
		l.offset = beforeDate
	}

	isReal := false
	// A second dot would start the ".." punctuator.
	if l.peek(0) == '.' && l.peek(1) != '.' {
		isReal = true
		l.offset++
		l.skipDigits()
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		isReal = true
		l.offset++
		if c := l.peek(0); c == '-' || c == '+' {
			l.offset++
		}
		if !isDigit(l.peek(0)) {
			return token.Token{}, l.errorFrom(l.tokMark(), diag.MalformedNumber,
				l.input[l.tokStart:l.offset])
		}
		l.skipDigits()
	}

	text := l.input[l.tokStart:l.offset]
	if isReal {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, l.errorFrom(l.tokMark(), diag.MalformedNumber, text)
		}
		return l.place(token.RealLiteral, value), nil
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, l.errorFrom(l.tokMark(), diag.MalformedNumber, text)
	}
	return l.place(token.IntegerLiteral, value), nil
}

func (l *Lexer) skipDigits() {
	for isDigit(l.peek(0)) {
		l.offset++
	}
}

// tokMark returns the start of the single-line token being scanned.
func (l *Lexer) tokMark() mark {
	return mark{offset: l.tokStart, line: l.line, lineStart: l.lineStart}
}

// ── Hash forms and aliases ────────────────────────────────────────────────────

// scanHashQuote scans a #'name with any characters'# identifier.
func (l *Lexer) scanHashQuote() (token.Token, error) {
	l.offset += 2 // #'
	for {
		if l.offset >= len(l.input) || isLineTerminator(l.input[l.offset]) {
			return token.Token{}, l.errorFrom(l.tokMark(), diag.UnfinishedHashQuote,
				strconv.Itoa(l.line), l.input[l.tokStart:l.offset])
		}
		c := l.input[l.offset]
		l.offset++
		if c == '\'' && l.peek(0) == '#' {
			l.offset++
			break
		}
	}

	tok := l.place(token.Identifier, strings.ToLower(l.input[l.tokStart+2:l.offset-2]))
	tok.HashQuote = true
	return tok, nil
}

// scanObjRef scans a #hex object reference.
func (l *Lexer) scanObjRef() (token.Token, error) {
	value, err := l.scanHex()
	if err != nil {
		return token.Token{}, err
	}
	return l.place(token.ObjRef, value), nil
}

// scanLegacyAlias scans a &hex alias.
func (l *Lexer) scanLegacyAlias() (token.Token, error) {
	value, err := l.scanHex()
	if err != nil {
		return token.Token{}, err
	}
	return l.place(token.LegacyAlias, value), nil
}

// scanHex consumes a one-character sigil followed by hexadecimal digits.
func (l *Lexer) scanHex() (int64, error) {
	l.offset++
	digits := l.offset
	for isHexDigit(l.peek(0)) {
		l.offset++
	}
	value, err := strconv.ParseInt(l.input[digits:l.offset], 16, 64)
	if err != nil {
		return 0, l.errorFrom(l.tokMark(), diag.MalformedHash, l.input[l.tokStart:l.offset])
	}
	return value, nil
}

// ── Comments ──────────────────────────────────────────────────────────────────

// scanComment scans a // line comment or a /* block */ comment under the cursor
// and returns it as a Comment token. Callers decide whether to report it.
func (l *Lexer) scanComment(multiline bool) (token.Token, error) {
	begin := l.here()
	l.offset += 2 // // or /*
	textStart, textEnd := l.offset, 0

	if multiline {
		for {
			if l.offset >= len(l.input) {
				return token.Token{}, l.errorFrom(begin, diag.UnfinishedLongComment,
					strconv.Itoa(begin.line), "<eof>")
			}
			c := l.input[l.offset]
			if c == '*' && l.peek(1) == '/' {
				textEnd = l.offset
				l.offset += 2
				break
			}
			if isLineTerminator(c) {
				l.newLine()
				continue
			}
			l.offset++
		}
	} else {
		for l.offset < len(l.input) && !isLineTerminator(l.input[l.offset]) {
			l.offset++
		}
		textEnd = l.offset
	}

	tok := l.span(token.Comment, l.input[textStart:textEnd], begin)
	tok.Multiline = multiline
	return tok, nil
}
