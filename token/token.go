// Package token defines the token categories, the Token struct, source positions
// and the word and operator classification tables of the OScript language.
//
// Tokens are the smallest meaningful units of an OScript source. Every token carries
// its category, its decoded value and its source position. Lines and columns are
// 1-based; offsets are 0-based byte offsets into the source text.
package token

import (
	"fmt"
	"strings"
)

// Type identifies the category of a scanned token.
//
// Every category is a single bit so that a set of categories can be tested with
// one mask operation; see [Type.Is] and the composite masks below.
type Type uint32

const (
	// EOF marks the end of the input. The lexer keeps returning it once reached.
	EOF Type = 1 << iota
	// Whitespace is a run of blanks and line breaks. Reported only on request.
	Whitespace
	// Comment is a // line comment or a /* block */ comment. Reported only on request.
	Comment
	// PreprocessorDirective is a whole #define, #undef, #ifdef, #ifndef, #else or
	// #endif line. Reported only on request.
	PreprocessorDirective
	// PreprocessedAway is the source skipped inside a false conditional region.
	// Reported only on request.
	PreprocessedAway
	// Punctuator is an operator or delimiter: + == :: ... { ( and so on.
	Punctuator
	// Keyword is a reserved word of the current language version.
	Keyword
	// Identifier is a plain, $-prefixed, script or #'hash-quoted'# name.
	Identifier
	// StringLiteral is a '...', "..." or `...` string. The value is unescaped.
	StringLiteral
	// IntegerLiteral is a decimal integer; the value is an int64.
	IntegerLiteral
	// BooleanLiteral is true or false; the value is a bool.
	BooleanLiteral
	// UndefinedLiteral is undefined; the value is nil.
	UndefinedLiteral
	// RealLiteral is a number with a fraction or an exponent; the value is a float64.
	RealLiteral
	// DateLiteral is YYYY-MM-DDTHH:MM:SS; the value is the source text.
	DateLiteral
	// ObjRef is #hex, a stored object handle; the value is an int64.
	ObjRef
	// LegacyAlias is &hex, a symbolic reference of the old language; the value is an int64.
	LegacyAlias
)

// Composite masks used for matching more than one category at once.
const (
	KeywordOrIdentifier = Keyword | Identifier
	PunctuatorOrKeyword = Punctuator | Keyword
	Literal             = StringLiteral | IntegerLiteral | RealLiteral | DateLiteral |
		BooleanLiteral | UndefinedLiteral | ObjRef
	NoCode = Whitespace | Comment | PreprocessorDirective | PreprocessedAway
)

// AllTypes lists every single-bit category in ascending order.
var AllTypes = []Type{
	EOF, Whitespace, Comment, PreprocessorDirective, PreprocessedAway, Punctuator,
	Keyword, Identifier, StringLiteral, IntegerLiteral, BooleanLiteral,
	UndefinedLiteral, RealLiteral, DateLiteral, ObjRef, LegacyAlias,
}

var typeNames = map[Type]string{
	EOF:                   "eof",
	Whitespace:            "whitespace",
	Comment:               "comment",
	PreprocessorDirective: "directive",
	PreprocessedAway:      "preprocessed",
	Punctuator:            "symbol",
	Keyword:               "keyword",
	Identifier:            "identifier",
	StringLiteral:         "string",
	IntegerLiteral:        "integer",
	BooleanLiteral:        "boolean",
	UndefinedLiteral:      "literal",
	RealLiteral:           "real",
	DateLiteral:           "date",
	ObjRef:                "objref",
	LegacyAlias:           "legacyalias",
}

// Is reports whether t belongs to mask.
func (t Type) Is(mask Type) bool {
	return t&mask != 0
}

// Single reports whether t is exactly one category of the closed set.
func (t Type) Single() bool {
	return t != 0 && t&(t-1) == 0 && t <= LegacyAlias
}

// String returns the name used in diagnostics ("symbol", "keyword", ...).
// Composite masks are rendered as names joined by "|".
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	var parts []string
	for _, single := range AllTypes {
		if t&single != 0 {
			parts = append(parts, typeNames[single])
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("token.Type(%d)", uint32(t))
	}
	return strings.Join(parts, "|")
}

// Position is a point in the source text.
type Position struct {
	Offset int // 0-based byte offset
	Line   int // 1-based line
	Column int // 1-based column
}

// Span is the half-open source region [Start, End) covered by a node.
type Span struct {
	Start Position
	End   Position
}

// Token is a single lexical unit produced by the OScript lexer.
//
// Tokens are plain values: the parser copies them between its lookahead slots and
// never shares or mutates one in place.
type Token struct {
	Type  Type
	Value any // bool, int64, float64, string or nil; see the Type constants

	Line      int // 1-based line of the first character
	Col       int // 1-based column of the first character
	LineStart int // offset of the first character of Line

	LastLine      int // line of the last character, differs for multi-line tokens
	LastLineStart int // offset of the first character of LastLine

	Start int // offset of the first character
	End   int // offset after the last character

	// AfterLineBreak is set when a significant line break precedes the token.
	AfterLineBreak bool
	// HashQuote marks an identifier written as #'...'#.
	HashQuote bool
	// Multiline marks a /* block */ comment.
	Multiline bool

	// Directive, Name and NamedValue describe a PreprocessorDirective token.
	Directive  string
	Name       string
	NamedValue string
}

// Text returns the value of the token as a string, as used for keyword and
// punctuator matching. Non-string values are formatted.
func (t Token) Text() string {
	switch v := t.Value.(type) {
	case string:
		return v
	case nil:
		return "undefined"
	default:
		return fmt.Sprint(v)
	}
}

// IsPunctuator reports whether t is the punctuator value.
func (t Token) IsPunctuator(value string) bool {
	return t.Type == Punctuator && t.Value == value
}

// IsWord reports whether t is a keyword or identifier spelled value.
// Values of words are always lowercase.
func (t Token) IsWord(value string) bool {
	return t.Type.Is(KeywordOrIdentifier) && t.Value == value
}

// StartPos returns the position of the first character.
func (t Token) StartPos() Position {
	return Position{Offset: t.Start, Line: t.Line, Column: t.Start - t.LineStart + 1}
}

// EndPos returns the position after the last character.
func (t Token) EndPos() Position {
	return Position{Offset: t.End, Line: t.LastLine, Column: t.End - t.LastLineStart + 1}
}

// AsIdentifier reinterprets a literal-like word as a plain identifier when it appears
// where a name is required, e.g. after "::". true, false and undefined become the
// identifiers True, False and Undefined. Other tokens are returned unchanged.
// The receiver is a copy; the original token is never modified.
func (t Token) AsIdentifier() Token {
	switch t.Type {
	case UndefinedLiteral:
		t.Type = Identifier
		t.Value = "Undefined"
	case BooleanLiteral:
		t.Type = Identifier
		if t.Value == true {
			t.Value = "True"
		} else {
			t.Value = "False"
		}
	}
	return t
}

// String returns a human-readable representation for debugging.
func (t Token) String() string {
	if t.Type == EOF {
		return "<eof>"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Text())
}
