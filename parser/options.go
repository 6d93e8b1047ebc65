package parser

import (
	"errors"
	"fmt"

	"github.com/metaphox/oscript/lexer"
)

// ErrInvalidOptions is wrapped by every error returned for an unusable Options value.
var ErrInvalidOptions = errors.New("invalid parser options")

// SourceType selects the grammar the source is parsed with.
type SourceType int

const (
	// Script is a sequence of statements followed by function declarations.
	Script SourceType = iota
	// Object is a package with one object declaration.
	Object
	// Dump is the serialized form of an object of the old language version.
	Dump
)

func (s SourceType) String() string {
	switch s {
	case Script:
		return "script"
	case Object:
		return "object"
	case Dump:
		return "dump"
	}
	return fmt.Sprintf("SourceType(%d)", int(s))
}

// Version selects the language version.
type Version int

const (
	// VersionAuto picks VersionLegacy for Dump sources and VersionModern otherwise.
	VersionAuto Version = iota
	// VersionModern is the object-oriented language.
	VersionModern
	// VersionLegacy is the language before objects were introduced.
	VersionLegacy
)

func (v Version) String() string {
	switch v {
	case VersionAuto:
		return "auto"
	case VersionModern:
		return "modern"
	case VersionLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// Options configures parsing. The zero value parses a modern script and returns
// a bare tree without tokens, positions or raw texts.
type Options struct {
	// Defines seeds the preprocessor names.
	Defines map[string]string

	SourceType SourceType
	Version    Version

	// Tokens attaches the lexer tokens to the Program.
	Tokens bool
	// Preprocessor, Comments and Whitespace include the corresponding
	// insignificant tokens; each of them implies Tokens.
	Preprocessor bool
	Comments     bool
	Whitespace   bool

	// Locations stores line and column positions in node spans.
	Locations bool
	// Ranges stores byte offsets in node spans.
	Ranges bool

	// Raw stores the source text of identifiers and literals; it implies both
	// RawIdentifiers and RawLiterals.
	Raw            bool
	RawIdentifiers bool
	RawLiterals    bool

	// SourceFile names the source in diagnostics; "snippet" when empty.
	SourceFile string
}

// normalize validates the options and resolves their implications.
func (o Options) normalize() (Options, error) {
	switch o.SourceType {
	case Script, Object, Dump:
	default:
		return o, fmt.Errorf("%w: source type %v not supported", ErrInvalidOptions, o.SourceType)
	}

	switch o.Version {
	case VersionAuto:
		o.Version = VersionModern
		if o.SourceType == Dump {
			o.Version = VersionLegacy
		}
	case VersionModern:
		if o.SourceType == Dump {
			return o, fmt.Errorf("%w: source type dump requires the legacy language version", ErrInvalidOptions)
		}
	case VersionLegacy:
		if o.SourceType == Object {
			return o, fmt.Errorf("%w: source type object requires the modern language version", ErrInvalidOptions)
		}
	default:
		return o, fmt.Errorf("%w: language version %v not supported", ErrInvalidOptions, o.Version)
	}

	if o.Preprocessor || o.Comments || o.Whitespace {
		o.Tokens = true
	}
	if o.Raw {
		o.RawIdentifiers, o.RawLiterals = true, true
	}
	if o.SourceFile == "" {
		o.SourceFile = lexer.DefaultSourceFile
	}
	return o, nil
}

func (o Options) lexerOptions() lexer.Options {
	return lexer.Options{
		Defines:      o.Defines,
		Legacy:       o.Version == VersionLegacy,
		Whitespace:   o.Whitespace,
		Comments:     o.Comments,
		Preprocessor: o.Preprocessor,
		SourceFile:   o.SourceFile,
	}
}
