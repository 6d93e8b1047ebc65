package token

// ── Keywords ──────────────────────────────────────────────────────────────────

// keywords are reserved in every language version.
// true, false and undefined are not keywords but literals.
var keywords = map[string]bool{
	"if": true, "in": true, "to": true, "by": true, "or": true, "eq": true,
	"ne": true, "lt": true, "gt": true, "le": true, "ge": true, "do": true,
	"end": true, "for": true, "not": true, "and": true,
	"else": true, "case": true, "goto": true, "then": true,
	"while": true, "until": true, "break": true,
	"return": true, "elseif": true, "repeat": true, "switch": true,
	"script": true, "downto": true,
	"default": true, "breakif": true, "nodebug": true,
	"function": true, "continue": true,
	"endscript":  true,
	"continueif": true,
}

// modernKeywords are reserved only by the object-oriented language version.
var modernKeywords = map[string]bool{
	"this": true, "super": true, "none": true, "final": true, "using": true,
	"public": true, "object": true, "private": true, "package": true,
	"override": true, "inherits": true, "interface": true,
}

// legacyKeywords are reserved only by the old language version.
var legacyKeywords = map[string]bool{
	"set": true, "scriptend": true, "addfeature": true,
}

// IsKeyword reports whether the lowercase word id is reserved in the language
// version selected by legacy.
func IsKeyword(id string, legacy bool) bool {
	if keywords[id] {
		return true
	}
	if legacy {
		return legacyKeywords[id]
	}
	return modernKeywords[id]
}

// ── Types ─────────────────────────────────────────────────────────────────────

var types = map[string]bool{
	"set": true, "vis": true,
	"date": true, "file": true, "guid": true, "list": true, "long": true,
	"real": true, "void": true,
	"assoc": true, "bytes": true, "frame": true, "point": true, "regex": true,
	"error": true,
	"string": true, "record": true, "object": true, "objref": true, "script": true,
	"socket": true, "dialog": true,
	"boolean": true, "integer": true, "hashmap": true, "capierr": true,
	"capilog": true, "dynamic": true, "patfind": true, "wapimap": true,
	"domattr": true, "domnode": true, "domtext": true, "otquery": true,
	"recarray": true, "dapinode": true, "filecopy": true, "uapiuser": true,
	"wapiwork": true, "otsearch": true,
	"cachetree": true, "capilogin": true, "fileprefs": true, "patchange": true,
	"sqlcursor": true, "domentity": true, "domparser": true, "saxparser": true,
	"dapistream": true, "javaobject": true, "restclient": true, "ssloptions": true,
	"domcomment": true, "domelement": true,
	"capiconnect": true, "dapisession": true, "dapiversion": true,
	"mailmessage": true, "pop3session": true, "smtpsession": true,
	"uapisession": true, "wapisession": true, "wapimaptask": true,
	"wapisubwork": true, "domdocument": true, "domnodelist": true,
	"domnotation": true, "ipoolobject": true,
	"xslprocessor":             true,
	"sqlconnection":            true,
	"domcdatasection":          true,
	"domdocumenttype":          true,
	"domnamednodemap":          true,
	"ipoolconnection":          true,
	"domcharacterdata":         true,
	"ipooltransaction":         true,
	"domimplementation":        true,
	"domentityreference":       true,
	"domdocumentfragment":      true,
	"domprocessinginstruction": true,
}

// IsType reports whether the lowercase word id names a built-in data type.
// Type names are not reserved; the parser decides from context.
func IsType(id string) bool {
	return types[id]
}

// ── Operators ─────────────────────────────────────────────────────────────────

// IsUnaryOperator reports whether symbol is a prefix operator: ! - ~ not.
func IsUnaryOperator(symbol string) bool {
	switch symbol {
	case "!", "-", "~", "not":
		return true
	}
	return false
}

// Binary operator precedence levels, ordered from loosest to tightest.
// Zero means "not a binary operator".
const (
	PrecNone = iota
	PrecAssign
	PrecLogicalOr
	PrecLogicalAnd
	PrecBitwiseOr
	PrecBitwiseXor
	PrecBitwiseAnd
	PrecEquality
	PrecRelational
	PrecMembership
	PrecShift
	PrecAdditive
	PrecMultiplicative
)

var precedences = map[string]int{
	"=": PrecAssign, "+=": PrecAssign, "-=": PrecAssign, "*=": PrecAssign,
	"&=": PrecAssign, "|=": PrecAssign, "^=": PrecAssign,
	"||": PrecLogicalOr, "or": PrecLogicalOr,
	"&&": PrecLogicalAnd, "and": PrecLogicalAnd,
	"|": PrecBitwiseOr,
	"^": PrecBitwiseXor,
	"&": PrecBitwiseAnd,
	"==": PrecEquality, "!=": PrecEquality, "<>": PrecEquality,
	"eq": PrecEquality, "ne": PrecEquality,
	"<": PrecRelational, ">": PrecRelational, "<=": PrecRelational,
	">=": PrecRelational, "lt": PrecRelational, "le": PrecRelational,
	"gt": PrecRelational, "ge": PrecRelational,
	"in": PrecMembership,
	"<<": PrecShift, ">>": PrecShift,
	"+": PrecAdditive, "-": PrecAdditive,
	"*": PrecMultiplicative, "/": PrecMultiplicative, "%": PrecMultiplicative,
}

// BinaryPrecedence returns the precedence level of a binary operator, or PrecNone.
func BinaryPrecedence(symbol string) int {
	return precedences[symbol]
}

// RightAssociative reports whether operators of the level group to the right.
// Only assignments do; every other level is left-associative.
func RightAssociative(prec int) bool {
	return prec == PrecAssign
}
