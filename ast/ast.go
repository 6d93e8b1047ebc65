// Package ast defines the Abstract Syntax Tree (AST) node types of OScript.
//
// Every source construct has a node type; the set is closed and every node reports
// its [NodeKind]. The hierarchy is:
//
//	Node (interface)
//	  Source (interface): the body of a Program, one per dialect
//	    PackageDeclaration, ScriptSource, DumpSource
//	  Declaration (interface): members of objects, scripts and script sources
//	    ObjectDeclaration, FeatureDeclaration, FunctionDeclaration, ScriptDeclaration
//	  Statement (interface)
//	    EmptyStatement, LabelStatement, VariableDeclaration, IfStatement,
//	    SwitchStatement, WhileStatement, RepeatStatement, ForStatement,
//	    ForEachStatement, StructuredForStatement, GotoStatement, ReturnStatement,
//	    BreakStatement, ContinueStatement, BreakIfStatement, ContinueIfStatement,
//	    ExpressionStatement
//	  Expression (interface)
//	    Identifier, LegacyAlias, Literal, ObjectName, ThisExpression, SuperExpression,
//	    ConditionalExpression, BinaryExpression, UnaryExpression, MemberExpression,
//	    IndexExpression, SliceExpression, CallExpression, ListExpression,
//	    ListComprehension, AtExpression, AssocExpression, ParenthesisExpression,
//	    XlateExpression
//	  helpers: Program, FeatureAddition, FeatureInitialization, Parameter,
//	    VariableDeclarator, ElseIfClause, SwitchCase, Property
//
// Source positions are stored in the embedded [Base] and are only filled when the
// parser was asked for locations or ranges.
package ast

import (
	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/token"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element of the tree.
type Node interface {
	// Kind returns the variant tag of the node.
	Kind() NodeKind
	// Span returns the source region of the node; zero unless requested.
	Span() token.Span
	// String returns a compact rendering intended for debugging and tests.
	String() string
}

// Source is the dialect-specific body of a Program.
type Source interface {
	Node
	sourceNode()
}

// Declaration is a named member: an object, a feature, a function or a script.
type Declaration interface {
	Node
	declarationNode()
}

// Statement is a Node that can appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Base carries the source span of a node.
type Base struct {
	Loc token.Span
}

// Span returns the source region of the node.
func (b *Base) Span() token.Span { return b.Loc }

// SetSpan replaces the source region of the node.
func (b *Base) SetSpan(s token.Span) { b.Loc = s }

// ── Program ───────────────────────────────────────────────────────────────────

// Program is the root node produced by the parser.
type Program struct {
	Base
	Body Source

	// Tokens holds the lexer tokens when they were requested, without EOF.
	Tokens []token.Token
	// Warnings holds the non-fatal diagnostics in source order. Never nil.
	Warnings []*diag.Warning
}

// PackageDeclaration is the object dialect: one package holding one object.
//
//	package mymodule
//	public object Demo inherits Core::Root
//	  ...
//	end
type PackageDeclaration struct {
	Base
	Name   *ObjectName
	Object *ObjectDeclaration
}

// ScriptSource is the script dialect: statements, then function declarations.
// Body holds Statement and *FunctionDeclaration nodes in source order.
type ScriptSource struct {
	Base
	Body []Node
}

// DumpSource is the legacy object serialization.
//
//	name Demo
//	parent #1a2b
//	addFeature Count
//	set Count = 0
//	script Run
//	  ...
//	endscript
type DumpSource struct {
	Base
	ID          *Identifier
	Parent      *Literal // an ObjRef literal
	Features    []*FeatureAddition
	Assignments []*FeatureInitialization
	Scripts     []*ScriptDeclaration
}

// FeatureAddition is "addFeature Name" of a dump.
type FeatureAddition struct {
	Base
	ID *Identifier
}

// FeatureInitialization is "set Name = literal" of a dump.
type FeatureInitialization struct {
	Base
	ID    *Identifier
	Value Expression
}

// ── Declarations ──────────────────────────────────────────────────────────────

// ObjectDeclaration declares the object of a package.
// Body holds Declaration nodes and the EmptyStatement nodes of stray semicolons.
type ObjectDeclaration struct {
	Base
	ID          *Identifier
	Modifier    string      // public, private or override
	SuperObject *ObjectName // nil without "inherits"
	Body        []Node
}

// FeatureDeclaration declares a typed object feature.
//
//	public Integer count = 0
type FeatureDeclaration struct {
	Base
	ID          *Identifier
	FeatureType string
	Modifier    string     // empty when omitted
	Init        Expression // nil when omitted
}

// FunctionDeclaration declares a function.
//
//	function nodebug Integer Add(Integer a, b = 1, ...)
//	  return a + b
//	end
type FunctionDeclaration struct {
	Base
	ID           *Identifier
	FunctionType string // empty when omitted
	Modifier     string // empty when omitted
	Params       []*Parameter
	Variadic     bool
	Nodebug      bool
	Body         []Statement
}

// Parameter is one declared function parameter.
type Parameter struct {
	Base
	ID            *Identifier
	ParameterType string     // empty when omitted
	Init          Expression // nil when omitted
}

// ScriptDeclaration declares a script of an object or a dump.
// Body holds Statement and *FunctionDeclaration nodes in source order.
type ScriptDeclaration struct {
	Base
	ID       *Identifier
	Modifier string
	Body     []Node
}

// ── Names and literals ────────────────────────────────────────────────────────

// ObjectName is a "::"-qualified name. Each segment is an *Identifier or,
// after the first one, a *LegacyAlias.
type ObjectName struct {
	Base
	Name []Expression
}

// Identifier is a name. Value is lowercased; Raw keeps the source text when
// raw identifiers were requested.
type Identifier struct {
	Base
	Value string
	Raw   string
}

// LegacyAlias is a &hex reference of the old language.
type LegacyAlias struct {
	Base
	Value int64
	Raw   string
}

// LiteralType names the kind of value a Literal holds.
type LiteralType string

// Literal types.
const (
	StringLit    LiteralType = "string"
	IntegerLit   LiteralType = "integer"
	RealLit      LiteralType = "real"
	DateLit      LiteralType = "date"
	BooleanLit   LiteralType = "boolean"
	UndefinedLit LiteralType = "undefined"
	ObjRefLit    LiteralType = "objref"
)

// Literal is a constant. Value is a string (string, date), int64 (integer, objref),
// float64 (real), bool (boolean) or nil (undefined). Raw keeps the source text
// when raw literals were requested.
type Literal struct {
	Base
	LiteralType LiteralType
	Value       any
	Raw         string
}

// LiteralTypeOf maps a literal token category to its LiteralType.
func LiteralTypeOf(t token.Type) LiteralType {
	switch t {
	case token.StringLiteral:
		return StringLit
	case token.IntegerLiteral:
		return IntegerLit
	case token.RealLiteral:
		return RealLit
	case token.DateLiteral:
		return DateLit
	case token.BooleanLiteral:
		return BooleanLit
	case token.UndefinedLiteral:
		return UndefinedLit
	}
	return ObjRefLit
}

// ── Statements ────────────────────────────────────────────────────────────────

// EmptyStatement is a lone ";".
type EmptyStatement struct {
	Base
}

// LabelStatement is a goto target: "name:".
type LabelStatement struct {
	Base
	ID *Identifier
}

// VariableDeclaration declares one or more variables of a type.
//
//	Integer i = 0, j
type VariableDeclaration struct {
	Base
	VariableType string
	Declarations []*VariableDeclarator
}

// VariableDeclarator is one name of a VariableDeclaration.
type VariableDeclarator struct {
	Base
	ID   *Identifier
	Init Expression // nil when omitted
}

// IfStatement is if / elseif / else / end.
type IfStatement struct {
	Base
	Test         Expression
	Consequent   []Statement
	OtherClauses []*ElseIfClause
	Alternate    []Statement
}

// ElseIfClause is one "elseif" branch.
type ElseIfClause struct {
	Base
	Test       Expression
	Consequent []Statement
}

// SwitchStatement is switch / case / default / end.
type SwitchStatement struct {
	Base
	Discriminant Expression
	Cases        []*SwitchCase
}

// SwitchCase is one "case" clause, or the "default" clause when Default is set
// (its Tests are empty then).
type SwitchCase struct {
	Base
	Tests      []Expression
	Default    bool
	Consequent []Statement
}

// WhileStatement is while / end.
type WhileStatement struct {
	Base
	Test Expression
	Body []Statement
}

// RepeatStatement is repeat / until.
type RepeatStatement struct {
	Base
	Test Expression
	Body []Statement
}

// ForStatement is the C-style loop "for ( init ; test ; update )".
// Each of the three parts may be nil.
type ForStatement struct {
	Base
	Init   Expression
	Test   Expression
	Update Expression
	Body   []Statement
}

// ForEachStatement is "for x in list".
type ForEachStatement struct {
	Base
	Left  *Identifier
	Right Expression
	Body  []Statement
}

// StructuredForStatement is "for i = start to|downto end [by step]".
type StructuredForStatement struct {
	Base
	Variable *Identifier
	Start    Expression
	End      Expression
	Down     bool
	Step     Expression // nil when omitted
	Body     []Statement
}

// GotoStatement jumps to a label.
type GotoStatement struct {
	Base
	Label *Identifier
}

// ReturnStatement returns from a function, with an optional value.
type ReturnStatement struct {
	Base
	Argument Expression // nil when omitted
}

// BreakStatement leaves the innermost loop.
type BreakStatement struct {
	Base
}

// ContinueStatement starts the next iteration of the innermost loop.
type ContinueStatement struct {
	Base
}

// BreakIfStatement is "breakif test".
type BreakIfStatement struct {
	Base
	Test Expression
}

// ContinueIfStatement is "continueif test".
type ContinueIfStatement struct {
	Base
	Test Expression
}

// ExpressionStatement is an expression evaluated for its effect.
type ExpressionStatement struct {
	Base
	Expression Expression
}

// ── Expressions ───────────────────────────────────────────────────────────────

// ConditionalExpression is "test ? consequent : alternate".
type ConditionalExpression struct {
	Base
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// BinaryExpression applies a binary operator, assignments included.
type BinaryExpression struct {
	Base
	Operator string
	Left     Expression
	Right    Expression
}

// UnaryExpression applies a prefix operator: ! - ~ not.
type UnaryExpression struct {
	Base
	Operator string
	Argument Expression
}

// MemberExpression is "object.property". Boxed marks the computed form
// "object.(expression)"; a property may also be a string literal.
type MemberExpression struct {
	Base
	Object   Expression
	Property Expression
	Boxed    bool
}

// IndexExpression is "object[index]".
type IndexExpression struct {
	Base
	Object Expression
	Index  Expression
}

// SliceExpression is "object[start:end]"; either bound may be nil.
type SliceExpression struct {
	Base
	Object Expression
	Start  Expression
	End    Expression
}

// CallExpression is "callee(arguments)".
type CallExpression struct {
	Base
	Callee    Expression
	Arguments []Expression
}

// ThisExpression is "this", also implied by a leading ".".
type ThisExpression struct {
	Base
}

// SuperExpression is "super".
type SuperExpression struct {
	Base
}

// ListExpression is "{ a, b, c }".
type ListExpression struct {
	Base
	Elements []Expression
}

// ListComprehension is "{ expression for left in right [if test] }".
type ListComprehension struct {
	Base
	Expression Expression
	Left       *Identifier
	Right      Expression
	Test       Expression // nil when omitted
}

// AtExpression splices a list into a list literal: "{ 1, @rest }".
type AtExpression struct {
	Base
	Expression Expression
}

// AssocExpression is "assoc{ key: value, ... }".
type AssocExpression struct {
	Base
	Properties []*Property
}

// Property is one "key: value" pair of an AssocExpression.
type Property struct {
	Base
	Key   Expression
	Value Expression
}

// ParenthesisExpression keeps explicit grouping for formatters.
type ParenthesisExpression struct {
	Base
	Expression Expression
}

// XlateExpression is a translated string reference "[ospace.string]".
type XlateExpression struct {
	Base
	Ospace *Identifier
	Name   *Identifier
}
