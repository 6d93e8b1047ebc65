package parser

import (
	"github.com/metaphox/oscript/ast"
	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/token"
)

// ── Sources ───────────────────────────────────────────────────────────────────

// parseProgram parses the whole input in the grammar chosen by the options.
func (p *parser) parseProgram() *ast.Program {
	start := p.tok
	var body ast.Source
	switch p.opts.SourceType {
	case Object:
		body = p.parsePackage()
	case Dump:
		body = p.parseDump()
	default:
		body = p.parseScriptSource()
	}
	if p.tok.Type != token.EOF {
		p.unexpected(p.tok)
	}
	return place(p, &ast.Program{Body: body}, start)
}

// parsePackage parses
//
//	package Name::Space
//	public object Name ... end
func (p *parser) parsePackage() *ast.PackageDeclaration {
	start := p.tok
	p.expectKeyword("package")
	name := p.parseObjectName()
	object := p.parseObjectDeclaration()
	return place(p, &ast.PackageDeclaration{Name: name, Object: object}, start)
}

// parseScriptSource parses statements followed by function declarations. Once a
// function was declared, only functions may follow.
func (p *parser) parseScriptSource() *ast.ScriptSource {
	start := p.tok
	src := &ast.ScriptSource{}
	seenFunction := false
	for p.tok.Type != token.EOF {
		if p.consumeKeyword("function") {
			src.Body = append(src.Body, p.parseFunction(p.prev, ""))
			seenFunction = true
			continue
		}
		if seenFunction {
			p.expected("function")
		}
		src.Body = append(src.Body, p.parseStatement())
	}
	return place(p, src, start)
}

// parseDump parses the legacy object dump:
//
//	name Identifier
//	parent #objref
//	addfeature Identifier ...
//	set Identifier = literal ...
//	script Identifier ... endscript ...
func (p *parser) parseDump() *ast.DumpSource {
	start := p.tok
	dump := &ast.DumpSource{}

	p.expectKeyword("name")
	p.tok = p.tok.AsIdentifier()
	dump.ID = p.parseIdentifier()

	p.expectKeyword("parent")
	if p.tok.Type != token.ObjRef {
		p.expected("<objref>")
	}
	dump.Parent = p.parseLiteral(false).(*ast.Literal)

	for p.consumeKeyword("addfeature") {
		featureStart := p.prev
		id := p.parseIdentifier()
		dump.Features = append(dump.Features, place(p, &ast.FeatureAddition{ID: id}, featureStart))
	}
	for p.consumeKeyword("set") {
		setStart := p.prev
		id := p.parseIdentifier()
		p.expectPunctuator("=")
		value := p.parseLiteral(true)
		dump.Assignments = append(dump.Assignments,
			place(p, &ast.FeatureInitialization{ID: id, Value: value}, setStart))
	}
	for p.consumeKeyword("script") {
		dump.Scripts = append(dump.Scripts, p.parseScript(p.prev, ""))
	}
	return place(p, dump, start)
}

// ── Objects ───────────────────────────────────────────────────────────────────

// parseObjectDeclaration parses
//
//	<modifier> object Name [inherits Name::Space]
//	    members
//	end
func (p *parser) parseObjectDeclaration() *ast.ObjectDeclaration {
	start := p.tok
	modifier := p.tryModifier()
	if modifier == "" {
		p.expected("<modifier>")
	}
	if modifier != "public" {
		p.warn(p.prev, diag.ObjectNotPublic, modifier)
	}

	p.expectKeyword("object")
	p.tok = p.tok.AsIdentifier()
	decl := &ast.ObjectDeclaration{Modifier: modifier, ID: p.parseIdentifierOrHashQuote()}
	if p.consumeKeyword("inherits") {
		decl.SuperObject = p.parseObjectName()
	}
	p.requireLineBreak()

	for !p.consumeKeyword("end") {
		decl.Body = append(decl.Body, p.parseObjectMember()...)
	}
	return place(p, decl, start)
}

// parseObjectMember parses one feature, function or script of an object, followed by
// any stray semicolons.
func (p *parser) parseObjectMember() []ast.Node {
	if !p.tok.Type.Is(token.KeywordOrIdentifier) {
		p.expected("<modifier>, <type>, function, script or end")
	}
	start := p.tok
	modifier := p.tryModifier()
	if !p.tok.Type.Is(token.KeywordOrIdentifier) {
		what := "<type>, function or script"
		if modifier == "" {
			what = "<modifier>, " + what
		}
		p.expected(what)
	}

	var (
		member ast.Node
		kind   string
	)
	switch {
	case p.consumeKeyword("function"):
		member, kind = p.parseFunction(start, modifier), "function"
	case p.consumeKeyword("script"):
		member, kind = p.parseScript(start, modifier), "script"
	default:
		member, kind = p.parseFeature(start, modifier), "feature"
	}

	nodes := []ast.Node{member}
	for first := true; p.consumePunctuator(";"); first = false {
		if first {
			p.warn(p.prev, diag.UnexpectedSemicolon, kind, ";")
		}
		nodes = append(nodes, place(p, &ast.EmptyStatement{}, p.prev))
	}
	return nodes
}

// parseFeature parses "<type> Name [= expression]".
func (p *parser) parseFeature(start token.Token, modifier string) *ast.FeatureDeclaration {
	feature := &ast.FeatureDeclaration{Modifier: modifier}
	if feature.FeatureType = p.tryType(); feature.FeatureType == "" {
		p.expected("<type>")
	}
	feature.ID = p.parseIdentifierOrHashQuote()
	if p.consumePunctuator("=") {
		feature.Init = p.parseExpression()
	}
	return place(p, feature, start)
}

// tryModifier consumes an access modifier and returns it, or "" if there is none.
func (p *parser) tryModifier() string {
	switch v := p.tok.Text(); v {
	case "override", "public", "private":
		if p.tok.Type.Is(token.KeywordOrIdentifier) {
			p.advance()
			return v
		}
	}
	return ""
}

// tryType consumes a type name and returns it, or "" if there is none.
func (p *parser) tryType() string {
	if v := p.tok.Text(); p.tok.Type.Is(token.KeywordOrIdentifier) && token.IsType(v) {
		p.advance()
		return v
	}
	return ""
}

// tryTypeOf consumes a type name followed by a name and returns it. A type name
// followed by anything else is the name itself.
func (p *parser) tryTypeOf() string {
	if p.next.Type.Is(token.KeywordOrIdentifier) {
		return p.tryType()
	}
	return ""
}

// ── Functions and scripts ─────────────────────────────────────────────────────

// parseFunction parses the rest of a function declaration after the "function"
// keyword:
//
//	[nodebug] [<type>] Name [( [params] [, ...] )]
//	    statements
//	end
//
// The parameter list may be omitted when the line ends after the name.
func (p *parser) parseFunction(start token.Token, modifier string) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{Modifier: modifier}
	fn.Nodebug = p.consumeKeyword("nodebug")
	fn.FunctionType = p.tryTypeOf()
	fn.ID = p.parseIdentifierOrHashQuote()

	if !p.tok.AfterLineBreak {
		p.expectPunctuator("(")
		for !p.consumePunctuator(")") {
			if len(fn.Params) > 0 {
				p.expectPunctuator(",")
			}
			if p.consumePunctuator("...") {
				fn.Variadic = true
				p.expectPunctuator(")")
				break
			}
			fn.Params = append(fn.Params, p.parseParameter())
		}
		p.requireLineBreak()
	}

	for !p.consumeKeyword("end") {
		fn.Body = append(fn.Body, p.parseStatement())
	}
	return place(p, fn, start)
}

// parseParameter parses "[<type>] name [= expression]".
func (p *parser) parseParameter() *ast.Parameter {
	start := p.tok
	param := &ast.Parameter{ParameterType: p.tryTypeOf()}
	param.ID = p.parseIdentifier()
	if p.consumePunctuator("=") {
		param.Init = p.parseExpression()
	}
	return place(p, param, start)
}

// parseScript parses the rest of a script declaration after the "script"
// keyword. The body mixes statements and functions and ends with "endscript",
// or "scriptend" in the legacy language.
func (p *parser) parseScript(start token.Token, modifier string) *ast.ScriptDeclaration {
	script := &ast.ScriptDeclaration{Modifier: modifier}
	script.ID = p.parseIdentifierOrHashQuote()
	p.requireLineBreak()

	for {
		if p.tok.Type == token.Keyword {
			switch p.tok.Text() {
			case "function":
				p.advance()
				script.Body = append(script.Body, p.parseFunction(p.prev, ""))
				continue
			case "endscript", "scriptend":
				p.requireLineBreak()
				p.advance()
				return place(p, script, start)
			}
		}
		script.Body = append(script.Body, p.parseStatement())
	}
}

// ── Names ─────────────────────────────────────────────────────────────────────

// parseObjectName parses Name::Space::Name. Segments after the first may be
// hash-quoted or legacy aliases; true, false and undefined are taken as names.
func (p *parser) parseObjectName() *ast.ObjectName {
	start := p.tok
	p.tok = p.tok.AsIdentifier()
	name := &ast.ObjectName{Name: []ast.Expression{p.parseIdentifier()}}
	for p.consumePunctuator("::") {
		p.tok = p.tok.AsIdentifier()
		name.Name = append(name.Name, p.parseSegment())
	}
	return place(p, name, start)
}

// parseIdentifier parses a plain name. Keywords are accepted as names.
func (p *parser) parseIdentifier() *ast.Identifier {
	if !p.tok.Type.Is(token.KeywordOrIdentifier) {
		p.expected("<identifier>")
	}
	if p.tok.HashQuote {
		p.unexpected(p.tok)
	}
	return p.identifier()
}

// parseIdentifierOrHashQuote parses a name that may be written as #'...'#.
func (p *parser) parseIdentifierOrHashQuote() *ast.Identifier {
	if !p.tok.Type.Is(token.KeywordOrIdentifier) {
		p.expected("<identifier>")
	}
	return p.identifier()
}

// parseSegment parses an object name segment after "::".
func (p *parser) parseSegment() ast.Expression {
	if p.tok.Type == token.LegacyAlias {
		p.advance()
		value, ok := p.prev.Value.(int64)
		if !ok {
			p.unexpected(p.prev)
		}
		alias := &ast.LegacyAlias{Value: value}
		if p.opts.RawIdentifiers {
			alias.Raw = p.text(p.prev)
		}
		return place(p, alias, p.prev)
	}
	return p.parseIdentifierOrHashQuote()
}

func (p *parser) identifier() *ast.Identifier {
	p.advance()
	id := &ast.Identifier{Value: p.prev.Text()}
	if p.opts.RawIdentifiers {
		id.Raw = p.text(p.prev)
	}
	return place(p, id, p.prev)
}
