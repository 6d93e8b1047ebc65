package parser

import (
	"github.com/metaphox/oscript/ast"
	"github.com/metaphox/oscript/token"
)

// ── Operator precedence ───────────────────────────────────────────────────────

// Binary operators are grouped with an explicit spine: the chain of operator
// nodes from the root down the right-hand side that are still open for a right
// operand of higher precedence. A new operator climbs the spine while its
// precedence does not exceed the entry's (with equal precedence descending only
// for right-associative levels) and is then inserted either above the root or as
// the right child of the remaining entry. The tree is built in one pass without
// recursion per precedence level.

type spineEntry struct {
	node *ast.BinaryExpression
	prec int
}

// descends reports whether an operator of precedence prec binds tighter than
// the open entry, and so becomes part of the entry's right operand.
func descends(prec int, entry spineEntry) bool {
	return prec > entry.prec || (prec == entry.prec && token.RightAssociative(prec))
}

// parseExpression parses a full expression including the ?: conditional.
func (p *parser) parseExpression() ast.Expression {
	start := p.tok
	expr := p.parseBinary()
	if !p.consumePunctuator("?") {
		return expr
	}
	cond := &ast.ConditionalExpression{Test: expr}
	cond.Consequent = p.parseExpression()
	p.expectPunctuator(":")
	cond.Alternate = p.parseExpression()
	return place(p, cond, start)
}

// parseBinary parses unary operands joined by binary operators.
func (p *parser) parseBinary() ast.Expression {
	root := p.parseUnary()
	var spine []spineEntry

	for p.tok.Type.Is(token.PunctuatorOrKeyword) {
		op := p.tok.Text()
		prec := token.BinaryPrecedence(op)
		if prec == token.PrecNone {
			break
		}
		p.advance()
		right := p.parseUnary()

		for len(spine) > 0 && !descends(prec, spine[len(spine)-1]) {
			spine = spine[:len(spine)-1]
		}
		node := &ast.BinaryExpression{Operator: op, Right: right}
		if len(spine) == 0 {
			node.Left, root = root, node
		} else {
			parent := spine[len(spine)-1].node
			node.Left, parent.Right = parent.Right, node
		}
		spine = append(spine, spineEntry{node: node, prec: prec})

		// Every open node now ends where the new right operand ends.
		node.Loc.Start = node.Left.Span().Start
		end := right.Span().End
		for _, e := range spine {
			e.node.Loc.End = end
		}
	}
	return root
}

// parseUnary parses prefix operators: ! - ~ not.
func (p *parser) parseUnary() ast.Expression {
	if p.tok.Type.Is(token.PunctuatorOrKeyword) && token.IsUnaryOperator(p.tok.Text()) {
		start := p.tok
		p.advance()
		unary := &ast.UnaryExpression{Operator: start.Text()}
		unary.Argument = p.parseUnary()
		return place(p, unary, start)
	}
	return p.parseChain()
}

// ── Member, index and call chains ─────────────────────────────────────────────

// parseChain parses a primary expression followed by member accesses, index and
// slice operators and calls. A leading '.' accesses a member of this.
func (p *parser) parseChain() ast.Expression {
	start := p.tok
	var expr ast.Expression
	if p.consumePunctuator(".") {
		expr = p.parseMember(start, place(p, &ast.ThisExpression{}, p.prev))
	} else {
		expr = p.parsePrimary()
	}
	return p.parsePostfix(start, expr)
}

func (p *parser) parsePostfix(start token.Token, expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.consumePunctuator("."):
			expr = p.parseMember(start, expr)
		case p.consumePunctuator("["):
			expr = p.parseIndex(start, expr)
		case p.consumePunctuator("("):
			call := &ast.CallExpression{Callee: expr}
			for !p.consumePunctuator(")") {
				if len(call.Arguments) > 0 {
					p.expectPunctuator(",")
				}
				call.Arguments = append(call.Arguments, p.parseExpression())
			}
			expr = place(p, call, start)
		default:
			return expr
		}
	}
}

// parseMember parses the property after '.':
//
//	a.name   a.(expression)   a."string"   a..b (member of this)
func (p *parser) parseMember(start token.Token, object ast.Expression) ast.Expression {
	member := &ast.MemberExpression{Object: object}
	switch {
	case p.consumePunctuator("("):
		member.Property = p.parseExpression()
		member.Boxed = true
		p.expectPunctuator(")")
	case p.tok.IsPunctuator("."):
		member.Property = p.parseChain()
	case p.tok.Type.Is(token.KeywordOrIdentifier):
		member.Property = p.parseIdentifier()
	default:
		member.Property = p.parseLiteral(false)
	}
	return place(p, member, start)
}

// parseIndex parses the rest of a[i], a[s:e], a[s:] or a[:e] after '['.
func (p *parser) parseIndex(start token.Token, object ast.Expression) ast.Expression {
	if p.consumePunctuator(":") {
		slice := &ast.SliceExpression{Object: object, End: p.parseExpression()}
		p.expectPunctuator("]")
		return place(p, slice, start)
	}

	first := p.parseExpression()
	if !p.consumePunctuator(":") {
		p.expectPunctuator("]")
		return place(p, &ast.IndexExpression{Object: object, Index: first}, start)
	}
	slice := &ast.SliceExpression{Object: object, Start: first}
	if !p.consumePunctuator("]") {
		slice.End = p.parseExpression()
		p.expectPunctuator("]")
	}
	return place(p, slice, start)
}

// ── Primary expressions ───────────────────────────────────────────────────────

func (p *parser) parsePrimary() ast.Expression {
	start := p.tok
	switch p.tok.Type {
	case token.Punctuator:
		switch p.tok.Text() {
		case "[":
			return p.parseXlate()
		case "{":
			return p.parseList()
		case "(":
			p.advance()
			paren := &ast.ParenthesisExpression{Expression: p.parseExpression()}
			p.expectPunctuator(")")
			return place(p, paren, start)
		}

	case token.Keyword, token.Identifier:
		switch {
		case p.consumeKeyword("this"):
			return place(p, &ast.ThisExpression{}, start)
		case p.consumeKeyword("super"):
			return place(p, &ast.SuperExpression{}, start)
		case p.tok.IsWord("assoc") && p.next.IsPunctuator("{"):
			return p.parseAssoc()
		}
		id := p.parseIdentifier()
		if !p.tok.IsPunctuator("::") {
			return id
		}
		name := &ast.ObjectName{Name: []ast.Expression{id}}
		for p.consumePunctuator("::") {
			p.tok = p.tok.AsIdentifier()
			name.Name = append(name.Name, p.parseSegment())
		}
		return place(p, name, start)
	}
	return p.parseLiteral(false)
}

// parseLiteral parses a literal value. Lists and assoc literals are accepted, as
// are negative numbers and, when allowXlate is set, xlate references.
func (p *parser) parseLiteral(allowXlate bool) ast.Expression {
	start := p.tok
	switch {
	case p.tok.IsPunctuator("{"):
		return p.parseList()
	case allowXlate && p.tok.IsPunctuator("["):
		return p.parseXlate()
	case p.tok.IsWord("assoc") && p.next.IsPunctuator("{"):
		return p.parseAssoc()
	}

	negative := p.consumePunctuator("-")
	if !p.tok.Type.Is(token.Literal) {
		p.expected("<literal>")
	}
	if negative && !p.tok.Type.Is(token.IntegerLiteral|token.RealLiteral) {
		p.expected("<number>")
	}
	p.advance()

	tok := p.prev
	lit := &ast.Literal{LiteralType: ast.LiteralTypeOf(tok.Type), Value: tok.Value}
	if p.opts.RawLiterals {
		lit.Raw = p.text(tok)
	}
	if negative {
		switch v := tok.Value.(type) {
		case int64:
			lit.Value = -v
		case float64:
			lit.Value = -v
		}
		if p.opts.RawLiterals {
			lit.Raw = "-" + lit.Raw
		}
	}
	return place(p, lit, start)
}

// parseXlate parses [ospace.string].
func (p *parser) parseXlate() ast.Expression {
	start := p.tok
	p.expectPunctuator("[")
	xlate := &ast.XlateExpression{Ospace: p.parseIdentifier()}
	p.expectPunctuator(".")
	p.tok = p.tok.AsIdentifier()
	xlate.Name = p.parseIdentifier()
	p.expectPunctuator("]")
	return place(p, xlate, start)
}

// parseList parses a list literal or a list comprehension:
//
//	{}   {a}   {a, @b, c}   {x * 2 for x in items if x > 0}
func (p *parser) parseList() ast.Expression {
	start := p.tok
	p.expectPunctuator("{")
	if p.consumePunctuator("}") {
		return place(p, &ast.ListExpression{Elements: []ast.Expression{}}, start)
	}

	first := p.parseListElement()
	if p.consumePunctuator("}") {
		return place(p, &ast.ListExpression{Elements: []ast.Expression{first}}, start)
	}
	if p.consumePunctuator(",") {
		list := &ast.ListExpression{Elements: []ast.Expression{first}}
		for {
			list.Elements = append(list.Elements, p.parseListElement())
			if p.consumePunctuator(",") {
				continue
			}
			p.expectPunctuator("}")
			return place(p, list, start)
		}
	}

	p.expectKeyword("for")
	comp := &ast.ListComprehension{Expression: first}
	comp.Left = p.parseIdentifier()
	p.expectKeyword("in")
	comp.Right = p.parseExpression()
	if p.consumeKeyword("if") {
		comp.Test = p.parseExpression()
	}
	p.expectPunctuator("}")
	return place(p, comp, start)
}

// parseListElement parses an element, which may be spliced in with '@'.
func (p *parser) parseListElement() ast.Expression {
	start := p.tok
	if p.consumePunctuator("@") {
		return place(p, &ast.AtExpression{Expression: p.parseExpression()}, start)
	}
	return p.parseExpression()
}

// parseAssoc parses assoc{key: value, ...}.
func (p *parser) parseAssoc() ast.Expression {
	start := p.tok
	p.advance() // assoc
	p.expectPunctuator("{")
	assoc := &ast.AssocExpression{Properties: []*ast.Property{}}
	for !p.consumePunctuator("}") {
		if len(assoc.Properties) > 0 {
			p.expectPunctuator(",")
		}
		propStart := p.tok
		prop := &ast.Property{Key: p.parseExpression()}
		p.expectPunctuator(":")
		prop.Value = p.parseExpression()
		assoc.Properties = append(assoc.Properties, place(p, prop, propStart))
	}
	return place(p, assoc, start)
}
