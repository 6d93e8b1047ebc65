package parser

import (
	"github.com/metaphox/oscript/ast"
	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/token"
)

// ── Statement parsing ─────────────────────────────────────────────────────────

// parseStatement parses one statement. Statements end at a line break, a ';'
// or a keyword closing the enclosing block; ';' itself is an EmptyStatement.
func (p *parser) parseStatement() ast.Statement {
	start := p.tok
	if p.tok.Type.Is(token.KeywordOrIdentifier) && p.next.IsPunctuator(":") {
		id := p.parseIdentifier()
		p.advance() // :
		return place(p, &ast.LabelStatement{ID: id}, start)
	}
	if p.consumePunctuator(";") {
		return place(p, &ast.EmptyStatement{}, start)
	}

	stmt := p.parseKeywordStatement()
	if stmt == nil {
		if typ := p.tryTypeOf(); typ != "" {
			stmt = p.parseVariableDeclaration(start, typ)
		} else {
			stmt = place(p, &ast.ExpressionStatement{Expression: p.parseExpression()}, start)
		}
	}
	p.endStatement()
	return stmt
}

// parseKeywordStatement parses a statement introduced by a keyword, or returns
// nil when the current token starts no such statement.
func (p *parser) parseKeywordStatement() ast.Statement {
	if p.tok.Type != token.Keyword {
		return nil
	}
	start := p.tok
	switch p.tok.Text() {
	case "if":
		return p.parseIf()
	case "switch":
		return p.parseSwitch()
	case "while":
		p.advance()
		loop := &ast.WhileStatement{Test: p.parseExpression()}
		p.endHeader()
		loop.Body = p.parseBlock()
		return place(p, loop, start)
	case "repeat":
		p.advance()
		p.endHeader()
		loop := &ast.RepeatStatement{}
		for !p.consumeKeyword("until") {
			loop.Body = append(loop.Body, p.parseStatement())
		}
		loop.Test = p.parseExpression()
		return place(p, loop, start)
	case "for":
		return p.parseFor()
	case "goto":
		p.advance()
		return place(p, &ast.GotoStatement{Label: p.parseIdentifier()}, start)
	case "return":
		p.advance()
		ret := &ast.ReturnStatement{}
		if !p.separated() && !p.tok.IsPunctuator(";") {
			ret.Argument = p.parseExpression()
		}
		return place(p, ret, start)
	case "break":
		p.advance()
		return place(p, &ast.BreakStatement{}, start)
	case "continue":
		p.advance()
		return place(p, &ast.ContinueStatement{}, start)
	case "breakif":
		p.advance()
		return place(p, &ast.BreakIfStatement{Test: p.parseExpression()}, start)
	case "continueif":
		p.advance()
		return place(p, &ast.ContinueIfStatement{Test: p.parseExpression()}, start)
	}
	return nil
}

// parseBlock parses statements up to and including "end".
func (p *parser) parseBlock() []ast.Statement {
	var body []ast.Statement
	for !p.consumeKeyword("end") {
		body = append(body, p.parseStatement())
	}
	return body
}

// parseVariableDeclaration parses the names after a type:
//
//	Integer i = 1, j
func (p *parser) parseVariableDeclaration(start token.Token, typ string) *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{VariableType: typ}
	for {
		declStart := p.tok
		d := &ast.VariableDeclarator{ID: p.parseIdentifier()}
		if p.consumePunctuator("=") {
			d.Init = p.parseExpression()
		}
		decl.Declarations = append(decl.Declarations, place(p, d, declStart))
		if !p.consumePunctuator(",") {
			return place(p, decl, start)
		}
	}
}

// ── Conditionals ──────────────────────────────────────────────────────────────

// parseIf parses
//
//	if test ... [elseif test ...]* [else ...] end
func (p *parser) parseIf() *ast.IfStatement {
	start := p.tok
	p.advance()
	stmt := &ast.IfStatement{Test: p.parseExpression()}
	p.endHeader()

	var (
		clause      *ast.ElseIfClause
		clauseStart token.Token
		inElse      bool
	)
	target := &stmt.Consequent
	closeClause := func() {
		if clause != nil {
			place(p, clause, clauseStart)
			clause = nil
		}
	}

	for {
		if p.tok.Type == token.Keyword {
			switch p.tok.Text() {
			case "elseif":
				if inElse {
					p.errorAt(p.tok, diag.Expected, "end", p.text(p.tok))
				}
				closeClause()
				clauseStart = p.tok
				p.advance()
				clause = &ast.ElseIfClause{Test: p.parseExpression()}
				p.endHeader()
				stmt.OtherClauses = append(stmt.OtherClauses, clause)
				target = &clause.Consequent
				continue
			case "else":
				if inElse {
					p.errorAt(p.tok, diag.Expected, "end", p.text(p.tok))
				}
				closeClause()
				p.advance()
				p.endHeader()
				inElse = true
				stmt.Alternate = []ast.Statement{}
				target = &stmt.Alternate
				continue
			case "end":
				closeClause()
				p.advance()
				return place(p, stmt, start)
			}
		}
		*target = append(*target, p.parseStatement())
	}
}

// parseSwitch parses
//
//	switch discriminant
//	    case test[, test]* ... end
//	    default ... end
//	end
//
// The "end" of a case may be left out when another case follows.
func (p *parser) parseSwitch() *ast.SwitchStatement {
	start := p.tok
	p.advance()
	stmt := &ast.SwitchStatement{Discriminant: p.parseExpression()}
	p.endHeader()

	var (
		current    *ast.SwitchCase
		caseStart  token.Token
		hasDefault bool
	)
	closeCase := func() {
		if current != nil {
			stmt.Cases = append(stmt.Cases, place(p, current, caseStart))
			current = nil
		}
	}

	for {
		if p.tok.Type == token.Keyword {
			switch p.tok.Text() {
			case "case":
				if hasDefault {
					p.errorAt(p.tok, diag.Expected, "end", p.text(p.tok))
				}
				closeCase()
				caseStart = p.tok
				p.advance()
				current = &ast.SwitchCase{Tests: []ast.Expression{p.parseExpression()}}
				for p.consumePunctuator(",") {
					current.Tests = append(current.Tests, p.parseExpression())
				}
				continue
			case "default":
				if hasDefault {
					p.errorAt(p.tok, diag.Expected, "end", p.text(p.tok))
				}
				closeCase()
				caseStart = p.tok
				p.advance()
				current = &ast.SwitchCase{Default: true}
				hasDefault = true
				continue
			case "end":
				p.advance()
				if current != nil {
					closeCase()
					continue
				}
				return place(p, stmt, start)
			}
		}
		if current == nil {
			p.expected("case, default or end")
		}
		current.Consequent = append(current.Consequent, p.parseStatement())
	}
}

// ── Loops ─────────────────────────────────────────────────────────────────────

// parseFor parses the three forms of the for loop:
//
//	for (init; test; update) ... end
//	for name in expression ... end
//	for name = start to|downto end [by step] ... end
func (p *parser) parseFor() ast.Statement {
	start := p.tok
	p.advance()

	if p.consumePunctuator("(") {
		loop := &ast.ForStatement{}
		if !p.clauseEnds() {
			loop.Init = p.parseExpression()
			p.endClause()
		}
		if !p.clauseEnds() {
			loop.Test = p.parseExpression()
			p.endClause()
		}
		if !p.consumePunctuator(")") {
			loop.Update = p.parseExpression()
			p.expectPunctuator(")")
		}
		p.endForHeader()
		loop.Body = p.parseBlock()
		return place(p, loop, start)
	}

	variable := p.parseIdentifier()
	if p.consumeKeyword("in") {
		loop := &ast.ForEachStatement{Left: variable, Right: p.parseExpression()}
		p.endForHeader()
		loop.Body = p.parseBlock()
		return place(p, loop, start)
	}

	p.expectPunctuator("=")
	loop := &ast.StructuredForStatement{Variable: variable, Start: p.parseExpression()}
	switch {
	case p.consumeKeyword("downto"):
		loop.Down = true
	case p.consumeKeyword("to"):
	default:
		p.errorAt(p.tok, diag.Expected, "to or downto", p.text(p.tok))
	}
	loop.End = p.parseExpression()
	if p.consumeKeyword("by") {
		loop.Step = p.parseExpression()
	}
	p.endForHeader()
	loop.Body = p.parseBlock()
	return place(p, loop, start)
}

// clauseEnds consumes the separator of an empty C-style for clause.
func (p *parser) clauseEnds() bool {
	return p.tok.AfterLineBreak || p.consumePunctuator(";")
}

// endClause consumes the separator after a C-style for clause.
func (p *parser) endClause() {
	if !p.clauseEnds() {
		p.errorAt(p.tok, diag.Expected, ";", p.text(p.tok))
	}
}
