package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Rendering helpers ─────────────────────────────────────────────────────────

// str renders n, or "" for an absent optional child.
func str(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}

func join[T Node](nodes []T, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

func block[T Node](nodes []T) string {
	if len(nodes) == 0 {
		return "{ }"
	}
	return "{ " + join(nodes, "; ") + " }"
}

func words(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// ── Program and sources ───────────────────────────────────────────────────────

func (p *Program) Kind() NodeKind { return ProgramNode }
func (p *Program) String() string { return str(p.Body) }

func (d *PackageDeclaration) Kind() NodeKind { return PackageDeclarationNode }
func (d *PackageDeclaration) sourceNode()    {}
func (d *PackageDeclaration) String() string {
	return "package " + str(d.Name) + "\n" + str(d.Object)
}

func (s *ScriptSource) Kind() NodeKind { return ScriptSourceNode }
func (s *ScriptSource) sourceNode()    {}
func (s *ScriptSource) String() string { return join(s.Body, "\n") }

func (d *DumpSource) Kind() NodeKind { return DumpSourceNode }
func (d *DumpSource) sourceNode()    {}
func (d *DumpSource) String() string {
	lines := []string{"name " + str(d.ID), "parent " + str(d.Parent)}
	for _, f := range d.Features {
		lines = append(lines, f.String())
	}
	for _, a := range d.Assignments {
		lines = append(lines, a.String())
	}
	for _, s := range d.Scripts {
		lines = append(lines, s.String())
	}
	return strings.Join(lines, "\n")
}

func (f *FeatureAddition) Kind() NodeKind { return FeatureAdditionNode }
func (f *FeatureAddition) String() string { return "addfeature " + str(f.ID) }

func (f *FeatureInitialization) Kind() NodeKind { return FeatureInitializationNode }
func (f *FeatureInitialization) String() string {
	return "set " + str(f.ID) + " = " + str(f.Value)
}

// ── Declarations ──────────────────────────────────────────────────────────────

func (d *ObjectDeclaration) Kind() NodeKind   { return ObjectDeclarationNode }
func (d *ObjectDeclaration) declarationNode() {}
func (d *ObjectDeclaration) String() string {
	head := words(d.Modifier, "object", str(d.ID))
	if d.SuperObject != nil {
		head += " inherits " + d.SuperObject.String()
	}
	return head + " " + block(d.Body) + " end"
}

func (d *FeatureDeclaration) Kind() NodeKind   { return FeatureDeclarationNode }
func (d *FeatureDeclaration) declarationNode() {}
func (d *FeatureDeclaration) String() string {
	s := words(d.Modifier, d.FeatureType, str(d.ID))
	if d.Init != nil {
		s += " = " + d.Init.String()
	}
	return s
}

func (d *FunctionDeclaration) Kind() NodeKind   { return FunctionDeclarationNode }
func (d *FunctionDeclaration) declarationNode() {}
func (d *FunctionDeclaration) String() string {
	nodebug := ""
	if d.Nodebug {
		nodebug = "nodebug"
	}
	params := join(d.Params, ", ")
	if d.Variadic {
		if params != "" {
			params += ", "
		}
		params += "..."
	}
	return words(d.Modifier, "function", nodebug, d.FunctionType, str(d.ID)) +
		"(" + params + ") " + block(d.Body) + " end"
}

func (p *Parameter) Kind() NodeKind { return ParameterNode }
func (p *Parameter) String() string {
	s := words(p.ParameterType, str(p.ID))
	if p.Init != nil {
		s += " = " + p.Init.String()
	}
	return s
}

func (d *ScriptDeclaration) Kind() NodeKind   { return ScriptDeclarationNode }
func (d *ScriptDeclaration) declarationNode() {}
func (d *ScriptDeclaration) String() string {
	return words(d.Modifier, "script", str(d.ID)) + " " + block(d.Body) + " endscript"
}

// ── Names and literals ────────────────────────────────────────────────────────

func (n *ObjectName) Kind() NodeKind  { return ObjectNameNode }
func (n *ObjectName) expressionNode() {}
func (n *ObjectName) String() string  { return join(n.Name, "::") }

func (i *Identifier) Kind() NodeKind  { return IdentifierNode }
func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.Value }

func (a *LegacyAlias) Kind() NodeKind  { return LegacyAliasNode }
func (a *LegacyAlias) expressionNode() {}
func (a *LegacyAlias) String() string  { return "&" + strconv.FormatInt(a.Value, 16) }

func (l *Literal) Kind() NodeKind  { return LiteralNode }
func (l *Literal) expressionNode() {}
func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "undefined"
	case string:
		if l.LiteralType == StringLit {
			return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		return v
	case int64:
		if l.LiteralType == ObjRefLit {
			return "#" + strconv.FormatInt(v, 16)
		}
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ── Statements ────────────────────────────────────────────────────────────────

func (s *EmptyStatement) Kind() NodeKind { return EmptyStatementNode }
func (s *EmptyStatement) statementNode() {}
func (s *EmptyStatement) String() string { return ";" }

func (s *LabelStatement) Kind() NodeKind { return LabelStatementNode }
func (s *LabelStatement) statementNode() {}
func (s *LabelStatement) String() string { return str(s.ID) + ":" }

func (s *VariableDeclaration) Kind() NodeKind { return VariableDeclarationNode }
func (s *VariableDeclaration) statementNode() {}
func (s *VariableDeclaration) String() string {
	return s.VariableType + " " + join(s.Declarations, ", ")
}

func (d *VariableDeclarator) Kind() NodeKind { return VariableDeclaratorNode }
func (d *VariableDeclarator) String() string {
	if d.Init == nil {
		return str(d.ID)
	}
	return str(d.ID) + " = " + d.Init.String()
}

func (s *IfStatement) Kind() NodeKind { return IfStatementNode }
func (s *IfStatement) statementNode() {}
func (s *IfStatement) String() string {
	out := "if " + str(s.Test) + " " + block(s.Consequent)
	for _, c := range s.OtherClauses {
		out += " " + c.String()
	}
	if s.Alternate != nil {
		out += " else " + block(s.Alternate)
	}
	return out + " end"
}

func (c *ElseIfClause) Kind() NodeKind { return ElseIfClauseNode }
func (c *ElseIfClause) String() string {
	return "elseif " + str(c.Test) + " " + block(c.Consequent)
}

func (s *SwitchStatement) Kind() NodeKind { return SwitchStatementNode }
func (s *SwitchStatement) statementNode() {}
func (s *SwitchStatement) String() string {
	out := "switch " + str(s.Discriminant)
	for _, c := range s.Cases {
		out += " " + c.String()
	}
	return out + " end"
}

func (c *SwitchCase) Kind() NodeKind { return SwitchCaseNode }
func (c *SwitchCase) String() string {
	if c.Default {
		return "default " + block(c.Consequent) + " end"
	}
	return "case " + join(c.Tests, ", ") + " " + block(c.Consequent) + " end"
}

func (s *WhileStatement) Kind() NodeKind { return WhileStatementNode }
func (s *WhileStatement) statementNode() {}
func (s *WhileStatement) String() string {
	return "while " + str(s.Test) + " " + block(s.Body) + " end"
}

func (s *RepeatStatement) Kind() NodeKind { return RepeatStatementNode }
func (s *RepeatStatement) statementNode() {}
func (s *RepeatStatement) String() string {
	return "repeat " + block(s.Body) + " until " + str(s.Test)
}

func (s *ForStatement) Kind() NodeKind { return ForStatementNode }
func (s *ForStatement) statementNode() {}
func (s *ForStatement) String() string {
	return fmt.Sprintf("for (%s; %s; %s) %s end", str(s.Init), str(s.Test), str(s.Update), block(s.Body))
}

func (s *ForEachStatement) Kind() NodeKind { return ForEachStatementNode }
func (s *ForEachStatement) statementNode() {}
func (s *ForEachStatement) String() string {
	return "for " + str(s.Left) + " in " + str(s.Right) + " " + block(s.Body) + " end"
}

func (s *StructuredForStatement) Kind() NodeKind { return StructuredForStatementNode }
func (s *StructuredForStatement) statementNode() {}
func (s *StructuredForStatement) String() string {
	dir := "to"
	if s.Down {
		dir = "downto"
	}
	out := "for " + str(s.Variable) + " = " + str(s.Start) + " " + dir + " " + str(s.End)
	if s.Step != nil {
		out += " by " + s.Step.String()
	}
	return out + " " + block(s.Body) + " end"
}

func (s *GotoStatement) Kind() NodeKind { return GotoStatementNode }
func (s *GotoStatement) statementNode() {}
func (s *GotoStatement) String() string { return "goto " + str(s.Label) }

func (s *ReturnStatement) Kind() NodeKind { return ReturnStatementNode }
func (s *ReturnStatement) statementNode() {}
func (s *ReturnStatement) String() string { return words("return", str(s.Argument)) }

func (s *BreakStatement) Kind() NodeKind { return BreakStatementNode }
func (s *BreakStatement) statementNode() {}
func (s *BreakStatement) String() string { return "break" }

func (s *ContinueStatement) Kind() NodeKind { return ContinueStatementNode }
func (s *ContinueStatement) statementNode() {}
func (s *ContinueStatement) String() string { return "continue" }

func (s *BreakIfStatement) Kind() NodeKind { return BreakIfStatementNode }
func (s *BreakIfStatement) statementNode() {}
func (s *BreakIfStatement) String() string { return "breakif " + str(s.Test) }

func (s *ContinueIfStatement) Kind() NodeKind { return ContinueIfStatementNode }
func (s *ContinueIfStatement) statementNode() {}
func (s *ContinueIfStatement) String() string { return "continueif " + str(s.Test) }

func (s *ExpressionStatement) Kind() NodeKind { return ExpressionStatementNode }
func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) String() string { return str(s.Expression) }

// ── Expressions ───────────────────────────────────────────────────────────────

func (e *ConditionalExpression) Kind() NodeKind  { return ConditionalExpressionNode }
func (e *ConditionalExpression) expressionNode() {}
func (e *ConditionalExpression) String() string {
	return "(" + str(e.Test) + " ? " + str(e.Consequent) + " : " + str(e.Alternate) + ")"
}

func (e *BinaryExpression) Kind() NodeKind  { return BinaryExpressionNode }
func (e *BinaryExpression) expressionNode() {}
func (e *BinaryExpression) String() string {
	return "(" + str(e.Left) + " " + e.Operator + " " + str(e.Right) + ")"
}

func (e *UnaryExpression) Kind() NodeKind  { return UnaryExpressionNode }
func (e *UnaryExpression) expressionNode() {}
func (e *UnaryExpression) String() string {
	if e.Operator == "not" {
		return "(not " + str(e.Argument) + ")"
	}
	return "(" + e.Operator + str(e.Argument) + ")"
}

func (e *MemberExpression) Kind() NodeKind  { return MemberExpressionNode }
func (e *MemberExpression) expressionNode() {}
func (e *MemberExpression) String() string {
	if e.Boxed {
		return str(e.Object) + ".(" + str(e.Property) + ")"
	}
	return str(e.Object) + "." + str(e.Property)
}

func (e *IndexExpression) Kind() NodeKind  { return IndexExpressionNode }
func (e *IndexExpression) expressionNode() {}
func (e *IndexExpression) String() string  { return str(e.Object) + "[" + str(e.Index) + "]" }

func (e *SliceExpression) Kind() NodeKind  { return SliceExpressionNode }
func (e *SliceExpression) expressionNode() {}
func (e *SliceExpression) String() string {
	return str(e.Object) + "[" + str(e.Start) + ":" + str(e.End) + "]"
}

func (e *CallExpression) Kind() NodeKind  { return CallExpressionNode }
func (e *CallExpression) expressionNode() {}
func (e *CallExpression) String() string {
	return str(e.Callee) + "(" + join(e.Arguments, ", ") + ")"
}

func (e *ThisExpression) Kind() NodeKind  { return ThisExpressionNode }
func (e *ThisExpression) expressionNode() {}
func (e *ThisExpression) String() string  { return "this" }

func (e *SuperExpression) Kind() NodeKind  { return SuperExpressionNode }
func (e *SuperExpression) expressionNode() {}
func (e *SuperExpression) String() string  { return "super" }

func (e *ListExpression) Kind() NodeKind  { return ListExpressionNode }
func (e *ListExpression) expressionNode() {}
func (e *ListExpression) String() string  { return "{" + join(e.Elements, ", ") + "}" }

func (e *ListComprehension) Kind() NodeKind  { return ListComprehensionNode }
func (e *ListComprehension) expressionNode() {}
func (e *ListComprehension) String() string {
	out := "{" + str(e.Expression) + " for " + str(e.Left) + " in " + str(e.Right)
	if e.Test != nil {
		out += " if " + e.Test.String()
	}
	return out + "}"
}

func (e *AtExpression) Kind() NodeKind  { return AtExpressionNode }
func (e *AtExpression) expressionNode() {}
func (e *AtExpression) String() string  { return "@" + str(e.Expression) }

func (e *AssocExpression) Kind() NodeKind  { return AssocExpressionNode }
func (e *AssocExpression) expressionNode() {}
func (e *AssocExpression) String() string  { return "assoc{" + join(e.Properties, ", ") + "}" }

func (p *Property) Kind() NodeKind { return PropertyNode }
func (p *Property) String() string { return str(p.Key) + ": " + str(p.Value) }

func (e *ParenthesisExpression) Kind() NodeKind  { return ParenthesisExpressionNode }
func (e *ParenthesisExpression) expressionNode() {}
func (e *ParenthesisExpression) String() string  { return "(" + str(e.Expression) + ")" }

func (e *XlateExpression) Kind() NodeKind  { return XlateExpressionNode }
func (e *XlateExpression) expressionNode() {}
func (e *XlateExpression) String() string  { return "[" + str(e.Ospace) + "." + str(e.Name) + "]" }
