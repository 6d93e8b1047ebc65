package ast_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/metaphox/oscript/ast"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func ident(name string) *ast.Identifier { return &ast.Identifier{Value: name} }

func integer(v int64) *ast.Literal {
	return &ast.Literal{LiteralType: ast.IntegerLit, Value: v}
}

func binary(op string, left, right ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: op, Left: left, Right: right}
}

// sample is
//
//	if a < 10
//	    a = a + 1
//	else
//	    return
//	end
//	function f(Integer x = 1) end
func sample() *ast.Program {
	return &ast.Program{Body: &ast.ScriptSource{Body: []ast.Node{
		&ast.IfStatement{
			Test: binary("<", ident("a"), integer(10)),
			Consequent: []ast.Statement{
				&ast.ExpressionStatement{Expression: binary("=", ident("a"), binary("+", ident("a"), integer(1)))},
			},
			Alternate: []ast.Statement{&ast.ReturnStatement{}},
		},
		&ast.FunctionDeclaration{
			ID:     ident("f"),
			Params: []*ast.Parameter{{ParameterType: "integer", ID: ident("x"), Init: integer(1)}},
		},
	}}}
}

// ── Walk ──────────────────────────────────────────────────────────────────────

type recorder struct{ events *[]string }

func (r recorder) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		*r.events = append(*r.events, "pop")
		return nil
	}
	*r.events = append(*r.events, n.Kind().String())
	return r
}

func TestWalkOrder(t *testing.T) {
	var events []string
	ast.Walk(recorder{&events}, sample())

	want := []string{
		"Program",
		"ScriptSource",
		"IfStatement",
		"BinaryExpression", "Identifier", "pop", "Literal", "pop", "pop",
		"ExpressionStatement",
		"BinaryExpression", "Identifier", "pop",
		"BinaryExpression", "Identifier", "pop", "Literal", "pop", "pop",
		"pop", "pop",
		"ReturnStatement", "pop",
		"pop",
		"FunctionDeclaration", "Identifier", "pop",
		"Parameter", "Identifier", "pop", "Literal", "pop", "pop",
		"pop",
		"pop",
		"pop",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestInspect(t *testing.T) {
	var names []string
	ast.Inspect(sample(), func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Identifier:
			names = append(names, n.Value)
		case *ast.FunctionDeclaration:
			return false
		}
		return true
	})
	if diff := cmp.Diff([]string{"a", "a", "a"}, names); diff != "" {
		t.Errorf("identifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSkipsAbsentChildren(t *testing.T) {
	loop := &ast.ForStatement{Body: []ast.Statement{&ast.BreakStatement{}}}
	var kinds []ast.NodeKind
	ast.Inspect(loop, func(n ast.Node) bool {
		if n != nil {
			kinds = append(kinds, n.Kind())
		}
		return true
	})
	if diff := cmp.Diff([]ast.NodeKind{ast.ForStatementNode, ast.BreakStatementNode}, kinds); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// ── Rendering ─────────────────────────────────────────────────────────────────

func TestString(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"program", sample(), strings.Join([]string{
			"if (a < 10) { (a = (a + 1)) } else { return } end",
			"function f(integer x = 1) { } end",
		}, "\n")},
		{"string literal", &ast.Literal{LiteralType: ast.StringLit, Value: `say "hi"`}, `"say ""hi"""`},
		{"objref", &ast.Literal{LiteralType: ast.ObjRefLit, Value: int64(255)}, "#ff"},
		{"real", &ast.Literal{LiteralType: ast.RealLit, Value: 1.5}, "1.5"},
		{"undefined", &ast.Literal{LiteralType: ast.UndefinedLit}, "undefined"},
		{"boolean", &ast.Literal{LiteralType: ast.BooleanLit, Value: true}, "true"},
		{"not", &ast.UnaryExpression{Operator: "not", Argument: ident("x")}, "(not x)"},
		{"minus", &ast.UnaryExpression{Operator: "-", Argument: ident("x")}, "(-x)"},
		{"boxed member", &ast.MemberExpression{Object: &ast.ThisExpression{}, Property: ident("f"), Boxed: true}, "this.(f)"},
		{"open slice", &ast.SliceExpression{Object: ident("s"), Start: integer(2)}, "s[2:]"},
		{"call", &ast.CallExpression{Callee: ident("f"), Arguments: []ast.Expression{integer(1), ident("y")}}, "f(1, y)"},
		{"xlate", &ast.XlateExpression{Ospace: ident("web"), Name: ident("label")}, "[web.label]"},
		{"object name", &ast.ObjectName{Name: []ast.Expression{ident("a"), &ast.LegacyAlias{Value: 26}}}, "a::&1a"},
		{"switch", &ast.SwitchStatement{
			Discriminant: ident("x"),
			Cases: []*ast.SwitchCase{
				{Tests: []ast.Expression{integer(1), integer(2)}, Consequent: []ast.Statement{&ast.ExpressionStatement{Expression: ident("y")}}},
				{Default: true, Consequent: []ast.Statement{&ast.ExpressionStatement{Expression: ident("z")}}},
			},
		}, "switch x case 1, 2 { y } end default { z } end end"},
		{"structured for", &ast.StructuredForStatement{
			Variable: ident("i"), Start: integer(1), End: integer(10), Step: integer(2),
			Body: []ast.Statement{&ast.ExpressionStatement{Expression: ident("x")}},
		}, "for i = 1 to 10 by 2 { x } end"},
		{"assoc", &ast.AssocExpression{Properties: []*ast.Property{{Key: integer(1), Value: ident("a")}}}, "assoc{1: a}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.node.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	if got := ast.XlateExpressionNode.String(); got != "XlateExpression" {
		t.Errorf("XlateExpressionNode.String() = %q", got)
	}
	if got := ast.NodeKind(-1).String(); got != "Invalid" {
		t.Errorf("NodeKind(-1).String() = %q", got)
	}
}
