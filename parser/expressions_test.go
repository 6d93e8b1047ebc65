package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/metaphox/oscript/ast"
	"github.com/metaphox/oscript/parser"
)

// checkExpression parses src as a single statement and compares its rendering.
func checkExpression(t *testing.T, src, want string) {
	t.Helper()
	got := parseScript(t, src)
	if diff := cmp.Diff([]string{want}, got); diff != "" {
		t.Errorf("%q mismatch (-want +got):\n%s", src, diff)
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = 1 + 2 * 3", "(x = (1 + (2 * 3)))"},
		{"x = 1 - 2 - 3", "(x = ((1 - 2) - 3))"},
		{"a = b = c", "(a = (b = c))"},
		{"a += b -= 1", "(a += (b -= 1))"},
		{"a = b + c * d - e", "(a = ((b + (c * d)) - e))"},
		{"x = y or z and w", "(x = (y or (z and w)))"},
		{"x = y || z && w", "(x = (y || (z && w)))"},
		{"x = a < b == c", "(x = ((a < b) == c))"},
		{"x = a eq b or c ne d", "(x = ((a eq b) or (c ne d)))"},
		{"x = 1 << 2 + 3", "(x = (1 << (2 + 3)))"},
		{"x = a in b & c", "(x = ((a in b) & c))"},
		{"x = a | b ^ c & d", "(x = (a | (b ^ (c & d))))"},
		{"x = a * b + c * d", "(x = ((a * b) + (c * d)))"},
		{"x = a + b * c - d / e % f", "(x = ((a + (b * c)) - ((d / e) % f)))"},
		{"x = -a * b", "(x = ((-a) * b))"},
		{"x = not a and b", "(x = ((not a) and b))"},
		{"x = !-~y", "(x = (!(-(~y))))"},
		{"x = (1 + 2) * 3", "(x = (((1 + 2)) * 3))"},
		{"a ? b : c", "(a ? b : c)"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"f(a > 1 ? b + 1 : c)", "f(((a > 1) ? (b + 1) : c))"},
		// The test of ?: is the whole operator chain, assignments included.
		{"x = a ? b : c", "((x = a) ? b : c)"},
		{"x = (a ? b : c)", "(x = ((a ? b : c)))"},
	}
	for _, tt := range tests {
		checkExpression(t, tt.src, tt.want)
	}
}

func TestChains(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"f()", "f()"},
		{"f(1, g(2), h)", "f(1, g(2), h)"},
		{"a.b.c", "a.b.c"},
		{".f(1)", "this.f(1)"},
		{"this.f(1)[2]", "this.f(1)[2]"},
		{"super.Init()", "super.init()"},
		{"a.(b + 1)", "a.((b + 1))"},
		{"a.'key'", `a."key"`},
		{"x = s[1]", "(x = s[1])"},
		{"x = s[1:2]", "(x = s[1:2])"},
		{"x = s[:2]", "(x = s[:2])"},
		{"x = s[1:]", "(x = s[1:])"},
		{"x = m[i][j].k", "(x = m[i][j].k)"},
		{"x = Acme::Tools::&1a", "(x = acme::tools::&1a)"},
		{"x = $Kernel.Util", "(x = $kernel.util)"},
		{"assoc(x)", "assoc(x)"},
	}
	for _, tt := range tests {
		checkExpression(t, tt.src, tt.want)
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = 42", "(x = 42)"},
		{"x = -5", "(x = (-5))"},
		{"x = 1.5e3", "(x = 1500)"},
		{"x = 'it''s'", `(x = "it's")`},
		{`x = "say ""hi"""`, `(x = "say ""hi""")`},
		{"x = #ff", "(x = #ff)"},
		{"x = true", "(x = true)"},
		{"x = undefined", "(x = undefined)"},
		{"x = [web.Label]", "(x = [web.label])"},
		{"x = {}", "(x = {})"},
		{"x = {1, @rest, {}}", "(x = {1, @rest, {}})"},
		{"x = {y * 2 for y in items if y > 0}", "(x = {(y * 2) for y in items if (y > 0)})"},
		{"x = {y for y in items}", "(x = {y for y in items})"},
		{"x = assoc{}", "(x = assoc{})"},
		{"x = assoc{'a': 1, 2: {}}", `(x = assoc{"a": 1, 2: {}})`},
	}
	for _, tt := range tests {
		checkExpression(t, tt.src, tt.want)
	}
}

func TestLiteralValues(t *testing.T) {
	prog := parse(t, "x = {1, 2.5, 'a', #1f, false, undefined}", parser.Options{})
	var got []any
	ast.Inspect(prog, func(n ast.Node) bool {
		if lit, ok := n.(*ast.Literal); ok {
			got = append(got, lit.Value)
		}
		return true
	})
	want := []any{int64(1), 2.5, "a", int64(31), false, nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing operand", "x = )", "snippet:1:5: <literal> expected near ')'"},
		{"operand at end", "x = 1 +", "snippet:1:8: unexpected symbol near '<eof>'"},
		{"missing comma", "f(1 2)", "snippet:1:5: ',' expected near '2'"},
		{"unclosed call", "f(1, 2", "snippet:1:7: ',' expected near '<eof>'"},
		{"unclosed index", "x = a[1", "snippet:1:8: ']' expected near '<eof>'"},
		{"unclosed parenthesis", "x = (1 + 2", "snippet:1:11: ')' expected near '<eof>'"},
		{"conditional without alternate", "x = a ? b", "snippet:1:10: ':' expected near '<eof>'"},
		{"list without separator", "x = {1 2}", "snippet:1:8: 'for' expected near '2'"},
		{"assoc without colon", "x = assoc{1}", "snippet:1:12: ':' expected near '}'"},
		{"xlate without dot", "x = [web]", "snippet:1:9: '.' expected near ']'"},
		{"hash quote in expression", "#'a b'# = 1", "snippet:1:1: unexpected identifier '#'a b'#' near '='"},
		{"member without name", "x = a.", "snippet:1:7: unexpected symbol near '<eof>'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, tt.src, parser.Options{})
			if diff := cmp.Diff(tt.want, err.Error()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
