// Package parser_test contains tests for the OScript recursive-descent parser.
//
// Test files by category:
//   - parser_test.go:       options, token replay, conditional compilation,
//                           diagnostics, spans and raw texts
//   - expressions_test.go:  precedence, member chains, literals
//   - statements_test.go:   every statement form and its errors
//   - declarations_test.go: object packages, functions, scripts and dumps
//
// Most tests compare the String rendering of the tree, which parenthesizes
// every operator node and shows blocks as { a; b }.
package parser_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/metaphox/oscript/ast"
	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/parser"
	"github.com/metaphox/oscript/token"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func lines(a ...string) string {
	return strings.Join(a, "\n")
}

// parse runs ParseText and fails the test on an error.
func parse(t *testing.T, src string, opts parser.Options) *ast.Program {
	t.Helper()
	prog, err := parser.ParseText(src, opts)
	if err != nil {
		var de *diag.Error
		if errors.As(err, &de) {
			t.Fatalf("ParseText(%q):\n%s", src, de.Pretty(src))
		}
		t.Fatalf("ParseText(%q): %v", src, err)
	}
	return prog
}

// parseScript parses a script and returns the rendering of each top-level node.
func parseScript(t *testing.T, src string) []string {
	t.Helper()
	return parseScriptWith(t, src, parser.Options{})
}

func parseScriptWith(t *testing.T, src string, opts parser.Options) []string {
	t.Helper()
	body := parse(t, src, opts).Body.(*ast.ScriptSource).Body
	out := make([]string, len(body))
	for i, n := range body {
		out[i] = n.String()
	}
	return out
}

// parseError runs ParseText and returns the expected *diag.Error.
func parseError(t *testing.T, src string, opts parser.Options) *diag.Error {
	t.Helper()
	_, err := parser.ParseText(src, opts)
	if err == nil {
		t.Fatalf("ParseText(%q): expected an error", src)
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("ParseText(%q): error %T is not a *diag.Error: %v", src, err, err)
	}
	return de
}

func warningStrings(ws []*diag.Warning) []string {
	var out []string
	for _, w := range ws {
		out = append(out, w.String())
	}
	return out
}

// ignoreAttachments compares trees without the data attached to a Program.
var ignoreAttachments = cmp.Options{
	cmpopts.IgnoreFields(ast.Program{}, "Tokens", "Warnings"),
	cmpopts.EquateEmpty(),
}

// ── Options ───────────────────────────────────────────────────────────────────

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts parser.Options
	}{
		{"dump in the modern language", parser.Options{SourceType: parser.Dump, Version: parser.VersionModern}},
		{"object in the legacy language", parser.Options{SourceType: parser.Object, Version: parser.VersionLegacy}},
		{"unknown source type", parser.Options{SourceType: parser.SourceType(7)}},
		{"unknown version", parser.Options{Version: parser.Version(7)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parser.ParseText("x", tt.opts); !errors.Is(err, parser.ErrInvalidOptions) {
				t.Errorf("ParseText error = %v, want ErrInvalidOptions", err)
			}
			if _, err := parser.Tokenize("x", tt.opts); !errors.Is(err, parser.ErrInvalidOptions) {
				t.Errorf("Tokenize error = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestVersionSelectsKeywords(t *testing.T) {
	// "object" is a keyword only in the modern language, so a legacy script may
	// use it as a variable.
	got := parseScriptWith(t, "object = 1", parser.Options{Version: parser.VersionLegacy})
	if diff := cmp.Diff([]string{"(object = 1)"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// ── Token replay ──────────────────────────────────────────────────────────────

var replaySources = []string{
	"x = 1 + 2 * 3",
	lines(
		"// comment",
		"Integer i = 0, j",
		"#ifdef NOT_DEFINED",
		"this is skipped",
		"#endif",
		"for i = 1 to 10 by 2",
		"\tif i % 2 == 0 /* even */",
		"\t\tcontinue",
		"\telseif i > 7",
		"\t\tbreak",
		"\telse",
		"\t\tj += i",
		"\tend",
		"end",
		"function f(a, ...)",
		"\treturn {a, @b, assoc{1: 'x'}}",
		"end",
	),
	"switch x case 1, 2 y end default z end end",
}

func TestParseTokensMatchesParseText(t *testing.T) {
	opts := parser.Options{Locations: true, Ranges: true, Raw: true, Comments: true, Preprocessor: true}
	for _, src := range replaySources {
		want := parse(t, src, opts)

		tokens, err := parser.Tokenize(src, opts)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", src, err)
		}
		got, err := parser.ParseTokens(src, tokens, opts)
		if err != nil {
			t.Fatalf("ParseTokens(%q): %v", src, err)
		}
		if diff := cmp.Diff(want, got, ignoreAttachments); diff != "" {
			t.Errorf("ParseTokens(%q) mismatch (-ParseText +ParseTokens):\n%s", src, diff)
		}
	}
}

func TestProgramTokens(t *testing.T) {
	src := "a = 1 // one\nb"
	opts := parser.Options{Comments: true}
	prog := parse(t, src, opts)
	tokens, err := parser.Tokenize(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tokens, prog.Tokens); diff != "" {
		t.Errorf("Program.Tokens mismatch (-Tokenize +Program):\n%s", diff)
	}
	if len(prog.Tokens) != 5 || prog.Tokens[3].Type != token.Comment {
		t.Errorf("tokens = %v", prog.Tokens)
	}

	if prog := parse(t, src, parser.Options{}); prog.Tokens != nil {
		t.Errorf("tokens attached without being requested: %v", prog.Tokens)
	}
}

func TestConcurrentParses(t *testing.T) {
	src := replaySources[1]
	want := parse(t, src, parser.Options{Locations: true}).String()

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prog, err := parser.ParseText(src, parser.Options{Locations: true})
			if err != nil {
				results[i] = err.Error()
				return
			}
			results[i] = prog.String()
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if got != want {
			t.Errorf("parse %d = %q, want %q", i, got, want)
		}
	}
}

// ── Conditional compilation ───────────────────────────────────────────────────

func TestConditionalCompilation(t *testing.T) {
	src := lines(
		"a = 1 +",
		"#ifdef EXTRA",
		"99 +",
		"#endif",
		"2",
	)
	tests := []struct {
		defines map[string]string
		want    string
	}{
		{nil, "(a = (1 + 2))"},
		{map[string]string{"extra": "1"}, "(a = ((1 + 99) + 2))"},
	}
	for _, tt := range tests {
		got := parseScriptWith(t, src, parser.Options{Defines: tt.defines})
		if diff := cmp.Diff([]string{tt.want}, got); diff != "" {
			t.Errorf("defines %v mismatch (-want +got):\n%s", tt.defines, diff)
		}
	}
}

func TestDefinesInSource(t *testing.T) {
	got := parseScript(t, lines(
		"#define DEBUG",
		"#ifdef DEBUG",
		"echo('debug')",
		"#else",
		"echo('release')",
		"#endif",
	))
	if diff := cmp.Diff([]string{`echo("debug")`}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUnbalancedDirective(t *testing.T) {
	err := parseError(t, "x = 1\n#endif", parser.Options{})
	if err.Code != "E013" || err.Line != 2 {
		t.Errorf("got %s at line %d, want E013 at line 2", err.Code, err.Line)
	}
}

// ── Diagnostics ───────────────────────────────────────────────────────────────

func TestWarningsAreCollected(t *testing.T) {
	prog := parse(t, "s = \"a\nb\"\nfor i = 1 to 3 echo(i)\nend", parser.Options{})
	want := []string{
		"snippet:1:5: warning W001: multi-line string not delimited by back-ticks: \"a\nb\"",
		"snippet:3:14: warning W007: missing semicolon after the for statement near 'echo'",
	}
	if diff := cmp.Diff(want, warningStrings(prog.Warnings)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorCarriesTokensAndWarnings(t *testing.T) {
	src := "s = 'a\nb'\nb c"
	err := parseError(t, src, parser.Options{Tokens: true})
	if got, want := err.Error(), "snippet:3:3: 'line break' expected near 'c'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if len(err.Tokens) != 5 {
		t.Errorf("got %d tokens, want 5: %v", len(err.Tokens), err.Tokens)
	}
	if diff := cmp.Diff([]string{"W001"}, codes(err.Warnings)); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func codes(ws []*diag.Warning) []string {
	var out []string
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

func TestLexicalErrorThroughParser(t *testing.T) {
	err := parseError(t, "x = 1e", parser.Options{SourceFile: "calc.os"})
	if got, want := err.Error(), "calc.os:1:5: malformed number near '1e'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseTokensRejectsEditedAlias(t *testing.T) {
	src := "x = a::&1f"
	tokens, err := parser.Tokenize(src, parser.Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	last := &tokens[len(tokens)-1]
	if last.Type != token.LegacyAlias {
		t.Fatalf("last token is %v, want a legacy alias", last)
	}
	last.Value = "1f"

	_, err = parser.ParseTokens(src, tokens, parser.Options{})
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("ParseTokens error = %v, want *diag.Error", err)
	}
	if got, want := de.Error(), "snippet:1:8: unexpected legacyalias '&1f' near '<eof>'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPrettyError(t *testing.T) {
	src := "a = 1\nb c"
	err := parseError(t, src, parser.Options{})
	want := "ERROR snippet:2:3: E003 'line break' expected near 'c'\n\n" +
		"   1 | a = 1\n" +
		"   2 | b c\n" +
		"     |   ^\n"
	if diff := cmp.Diff(want, err.Pretty(src)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// ── Spans and raw texts ───────────────────────────────────────────────────────

func TestSpans(t *testing.T) {
	src := "x = 1 +\n  foo(2)"
	prog := parse(t, src, parser.Options{Locations: true, Ranges: true})
	stmt := prog.Body.(*ast.ScriptSource).Body[0].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.BinaryExpression)
	sum := assign.Right.(*ast.BinaryExpression)
	call := sum.Right.(*ast.CallExpression)

	whole := token.Span{
		Start: token.Position{Offset: 0, Line: 1, Column: 1},
		End:   token.Position{Offset: 16, Line: 2, Column: 9},
	}
	tests := []struct {
		name string
		node ast.Node
		want token.Span
	}{
		{"program", prog, whole},
		{"statement", stmt, whole},
		{"assignment", assign, whole},
		{"target", assign.Left, token.Span{
			Start: token.Position{Offset: 0, Line: 1, Column: 1},
			End:   token.Position{Offset: 1, Line: 1, Column: 2},
		}},
		{"sum", sum, token.Span{
			Start: token.Position{Offset: 4, Line: 1, Column: 5},
			End:   token.Position{Offset: 16, Line: 2, Column: 9},
		}},
		{"call", call, token.Span{
			Start: token.Position{Offset: 10, Line: 2, Column: 3},
			End:   token.Position{Offset: 16, Line: 2, Column: 9},
		}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.node.Span()); diff != "" {
			t.Errorf("%s span mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestSpansOnlyWhenRequested(t *testing.T) {
	prog := parse(t, "x = 1", parser.Options{})
	ast.Inspect(prog, func(n ast.Node) bool {
		if n != nil && n.Span() != (token.Span{}) {
			t.Errorf("%v has span %v", n.Kind(), n.Span())
		}
		return true
	})

	prog = parse(t, "x = 1", parser.Options{Locations: true})
	if got := prog.Span(); got.Start.Offset != 0 || got.End.Offset != 0 || got.End.Column != 6 {
		t.Errorf("locations-only span = %+v", got)
	}
}

func TestRawTexts(t *testing.T) {
	prog := parse(t, "MyVar = 1.50 + Other.X", parser.Options{Raw: true})
	var ids, lits []string
	ast.Inspect(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Identifier:
			ids = append(ids, n.Value+"|"+n.Raw)
		case *ast.Literal:
			lits = append(lits, n.Raw)
		}
		return true
	})
	if diff := cmp.Diff([]string{"myvar|MyVar", "other|Other", "x|X"}, ids); diff != "" {
		t.Errorf("identifiers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1.50"}, lits); diff != "" {
		t.Errorf("literals mismatch (-want +got):\n%s", diff)
	}

	prog = parse(t, "MyVar = 1.50", parser.Options{})
	ast.Inspect(prog, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok && id.Raw != "" {
			t.Errorf("raw identifier %q without the option", id.Raw)
		}
		return true
	})
}
