package diag_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/metaphox/oscript/diag"
	"github.com/metaphox/oscript/token"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		msg  diag.Message
		args []string
		want string
	}{
		{"all args", diag.Unexpected, []string{"symbol", ")", "x"}, "unexpected symbol ')' near 'x'"},
		{"missing args", diag.Unexpected, []string{"symbol"}, "unexpected symbol '' near ''"},
		{"repeated arg", diag.LineBreakInString, []string{`"`, "a\nb"}, "multi-line string not delimited by back-ticks: \"a\nb\""},
		{"no placeholders", diag.UnexpectedEOF, nil, "unexpected symbol near '<eof>'"},
		{"literal percent", diag.Message{Code: "X", Text: "100% of %1"}, []string{"it"}, "100% of it"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, diag.Format(tt.msg, tt.args...)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCodesAreUnique(t *testing.T) {
	msgs := []diag.Message{
		diag.Unexpected, diag.UnexpectedEOF, diag.Expected, diag.ExpectedToken,
		diag.MalformedNumber, diag.MalformedDate, diag.MalformedHash,
		diag.UnfinishedString, diag.UnfinishedLongString, diag.UnfinishedLongComment,
		diag.UnfinishedHashQuote, diag.UnfinishedPrepDirective, diag.UnbalancedPrepDirective,
		diag.UnexpectedCharacter,
		diag.LineBreakInString, diag.UselessBackslash, diag.PrepDirectiveWithoutName,
		diag.ObjectNotPublic, diag.CharactersAfterPrepDirective, diag.UnexpectedSemicolon,
		diag.UnfinishedStatement,
	}
	seen := map[string]bool{}
	for _, m := range msgs {
		if seen[m.Code] {
			t.Errorf("code %s used twice", m.Code)
		}
		seen[m.Code] = true
	}
}

func TestErrorAndWarning(t *testing.T) {
	tok := token.Token{Type: token.Punctuator, Value: ")", Line: 2, LineStart: 6, Start: 10, End: 11}

	err := diag.NewError(diag.AtToken("test.os", tok), diag.Expected, "]", ")")
	want := diag.Diagnostic{
		Message: "']' expected near ')'",
		Code:    "E003",
		Source:  "test.os",
		Line:    2,
		Column:  5,
		Offset:  10,
		Length:  1,
	}
	if diff := cmp.Diff(want, err.Diagnostic); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
	if got, want := err.Error(), "test.os:2:5: ']' expected near ')'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	w := diag.NewWarning(diag.AtToken("test.os", tok), diag.ObjectNotPublic, "private")
	if got, want := w.String(), "test.os:2:5: warning W004: modifier private used instead of public for an object"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestExcerpt(t *testing.T) {
	src := "a = 1\nb = (2\nc = 3\n"
	tests := []struct {
		name                 string
		line, column, length int
		want                 string
	}{
		{
			"middle line",
			2, 5, 2,
			"   1 | a = 1\n" +
				"   2 | b = (2\n" +
				"     |     ^^\n" +
				"   3 | c = 3\n",
		},
		{
			"first line",
			1, 1, 1,
			"   1 | a = 1\n" +
				"     | ^\n" +
				"   2 | b = (2\n",
		},
		{
			"clamped past the end",
			9, 1, 0,
			"   3 | c = 3\n" +
				"   4 | \n" +
				"     | ^\n",
		},
		{
			"caret stops at end of line",
			3, 5, 10,
			"   2 | b = (2\n" +
				"   3 | c = 3\n" +
				"     |     ^\n" +
				"   4 | \n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diag.Excerpt(src, tt.line, tt.column, tt.length)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExcerptLineBreaks(t *testing.T) {
	want := "   1 | a = 1\n" +
		"   2 | b = (2\n" +
		"     |     ^\n" +
		"   3 | c = 3\n"
	for _, src := range []string{"a = 1\rb = (2\rc = 3", "a = 1\r\nb = (2\r\nc = 3", "a = 1\r\nb = (2\rc = 3"} {
		if diff := cmp.Diff(want, diag.Excerpt(src, 2, 5, 1)); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", src, diff)
		}
	}
}

func TestExcerptKeepsTabs(t *testing.T) {
	got := diag.Excerpt("\tx = ]", 1, 6, 1)
	want := "   1 | \tx = ]\n" +
		"     | \t    ^\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
