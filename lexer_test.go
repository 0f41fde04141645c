// lexer_test.go
package calculator

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	return ts
}

func tokTypes(tokens []Token) []TokenType {
	out := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := tokTypes(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_Arithmetic(t *testing.T) {
	wantTypes(t, "1 + 2 * 3 ^ 2 * 5 + 10", []TokenType{
		NUMBER, PLUS, NUMBER, STAR, NUMBER, CARET, NUMBER, STAR, NUMBER, PLUS, NUMBER,
		EXPR_END,
	})
}

func Test_Lexer_Keywords_And_Identifiers(t *testing.T) {
	got := wantTypes(t, "if x else while func return iffy", []TokenType{
		IF, IDENT, ELSE, WHILE, FUNC, RETURN, IDENT,
		EXPR_END,
	})
	if got[6].Lexeme != "iffy" {
		t.Fatalf("keyword matching must be exact, got %v", got[6])
	}
}

func Test_Lexer_Booleans_CaseInsensitive(t *testing.T) {
	for _, src := range []string{"true", "True", "TRUE", "fAlSe"} {
		got := wantTypes(t, src, []TokenType{BOOLEAN, EXPR_END})
		if got[0].Lexeme != src {
			t.Fatalf("boolean lexeme must keep source spelling, got %v", got[0])
		}
	}
}

func Test_Lexer_String_Literal(t *testing.T) {
	got := wantTypes(t, `greet = "hello world"`, []TokenType{
		IDENT, ASSIGN, STRING, EXPR_END,
	})
	if got[2].Lexeme != `"hello world"` {
		t.Fatalf("string lexeme must keep quotes, got %q", got[2].Lexeme)
	}
}

func Test_Lexer_Equals_Runs(t *testing.T) {
	wantTypes(t, "a = b == c", []TokenType{IDENT, ASSIGN, IDENT, EQ, IDENT, EXPR_END})

	_, err := Tokenize("a === b")
	if err == nil {
		t.Fatal("want error for a run of three '='")
	}
	if !strings.Contains(err.Error(), "malformed run of '='") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func Test_Lexer_Newline_Is_Terminator(t *testing.T) {
	wantTypes(t, "a = 1\nb = 2", []TokenType{
		IDENT, ASSIGN, NUMBER, EXPR_END,
		IDENT, ASSIGN, NUMBER, EXPR_END,
	})
}

func Test_Lexer_Implied_Trailing_Terminator(t *testing.T) {
	got := toks(t, "1 + 2")
	last := got[len(got)-1]
	if last.Type != EXPR_END || last.Start != len("1 + 2") {
		t.Fatalf("want implied terminator at end of input, got %v", last)
	}

	// a trailing newline already terminates, nothing more is implied
	got = toks(t, "1 + 2\n")
	count := 0
	for _, tok := range got {
		if tok.Type == EXPR_END {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("want exactly one terminator, got tokens %v", got)
	}
}

func Test_Lexer_Comment(t *testing.T) {
	got := wantTypes(t, "a = 1 # the answer\nb", []TokenType{
		IDENT, ASSIGN, NUMBER, COMMENT, EXPR_END, IDENT, EXPR_END,
	})
	if got[3].Lexeme != "# the answer" {
		t.Fatalf("comment must run to end of line, got %q", got[3].Lexeme)
	}
}

func Test_Lexer_Offsets(t *testing.T) {
	src := `x = 12 + foo`
	got := toks(t, src)
	for _, tok := range got[:len(got)-1] {
		if !strings.HasPrefix(src[tok.Start:], tok.Lexeme) {
			t.Fatalf("token %v does not match source at its offset", tok)
		}
	}
}

func Test_Lexer_Errors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"a = \"unterminated", "unterminated string literal"},
		{"a ? b", "unexpected character"},
		{"µ = 1", "non-ASCII character"},
	}
	for _, c := range cases {
		_, err := Tokenize(c.src)
		if err == nil {
			t.Fatalf("want error for %q", c.src)
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Fatalf("source %q: want %q in error, got:\n%v", c.src, c.want, err)
		}
	}
}
