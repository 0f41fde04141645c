// printer_test.go
package calculator

import (
	"testing"
)

func format(t *testing.T, src string, minify bool) string {
	t.Helper()
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	return Format(tokens, minify)
}

func Test_Format_Spacing(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1+2*3", "1 + 2 * 3\n"},
		{"2  ^  10", "2^10\n"},
		{"f( x,1 )", "f(x, 1)\n"},
		{"a=1;b=2", "a = 1\nb = 2\n"},
		{"(1+2)*3", "(1 + 2) * 3\n"},
		{"a,b = 1,2", "a, b = 1, 2\n"},
	}
	for _, c := range cases {
		if got := format(t, c.src, false); got != c.want {
			t.Fatalf("source %q:\nwant %q\ngot  %q", c.src, c.want, got)
		}
	}
}

func Test_Format_Indents_Curly_Scopes(t *testing.T) {
	src := "func f(x) {a = x + 1; a * 2}"
	want := "func f(x) {\n" +
		"    a = x + 1\n" +
		"    a * 2\n" +
		"}\n"
	if got := format(t, src, false); got != want {
		t.Fatalf("want:\n%q\ngot:\n%q", want, got)
	}
}

func Test_Format_Nested_Indent(t *testing.T) {
	src := "while c {if d {1}\n2}"
	want := "while c {\n" +
		"    if d {\n" +
		"        1\n" +
		"    }\n" +
		"    2\n" +
		"}\n"
	if got := format(t, src, false); got != want {
		t.Fatalf("want:\n%q\ngot:\n%q", want, got)
	}
}

func Test_Format_Idempotent(t *testing.T) {
	sources := []string{
		"1 + 2 * 3",
		"a = {1; 2}",
		"func fib(n) if (n < 3) 1 else fib(n - 1) + fib(n - 2)\nfib(12)",
		"while i < 5 {i = i + 1} else {i}",
		"a, (b, c) = 1, (2, 3)",
		"x = 2^10 # a comment",
	}
	for _, src := range sources {
		once := format(t, src, false)
		twice := format(t, once, false)
		if once != twice {
			t.Fatalf("formatting %q is not idempotent:\nonce:  %q\ntwice: %q", src, once, twice)
		}
	}
}

func Test_Format_Minified(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1 + 2 * 3", "1+2*3"},
		{"a = 1\nb = 2", "a=1;b=2"},
		{"if x {1} else {2}", "if x{1}else{2}"},
		{"a = b == c", "a=b==c"},
		{"f(x, 1)", "f(x,1)"},
	}
	for _, c := range cases {
		if got := format(t, c.src, true); got != c.want {
			t.Fatalf("source %q:\nwant %q\ngot  %q", c.src, c.want, got)
		}
	}
}

func Test_Format_Minified_Reparses_Identically(t *testing.T) {
	src := "func add(a, b) {s = a + b\nreturn s}\nadd(1, 2)"
	mini := format(t, src, true)
	if got := format(t, mini, true); got != mini {
		t.Fatalf("minifying is not idempotent:\nonce:  %q\ntwice: %q", mini, got)
	}
}
