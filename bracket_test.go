// bracket_test.go
package calculator

import "testing"

func stackAfter(t *testing.T, src string) (BracketStack, error) {
	t.Helper()
	tokens, terr := Tokenize(src)
	if terr != nil {
		t.Fatalf("Tokenize error: %v", terr)
	}
	var stack BracketStack
	for _, tok := range tokens {
		b, ok := bracketOf(tok.Type)
		if !ok {
			continue
		}
		if err := stack.Update(b); err != nil {
			return stack, err
		}
	}
	return stack, nil
}

func Test_BracketStack_Balanced(t *testing.T) {
	for _, src := range []string{
		"()",
		"({})",
		"{(a), {b}}",
		"f(g(x), {y})",
		"",
	} {
		stack, err := stackAfter(t, src)
		if err != nil {
			t.Fatalf("source %q: unexpected error %v", src, err)
		}
		if !stack.Empty() {
			t.Fatalf("source %q: stack not empty after balanced sequence", src)
		}
	}
}

func Test_BracketStack_Unbalanced(t *testing.T) {
	for _, src := range []string{
		")",
		"(}",
		"({)}",
		"a)",
	} {
		if _, err := stackAfter(t, src); err == nil {
			t.Fatalf("source %q: want an unmatched bracket error", src)
		}
	}
}

func Test_BracketStack_Unclosed_Leaves_Stack(t *testing.T) {
	stack, err := stackAfter(t, "({")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stack.Empty() {
		t.Fatal("want a non-empty stack for unclosed brackets")
	}
	if fam, ok := stack.Top(); !ok || fam != Curly {
		t.Fatalf("want curly on top, got %v %v", fam, ok)
	}
}
