package calculator

import (
	"strings"
	"testing"
)

func Test_TokenizerError_Rendering(t *testing.T) {
	err := &TokenizerError{Src: "abcdefg", Msg: "example error", Offset: 3}
	want := "Tokenizer error\n" +
		"> abcdefg\n" +
		"     ^ example error"
	if got := err.Error(); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_TokenizerError_Points_Into_Its_Line(t *testing.T) {
	src := "a = 1\nb = \"oops\nc = 2"
	_, err := Tokenize(src)
	if err == nil {
		t.Fatal("want an error for the unterminated string")
	}
	rendered := err.Error()
	if !strings.Contains(rendered, "> b = \"oops") {
		t.Fatalf("snippet must show the offending line only:\n%s", rendered)
	}
	if strings.Contains(rendered, "a = 1") {
		t.Fatalf("snippet must not include other lines:\n%s", rendered)
	}
}

func Test_ParserError_Rendering(t *testing.T) {
	tokens, terr := Tokenize("1 + + 2")
	if terr != nil {
		t.Fatalf("Tokenize error: %v", terr)
	}
	_, perr := Parse(tokens)
	if perr == nil {
		t.Fatal("want a parse error")
	}
	want := "Parser error\n" +
		"> 1 + + 2\n" +
		"      ^ expected an operand"
	if got := perr.Error(); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_ParserError_Caret_Spans_Lexeme(t *testing.T) {
	tokens, terr := Tokenize("x = 123 456")
	if terr != nil {
		t.Fatalf("Tokenize error: %v", terr)
	}
	_, perr := Parse(tokens)
	if perr == nil {
		t.Fatal("want a parse error")
	}
	want := "Parser error\n" +
		"> x = 123 456\n" +
		"          ^^^ expected an expression terminator"
	if got := perr.Error(); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_ParserError_Window_Is_One_Statement(t *testing.T) {
	tokens, terr := Tokenize("a = 1\n1 + + 2\nb = 2")
	if terr != nil {
		t.Fatalf("Tokenize error: %v", terr)
	}
	_, perr := Parse(tokens)
	if perr == nil {
		t.Fatal("want a parse error")
	}
	rendered := perr.Error()
	if strings.Contains(rendered, "a = 1") || strings.Contains(rendered, "b = 2") {
		t.Fatalf("window must cover only the offending statement:\n%s", rendered)
	}
	if !strings.Contains(rendered, "> 1 + + 2") {
		t.Fatalf("window missing:\n%s", rendered)
	}
}

func Test_ParserError_Terminator_Displays_As_Semicolon(t *testing.T) {
	tokens, terr := Tokenize("1 +\n")
	if terr != nil {
		t.Fatalf("Tokenize error: %v", terr)
	}
	_, perr := Parse(tokens)
	if perr == nil {
		t.Fatal("want a parse error")
	}
	want := "Parser error\n" +
		"> 1 + ;\n" +
		"      ^ expected an operand"
	if got := perr.Error(); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_RuntimeError_Rendering_With_Trace(t *testing.T) {
	in := NewInterp()
	_, err := in.RunSource("1 + nope")
	if err == nil {
		t.Fatal("want a runtime error")
	}
	rendered := err.Error()
	if !strings.HasPrefix(rendered, `Runtime error: reference to non-existent variable "nope"`) {
		t.Fatalf("unexpected message:\n%s", rendered)
	}
	if !strings.Contains(rendered, "  in addition") {
		t.Fatalf("trace must name the enclosing operation:\n%s", rendered)
	}
	if !strings.Contains(rendered, "  in scope") {
		t.Fatalf("trace must reach the top-level scope:\n%s", rendered)
	}
}

func Test_RuntimeError_Trace_Is_Innermost_First(t *testing.T) {
	in := NewInterp()
	_, err := in.RunSource("func f(x) x + nope\nf(1)")
	if err == nil {
		t.Fatal("want a runtime error")
	}
	rendered := err.Error()
	addIdx := strings.Index(rendered, "in addition")
	callIdx := strings.Index(rendered, "in function call")
	if addIdx < 0 || callIdx < 0 || addIdx > callIdx {
		t.Fatalf("trace order wrong:\n%s", rendered)
	}
}
