// debug_test.go
package calculator

import "testing"

func Test_FormatTree_Binary(t *testing.T) {
	program := mustParse(t, "1 + 2 * 3")
	want := "┬── scope ───\n" +
		"└─addition\n" +
		"  ├─1\n" +
		"  └─multiplication\n" +
		"    ├─2\n" +
		"    └─3"
	if got := FormatTree(program); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_FormatTree_Rails_For_Middle_Children(t *testing.T) {
	program := mustParse(t, "1 + 2\n3")
	want := "┬── scope ───\n" +
		"├─addition\n" +
		"│ ├─1\n" +
		"│ └─2\n" +
		"└─3"
	if got := FormatTree(program); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_FormatTree_If(t *testing.T) {
	program := mustParse(t, "if c {1} else {2}")
	want := "┬── scope ───\n" +
		"└─IfElse\n" +
		"  ├─c\n" +
		"  ├─┬── scope ───\n" +
		"  │ └─1\n" +
		"  └─┬── scope ───\n" +
		"    └─2"
	if got := FormatTree(program); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_FormatTree_Function(t *testing.T) {
	program := mustParse(t, "func inc(x) x + 1")
	want := "┬── scope ───\n" +
		"└─assignment\n" +
		"  ├─inc\n" +
		"  └─Function inc\n" +
		"    ├─x\n" +
		"    └─addition\n" +
		"      ├─x\n" +
		"      └─1"
	if got := FormatTree(program); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}
