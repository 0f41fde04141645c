// errors.go — user-facing error types with caret-snippet rendering.
//
// Each pipeline stage has its own error type pointing back into that stage's
// input: a tokenizer error holds a byte offset into the source, a parser
// error holds an index into the token sequence, and a runtime error carries a
// trace of the expressions it bubbled through. All three implement error;
// Error() returns the full multi-line rendering.
package calculator

import (
	"fmt"
	"strings"
)

// TokenizerError points at a byte offset in the source text.
type TokenizerError struct {
	Src    string
	Msg    string
	Offset int
}

// Error renders the offending source line with a caret under the offending
// column:
//
//	Tokenizer error
//	> abcdefg
//	     ^ example error
func (e *TokenizerError) Error() string {
	lineStart := strings.LastIndexByte(e.Src[:e.Offset], '\n') + 1
	lineEnd := strings.IndexByte(e.Src[e.Offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(e.Src)
	} else {
		lineEnd += e.Offset
	}
	line := e.Src[lineStart:lineEnd]
	col := e.Offset - lineStart
	var sb strings.Builder
	sb.WriteString("Tokenizer error\n")
	sb.WriteString("> ")
	sb.WriteString(line)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", 2+col))
	sb.WriteString("^ ")
	sb.WriteString(e.Msg)
	return sb.String()
}

// ParserError points at a token index in the parsed token sequence.
type ParserError struct {
	Tokens   []Token
	Msg      string
	TokenIdx int
}

// Error renders the statement window around the offending token, carets as
// wide as its lexeme underneath:
//
//	Parser error
//	> 1 + + 2
//	      ^ expected an operand
//
// The window spans from the terminator before the token to the terminator
// after it; a terminator renders as ";". When the error points past the last
// token a single caret lands after the window.
func (e *ParserError) Error() string {
	lo := e.TokenIdx
	if lo > len(e.Tokens) {
		lo = len(e.Tokens)
	}
	for lo > 0 && e.Tokens[lo-1].Type != EXPR_END {
		lo--
	}
	hi := e.TokenIdx + 1
	if hi > len(e.Tokens) {
		hi = len(e.Tokens)
	}
	for hi < len(e.Tokens) && e.Tokens[hi].Type != EXPR_END {
		hi++
	}

	var before []string
	for _, t := range e.Tokens[lo:min(e.TokenIdx, hi)] {
		before = append(before, displayLexeme(t))
	}
	window := make([]string, 0, hi-lo)
	window = append(window, before...)
	caretWidth := 1
	if e.TokenIdx < hi {
		lex := displayLexeme(e.Tokens[e.TokenIdx])
		window = append(window, lex)
		caretWidth = max(1, len(lex))
		for _, t := range e.Tokens[e.TokenIdx+1 : hi] {
			window = append(window, displayLexeme(t))
		}
	}

	pad := len(strings.Join(before, " "))
	if len(before) > 0 {
		pad++
	}
	var sb strings.Builder
	sb.WriteString("Parser error\n")
	sb.WriteString("> ")
	sb.WriteString(strings.Join(window, " "))
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", 2+pad))
	sb.WriteString(strings.Repeat("^", caretWidth))
	sb.WriteString(" ")
	sb.WriteString(e.Msg)
	return sb.String()
}

// displayLexeme is the lexeme as shown in parser error windows. Terminators
// always display as ";" so that a newline does not break the window line.
func displayLexeme(t Token) string {
	if t.Type == EXPR_END {
		return ";"
	}
	return t.Lexeme
}

// RuntimeError carries the evaluation failure message and the chain of
// expressions it propagated through, innermost first.
type RuntimeError struct {
	Msg   string
	Trace []string
}

func runtimeErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// within records expr on the propagation trace and returns the error.
func (e *RuntimeError) within(expr Expression) *RuntimeError {
	e.Trace = append(e.Trace, exprSummary(expr))
	return e
}

func (e *RuntimeError) Error() string {
	var sb strings.Builder
	sb.WriteString("Runtime error: ")
	sb.WriteString(e.Msg)
	for _, frame := range e.Trace {
		sb.WriteString("\n  in ")
		sb.WriteString(frame)
	}
	return sb.String()
}

// exprSummary is a one-line description of an expression for traces.
func exprSummary(expr Expression) string {
	switch e := expr.(type) {
	case *Literal:
		return "literal " + e.Val.String()
	case *Variable:
		return fmt.Sprintf("variable %q", e.Name)
	case *BinaryOperation:
		return e.Op.opName()
	case *UnaryOperation:
		return e.Op.opName()
	case *Scope:
		return "scope"
	case *If:
		return "if expression"
	case *While:
		return "while loop"
	default:
		return "expression"
	}
}
