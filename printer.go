// printer.go — re-serializes a token sequence back into source text.
//
// Formatting works pairwise: each token is printed after a separator chosen
// from the (previous, current) token pair. Terminators print as newlines in
// pretty mode and as ";" when minifying; curly brackets drive indentation.
// Formatting already-canonical source is idempotent.
package calculator

import "strings"

const indentUnit = "    "

// Format re-serializes tokens. With minify set the output is a single line
// with all optional whitespace removed.
func Format(tokens []Token, minify bool) string {
	toks := normalize(tokens)
	if len(toks) == 0 {
		return ""
	}
	if minify {
		return formatMinified(toks)
	}
	return formatPretty(toks)
}

// normalize drops formatting-irrelevant terminators: leading ones, repeats,
// terminators adjacent to curly brackets, and trailing ones.
func normalize(tokens []Token) []Token {
	var out []Token
	for i, t := range tokens {
		if t.Type == EXPR_END {
			if len(out) == 0 {
				continue
			}
			if prev := out[len(out)-1].Type; prev == EXPR_END || prev == LCURLY {
				continue
			}
			if i+1 < len(tokens) && tokens[i+1].Type == RCURLY {
				continue
			}
		}
		out = append(out, t)
	}
	for len(out) > 0 && out[len(out)-1].Type == EXPR_END {
		out = out[:len(out)-1]
	}
	return out
}

func formatPretty(toks []Token) string {
	var sb strings.Builder
	indent := 0
	newline := func() {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(indentUnit, indent))
	}
	for i, t := range toks {
		if i > 0 {
			prev := toks[i-1]
			switch {
			case t.Type == RCURLY:
				indent--
				newline()
			case prev.Type == LCURLY:
				indent++
				newline()
			case t.Type == EXPR_END:
				// prints as the newline before the next token
			case prev.Type == EXPR_END || prev.Type == COMMENT:
				newline()
			case prev.Type == CARET || t.Type == CARET:
			case prev.Type == IDENT && t.Type == LROUND:
			case prev.Type == LROUND || t.Type == RROUND:
			case t.Type == COMMA:
			default:
				sb.WriteByte(' ')
			}
		}
		if t.Type != EXPR_END {
			sb.WriteString(t.Lexeme)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

func formatMinified(toks []Token) string {
	kept := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != COMMENT {
			kept = append(kept, t)
		}
	}
	var sb strings.Builder
	for i, t := range kept {
		lex := t.Lexeme
		if t.Type == EXPR_END {
			lex = ";"
		}
		if i > 0 && needsGap(displayLexeme(kept[i-1]), lex) {
			sb.WriteByte(' ')
		}
		sb.WriteString(lex)
	}
	return sb.String()
}

// needsGap reports whether dropping the space between two lexemes would
// merge them into a different token sequence.
func needsGap(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	a, b := prev[len(prev)-1], next[0]
	if isIdentChar(a) && isIdentChar(b) {
		return true
	}
	if a == '=' && b == '=' {
		return true
	}
	return false
}
