// lexer.go — single forward scan over ASCII source text.
//
// The scanner tries a "long" match first at each position (number, identifier
// or keyword, string literal, run of '=', comment), then falls back to the
// single-character token table. Whitespace is dropped, except that a newline
// terminates the current expression just like ';'. If the token sequence does
// not already end with a terminator, one is appended: the terminator is
// optional at end of input but required between statements.
package calculator

import (
	"strings"
	"unicode/utf8"
)

var singleCharTokens = map[byte]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'^': CARET,
	'<': LESS,
	'>': GREATER,
	'!': BANG,
	'(': LROUND,
	')': RROUND,
	'{': LCURLY,
	'}': RCURLY,
	',': COMMA,
	';': EXPR_END,
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isIdentChar(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '_'
}
func isNumberChar(b byte) bool { return isDigit(b) || b == '.' }

// Tokenize scans source text into a flat token sequence. It is a pure
// function over the input; on failure the returned error points at the
// offending byte offset.
func Tokenize(src string) ([]Token, *TokenizerError) {
	var tokens []Token
	i := 0
	for i < len(src) {
		ch := src[i]
		if ch >= utf8.RuneSelf {
			return nil, &TokenizerError{Src: src, Msg: "non-ASCII character", Offset: i}
		}

		switch {
		case isNumberChar(ch):
			start := i
			for i < len(src) && isNumberChar(src[i]) {
				i++
			}
			tokens = append(tokens, Token{NUMBER, src[start:i], start})

		case isLetter(ch):
			start := i
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			word := src[start:i]
			tokens = append(tokens, Token{wordTokenType(word), word, start})

		case ch == '"':
			start := i
			i++
			for i < len(src) && src[i] != '"' {
				i++
			}
			if i >= len(src) {
				return nil, &TokenizerError{Src: src, Msg: "unterminated string literal", Offset: start}
			}
			i++ // closing quote
			tokens = append(tokens, Token{STRING, src[start:i], start})

		case ch == '=':
			start := i
			for i < len(src) && src[i] == '=' {
				i++
			}
			switch i - start {
			case 1:
				tokens = append(tokens, Token{ASSIGN, src[start:i], start})
			case 2:
				tokens = append(tokens, Token{EQ, src[start:i], start})
			default:
				return nil, &TokenizerError{Src: src, Msg: "malformed run of '=' characters", Offset: start}
			}

		case ch == '#':
			start := i
			for i < len(src) && src[i] != '\n' {
				i++
			}
			tokens = append(tokens, Token{COMMENT, src[start:i], start})

		case ch == '\n':
			tokens = append(tokens, Token{EXPR_END, src[i : i+1], i})
			i++

		case ch == ' ' || ch == '\t' || ch == '\r':
			i++

		default:
			if tt, ok := singleCharTokens[ch]; ok {
				tokens = append(tokens, Token{tt, src[i : i+1], i})
				i++
			} else {
				return nil, &TokenizerError{Src: src, Msg: "unexpected character", Offset: i}
			}
		}
	}

	if len(tokens) > 0 && tokens[len(tokens)-1].Type != EXPR_END {
		tokens = append(tokens, Token{EXPR_END, ";", len(src)})
	}
	return tokens, nil
}

// wordTokenType resolves an identifier-shaped word against the keyword table.
// Boolean literals match case-insensitively; everything unmatched is an
// identifier.
func wordTokenType(word string) TokenType {
	if tt, ok := keywords[word]; ok {
		return tt
	}
	switch strings.ToLower(word) {
	case "true", "false":
		return BOOLEAN
	}
	return IDENT
}
