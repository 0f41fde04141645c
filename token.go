package calculator

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Literals & identifiers
	NUMBER TokenType = iota
	IDENT
	STRING
	BOOLEAN

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	CARET
	ASSIGN // "="
	EQ     // "=="
	LESS
	GREATER
	BANG

	// Punctuation
	LROUND
	RROUND
	LCURLY
	RCURLY
	COMMA

	// Keywords
	IF
	ELSE
	WHILE
	FUNC
	RETURN

	EXPR_END // ";" or newline; one is implied at end of input
	COMMENT  // "#" to end of line
)

var tokenTypeNames = map[TokenType]string{
	NUMBER:   "number",
	IDENT:    "identifier",
	STRING:   "string literal",
	BOOLEAN:  "boolean literal",
	PLUS:     "'+'",
	MINUS:    "'-'",
	STAR:     "'*'",
	SLASH:    "'/'",
	CARET:    "'^'",
	ASSIGN:   "'='",
	EQ:       "'=='",
	LESS:     "'<'",
	GREATER:  "'>'",
	BANG:     "'!'",
	LROUND:   "'('",
	RROUND:   "')'",
	LCURLY:   "'{'",
	RCURLY:   "'}'",
	COMMA:    "','",
	IF:       "'if'",
	ELSE:     "'else'",
	WHILE:    "'while'",
	FUNC:     "'func'",
	RETURN:   "'return'",
	EXPR_END: "end of expression",
	COMMENT:  "comment",
}

func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("token type %d", int(tt))
}

// Token is a lexical token. Lexeme is a slice of the original source text
// (the implied trailing terminator is the only synthesized lexeme); Start is
// the byte offset of the lexeme within the source.
type Token struct {
	Type   TokenType
	Lexeme string
	Start  int
}

func (t Token) String() string {
	return fmt.Sprintf("%q (%s)", t.Lexeme, t.Type)
}

// keywords maps exact keyword spellings to their token types. Boolean
// literals are matched case-insensitively and handled separately.
var keywords = map[string]TokenType{
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"func":   FUNC,
	"return": RETURN,
}
