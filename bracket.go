package calculator

import "errors"

// BracketFamily distinguishes the two bracket pairs of the language.
type BracketFamily int

const (
	Round BracketFamily = iota
	Curly
)

func (f BracketFamily) String() string {
	if f == Round {
		return "round"
	}
	return "curly"
}

// BracketSide is the side of a bracket pair.
type BracketSide int

const (
	Opening BracketSide = iota
	Closing
)

// Bracket is a pure value describing a single bracket token.
type Bracket struct {
	Family BracketFamily
	Side   BracketSide
}

// bracketOf maps bracket token types to their Bracket description.
func bracketOf(tt TokenType) (Bracket, bool) {
	switch tt {
	case LROUND:
		return Bracket{Round, Opening}, true
	case RROUND:
		return Bracket{Round, Closing}, true
	case LCURLY:
		return Bracket{Curly, Opening}, true
	case RCURLY:
		return Bracket{Curly, Closing}, true
	}
	return Bracket{}, false
}

// BracketStack validates nesting and matching of brackets while scanning a
// token sequence. Opening brackets push their family; a closing bracket must
// match the family on top of the stack.
type BracketStack struct {
	stack []BracketFamily
}

var errUnmatchedBracket = errors.New("unmatched closing bracket")

// Update feeds one bracket to the stack. Closing against an empty stack or a
// mismatched top fails; the stack is left as-is and the caller must treat the
// scan as terminal.
func (s *BracketStack) Update(b Bracket) error {
	if b.Side == Opening {
		s.stack = append(s.stack, b.Family)
		return nil
	}
	if len(s.stack) == 0 || s.stack[len(s.stack)-1] != b.Family {
		return errUnmatchedBracket
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// Empty reports whether every opened bracket has been closed.
func (s *BracketStack) Empty() bool { return len(s.stack) == 0 }

// Top returns the family of the innermost open bracket.
func (s *BracketStack) Top() (BracketFamily, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	return s.stack[len(s.stack)-1], true
}
