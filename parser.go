// parser.go — precedence-climbing parser over the flat token sequence.
//
// The parser works on index ranges into the token slice rather than on a
// cursor it owns: brackets are matched up front with a BracketStack, and the
// enclosed range is handed to a recursive call. An expression is parsed as an
// operand followed by a climb over trailing operators; the climb recurses for
// the right-hand side whenever the next operator binds tighter than the one
// that produced the current subtree.
package calculator

import (
	"strconv"
	"strings"
)

// Parse turns a token sequence into a program: a returnable scope holding one
// node per statement. Comment tokens are dropped before parsing.
func Parse(tokens []Token) (*Scope, *ParserError) {
	filtered := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != COMMENT {
			filtered = append(filtered, t)
		}
	}
	p := &parser{toks: filtered}
	body, err := p.statements(0, len(filtered))
	if err != nil {
		return nil, err
	}
	return &Scope{Body: body, Returnable: true}, nil
}

type parser struct {
	toks []Token
}

const errUnmatchedOpen = "unmatched opening bracket"

// IsIncomplete reports whether the parse failed only because the input ended
// inside an open bracket, so more input could still complete it. Interactive
// frontends use this to decide between a continuation prompt and an error.
func IsIncomplete(err error) bool {
	perr, ok := err.(*ParserError)
	return ok && perr.Msg == errUnmatchedOpen
}

func (p *parser) errAt(idx int, msg string) *ParserError {
	return &ParserError{Tokens: p.toks, Msg: msg, TokenIdx: idx}
}

// statements parses a terminator-separated statement list from the range
// [lo, hi). Every statement except the last must be followed by a terminator;
// blank statements are skipped.
func (p *parser) statements(lo, hi int) ([]Expression, *ParserError) {
	var body []Expression
	i := lo
	for i < hi {
		if p.toks[i].Type == EXPR_END {
			i++
			continue
		}
		expr, j, err := p.expression(i, hi, opNone)
		if err != nil {
			return nil, err
		}
		body = append(body, expr)
		if j < hi && p.toks[j].Type != EXPR_END {
			return nil, p.errAt(j, "expected an expression terminator")
		}
		i = j
	}
	return body, nil
}

// opNone is the precedence floor passed to a fresh expression parse. Every
// real operator climbs over it.
const opNone = Op(-1)

// expression parses one expression starting at i, never reading past hi.
// prev is the operator that requested this parse; the climb stops at the
// first operator that binds no tighter than prev.
func (p *parser) expression(i, hi int, prev Op) (Expression, int, *ParserError) {
	acc, j, err := p.operand(i, hi)
	if err != nil {
		return nil, 0, err
	}
	if acc == nil {
		// Not an operand. A minus or return here is a unary operator over
		// the expression that follows.
		if i < hi && (p.toks[i].Type == MINUS || p.toks[i].Type == RETURN) {
			op := OpNeg
			if p.toks[i].Type == RETURN {
				op = OpReturn
			}
			inner, k, err := p.expression(i+1, hi, op)
			if err != nil {
				return nil, 0, err
			}
			acc, j = &UnaryOperation{Op: op, Operand: inner}, k
		} else {
			return nil, 0, p.errAt(i, "expected an operand")
		}
	}

	tupleChain := false
	for j < hi {
		op, ok := binaryOps[p.toks[j].Type]
		if !ok {
			break
		}
		if op == OpFormTuple && tupleChain {
			op = OpAppendToTuple
		}
		if op.precedence() < prev.precedence() ||
			(op.precedence() == prev.precedence() && !op.rightAssoc()) {
			break
		}
		// The bracket of a call is not consumed here: it is the start of the
		// argument operand.
		next := j + 1
		if op == OpFunctionCall {
			next = j
		}
		rhs, k, err := p.expression(next, hi, op)
		if err != nil {
			return nil, 0, err
		}
		acc = &BinaryOperation{Op: op, Left: acc, Right: rhs}
		j = k
		tupleChain = op == OpFormTuple || op == OpAppendToTuple
	}
	return acc, j, nil
}

// operand parses a single operand at i. It returns a nil expression without
// an error when the token cannot start an operand, leaving the decision to
// the caller.
func (p *parser) operand(i, hi int) (Expression, int, *ParserError) {
	if i >= hi {
		return nil, i, nil
	}
	tok := p.toks[i]
	switch tok.Type {
	case NUMBER:
		return p.numberLiteral(i)
	case STRING:
		return &Literal{Val: Str(tok.Lexeme[1 : len(tok.Lexeme)-1])}, i + 1, nil
	case BOOLEAN:
		return &Literal{Val: Bool(strings.EqualFold(tok.Lexeme, "true"))}, i + 1, nil
	case IDENT:
		return &Variable{Name: tok.Lexeme}, i + 1, nil
	case LROUND:
		return p.roundGroup(i, hi)
	case LCURLY:
		return p.curlyGroup(i, hi)
	case IF:
		return p.ifExpression(i, hi)
	case WHILE:
		return p.whileExpression(i, hi)
	case FUNC:
		return p.funcDefinition(i, hi)
	default:
		return nil, i, nil
	}
}

func (p *parser) numberLiteral(i int) (Expression, int, *ParserError) {
	lex := p.toks[i].Lexeme
	if strings.Contains(lex, ".") {
		f, err := strconv.ParseFloat(lex, 32)
		if err != nil {
			return nil, 0, p.errAt(i, "invalid numeric literal")
		}
		return &Literal{Val: Float(float32(f))}, i + 1, nil
	}
	n, err := strconv.ParseInt(lex, 10, 32)
	if err != nil {
		return nil, 0, p.errAt(i, "invalid numeric literal")
	}
	return &Literal{Val: Int(int32(n))}, i + 1, nil
}

// matchBracket scans from the opening bracket at i to its matching closing
// bracket, validating nesting along the way. A terminator is rejected while
// the innermost open bracket is round.
func (p *parser) matchBracket(i, hi int) (int, *ParserError) {
	var stack BracketStack
	for j := i; j < hi; j++ {
		t := p.toks[j]
		if t.Type == EXPR_END {
			if fam, ok := stack.Top(); ok && fam == Round {
				return 0, p.errAt(j, "expression terminated inside round brackets")
			}
			continue
		}
		b, ok := bracketOf(t.Type)
		if !ok {
			continue
		}
		if err := stack.Update(b); err != nil {
			return 0, p.errAt(j, err.Error())
		}
		if stack.Empty() {
			return j, nil
		}
	}
	return 0, p.errAt(i, errUnmatchedOpen)
}

func (p *parser) roundGroup(i, hi int) (Expression, int, *ParserError) {
	close, err := p.matchBracket(i, hi)
	if err != nil {
		return nil, 0, err
	}
	if i+1 == close {
		return &Literal{Val: Nothing}, close + 1, nil
	}
	expr, j, err := p.expression(i+1, close, opNone)
	if err != nil {
		return nil, 0, err
	}
	if j != close {
		return nil, 0, p.errAt(j, "expected a single expression inside round brackets")
	}
	return expr, close + 1, nil
}

func (p *parser) curlyGroup(i, hi int) (Expression, int, *ParserError) {
	close, err := p.matchBracket(i, hi)
	if err != nil {
		return nil, 0, err
	}
	body, err := p.statements(i+1, close)
	if err != nil {
		return nil, 0, err
	}
	if len(body) == 0 {
		return &Literal{Val: Nothing}, close + 1, nil
	}
	return &Scope{Body: body}, close + 1, nil
}

func (p *parser) ifExpression(i, hi int) (Expression, int, *ParserError) {
	cond, j, err := p.expression(i+1, hi, opNone)
	if err != nil {
		return nil, 0, err
	}
	ifTrue, j, err := p.expression(j, hi, opNone)
	if err != nil {
		return nil, 0, err
	}
	ifFalse, j, err := p.elseBranch(j, hi)
	if err != nil {
		return nil, 0, err
	}
	return &If{Condition: cond, IfTrue: ifTrue, IfFalse: ifFalse}, j, nil
}

func (p *parser) whileExpression(i, hi int) (Expression, int, *ParserError) {
	cond, j, err := p.expression(i+1, hi, opNone)
	if err != nil {
		return nil, 0, err
	}
	body, j, err := p.expression(j, hi, opNone)
	if err != nil {
		return nil, 0, err
	}
	ifCompleted, j, err := p.elseBranch(j, hi)
	if err != nil {
		return nil, 0, err
	}
	return &While{Condition: cond, Body: body, IfCompleted: ifCompleted}, j, nil
}

// elseBranch consumes an optional else clause. A single terminator directly
// before the else keyword is allowed, so the clause may start on its own
// line; the terminator is consumed only when an else actually follows.
func (p *parser) elseBranch(j, hi int) (Expression, int, *ParserError) {
	k := j
	if k < hi && p.toks[k].Type == EXPR_END && k+1 < hi && p.toks[k+1].Type == ELSE {
		k++
	}
	if k >= hi || p.toks[k].Type != ELSE {
		return nil, j, nil
	}
	return p.expression(k+1, hi, opNone)
}

// funcDefinition desugars `func name(param) body` into an assignment of a
// function value to the name. The parameter pattern is an arbitrary
// expression; matching it against the call argument happens at call time.
func (p *parser) funcDefinition(i, hi int) (Expression, int, *ParserError) {
	j := i + 1
	if j >= hi || p.toks[j].Type != IDENT {
		return nil, 0, p.errAt(j, "expected a function name")
	}
	name := p.toks[j].Lexeme
	j++
	if j >= hi || p.toks[j].Type != LROUND {
		return nil, 0, p.errAt(j, "expected a parameter list in round brackets")
	}
	close, perr := p.matchBracket(j, hi)
	if perr != nil {
		return nil, 0, perr
	}
	var param Expression
	if j+1 == close {
		param = &Literal{Val: Nothing}
	} else {
		var k int
		param, k, perr = p.expression(j+1, close, opNone)
		if perr != nil {
			return nil, 0, perr
		}
		if k != close {
			return nil, 0, p.errAt(k, "expected a single expression inside round brackets")
		}
	}
	body, j, perr := p.expression(close+1, hi, opNone)
	if perr != nil {
		return nil, 0, perr
	}
	if sc, ok := body.(*Scope); ok {
		sc.Returnable = true
	}
	fn := &Function{Name: name, Param: param, Body: body}
	def := &BinaryOperation{
		Op:    OpAssign,
		Left:  &Variable{Name: name},
		Right: &Literal{Val: FuncVal(fn)},
	}
	return def, j, nil
}
