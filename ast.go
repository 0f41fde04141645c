// ast.go — expression tree produced by the parser.
//
// Everything is an expression: literals, variable references, operator
// applications, scopes, and control flow all evaluate to a Value. The isExpr
// marker keeps the set of node types closed.
package calculator

// Expression is the interface implemented by every AST node.
type Expression interface {
	isExpr()
}

// Literal holds a value known at parse time.
type Literal struct {
	Val Value
}

// Variable references a name resolved against the environment at eval time.
type Variable struct {
	Name string
}

// BinaryOperation applies a binary operator to two subexpressions.
type BinaryOperation struct {
	Op    Op
	Left  Expression
	Right Expression
}

// UnaryOperation applies a unary operator to a single subexpression.
type UnaryOperation struct {
	Op      Op
	Operand Expression
}

// Scope is a sequence of statements. A returnable scope (function body,
// program top level) unwraps a returned value; a plain scope forwards it
// upward untouched.
type Scope struct {
	Body       []Expression
	Returnable bool
}

// If evaluates IfTrue or IfFalse depending on the condition. IfFalse may be
// nil, in which case a false condition yields nothing.
type If struct {
	Condition Expression
	IfTrue    Expression
	IfFalse   Expression
}

// While repeats Body as long as the condition holds. IfCompleted, when
// present, is evaluated once after the condition turns false; a return from
// the body skips it.
type While struct {
	Condition   Expression
	Body        Expression
	IfCompleted Expression
}

func (*Literal) isExpr()         {}
func (*Variable) isExpr()        {}
func (*BinaryOperation) isExpr() {}
func (*UnaryOperation) isExpr()  {}
func (*Scope) isExpr()           {}
func (*If) isExpr()              {}
func (*While) isExpr()           {}

// Op identifies an operator, unary or binary. The declaration order is the
// order of precedence, lowest binding first; the parser compares Op values
// directly when deciding whether to keep climbing.
type Op int

const (
	OpReturn Op = iota
	OpAssign
	OpFormTuple
	OpAppendToTuple
	OpIsEq
	OpIsLt
	OpIsGt
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpPow
	OpFunctionCall
)

// precedence groups operators that bind equally tight.
func (op Op) precedence() int {
	switch op {
	case OpFormTuple, OpAppendToTuple:
		return int(OpFormTuple)
	default:
		return int(op)
	}
}

// rightAssoc reports whether a chain of equal-precedence operators groups
// from the right.
func (op Op) rightAssoc() bool {
	return op == OpAssign || op == OpFunctionCall
}

func (op Op) String() string {
	switch op {
	case OpReturn:
		return "return"
	case OpAssign:
		return "="
	case OpFormTuple, OpAppendToTuple:
		return ","
	case OpIsEq:
		return "=="
	case OpIsLt:
		return "<"
	case OpIsGt:
		return ">"
	case OpAdd:
		return "+"
	case OpSub, OpNeg:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpFunctionCall:
		return "()"
	default:
		return "?"
	}
}

// opName is the operator's name as used in runtime error messages.
func (op Op) opName() string {
	switch op {
	case OpReturn:
		return "return"
	case OpAssign:
		return "assignment"
	case OpFormTuple:
		return "tuple construction"
	case OpAppendToTuple:
		return "tuple extension"
	case OpIsEq:
		return "equality comparison"
	case OpIsLt:
		return "less-than comparison"
	case OpIsGt:
		return "greater-than comparison"
	case OpAdd:
		return "addition"
	case OpSub:
		return "subtraction"
	case OpMul:
		return "multiplication"
	case OpDiv:
		return "division"
	case OpNeg:
		return "negation"
	case OpPow:
		return "exponentiation"
	case OpFunctionCall:
		return "function call"
	default:
		return "unknown operation"
	}
}

// binaryOps maps an operator token to the binary Op it denotes. LROUND is
// special-cased by the parser: a bracket directly after an operand acts as
// the function call operator without consuming the token.
var binaryOps = map[TokenType]Op{
	PLUS:    OpAdd,
	MINUS:   OpSub,
	STAR:    OpMul,
	SLASH:   OpDiv,
	CARET:   OpPow,
	ASSIGN:  OpAssign,
	EQ:      OpIsEq,
	LESS:    OpIsLt,
	GREATER: OpIsGt,
	COMMA:   OpFormTuple,
	LROUND:  OpFunctionCall,
}
