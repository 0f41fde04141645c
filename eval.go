// eval.go — tree-walking evaluator.
//
// Evaluation is a recursive walk over the AST against an environment. Plain
// scopes, if branches and while bodies all run in the current environment;
// only a function call gets a fresh one, cloned from the caller's at call
// time. A return statement wraps its value in the Returned marker, which
// short-circuits every statement list it passes through until a returnable
// scope unwraps it.
package calculator

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"
)

// Env maps variable names to values.
type Env map[string]Value

// Clone copies the environment one level deep. Tuple and function payloads
// are shared; the bindings themselves are independent.
func (e Env) Clone() Env {
	c := make(Env, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// Interp evaluates programs. The zero value is not usable; construct with
// NewInterp.
type Interp struct {
	Globals  Env
	Out      io.Writer
	builtins map[string]Value
	rng      *rand.Rand
}

func NewInterp() *Interp {
	in := &Interp{
		Globals: make(Env),
		Out:     os.Stdout,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	in.builtins = builtinTable(in)
	return in
}

// RunSource tokenizes, parses and evaluates src in the interpreter's global
// environment. The returned error is one of *TokenizerError, *ParserError or
// *RuntimeError.
func (in *Interp) RunSource(src string) (Value, error) {
	tokens, terr := Tokenize(src)
	if terr != nil {
		return Nothing, terr
	}
	program, perr := Parse(tokens)
	if perr != nil {
		return Nothing, perr
	}
	v, rerr := in.Eval(program, in.Globals)
	if rerr != nil {
		return Nothing, rerr
	}
	return v, nil
}

// Eval evaluates expr in env. A *RuntimeError returned from a subexpression
// is annotated with the enclosing expression on its way up, building the
// trace innermost first.
func (in *Interp) Eval(expr Expression, env Env) (Value, *RuntimeError) {
	switch e := expr.(type) {
	case *Literal:
		return e.Val, nil

	case *Variable:
		if v, ok := env[e.Name]; ok {
			return v, nil
		}
		if v, ok := in.builtins[e.Name]; ok {
			return v, nil
		}
		return Nothing, runtimeErrorf("reference to non-existent variable %q", e.Name).within(e)

	case *Scope:
		return in.evalScope(e, env)

	case *UnaryOperation:
		return in.evalUnary(e, env)

	case *BinaryOperation:
		return in.evalBinary(e, env)

	case *If:
		cond, err := in.Eval(e.Condition, env)
		if err != nil {
			return Nothing, err.within(e)
		}
		if cond.Tag != VBool {
			return Nothing, runtimeErrorf("if condition must be a boolean, got %s", cond.TypeName()).within(e)
		}
		if cond.AsBool() {
			v, err := in.Eval(e.IfTrue, env)
			if err != nil {
				return Nothing, err.within(e)
			}
			return v, nil
		}
		if e.IfFalse == nil {
			return Nothing, nil
		}
		v, err := in.Eval(e.IfFalse, env)
		if err != nil {
			return Nothing, err.within(e)
		}
		return v, nil

	case *While:
		return in.evalWhile(e, env)

	default:
		return Nothing, runtimeErrorf("cannot evaluate expression")
	}
}

func (in *Interp) evalScope(s *Scope, env Env) (Value, *RuntimeError) {
	last := Nothing
	for _, stmt := range s.Body {
		v, err := in.Eval(stmt, env)
		if err != nil {
			return Nothing, err.within(s)
		}
		if v.Tag == VReturned {
			if s.Returnable {
				return v.AsReturned(), nil
			}
			return v, nil
		}
		last = v
	}
	return last, nil
}

func (in *Interp) evalWhile(w *While, env Env) (Value, *RuntimeError) {
	last := Nothing
	for {
		cond, err := in.Eval(w.Condition, env)
		if err != nil {
			return Nothing, err.within(w)
		}
		if cond.Tag != VBool {
			return Nothing, runtimeErrorf("while condition must be a boolean, got %s", cond.TypeName()).within(w)
		}
		if !cond.AsBool() {
			break
		}
		v, err := in.Eval(w.Body, env)
		if err != nil {
			return Nothing, err.within(w)
		}
		if v.Tag == VReturned {
			return v, nil
		}
		last = v
	}
	if w.IfCompleted != nil {
		v, err := in.Eval(w.IfCompleted, env)
		if err != nil {
			return Nothing, err.within(w)
		}
		return v, nil
	}
	return last, nil
}

func (in *Interp) evalUnary(u *UnaryOperation, env Env) (Value, *RuntimeError) {
	v, err := in.Eval(u.Operand, env)
	if err != nil {
		return Nothing, err.within(u)
	}
	switch u.Op {
	case OpReturn:
		return ReturnedVal(v), nil
	case OpNeg:
		switch v.Tag {
		case VInt:
			return Int(-v.AsInt()), nil
		case VFloat:
			return Float(-v.AsFloat()), nil
		case VBool:
			return Bool(!v.AsBool()), nil
		}
		return Nothing, runtimeErrorf("negation is not defined for %s", v.TypeName()).within(u)
	default:
		return Nothing, runtimeErrorf("unknown unary operation").within(u)
	}
}

func (in *Interp) evalBinary(b *BinaryOperation, env Env) (Value, *RuntimeError) {
	switch b.Op {
	case OpAssign:
		v, err := in.assign(b.Left, b.Right, env)
		if err != nil {
			return Nothing, err.within(b)
		}
		return v, nil

	case OpFunctionCall:
		v, err := in.call(b, env)
		if err != nil {
			return Nothing, err.within(b)
		}
		return v, nil

	case OpFormTuple, OpAppendToTuple:
		left, err := in.Eval(b.Left, env)
		if err != nil {
			return Nothing, err.within(b)
		}
		right, err := in.Eval(b.Right, env)
		if err != nil {
			return Nothing, err.within(b)
		}
		if b.Op == OpFormTuple {
			return Tup([]Value{left, right}), nil
		}
		if left.Tag != VTuple {
			return Nothing, runtimeErrorf("tuple extension is not defined for %s and %s", left.TypeName(), right.TypeName()).within(b)
		}
		elems := left.AsTuple()
		extended := make([]Value, len(elems), len(elems)+1)
		copy(extended, elems)
		return Tup(append(extended, right)), nil

	default:
		right, err := in.Eval(b.Right, env)
		if err != nil {
			return Nothing, err.within(b)
		}
		left, err := in.Eval(b.Left, env)
		if err != nil {
			return Nothing, err.within(b)
		}
		v, rerr := applyBinary(b.Op, left, right)
		if rerr != nil {
			return Nothing, rerr.within(b)
		}
		return v, nil
	}
}

// call evaluates a function call node. A built-in receives its evaluated
// argument directly; a user-defined function gets a clone of the caller's
// environment with the argument destructured into its parameter pattern.
func (in *Interp) call(b *BinaryOperation, env Env) (Value, *RuntimeError) {
	callee, err := in.Eval(b.Left, env)
	if err != nil {
		return Nothing, err
	}
	if callee.Tag != VFunction {
		return Nothing, runtimeErrorf("%s is not callable", callee.TypeName())
	}
	fn := callee.AsFunc()

	if fn.Builtin != nil {
		arg, err := in.Eval(b.Right, env)
		if err != nil {
			return Nothing, err
		}
		v, berr := fn.Builtin(arg)
		if berr != nil {
			return Nothing, &RuntimeError{Msg: berr.Error()}
		}
		return v, nil
	}

	local := env.Clone()
	if _, err := in.assign(fn.Param, b.Right, local); err != nil {
		return Nothing, err
	}
	return in.Eval(fn.Body, local)
}

// assign matches the unevaluated pattern against the unevaluated right-hand
// expression. A bare variable binds the evaluated right-hand side; a
// compound pattern requires the same operator on the right-hand side and
// recurses into both operands, so `a + b = 3 + 7` binds a and b and the
// whole assignment evaluates to their sum. The returned value is the value
// of the right-hand side as reconstructed from the matched parts.
func (in *Interp) assign(pattern, rhs Expression, env Env) (Value, *RuntimeError) {
	switch pat := pattern.(type) {
	case *Variable:
		v, err := in.Eval(rhs, env)
		if err != nil {
			return Nothing, err
		}
		env[pat.Name] = v
		return v, nil

	case *Literal:
		// A nothing pattern is the parameter list of a zero-argument
		// function; it matches only a nothing argument.
		if pat.Val.Tag == VNothing {
			v, err := in.Eval(rhs, env)
			if err != nil {
				return Nothing, err
			}
			if v.Tag != VNothing {
				return Nothing, runtimeErrorf("expected no argument, got %s", v.TypeName())
			}
			return Nothing, nil
		}
		return Nothing, runtimeErrorf("assignment is only possible to a variable or a simple expression")

	case *BinaryOperation:
		r, ok := rhs.(*BinaryOperation)
		if !ok || r.Op != pat.Op {
			return Nothing, runtimeErrorf("cannot match %s pattern against the right-hand side", pat.Op.opName())
		}
		lv, err := in.assign(pat.Left, r.Left, env)
		if err != nil {
			return Nothing, err
		}
		rv, err := in.assign(pat.Right, r.Right, env)
		if err != nil {
			return Nothing, err
		}
		rebuilt := &BinaryOperation{Op: pat.Op, Left: &Literal{Val: lv}, Right: &Literal{Val: rv}}
		return in.evalBinary(rebuilt, env)

	case *UnaryOperation:
		r, ok := rhs.(*UnaryOperation)
		if !ok || r.Op != pat.Op {
			return Nothing, runtimeErrorf("cannot match %s pattern against the right-hand side", pat.Op.opName())
		}
		inner, err := in.assign(pat.Operand, r.Operand, env)
		if err != nil {
			return Nothing, err
		}
		return in.evalUnary(&UnaryOperation{Op: pat.Op, Operand: &Literal{Val: inner}}, env)

	default:
		return Nothing, runtimeErrorf("assignment is only possible to a variable or a simple expression")
	}
}

// applyBinary applies an arithmetic or comparison operator to two evaluated
// values, following the promotion table: mixed int/float arithmetic promotes
// to float, division always yields a float, integer exponentiation stays
// integer only for a non-negative exponent.
func applyBinary(op Op, left, right Value) (Value, *RuntimeError) {
	undef := func() (Value, *RuntimeError) {
		return Nothing, runtimeErrorf("%s is not defined for %s and %s", op.opName(), left.TypeName(), right.TypeName())
	}

	// string operations
	if left.Tag == VString || right.Tag == VString {
		switch {
		case op == OpAdd && left.Tag == VString && right.Tag == VString:
			return Str(left.AsStr() + right.AsStr()), nil
		case op == OpMul && left.Tag == VString && right.Tag == VInt:
			n := right.AsInt()
			if n < 0 {
				return Nothing, runtimeErrorf("cannot repeat a string a negative number of times")
			}
			return Str(strings.Repeat(left.AsStr(), int(n))), nil
		case op == OpIsEq && left.Tag == VString && right.Tag == VString:
			return Bool(left.AsStr() == right.AsStr()), nil
		}
		return undef()
	}

	// boolean algebra: + is or, * is and, ^ is xor
	if left.Tag == VBool || right.Tag == VBool {
		if left.Tag != VBool || right.Tag != VBool {
			return undef()
		}
		l, r := left.AsBool(), right.AsBool()
		switch op {
		case OpAdd:
			return Bool(l || r), nil
		case OpMul:
			return Bool(l && r), nil
		case OpPow:
			return Bool(l != r), nil
		case OpIsEq:
			return Bool(l == r), nil
		}
		return undef()
	}

	// numeric operations
	if isNumeric(left) && isNumeric(right) {
		if left.Tag == VInt && right.Tag == VInt {
			l, r := left.AsInt(), right.AsInt()
			switch op {
			case OpAdd:
				return Int(l + r), nil
			case OpSub:
				return Int(l - r), nil
			case OpMul:
				return Int(l * r), nil
			case OpDiv:
				if r == 0 {
					return Nothing, runtimeErrorf("division by zero")
				}
				return Float(float32(l) / float32(r)), nil
			case OpPow:
				if r >= 0 {
					return Int(intPow(l, r)), nil
				}
				return Float(float32(math.Pow(float64(l), float64(r)))), nil
			case OpIsEq:
				return Bool(l == r), nil
			case OpIsLt:
				return Bool(l < r), nil
			case OpIsGt:
				return Bool(l > r), nil
			}
			return undef()
		}
		l, r := asFloat(left), asFloat(right)
		switch op {
		case OpAdd:
			return Float(l + r), nil
		case OpSub:
			return Float(l - r), nil
		case OpMul:
			return Float(l * r), nil
		case OpDiv:
			if r == 0 {
				return Nothing, runtimeErrorf("division by zero")
			}
			return Float(l / r), nil
		case OpPow:
			return Float(float32(math.Pow(float64(l), float64(r)))), nil
		case OpIsEq:
			return Bool(l == r), nil
		case OpIsLt:
			return Bool(l < r), nil
		case OpIsGt:
			return Bool(l > r), nil
		}
		return undef()
	}

	if op == OpIsEq && left.Tag == VNothing && right.Tag == VNothing {
		return Bool(true), nil
	}
	return undef()
}

func isNumeric(v Value) bool { return v.Tag == VInt || v.Tag == VFloat }

func asFloat(v Value) float32 {
	if v.Tag == VInt {
		return float32(v.AsInt())
	}
	return v.AsFloat()
}

func intPow(base, exp int32) int32 {
	result := int32(1)
	for i := int32(0); i < exp; i++ {
		result *= base
	}
	return result
}

// printValue writes a value's display form the way print shows it: a top
// level string is printed without quotes.
func printValue(w io.Writer, v Value) {
	if v.Tag == VString {
		fmt.Fprintln(w, v.AsStr())
		return
	}
	fmt.Fprintln(w, v.String())
}
