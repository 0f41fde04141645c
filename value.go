// value.go — the closed runtime value model.
package calculator

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueTag discriminates the payload stored in Value.Data.
type ValueTag int

const (
	VNothing ValueTag = iota
	VInt              // int32
	VFloat            // float32
	VString           // string
	VBool             // bool
	VFunction         // *Function
	VTuple            // []Value
	VReturned         // Value, the wrapped result of a return statement
)

// Value is a tagged union. All runtime state (variables, tuple elements,
// function results) is made of these.
type Value struct {
	Tag  ValueTag
	Data any
}

// Nothing is the unit value. It compares equal only to itself.
var Nothing = Value{Tag: VNothing}

func Int(v int32) Value         { return Value{VInt, v} }
func Float(v float32) Value     { return Value{VFloat, v} }
func Str(v string) Value        { return Value{VString, v} }
func Bool(v bool) Value         { return Value{VBool, v} }
func Tup(vs []Value) Value      { return Value{VTuple, vs} }
func FuncVal(f *Function) Value { return Value{VFunction, f} }

// ReturnedVal wraps a value produced by a return statement. The wrapper
// travels up through enclosing scopes until a returnable scope unwraps it.
func ReturnedVal(inner Value) Value { return Value{VReturned, inner} }

func (v Value) AsInt() int32      { return v.Data.(int32) }
func (v Value) AsFloat() float32  { return v.Data.(float32) }
func (v Value) AsStr() string     { return v.Data.(string) }
func (v Value) AsBool() bool      { return v.Data.(bool) }
func (v Value) AsFunc() *Function { return v.Data.(*Function) }
func (v Value) AsTuple() []Value  { return v.Data.([]Value) }
func (v Value) AsReturned() Value { return v.Data.(Value) }

// TypeName is the name used in runtime error messages.
func (v Value) TypeName() string {
	switch v.Tag {
	case VNothing:
		return "nothing"
	case VInt:
		return "integer"
	case VFloat:
		return "float"
	case VString:
		return "string"
	case VBool:
		return "boolean"
	case VFunction:
		return "function"
	case VTuple:
		return "tuple"
	case VReturned:
		return "returned value"
	default:
		return "unknown"
	}
}

// String renders the value for display: print output, REPL echo, traces.
func (v Value) String() string {
	switch v.Tag {
	case VNothing:
		return "nothing"
	case VInt:
		return strconv.FormatInt(int64(v.AsInt()), 10)
	case VFloat:
		return strconv.FormatFloat(float64(v.AsFloat()), 'g', -1, 32)
	case VString:
		return fmt.Sprintf("%q", v.AsStr())
	case VBool:
		if v.AsBool() {
			return "True"
		}
		return "False"
	case VFunction:
		f := v.AsFunc()
		if f.Builtin != nil {
			return fmt.Sprintf("built-in function %q", f.Name)
		}
		return fmt.Sprintf("function %q", f.Name)
	case VTuple:
		elems := v.AsTuple()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case VReturned:
		return "returned " + v.AsReturned().String()
	default:
		return "<invalid value>"
	}
}

// BuiltinImpl is the native implementation of a built-in function. It
// receives the already-evaluated argument.
type BuiltinImpl func(v Value) (Value, error)

// Function is callable runtime state. Exactly one of Builtin or Body is set:
// built-ins carry a native implementation, user-defined functions carry the
// parameter pattern and body expression captured at definition time.
type Function struct {
	Name    string
	Builtin BuiltinImpl
	Param   Expression
	Body    Expression
}
