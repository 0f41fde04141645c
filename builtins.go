// builtins.go — the native function registry.
package calculator

import (
	"fmt"
	"math"
)

// builtinTable builds the registry of native functions. It is constructed
// once per interpreter so that print and random are bound to the
// interpreter's output writer and random source.
func builtinTable(in *Interp) map[string]Value {
	table := map[string]BuiltinImpl{
		"print": func(v Value) (Value, error) {
			printValue(in.Out, v)
			return Nothing, nil
		},
		"log": func(v Value) (Value, error) {
			if !isNumeric(v) {
				return Nothing, typeErr("log", v)
			}
			return Float(float32(math.Log(float64(asFloat(v))))), nil
		},
		"exp": func(v Value) (Value, error) {
			if !isNumeric(v) {
				return Nothing, typeErr("exp", v)
			}
			return Float(float32(math.Exp(float64(asFloat(v))))), nil
		},
		"length": func(v Value) (Value, error) {
			switch v.Tag {
			case VString:
				return Int(int32(len(v.AsStr()))), nil
			case VTuple:
				return Int(int32(len(v.AsTuple()))), nil
			}
			return Nothing, typeErr("length", v)
		},
		"random": func(v Value) (Value, error) {
			if v.Tag != VNothing {
				return Nothing, fmt.Errorf("%q built-in function accepts no arguments", "random")
			}
			return Float(in.rng.Float32()), nil
		},
		"mod": func(v Value) (Value, error) {
			if v.Tag == VTuple {
				if elems := v.AsTuple(); len(elems) == 2 && elems[0].Tag == VInt && elems[1].Tag == VInt {
					if elems[1].AsInt() == 0 {
						return Nothing, fmt.Errorf("division by zero")
					}
					return Int(elems[0].AsInt() % elems[1].AsInt()), nil
				}
			}
			return Nothing, fmt.Errorf("%q built-in function requires a 2-tuple of integers", "mod")
		},
	}

	values := make(map[string]Value, len(table))
	for name, impl := range table {
		values[name] = FuncVal(&Function{Name: name, Builtin: impl})
	}
	return values
}

func typeErr(name string, v Value) error {
	return fmt.Errorf("%q built-in function is not defined for arg of type %q", name, v.TypeName())
}
