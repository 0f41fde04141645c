// debug.go — ASCII tree rendering of expressions for diagnostics.
package calculator

import (
	"fmt"
	"strings"
)

// FormatTree renders the expression as an indented tree, one node per line,
// with box-drawing rails connecting parents to children.
func FormatTree(expr Expression) string {
	switch e := expr.(type) {
	case *Literal:
		if e.Val.Tag == VFunction {
			if fn := e.Val.AsFunc(); fn.Builtin == nil {
				return formatSubtrees(
					fmt.Sprintf("Function %s", fn.Name),
					[]Expression{fn.Param, fn.Body},
				)
			}
		}
		return e.Val.String()
	case *Variable:
		return e.Name
	case *BinaryOperation:
		return formatSubtrees(e.Op.opName(), []Expression{e.Left, e.Right})
	case *UnaryOperation:
		return formatSubtrees(e.Op.opName(), []Expression{e.Operand})
	case *Scope:
		return formatSubtrees("┬── scope ───", e.Body)
	case *If:
		if e.IfFalse != nil {
			return formatSubtrees("IfElse", []Expression{e.Condition, e.IfTrue, e.IfFalse})
		}
		return formatSubtrees("If", []Expression{e.Condition, e.IfTrue})
	case *While:
		if e.IfCompleted != nil {
			return formatSubtrees("WhileElse", []Expression{e.Condition, e.Body, e.IfCompleted})
		}
		return formatSubtrees("While", []Expression{e.Condition, e.Body})
	default:
		return "?"
	}
}

// formatSubtrees renders the title line followed by each child subtree. The
// first line of a child hangs off a branch rail; its remaining lines are
// indented under a continuation rail, or plain spaces for the last child.
func formatSubtrees(title string, children []Expression) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteByte('\n')
	for idx, child := range children {
		last := idx == len(children)-1
		first, rest := "├─", "│ "
		if last {
			first, rest = "└─", "  "
		}
		lines := strings.Split(FormatTree(child), "\n")
		for li, line := range lines {
			if li == 0 {
				sb.WriteString(first)
			} else {
				sb.WriteString(rest)
			}
			sb.WriteString(line)
			if !last || li < len(lines)-1 {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
