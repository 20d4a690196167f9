package calc

import (
	"strings"
)

// node is a node in the abstract syntax tree of a program. Each node
// owns its children outright; the tree has no shared subtrees.
type node struct {
	kind nodeKind

	// text is the raw literal for nodeNum and the name for nodeVar,
	// nodeAssign, nodeCall, and nodeFn.
	text string

	left  *node
	right *node
	// els is the optional else body of a nodeIf.
	els *node
	// list holds the statements of a nodeLines or the arguments of a
	// nodeCall.
	list []*node
	// params holds the parameter names of a nodeFn.
	params []string
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeLines // list of statements; value is the last statement's
	nodeNum   // literal, converted at evaluation time
	nodeVar   // variable lookup

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodeMod // evaluate left, remainder by right
	nodePow // evaluate left, exp by right
	nodeNeg // evaluate left, then negate

	nodeGroup  // explicit parentheses; evaluates to left
	nodeAssign // bind text to left's value
	nodeCall   // call text with list as arguments
	nodeFn     // define text with params and body left
	nodeIf     // condition left, body right, optional els
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeLines:
		return "Lines"
	case nodeNum:
		return "Num"
	case nodeVar:
		return "Var"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodeMod:
		return "Mod"
	case nodePow:
		return "Pow"
	case nodeNeg:
		return "Neg"
	case nodeGroup:
		return "Group"
	case nodeAssign:
		return "Assign"
	case nodeCall:
		return "Call"
	case nodeFn:
		return "Fn"
	case nodeIf:
		return "If"
	default:
		return "nodeKind(?)"
	}
}

// binaryOp returns the operator text for binary node kinds and ""
// otherwise.
func (k nodeKind) binaryOp() string {
	switch k {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeMod:
		return "%"
	case nodePow:
		return "^"
	default:
		return ""
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes a fully parenthesized rendering of the subtree, used in
// error messages and parser tests.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeLines:
		for i, s := range n.list {
			if i > 0 {
				b.WriteString("; ")
			}
			s.fmt(b)
		}
	case nodeNum, nodeVar:
		b.WriteString(n.text)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(" " + n.kind.binaryOp() + " ")
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeGroup:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAssign:
		b.WriteByte('(')
		b.WriteString(n.text)
		b.WriteString(" = ")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeCall:
		b.WriteString(n.text)
		b.WriteByte('(')
		for i, a := range n.list {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	case nodeFn:
		b.WriteString("fn " + n.text + "(")
		b.WriteString(strings.Join(n.params, ", "))
		b.WriteString(") { ")
		n.left.fmt(b)
		b.WriteString(" }")
	case nodeIf:
		b.WriteString("if (")
		n.left.fmt(b)
		b.WriteString(") { ")
		n.right.fmt(b)
		b.WriteString(" }")
		if n.els != nil {
			b.WriteString(" else { ")
			n.els.fmt(b)
			b.WriteString(" }")
		}
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// AST is a parsed program that can be evaluated with a context.
type AST struct {
	// n is the root nodeLines of the program.
	n *node
	// names is the sorted list of variable names the program reads.
	names []string
}

// Vars returns the names of the variables the program references,
// excluding function parameters bound inside function bodies.
func (a *AST) Vars() []string {
	return append([]string(nil), a.names...)
}

// String creates a fully parenthesized rendering of the parsed
// program, with statements joined by "; ".
func (a *AST) String() string {
	var b strings.Builder
	a.n.fmt(&b)
	return b.String()
}
