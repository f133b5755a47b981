package arith

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Every node
// exclusively owns its children.
type node struct {
	kind nodeKind

	// text is the literal text of a nodeNum.
	text string
	// pos is the column of the literal or operator token.
	pos int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // push num

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodeMod // evaluate left, remainder by right
	nodePow // evaluate left, exp by right
)

var nodestrs = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeNeg:  "Neg",
	nodeAdd:  "Add",
	nodeSub:  "Sub",
	nodeMul:  "Mul",
	nodeDiv:  "Div",
	nodeMod:  "Mod",
	nodePow:  "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodestrs) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodestrs[k]
}

// op gets the operator that a node evaluates.
func (k nodeKind) op() Operator {
	switch k {
	case nodeNeg, nodeSub:
		return OpSub
	case nodeAdd:
		return OpAdd
	case nodeMul:
		return OpMul
	case nodeDiv:
		return OpDiv
	case nodeMod:
		return OpMod
	case nodePow:
		return OpPow
	default:
		return OpNone
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node fully parenthesized: binary operations as (l op r),
// negations as -(x), and literals as written.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.text)
	case nodeNeg:
		b.WriteString("-(")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(n.kind.op().String())
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("arith: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
