package arith

import "strconv"

// Operator identifies an arithmetic operator.
type Operator int8

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/%^"

var opstrs = [...]string{
	OpNone: "",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "%",
	OpPow:  "^",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(opstrs) {
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
	return opstrs[op]
}

// Precedence returns the binding level of op as a binary operator. Higher
// binds tighter. OpNone has the lowest precedence.
func (op Operator) Precedence() int {
	return int(binop(op).prec)
}

// RightAssoc reports whether op is right-associative as a binary operator.
func (op Operator) RightAssoc() bool {
	return binop(op).right
}

// opfor gets the operator for a lexed operator rune.
func opfor(r rune) Operator {
	switch r {
	case '+':
		return OpAdd
	case '-':
		return OpSub
	case '*':
		return OpMul
	case '/':
		return OpDiv
	case '%':
		return OpMod
	case '^':
		return OpPow
	default:
		return OpNone
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

// moreBinding reports whether an operator p following a subexpression parsed
// at precedence than should take that subexpression as its left operand.
func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator. If there is no such binary operator, then the
// result has an op of nodeNone.
func binop(op Operator) operator {
	switch op {
	case OpAdd:
		return operator{1, false, nodeAdd}
	case OpSub:
		return operator{1, false, nodeSub}
	case OpMul:
		return operator{5, false, nodeMul}
	case OpDiv:
		return operator{5, false, nodeDiv}
	case OpMod:
		return operator{5, false, nodeMod}
	case OpPow:
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator. If there is no such unary operator, then the
// result has an op of nodeNone.
func unop(op Operator) operator {
	switch op {
	case OpSub:
		// Tighter than ^, so -3^2 is (-3)^2.
		return operator{20, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, false, nodeNone}
)
