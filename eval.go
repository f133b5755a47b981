package arith

import (
	"io"
	"math/big"
	"strconv"
	"strings"
)

// DefaultPrec is the precision of calculations in bits when no Prec option is
// given.
const DefaultPrec = 64

// DefaultRound is the number of decimal places to which Evaluate and
// Context.Float64 round results when no Round option is given.
const DefaultRound = 15

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently, but separate contexts share nothing.
type Context struct {
	stack []*big.Float
	prec  uint
	round int
	// at is the node being operated on, for reporting errors from panics.
	at *node
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt  uint
	roundopt int
)

func (precopt) ctxOption()  {}
func (roundopt) ctxOption() {}

// Prec sets the precision of calculations in bits. Panics if prec is zero.
func Prec(prec uint) ContextOption {
	if prec == 0 {
		panic("arith: zero precision")
	}
	return precopt(prec)
}

// Round sets the number of decimal places to which float64 results are
// rounded. A negative value disables rounding.
func Round(places int) ContextOption {
	return roundopt(places)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec; if no rounding is given, it is DefaultRound.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: DefaultPrec, round: DefaultRound}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case precopt:
			ctx.prec = uint(opt)
		case roundopt:
			ctx.round = int(opt)
		default:
			panic("arith: unknown option type")
		}
	}
	return &ctx
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates an expression and returns the result. If an arithmetic error
// occurs, such as division by zero, the result is nil and the error is an
// *EvalError.
func (ctx *Context) Eval(e *Expr) (r *big.Float, err error) {
	if len(ctx.stack) != 0 {
		panic("arith: Eval during Eval")
	}
	defer func() {
		ctx.stack = ctx.stack[:0]
		ctx.at = nil
	}()
	defer ctx.recoverNaN(&err)
	if err = e.n.eval(ctx); err != nil {
		return nil, err
	}
	if len(ctx.stack) != 1 {
		panic("arith: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
	return new(big.Float).Copy(ctx.stack[0]), nil
}

// recoverNaN converts a big.ErrNaN panic from an arithmetic operation into an
// evaluation error. Other panics propagate.
func (ctx *Context) recoverNaN(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(big.ErrNaN); !ok {
		panic(r)
	}
	e := &EvalError{Err: ErrNaN}
	if ctx.at != nil {
		e.Op = ctx.at.kind.op()
		e.Col = ctx.at.pos
	}
	*err = e
}

// Float64 converts a result to the nearest float64 and rounds it to the
// context's number of decimal places.
func (ctx *Context) Float64(x *big.Float) float64 {
	f, _ := x.Float64()
	return RoundFloat(f, ctx.round)
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		if _, _, err := ctx.push().Parse(n.text, 10); err != nil {
			panic("arith: invalid number: " + n.text + " (" + err.Error() + ")")
		}
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		ctx.at = n
		if err := n.binary(l, r); err != nil {
			return &EvalError{Err: err, Op: n.kind.op(), Col: n.pos}
		}
	default:
		panic("arith: invalid AST node " + n.kind.String())
	}
	return nil
}

// binary sets l to l op r for a binary operator node. The result is one of
// the evaluation error kinds.
func (n *node) binary(l, r *big.Float) error {
	switch n.kind {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		if r.Sign() == 0 {
			return ErrDivisionByZero
		}
		l.Quo(l, r)
	case nodeMod:
		if r.Sign() == 0 {
			return ErrDivisionByZero
		}
		if l.IsInf() {
			return ErrNaN
		}
		mod(l, r)
	case nodePow:
		return pow(l, l, r)
	default:
		panic("arith: not a binary node " + n.kind.String())
	}
	return nil
}

// mod sets l to the absolute value of the remainder of l truncated-divided by
// r. r must be nonzero and l finite. The remainder is computed exactly and then
// rounded to l's precision.
func mod(l, r *big.Float) {
	if r.IsInf() {
		l.Abs(l)
		return
	}
	// |l| = m*2^a and |r| = n*2^b for integers m and n.
	m, a := intexp(l)
	n, b := intexp(r)
	var rem big.Int
	switch {
	case a >= b:
		k := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(a-b)), n)
		rem.Mul(m, k)
		rem.Mod(&rem, n)
		a = b
	case m.BitLen() <= b-a:
		// |l| < |r|
		rem.Set(m)
	default:
		rem.Mod(m, new(big.Int).Lsh(n, uint(b-a)))
	}
	l.SetInt(&rem)
	l.SetMantExp(l, a)
}

// intexp splits |x| into an integer and a binary exponent. x must be finite.
func intexp(x *big.Float) (*big.Int, int) {
	var mant big.Float
	e := x.MantExp(&mant)
	p := int(x.MinPrec())
	mant.SetMantExp(&mant, p)
	m, _ := mant.Int(nil)
	return m.Abs(m), e - p
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).Eval(a)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return Eval(strings.NewReader(src), opts...)
}

// Evaluate lexes, parses, and evaluates src, returning the result as a
// rounded float64. The error, if any, is the first *LexError, *ParseError, or
// *EvalError encountered. Each call uses its own context, so Evaluate is safe
// for concurrent use.
func Evaluate(src string, opts ...ContextOption) (float64, error) {
	a, err := ParseString(src)
	if err != nil {
		return 0, err
	}
	ctx := NewContext(opts...)
	r, err := ctx.Eval(a)
	if err != nil {
		return 0, err
	}
	return ctx.Float64(r), nil
}
