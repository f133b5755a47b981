package arith

import (
	"errors"
	"strconv"
)

// Lexical error kinds.
var (
	// ErrMalformedNumber indicates a numeric literal with a misplaced or
	// repeated decimal point.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrUnexpectedCharacter indicates a character that begins no token.
	ErrUnexpectedCharacter = errors.New("unexpected character")
)

// Syntax error kinds.
var (
	// ErrUnexpectedToken indicates a token in a position where the grammar
	// does not allow it, e.g. the second operator in "2++2".
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrUnbalancedParentheses indicates a close parenthesis with no
	// matching open parenthesis or vice versa.
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	// ErrUnexpectedEOF indicates that the input ended where an operand was
	// required, e.g. after a trailing operator.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrTrailingInput indicates tokens following a complete expression.
	ErrTrailingInput = errors.New("trailing input")
	// ErrNestingDepth indicates an expression nested more deeply than the
	// parser's configured limit.
	ErrNestingDepth = errors.New("expression nested too deeply")
)

// Evaluation error kinds.
var (
	// ErrDivisionByZero indicates a division or modulo by exactly zero, or
	// zero raised to a negative power.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDomain indicates an operand outside an operator's domain, e.g. a
	// negative number raised to a fractional power.
	ErrDomain = errors.New("outside domain")
	// ErrNaN indicates an operation with no numeric result, such as
	// subtracting infinities after an overflow.
	ErrNaN = errors.New("not a number")
)

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Err is the kind of error, either ErrMalformedNumber or
	// ErrUnexpectedCharacter.
	Err error
	// Text is the token the lexer was scanning when it found the error,
	// including the offending rune.
	Text string
	// Col is the column of the start of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Err.Error()+" "+strconv.Quote(err.Text))
}

func (err *LexError) Unwrap() error {
	return err.Err
}

func (err *LexError) Pos() int {
	return err.Col
}

// ParseError indicates a syntactically invalid token sequence. It implements
// InputError.
type ParseError struct {
	// Err is the kind of error, one of ErrUnexpectedToken,
	// ErrUnbalancedParentheses, ErrUnexpectedEOF, ErrTrailingInput, or
	// ErrNestingDepth.
	Err error
	// Token is the text of the token that caused the error. It is empty at
	// the end of input.
	Token string
	// Col is the column of the token that caused the error.
	Col int
}

func (err *ParseError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, err.Err.Error())
	}
	return errpos(err.Col, err.Err.Error()+" "+strconv.Quote(err.Token))
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Pos() int {
	return err.Col
}

// EvalError indicates an arithmetic failure while evaluating a parsed
// expression. It implements InputError.
type EvalError struct {
	// Err is the kind of error, one of ErrDivisionByZero, ErrDomain, or
	// ErrNaN.
	Err error
	// Op is the operator that failed.
	Op Operator
	// Col is the column of the operator in the source expression.
	Col int
}

func (err *EvalError) Error() string {
	return errpos(err.Col, err.Err.Error()+" in "+strconv.Quote(err.Op.String()))
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

func (err *EvalError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*EvalError)(nil)
)
