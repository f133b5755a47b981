package arith

import (
	"io"
	"strings"
)

// Expr = Term { ('+' | '-') Term }
// Term = Pow { ('*' | '/' | '%') Pow }
// Pow = Factor [ '^' Pow ]
// Factor = num | '(' Expr ')' | '-' Factor

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order. Parse reads src up to its end; the entire
// input must form one expression.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	return parse(lex(src), opts)
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// ParseTokens parses an expression from tokens already scanned, e.g. by
// Tokenize.
func ParseTokens(toks []Token, opts ...ParseOption) (*Expr, error) {
	return parse(&tokenSlice{toks: toks}, opts)
}

func parse(scan tokenSource, opts []ParseOption) (*Expr, error) {
	p := parsectx{maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.Kind {
	case tokenEOF:
	case TokenRightParen:
		return nil, &ParseError{Err: ErrUnbalancedParentheses, Token: tok.Text, Col: tok.Col}
	default:
		return nil, &ParseError{Err: ErrTrailingInput, Token: tok.Text, Col: tok.Col}
	}
	return &Expr{n: n}, nil
}

// parseterm parses a subexpression containing only operators more binding
// than until. If there is no error, then parseterm pushes the last token it
// scans, including EOF.
func parseterm(scan tokenSource, p *parsectx, until operator) (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	n, err := parselhs(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenOperator:
			prec := binop(tok.Op)
			if prec.op == nodeNone {
				return nil, unexpected(tok)
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, pos: tok.Col, left: n, right: rhs}
		case TokenNumber, TokenLeftParen, TokenRightParen, tokenEOF:
			// End of expression. The caller decides whether the token can
			// follow it.
			scan.push(tok)
			return n, nil
		default:
			panic("arith: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first operand of a term. I.e., operators are unary, and
// any encountered token must be valid as the start of a subexpression.
func parselhs(scan tokenSource, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if p.depth > p.maxdepth {
		return nil, &ParseError{Err: ErrNestingDepth, Token: tok.Text, Col: tok.Col}
	}
	switch tok.Kind {
	case TokenNumber:
		return &node{kind: nodeNum, text: tok.Text, pos: tok.Col}, nil
	case TokenOperator:
		prec := unop(tok.Op)
		if prec.op == nodeNone {
			return nil, unexpected(tok)
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		return &node{kind: prec.op, pos: tok.Col, left: rhs}, nil
	case TokenLeftParen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		switch end := scan.must(); end.Kind {
		case TokenRightParen:
			return rhs, nil
		case tokenEOF:
			// Report the bracket that was never closed.
			return nil, &ParseError{Err: ErrUnbalancedParentheses, Token: tok.Text, Col: tok.Col}
		default:
			return nil, unexpected(end)
		}
	case TokenRightParen:
		return nil, unexpected(tok)
	case tokenEOF:
		return nil, &ParseError{Err: ErrUnexpectedEOF, Col: tok.Col}
	default:
		panic("arith: unknown token: " + tok.String())
	}
}

// unexpected creates an error for a token that does not fit the grammar where
// it appeared.
func unexpected(tok Token) error {
	return &ParseError{Err: ErrUnexpectedToken, Token: tok.Text, Col: tok.Col}
}

// String creates a fully parenthesized representation of the parsed
// expression, e.g. "(2+(3*4))" for "2+3*4".
func (e *Expr) String() string {
	return e.n.String()
}
