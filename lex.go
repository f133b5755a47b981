package arith

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one lexical unit of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Op is the operator for TokenOperator tokens and OpNone otherwise.
	Op Operator
	// Text is the source text of the token.
	Text string
	// Col is the 1-based rune column at which the token starts.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// tokenEOF indicates the end of the input. Tokenize never returns it.
	tokenEOF
	// TokenNumber is a decimal literal such as 2 or 2.5.
	TokenNumber
	// TokenOperator is one of the operators in Operators.
	TokenOperator
	// TokenLeftParen is (.
	TokenLeftParen
	// TokenRightParen is ).
	TokenRightParen
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case TokenNumber:
		return "Number"
	case TokenOperator:
		return "Operator"
	case TokenLeftParen:
		return "LeftParen"
	case TokenRightParen:
		return "RightParen"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// tokenSource is a sequence of tokens with one token of pushback.
type tokenSource interface {
	// next returns the next token. After the EOF token has been returned
	// once, next returns io.EOF unless that token was pushed back.
	next() (Token, error)
	// push unreads a token so that it is the next token returned from next.
	push(Token)
	// must scans the pushed token.
	must() Token
}

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes read from src.
	col int
	p   Token
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok Token) {
	if l.p.Kind != tokenNone {
		panic("arith: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() Token {
	tok := l.p
	if tok.Kind == tokenNone {
		panic("arith: no pushed token")
	}
	l.p = Token{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, if the EOF
// token is not pushed, the result is an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	if l.p.Kind != tokenNone {
		tok := l.p
		l.p = Token{}
		return tok, nil
	}
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return Token{Kind: tokenEOF, Col: l.col + 1}, nil
			}
			return Token{}, err
		}
		col := l.col
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(col); err != nil {
				return Token{}, err
			}
			return Token{Kind: TokenNumber, Text: l.buf.String(), Col: col}, nil
		case r == '(':
			return Token{Kind: TokenLeftParen, Text: "(", Col: col}, nil
		case r == ')':
			return Token{Kind: TokenRightParen, Text: ")", Col: col}, nil
		default:
			if op := opfor(r); op != OpNone {
				return Token{Kind: TokenOperator, Op: op, Text: op.String(), Col: col}, nil
			}
			return Token{}, &LexError{Err: ErrUnexpectedCharacter, Text: string(r), Col: col}
		}
	}
}

// scanNum scans a maximal run of digits, optionally followed by a decimal
// point and at least one more digit. col is the column of the first rune.
func (l *lexer) scanNum(col int) error {
	var dig, dot, frac bool
scan:
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
			if dot {
				frac = true
			} else {
				dig = true
			}
		case r == '.':
			l.buf.WriteRune(r)
			if !dig || dot {
				return l.malformed(col)
			}
			dot = true
		default:
			l.unreadRune()
			break scan
		}
	}
	if dot && !frac {
		return l.malformed(col)
	}
	return nil
}

// malformed consumes the rest of a bad numeral so that it shows up in the
// error message, then returns the error.
func (l *lexer) malformed(col int) error {
	for {
		r, err := l.readRune()
		if err != nil {
			break
		}
		if r != '.' && (r < '0' || '9' < r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	return &LexError{Err: ErrMalformedNumber, Text: l.buf.String(), Col: col}
}

// Tokenize scans all tokens from src. The result does not include an end of
// input marker.
func Tokenize(src string) ([]Token, error) {
	l := lex(strings.NewReader(src))
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// tokenSlice is a tokenSource over already-scanned tokens.
type tokenSlice struct {
	toks []Token
	last Token
	p    Token
	eof  bool
}

// end gets the column just past the last token returned.
func (s *tokenSlice) end() int {
	if s.last.Kind == tokenNone {
		return 1
	}
	return s.last.Col + utf8.RuneCountInString(s.last.Text)
}

func (s *tokenSlice) next() (Token, error) {
	if s.p.Kind != tokenNone {
		tok := s.p
		s.p = Token{}
		return tok, nil
	}
	if len(s.toks) == 0 {
		if s.eof {
			return Token{}, io.EOF
		}
		s.eof = true
		return Token{Kind: tokenEOF, Col: s.end()}, nil
	}
	tok := s.toks[0]
	s.toks = s.toks[1:]
	if tok.Kind < TokenNumber || tok.Kind > TokenRightParen {
		return Token{}, unexpected(tok)
	}
	if tok.Kind == TokenNumber {
		if err := checkNumber(tok); err != nil {
			return Token{}, err
		}
	}
	s.last = tok
	return tok, nil
}

// checkNumber verifies that a number token holds exactly one literal the lexer
// would produce.
func checkNumber(tok Token) error {
	l := lex(strings.NewReader(tok.Text))
	t, err := l.next()
	if err != nil || t.Kind != TokenNumber || t.Text != tok.Text {
		return &LexError{Err: ErrMalformedNumber, Text: tok.Text, Col: tok.Col}
	}
	return nil
}

func (s *tokenSlice) push(tok Token) {
	if s.p.Kind != tokenNone {
		panic("arith: double push")
	}
	s.p = tok
}

func (s *tokenSlice) must() Token {
	tok := s.p
	if tok.Kind == tokenNone {
		panic("arith: no pushed token")
	}
	s.p = Token{}
	return tok
}
