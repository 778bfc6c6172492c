package expr

import (
	"strings"

	"github.com/nbutterworth/csvfix/internal/csverr"
)

type tokenKind int

const (
	tEOF tokenKind = iota
	tNumber
	tString
	tParam
	tIdent
	tOp
	tLParen
	tRParen
)

type token struct {
	kind tokenKind
	text string
	n    int // parameter index, for tParam
}

// lexer tokenizes an expression over $1..$N positional parameters,
// string and numeric literals, and the operators
// + - * / == != < <= > >= && || ! ( ).
type lexer struct {
	src []rune
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src)}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}

	return l.src[l.pos]
}

func (l *lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}

	return l.src[l.pos+off]
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}

	if l.pos >= len(l.src) {
		return token{kind: tEOF}, nil
	}

	c := l.src[l.pos]

	switch {
	case c == '$':
		l.pos++
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == start {
			return token{}, csverr.New("expected digits after $ in expression")
		}
		n := 0
		for _, d := range l.src[start:l.pos] {
			n = n*10 + int(d-'0')
		}

		return token{kind: tParam, n: n}, nil

	case isDigit(c):
		start := l.pos
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
			l.pos++
		}

		return token{kind: tNumber, text: string(l.src[start:l.pos])}, nil

	case c == '"' || c == '\'':
		quote := c
		l.pos++
		var b strings.Builder
		for l.pos < len(l.src) && l.src[l.pos] != quote {
			b.WriteRune(l.src[l.pos])
			l.pos++
		}
		if l.pos >= len(l.src) {
			return token{}, csverr.New("unterminated string literal in expression")
		}
		l.pos++

		return token{kind: tString, text: b.String()}, nil

	case c == '(':
		l.pos++
		return token{kind: tLParen}, nil

	case c == ')':
		l.pos++
		return token{kind: tRParen}, nil

	case c == '&' && l.peekAt(1) == '&':
		l.pos += 2
		return token{kind: tOp, text: "&&"}, nil

	case c == '|' && l.peekAt(1) == '|':
		l.pos += 2
		return token{kind: tOp, text: "||"}, nil

	case c == '=' && l.peekAt(1) == '=':
		l.pos += 2
		return token{kind: tOp, text: "=="}, nil

	case c == '!' && l.peekAt(1) == '=':
		l.pos += 2
		return token{kind: tOp, text: "!="}, nil

	case c == '<' && l.peekAt(1) == '=':
		l.pos += 2
		return token{kind: tOp, text: "<="}, nil

	case c == '>' && l.peekAt(1) == '=':
		l.pos += 2
		return token{kind: tOp, text: ">="}, nil

	case strings.ContainsRune("+-*/<>!", c):
		l.pos++
		return token{kind: tOp, text: string(c)}, nil

	case isAlpha(c):
		start := l.pos
		for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
			l.pos++
		}

		return token{kind: tIdent, text: string(l.src[start:l.pos])}, nil

	default:
		return token{}, csverr.Newf("unexpected character %q in expression", c)
	}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
func isDigit(r rune) bool { return '0' <= r && r <= '9' }
func isAlpha(r rune) bool { return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }
func isAlnum(r rune) bool { return isAlpha(r) || isDigit(r) }
