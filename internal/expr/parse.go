package expr

import "github.com/nbutterworth/csvfix/internal/csverr"

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t

	return nil
}

func (p *parser) expectOp(op string) bool {
	return p.tok.kind == tOp && p.tok.text == op
}

// parseOr handles the lowest-precedence connective, ||.
func (p *parser) parseOr() (node, error) {
	x, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.expectOp("||") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		x = binaryNode{op: "||", x: x, y: y}
	}

	return x, nil
}

func (p *parser) parseAnd() (node, error) {
	x, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.expectOp("&&") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		x = binaryNode{op: "&&", x: x, y: y}
	}

	return x, nil
}

func (p *parser) parseComparison() (node, error) {
	x, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tOp {
		switch p.tok.text {
		case "==", "!=", "<", "<=", ">", ">=":
			op := p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			y, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			x = binaryNode{op: op, x: x, y: y}
		default:
			return x, nil
		}
	}

	return x, nil
}

func (p *parser) parseAdditive() (node, error) {
	x, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		x = binaryNode{op: op, x: x, y: y}
	}

	return x, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tOp && (p.tok.text == "*" || p.tok.text == "/") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		x = binaryNode{op: op, x: x, y: y}
	}

	return x, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.tok.kind == tOp && (p.tok.text == "!" || p.tok.text == "-") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return unaryNode{op: op, x: x}, nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok.kind {
	case tNumber:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}

		return litNode(text), nil

	case tString:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}

		return litNode(text), nil

	case tParam:
		n := p.tok.n
		if err := p.advance(); err != nil {
			return nil, err
		}

		return paramNode(n), nil

	case tLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tRParen {
			return nil, csverr.New("expected closing parenthesis in expression")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		return x, nil

	default:
		return nil, csverr.Newf("unexpected token in expression: %q", p.tok.text)
	}
}
