package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// expression → assignment
func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

// assignment → IDENTIFIER "=" assignment | equality
//
// An invalid target is reported but does not abort the production; the
// left-hand expression is returned unchanged.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	if p.match(token.Equal) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if variable, ok := expr.(*ast.Variable); ok {
			return ast.NewAssignment(variable.Name, value), nil
		}
		p.error(equals, "Invalid assignment target.")
	}
	return expr, nil
}

// equality → comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() (ast.Expression, error) {
	return p.leftAssociative(p.comparison, token.BangEqual, token.EqualEqual)
}

// comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
func (p *Parser) comparison() (ast.Expression, error) {
	return p.leftAssociative(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

// term → factor ( ( "-" | "+" ) factor )*
func (p *Parser) term() (ast.Expression, error) {
	return p.leftAssociative(p.factor, token.Minus, token.Plus)
}

// factor → unary ( ( "/" | "*" ) unary )*
func (p *Parser) factor() (ast.Expression, error) {
	return p.leftAssociative(p.unary, token.Slash, token.Star)
}

// leftAssociative folds operand (op operand)* into a left-leaning chain of
// binary nodes.
func (p *Parser) leftAssociative(operand func() (ast.Expression, error), operators ...token.Kind) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(expr, operator, right)
	}
	return expr, nil
}

// unary → ( "!" | "-" ) unary | primary
func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(operator, operand), nil
	}
	return p.primary()
}

// primary → NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")" | IDENTIFIER
func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.False):
		return ast.NewBooleanLiteral(false), nil
	case p.match(token.True):
		return ast.NewBooleanLiteral(true), nil
	case p.match(token.Nil):
		return ast.NewNilLiteral(), nil
	case p.match(token.Number):
		return p.numberLiteral(p.previous())
	case p.match(token.String):
		return p.stringLiteral(p.previous())
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	case p.match(token.Identifier):
		return ast.NewVariable(p.previous()), nil
	}
	return nil, p.error(p.peek(), "Expect expression.")
}

// numberLiteral and stringLiteral guard against tokens built without the
// literal payload the scanner normally attaches.
func (p *Parser) numberLiteral(tok token.Token) (ast.Expression, error) {
	value, ok := tok.Literal.(float64)
	if !ok {
		return nil, p.error(tok, "Malformed number literal.")
	}
	return ast.NewNumberLiteral(value), nil
}

func (p *Parser) stringLiteral(tok token.Token) (ast.Expression, error) {
	value, ok := tok.Literal.(string)
	if !ok {
		return nil, p.error(tok, "Malformed string literal.")
	}
	return ast.NewStringLiteral(value), nil
}
