package checker

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func (c *Checker) checkBinary(e *ast.BinaryExpression) Type {
	// Same order as evaluation: right operand first.
	right := c.checkExpression(e.Right)
	left := c.checkExpression(e.Left)

	switch e.Operator.Kind {
	case token.EqualEqual, token.BangEqual:
		return boolType
	case token.Plus:
		return c.checkPlus(e.Operator, left, right)
	case token.Minus, token.Star, token.Slash:
		if !c.numericOperands(e.Operator, left, right) {
			return unknown
		}
		if e.Operator.Kind == token.Slash && isLiteralZero(e.Right) {
			c.report(e.Operator, "Division by zero.")
			return unknown
		}
		return numberType
	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		if !c.numericOperands(e.Operator, left, right) {
			return unknown
		}
		return boolType
	default:
		return unknown
	}
}

func (c *Checker) checkPlus(op token.Token, left, right Type) Type {
	addable := func(t Type) bool {
		return !isKnown(t) || isKind(t, PrimitiveNumber) || isKind(t, PrimitiveString)
	}
	if !addable(left) || !addable(right) {
		c.report(op, "Operands must be two numbers or two strings.")
		return unknown
	}
	switch {
	case isKind(left, PrimitiveNumber) && isKind(right, PrimitiveNumber):
		return numberType
	case isKind(left, PrimitiveString) || isKind(right, PrimitiveString):
		return stringType
	default:
		return unknown
	}
}

// numericOperands reports when either side is known not to be a number.
func (c *Checker) numericOperands(op token.Token, left, right Type) bool {
	for _, t := range []Type{left, right} {
		if isKnown(t) && !isKind(t, PrimitiveNumber) {
			c.report(op, "Operand must be numbers.")
			return false
		}
	}
	return true
}

func isLiteralZero(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return e.Value == 0
	case *ast.Grouping:
		return isLiteralZero(e.Expression)
	case *ast.UnaryExpression:
		return e.Operator.Kind == token.Minus && isLiteralZero(e.Operand)
	default:
		return false
	}
}
