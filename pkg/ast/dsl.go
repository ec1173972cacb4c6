package ast

import "lox/interpreter-go/pkg/token"

// Short constructors used by tests and tools that build trees by hand.

var operatorKinds = map[string]token.Kind{
	"-":  token.Minus,
	"+":  token.Plus,
	"/":  token.Slash,
	"*":  token.Star,
	"!":  token.Bang,
	"!=": token.BangEqual,
	"=":  token.Equal,
	"==": token.EqualEqual,
	">":  token.Greater,
	">=": token.GreaterEqual,
	"<":  token.Less,
	"<=": token.LessEqual,
}

// Op returns an operator token for the lexeme on line 1.
func Op(lexeme string) token.Token {
	kind, ok := operatorKinds[lexeme]
	if !ok {
		kind = token.Identifier
	}
	return token.New(kind, lexeme, nil, 1)
}

// Name returns an identifier token on line 1.
func Name(name string) token.Token {
	return token.New(token.Identifier, name, nil, 1)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Group(expr Expression) *Grouping {
	return NewGrouping(expr)
}

func Un(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(Op(op), operand)
}

func Bin(left Expression, op string, right Expression) *BinaryExpression {
	return NewBinaryExpression(left, Op(op), right)
}

func Var(name string) *Variable {
	return NewVariable(Name(name))
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(Name(name), value)
}

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Decl(name string, initializer Expression) *VarStatement {
	return NewVarStatement(Name(name), initializer)
}
