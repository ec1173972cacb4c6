package checker

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

// Checker walks a program in execution order and records operations that
// are certain to fail at run time. Programs have no control flow, so the
// type recorded for each global is exact at every point it is read.
type Checker struct {
	global      *Environment
	diagnostics []Diagnostic
}

// Diagnostic represents a statically detected runtime failure.
type Diagnostic struct {
	Message string
	Token   token.Token
}

// Diag converts the finding into a reporter diagnostic.
func (d Diagnostic) Diag(severity diag.Severity) diag.Diagnostic {
	out := diag.AtToken(diag.PhaseCheck, d.Token, d.Message)
	out.Severity = severity
	return out
}

// New returns a checker with no known globals.
func New() *Checker {
	return &Checker{global: NewEnvironment()}
}

// Declare seeds a global, e.g. one left over from an earlier REPL line.
func (c *Checker) Declare(name string, typ Type) {
	if typ == nil {
		typ = unknown
	}
	c.global.Define(name, typ)
}

// Check inspects the statements and returns diagnostics in source order.
// Globals declared by the statements stay known for later calls.
func (c *Checker) Check(stmts []ast.Statement) []Diagnostic {
	c.diagnostics = nil
	for _, stmt := range stmts {
		c.checkStatement(stmt)
	}
	return c.diagnostics
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		c.checkExpression(s.Expression)
	case *ast.PrintStatement:
		c.checkExpression(s.Expression)
	case *ast.VarStatement:
		typ := nilType
		if s.Initializer != nil {
			typ = c.checkExpression(s.Initializer)
		}
		c.global.Define(s.Name.Lexeme, typ)
	}
}

func (c *Checker) checkExpression(expr ast.Expression) Type {
	switch e := expr.(type) {
	case *ast.NilLiteral:
		return nilType
	case *ast.BooleanLiteral:
		return boolType
	case *ast.NumberLiteral:
		return numberType
	case *ast.StringLiteral:
		return stringType
	case *ast.Grouping:
		return c.checkExpression(e.Expression)
	case *ast.UnaryExpression:
		return c.checkUnary(e)
	case *ast.BinaryExpression:
		return c.checkBinary(e)
	case *ast.Variable:
		typ, ok := c.global.Lookup(e.Name.Lexeme)
		if !ok {
			c.report(e.Name, fmt.Sprintf("Undefined variable '%s'.", e.Name.Lexeme))
			return unknown
		}
		return typ
	case *ast.Assignment:
		typ := c.checkExpression(e.Value)
		if !c.global.Update(e.Name.Lexeme, typ) {
			c.report(e.Name, fmt.Sprintf("Undefined variable '%s'.", e.Name.Lexeme))
		}
		return typ
	default:
		return unknown
	}
}

func (c *Checker) checkUnary(e *ast.UnaryExpression) Type {
	operand := c.checkExpression(e.Operand)
	switch e.Operator.Kind {
	case token.Bang:
		return boolType
	case token.Minus:
		if isKnown(operand) && !isKind(operand, PrimitiveNumber) {
			c.report(e.Operator, "Operand must be a number.")
			return unknown
		}
		return numberType
	default:
		return unknown
	}
}

func (c *Checker) report(tok token.Token, message string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{Message: message, Token: tok})
}
