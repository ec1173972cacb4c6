package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return err
	case *ast.PrintStatement:
		val, err := i.evaluateExpression(n.Expression, env)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(i.out, runtime.Stringify(val)); err != nil {
			return fmt.Errorf("interpreter: write output: %w", err)
		}
		return nil
	case *ast.VarStatement:
		return i.evaluateVarStatement(n, env)
	case nil:
		return fmt.Errorf("interpreter: nil statement")
	default:
		return fmt.Errorf("interpreter: unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateVarStatement(stmt *ast.VarStatement, env *runtime.Environment) error {
	value := runtime.Nil
	if stmt.Initializer != nil {
		val, err := i.evaluateExpression(stmt.Initializer, env)
		if err != nil {
			return err
		}
		value = val
	}
	env.Define(stmt.Name.Lexeme, value)
	return nil
}
