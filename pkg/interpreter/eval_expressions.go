package interpreter

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NilLiteral:
		return runtime.Nil, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Grouping:
		return i.evaluateExpression(n.Expression, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.Variable:
		val, err := env.Get(n.Name.Lexeme)
		if err != nil {
			return nil, undefinedVariable(n.Name, err)
		}
		return val, nil
	case *ast.Assignment:
		return i.evaluateAssignment(n, env)
	case nil:
		return nil, fmt.Errorf("interpreter: nil expression")
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateAssignment(assign *ast.Assignment, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(assign.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(assign.Name.Lexeme, val); err != nil {
		return nil, undefinedVariable(assign.Name, err)
	}
	return val, nil
}

func undefinedVariable(name token.Token, err error) error {
	if errors.Is(err, runtime.ErrUndefinedVariable) {
		return newRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
	}
	return err
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(operand)}, nil
	case token.Minus:
		n, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, newRuntimeError(expr.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -n.Val}, nil
	default:
		return nil, newRuntimeError(expr.Operator, fmt.Sprintf("Unsupported unary operator '%s'.", expr.Operator.Lexeme))
	}
}

// evaluateBinaryExpression evaluates the right operand before the left one;
// side effects in operands are observable in that order.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	rightVal, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	leftVal, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr.Operator, leftVal, rightVal)
}

func applyBinaryOperator(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch op.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case token.Plus:
		return add(op, left, right)
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	switch op.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l - r}, nil
	case token.Star:
		return runtime.NumberValue{Val: l * r}, nil
	case token.Slash:
		if r == 0 {
			return nil, newRuntimeError(op, "Division by zero.")
		}
		return runtime.NumberValue{Val: l / r}, nil
	case token.Greater:
		return runtime.BoolValue{Val: l > r}, nil
	case token.GreaterEqual:
		return runtime.BoolValue{Val: l >= r}, nil
	case token.Less:
		return runtime.BoolValue{Val: l < r}, nil
	case token.LessEqual:
		return runtime.BoolValue{Val: l <= r}, nil
	default:
		return nil, newRuntimeError(op, fmt.Sprintf("Unsupported binary operator '%s'.", op.Lexeme))
	}
}

// add implements '+': numeric sum, string concatenation, or concatenation
// of the printed forms when one side is a number and the other a string.
func add(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		switch r := right.(type) {
		case runtime.NumberValue:
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		case runtime.StringValue:
			return runtime.StringValue{Val: runtime.Stringify(l) + r.Val}, nil
		}
	case runtime.StringValue:
		switch r := right.(type) {
		case runtime.StringValue:
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		case runtime.NumberValue:
			return runtime.StringValue{Val: l.Val + runtime.Stringify(r)}, nil
		}
	}
	return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
}

func numberOperands(op token.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, newRuntimeError(op, "Operand must be numbers.")
	}
	return l.Val, r.Val, nil
}
