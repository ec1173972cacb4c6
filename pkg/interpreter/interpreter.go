package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// RuntimeError is raised during evaluation and names the operator or
// identifier token responsible.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s [line %d]", e.Message, e.Token.Line)
}

func newRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

// Interpreter evaluates Lox syntax trees directly.
type Interpreter struct {
	global   *runtime.Environment
	out      io.Writer
	reporter diag.Reporter
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithReporter sets the collaborator runtime errors are reported to.
func WithReporter(r diag.Reporter) Option {
	return func(i *Interpreter) { i.reporter = r }
}

// WithEnvironment seeds the global environment.
func WithEnvironment(env *runtime.Environment) Option {
	return func(i *Interpreter) { i.global = env }
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	interp := &Interpreter{out: os.Stdout, reporter: diag.Discard}
	for _, opt := range opts {
		opt(interp)
	}
	if interp.global == nil {
		interp.global = runtime.NewEnvironment()
	}
	if interp.out == nil {
		interp.out = io.Discard
	}
	if interp.reporter == nil {
		interp.reporter = diag.Discard
	}
	return interp
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interpret executes statements in order. The first runtime error is
// reported, stops execution and is returned; bindings made before it are
// kept. Callers should not report the returned error again.
func (i *Interpreter) Interpret(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := i.Execute(stmt); err != nil {
			return i.fail(err)
		}
	}
	return nil
}

// InterpretExpression evaluates a single expression and prints its value.
func (i *Interpreter) InterpretExpression(expr ast.Expression) error {
	val, err := i.Evaluate(expr)
	if err != nil {
		return i.fail(err)
	}
	if _, err := fmt.Fprintln(i.out, runtime.Stringify(val)); err != nil {
		return fmt.Errorf("interpreter: write output: %w", err)
	}
	return nil
}

func (i *Interpreter) fail(err error) error {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		i.reporter.Report(diag.AtToken(diag.PhaseRuntime, rtErr.Token, rtErr.Message))
	}
	return err
}

// Evaluate computes the value of an expression without reporting errors.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	return i.evaluateExpression(expr, i.global)
}

// Execute runs one statement without reporting errors.
func (i *Interpreter) Execute(stmt ast.Statement) error {
	return i.evaluateStatement(stmt, i.global)
}
