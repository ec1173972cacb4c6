package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/checker"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

const replPrompt = "> "

// session keeps globals alive across REPL lines.
type session struct {
	reporter *diag.WriterReporter
	interp   *interpreter.Interpreter
	mode     driver.CheckMode
}

func (c *cli) runREPL() int {
	mode := driver.CheckOff
	if env, ok := os.LookupEnv(checkModeEnv); ok {
		parsed, err := driver.ParseCheckMode(env)
		if err != nil {
			fmt.Fprintf(c.stderr, "%s: %v\n", checkModeEnv, err)
			return exitUsage
		}
		mode = parsed
	}
	reporter := diag.NewWriterReporter(c.stderr)
	s := &session{
		reporter: reporter,
		interp:   interpreter.New(interpreter.WithOutput(c.stdout), interpreter.WithReporter(reporter)),
		mode:     mode,
	}

	in := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, replPrompt)
		if !in.Scan() {
			break
		}
		c.evalLine(s, in.Text())
		s.reporter.Reset()
	}
	fmt.Fprintln(c.stdout)
	if err := in.Err(); err != nil {
		fmt.Fprintf(c.stderr, "read input: %v\n", err)
		return exitSoftware
	}
	return exitOK
}

// evalLine runs one line of input. A line that does not end in ';' is first
// tried as a bare expression whose value is printed.
func (c *cli) evalLine(s *session, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	tokens := scanner.New(line, s.reporter).ScanTokens()
	if s.reporter.HadError() {
		return
	}
	if !endsWithSemicolon(tokens) {
		if expr, err := parser.New(tokens, diag.Discard).ParseExpression(); err == nil {
			if c.checkLine(s, []ast.Statement{ast.NewExpressionStatement(expr)}) {
				return
			}
			c.reportEvalError(s.interp.InterpretExpression(expr))
			return
		}
	}
	stmts := parser.New(tokens, s.reporter).Parse()
	if s.reporter.HadError() {
		return
	}
	if c.checkLine(s, stmts) {
		return
	}
	c.reportEvalError(s.interp.Interpret(stmts))
}

// reportEvalError prints failures the interpreter did not already report,
// such as a failed write to the output.
func (c *cli) reportEvalError(err error) {
	var rtErr *interpreter.RuntimeError
	if err != nil && !errors.As(err, &rtErr) {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
	}
}

// checkLine reports static findings and returns true when strict mode
// should stop the line from running. The checker is seeded with the
// session's current globals.
func (c *cli) checkLine(s *session, stmts []ast.Statement) bool {
	if s.mode == driver.CheckOff {
		return false
	}
	chk := checker.New()
	for name, val := range s.interp.GlobalEnvironment().Snapshot() {
		chk.Declare(name, checker.TypeOf(val))
	}
	return c.reportCheck(chk, stmts, s.mode, s.reporter) && s.mode == driver.CheckStrict
}

func endsWithSemicolon(tokens []token.Token) bool {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Kind == token.EOF {
			continue
		}
		return tokens[i].Kind == token.Semicolon
	}
	return false
}
