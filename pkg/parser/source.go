package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/scanner"
)

// ParseSource scans and parses source text in one step. Scan and parse
// diagnostics both go to reporter.
func ParseSource(source string, reporter diag.Reporter) ([]ast.Statement, []*ParseError) {
	tokens := scanner.New(source, reporter).ScanTokens()
	p := New(tokens, reporter)
	stmts := p.Parse()
	return stmts, p.Errors()
}
