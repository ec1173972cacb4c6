package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

// ParseError carries the offending token and message for a syntax error.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	return diag.AtToken(diag.PhaseParse, e.Token, e.Message).String()
}

// Parser is a recursive-descent parser over a scanned token sequence. A
// Parser holds a cursor and is not safe for concurrent use.
type Parser struct {
	tokens   []token.Token
	current  int
	reporter diag.Reporter
	errors   []*ParseError
}

// New creates a parser. tokens should end with an EOF token; one is
// appended if it is missing. A nil reporter discards diagnostics.
func New(tokens []token.Token, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.Discard
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(append([]token.Token(nil), tokens...), token.EOFToken(line))
	}
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse parses the whole token sequence into statements. Declarations that
// fail to parse are reported, skipped and left out of the result.
func (p *Parser) Parse() []ast.Statement {
	p.current = 0
	p.errors = nil
	var statements []ast.Statement
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// ParseExpression parses a single expression that must span the whole
// token sequence.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	p.current = 0
	p.errors = nil
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.error(p.peek(), "Expect end of expression.")
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return expr, nil
}

// Errors returns the syntax errors reported by the last parse.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

func (p *Parser) declaration() ast.Statement {
	var (
		stmt ast.Statement
		err  error
	)
	if p.match(token.Var) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err != nil {
		// Already reported where it was detected.
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(token.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarStatement(name, initializer), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	if p.match(token.Print) {
		return p.printStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.NewPrintStatement(value), nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}

// synchronize discards tokens until the start of the next statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.error(p.peek(), message)
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// error reports a syntax error immediately and returns it for unwinding.
func (p *Parser) error(tok token.Token, message string) *ParseError {
	err := &ParseError{Token: tok, Message: message}
	p.errors = append(p.errors, err)
	p.reporter.Report(diag.AtToken(diag.PhaseParse, tok, message))
	return err
}
