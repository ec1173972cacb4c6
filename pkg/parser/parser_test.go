package parser

import (
	"reflect"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

func mustParse(t *testing.T, source string) []ast.Statement {
	t.Helper()
	stmts, errs := ParseSource(source, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", source, errs)
	}
	return stmts
}

func mustParseExpression(t *testing.T, source string) ast.Expression {
	t.Helper()
	p := New(scanner.New(source, nil).ScanTokens(), nil)
	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression(%q) failed: %v", source, err)
	}
	return expr
}

func TestParseExpressionPrecedence(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"10 - 3 - 2", "(- (- 10 3) 2)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"1 < 2 == 3 >= 4", "(== (< 1 2) (>= 3 4))"},
		{"!!true != false", "(!= (! (! true)) false)"},
		{"-x * -2", "(* (- x) (- 2))"},
		{"a = b = 3", "(= a (= b 3))"},
		{"a = 1 + 2", "(= a (+ 1 2))"},
		{`"s" + nil`, `(+ "s" nil)`},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			if got := ast.Format(mustParseExpression(t, tc.source)); got != tc.want {
				t.Fatalf("Format = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParseExpressionBuildsExpectedTree(t *testing.T) {
	got := mustParseExpression(t, "1 + 2 * 3")
	want := ast.Bin(ast.Num(1), "+", ast.Bin(ast.Num(2), "*", ast.Num(3)))
	if ast.Format(got) != ast.Format(want) {
		t.Fatalf("tree = %s, want %s", ast.Format(got), ast.Format(want))
	}
	bin, ok := got.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected binary expression, got %T", got)
	}
	if bin.Operator.Kind != token.Plus || bin.Operator.Line != 1 {
		t.Fatalf("unexpected operator token %+v", bin.Operator)
	}
}

func TestParseStatements(t *testing.T) {
	stmts := mustParse(t, "var a; var b = 1; print a; b = 2;\nprint b;")
	want := []string{
		"(var a)",
		"(var b 1)",
		"(print a)",
		"(; (= b 2))",
		"(print b)",
	}
	var got []string
	for _, stmt := range stmts {
		got = append(got, ast.Format(stmt))
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("statements = %v, want %v", got, want)
	}
	if _, ok := stmts[0].(*ast.VarStatement); !ok {
		t.Fatalf("expected *ast.VarStatement, got %T", stmts[0])
	}
	if stmts[0].(*ast.VarStatement).Initializer != nil {
		t.Fatalf("expected nil initializer for bare declaration")
	}
}

func TestParseEmptyProgram(t *testing.T) {
	stmts := mustParse(t, "  // nothing here\n")
	if len(stmts) != 0 {
		t.Fatalf("expected no statements, got %d", len(stmts))
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	var collector diag.Collector
	stmts, errs := ParseSource("var ; print 1;", &collector)
	if len(stmts) != 1 || ast.Format(stmts[0]) != "(print 1)" {
		t.Fatalf("expected only the print statement, got %s", ast.FormatProgram(stmts))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 parse error, got %d", len(errs))
	}
	if errs[0].Message != "Expect variable name." {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if got := errs[0].Error(); got != "[line 1] Error at ';': Expect variable name." {
		t.Fatalf("unexpected rendering %q", got)
	}
	if len(collector.Diagnostics) != 1 || collector.Diagnostics[0].Phase != diag.PhaseParse {
		t.Fatalf("expected one reported parse diagnostic, got %+v", collector.Diagnostics)
	}
}

func TestParseReportsMultipleErrors(t *testing.T) {
	source := strings.Join([]string{
		"print (1 + 2;",
		"print 3;",
		"var x = ;",
		"print 4",
	}, "\n")
	stmts, errs := ParseSource(source, nil)
	if got := ast.FormatProgram(stmts); got != "(print 3)" {
		t.Fatalf("unexpected statements %q", got)
	}
	var messages []string
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	want := []string{
		"[line 1] Error at ';': Expect ')' after expression.",
		"[line 3] Error at ';': Expect expression.",
		"[line 4] Error at end: Expect ';' after value.",
	}
	if !reflect.DeepEqual(messages, want) {
		t.Fatalf("errors = %v, want %v", messages, want)
	}
}

func TestParseSynchronizesAtKeyword(t *testing.T) {
	stmts, errs := ParseSource("1 + + print 2; print 3;", nil)
	if len(errs) != 1 || errs[0].Message != "Expect expression." {
		t.Fatalf("unexpected errors %v", errs)
	}
	if got := ast.FormatProgram(stmts); got != "(print 2)\n(print 3)" {
		t.Fatalf("unexpected statements %q", got)
	}
}

func TestParseInvalidAssignmentTargetIsNonFatal(t *testing.T) {
	stmts, errs := ParseSource("1 = 2; print 3;", nil)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if got := errs[0].Error(); got != "[line 1] Error at '=': Invalid assignment target." {
		t.Fatalf("unexpected error %q", got)
	}
	if got := ast.FormatProgram(stmts); got != "(; 1)\n(print 3)" {
		t.Fatalf("unexpected statements %q", got)
	}
}

func TestParseExpressionRejectsTrailingTokens(t *testing.T) {
	p := New(scanner.New("1 2", nil).ScanTokens(), nil)
	if _, err := p.ParseExpression(); err == nil || !strings.Contains(err.Error(), "Expect end of expression.") {
		t.Fatalf("expected trailing token error, got %v", err)
	}

	p = New(scanner.New("1 = 2", nil).ScanTokens(), nil)
	if _, err := p.ParseExpression(); err == nil || !strings.Contains(err.Error(), "Invalid assignment target.") {
		t.Fatalf("expected invalid assignment target error, got %v", err)
	}
}

func TestParseIsRepeatable(t *testing.T) {
	p := New(scanner.New("var a = 1; print a + 2;", nil).ScanTokens(), nil)
	first := ast.FormatProgram(p.Parse())
	second := ast.FormatProgram(p.Parse())
	if first != second {
		t.Fatalf("parse not repeatable: %q vs %q", first, second)
	}
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors %v", p.Errors())
	}
}

func TestNewAppendsMissingEOF(t *testing.T) {
	tokens := []token.Token{
		token.New(token.Print, "print", nil, 3),
		token.New(token.Number, "1", 1.0, 3),
		token.New(token.Semicolon, ";", nil, 3),
	}
	stmts := New(tokens, nil).Parse()
	if got := ast.FormatProgram(stmts); got != "(print 1)" {
		t.Fatalf("unexpected statements %q", got)
	}
	if len(tokens) != 3 {
		t.Fatalf("caller's token slice was modified")
	}

	if stmts := New(nil, nil).Parse(); len(stmts) != 0 {
		t.Fatalf("expected no statements from empty input")
	}
}

func TestParseTerminatesOnGarbage(t *testing.T) {
	inputs := []string{
		")))",
		"= = =",
		"var var var",
		"print",
		"((((",
		"; ; ;",
		"class fun for if while return",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, errs := ParseSource(input, nil)
			if len(errs) == 0 {
				t.Fatalf("expected errors for %q", input)
			}
		})
	}
}
