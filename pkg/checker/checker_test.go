package checker

import (
	"reflect"
	"testing"

	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
)

func checkSource(t *testing.T, c *Checker, source string) []string {
	t.Helper()
	stmts, errs := parser.ParseSource(source, nil)
	if len(errs) != 0 {
		t.Fatalf("parse errors for %q: %v", source, errs)
	}
	var messages []string
	for _, d := range c.Check(stmts) {
		messages = append(messages, d.Message)
	}
	return messages
}

func TestCheckerFindsCertainFailures(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   []string
	}{
		{"clean program", `var a = 1; print a + 2; print "s" + a;`, nil},
		{"negate string", `print -"a";`, []string{"Operand must be a number."}},
		{"subtract bool", "print 1 - true;", []string{"Operand must be numbers."}},
		{"compare nil", "var n; print n < 1;", []string{"Operand must be numbers."}},
		{"add nil", `print "a" + nil;`, []string{"Operands must be two numbers or two strings."}},
		{"literal division by zero", "print 4 / (-0);", []string{"Division by zero."}},
		{"undefined read", "print ghost;", []string{"Undefined variable 'ghost'."}},
		{"undefined assign", "ghost = 1;", []string{"Undefined variable 'ghost'."}},
		{"right checked first", "print ghostA + ghostB;", []string{"Undefined variable 'ghostB'.", "Undefined variable 'ghostA'."}},
		{"assignment updates type", `var a = 1; a = "s"; print -a;`, []string{"Operand must be a number."}},
		{"redeclaration updates type", `var a = "s"; var a = 2; print -a;`, nil},
		{"errors do not cascade", `print -(-"a");`, []string{"Operand must be a number."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := checkSource(t, New(), tc.source)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("diagnostics = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckerDoesNotReportDynamicDivision(t *testing.T) {
	got := checkSource(t, New(), "var z = 0; print 1 / z;")
	if len(got) != 0 {
		t.Fatalf("expected no diagnostics, got %v", got)
	}
}

func TestCheckerGlobalsPersistAcrossCalls(t *testing.T) {
	c := New()
	if got := checkSource(t, c, "var a = true;"); len(got) != 0 {
		t.Fatalf("unexpected diagnostics %v", got)
	}
	got := checkSource(t, c, "print a * 2;")
	if !reflect.DeepEqual(got, []string{"Operand must be numbers."}) {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestCheckerDeclare(t *testing.T) {
	c := New()
	c.Declare("n", TypeOf(runtime.NumberValue{Val: 1}))
	c.Declare("s", TypeOf(runtime.StringValue{Val: "x"}))
	c.Declare("any", nil)
	got := checkSource(t, c, "print n * 2; print -any; print -s;")
	if !reflect.DeepEqual(got, []string{"Operand must be a number."}) {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestDiagnosticConversion(t *testing.T) {
	stmts, _ := parser.ParseSource("\nprint -nil;", nil)
	found := New().Check(stmts)
	if len(found) != 1 {
		t.Fatalf("expected one diagnostic, got %v", found)
	}
	d := found[0].Diag(diag.SeverityWarning)
	if d.Phase != diag.PhaseCheck || d.Line != 2 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if got := d.String(); got != "[line 2] Warning at '-': Operand must be a number." {
		t.Fatalf("rendering = %q", got)
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		val  runtime.Value
		want string
	}{
		{runtime.Nil, "nil"},
		{runtime.BoolValue{Val: true}, "bool"},
		{runtime.NumberValue{Val: 2}, "number"},
		{runtime.StringValue{Val: ""}, "string"},
		{nil, "unknown"},
	}
	for _, tc := range cases {
		if got := TypeOf(tc.val).Name(); got != tc.want {
			t.Fatalf("TypeOf(%#v) = %s, want %s", tc.val, got, tc.want)
		}
	}
}
