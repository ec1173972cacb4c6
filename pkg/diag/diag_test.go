package diag

import (
	"bytes"
	"reflect"
	"testing"

	"lox/interpreter-go/pkg/token"
)

func TestDiagnosticString(t *testing.T) {
	ident := token.New(token.Identifier, "x", nil, 3)
	cases := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{"parse at token", AtToken(PhaseParse, ident, "Expect ';' after value."), "[line 3] Error at 'x': Expect ';' after value."},
		{"parse at end", AtToken(PhaseParse, token.EOFToken(7), "Expect expression."), "[line 7] Error at end: Expect expression."},
		{"scan", AtLine(PhaseScan, 2, "Unexpected character."), "[line 2] Error: Unexpected character."},
		{"runtime", AtToken(PhaseRuntime, ident, "Undefined variable 'x'."), "Undefined variable 'x'.\n[line 3]"},
		{"warning", Diagnostic{Phase: PhaseCheck, Severity: SeverityWarning, Line: 1, Where: " at '-'", Message: "m"}, "[line 1] Warning at '-': m"},
	}
	for _, tc := range cases {
		if got := tc.d.String(); got != tc.want {
			t.Fatalf("%s: String = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestWriterReporterFlags(t *testing.T) {
	var buf bytes.Buffer
	r := NewWriterReporter(&buf)

	r.Report(Diagnostic{Phase: PhaseCheck, Severity: SeverityWarning, Line: 1, Message: "careful"})
	if r.HadError() || r.HadRuntimeError() {
		t.Fatalf("warnings must not set error flags")
	}

	r.Report(AtLine(PhaseScan, 1, "Unexpected character."))
	if !r.HadError() || r.HadRuntimeError() {
		t.Fatalf("expected static error flag only")
	}

	r.Report(AtToken(PhaseRuntime, token.New(token.Slash, "/", nil, 4), "Division by zero."))
	if !r.HadRuntimeError() {
		t.Fatalf("expected runtime error flag")
	}

	want := "[line 1] Warning: careful\n[line 1] Error: Unexpected character.\nDivision by zero.\n[line 4]\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}

	r.Reset()
	if r.HadError() || r.HadRuntimeError() {
		t.Fatalf("Reset did not clear flags")
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	c.Report(AtLine(PhaseScan, 1, "first"))
	c.Report(Diagnostic{Phase: PhaseCheck, Severity: SeverityWarning, Line: 2, Message: "second"})

	if !reflect.DeepEqual(c.Messages(), []string{"first", "second"}) {
		t.Fatalf("messages = %v", c.Messages())
	}
	if c.Diagnostics[1].Severity != SeverityWarning {
		t.Fatalf("severity not kept: %+v", c.Diagnostics[1])
	}

	Discard.Report(AtLine(PhaseScan, 1, "dropped"))
}
