package diag

import (
	"fmt"
	"io"
	"sync"

	"lox/interpreter-go/pkg/token"
)

// Phase names the stage of the pipeline that produced a diagnostic.
type Phase string

const (
	PhaseScan    Phase = "scan"
	PhaseParse   Phase = "parse"
	PhaseCheck   Phase = "check"
	PhaseRuntime Phase = "runtime"
)

// Severity distinguishes hard errors from advisory findings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single reported problem with its source line.
type Diagnostic struct {
	Phase    Phase
	Severity Severity
	Line     int
	// Where is the location fragment, e.g. " at 'x'" or " at end".
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Phase == PhaseRuntime {
		return fmt.Sprintf("%s\n[line %d]", d.Message, d.Line)
	}
	label := "Error"
	if d.Severity == SeverityWarning {
		label = "Warning"
	}
	return fmt.Sprintf("[line %d] %s%s: %s", d.Line, label, d.Where, d.Message)
}

// AtToken builds an error diagnostic located at tok.
func AtToken(phase Phase, tok token.Token, message string) Diagnostic {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = " at end"
	}
	if phase == PhaseRuntime {
		where = ""
	}
	return Diagnostic{Phase: phase, Severity: SeverityError, Line: tok.Line, Where: where, Message: message}
}

// AtLine builds an error diagnostic without a token, as the scanner reports.
func AtLine(phase Phase, line int, message string) Diagnostic {
	return Diagnostic{Phase: phase, Severity: SeverityError, Line: line, Message: message}
}

// Reporter receives diagnostics as soon as they are detected.
type Reporter interface {
	Report(d Diagnostic)
}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// WriterReporter prints diagnostics to a writer and remembers whether any
// error (static or runtime) was seen, so hosts can pick an exit status.
type WriterReporter struct {
	mu              sync.Mutex
	w               io.Writer
	hadError        bool
	hadRuntimeError bool
}

func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.Severity != SeverityWarning {
		if d.Phase == PhaseRuntime {
			r.hadRuntimeError = true
		} else {
			r.hadError = true
		}
	}
	fmt.Fprintln(r.w, d.String())
}

// HadError reports whether a scan, parse or check error was reported.
func (r *WriterReporter) HadError() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hadError
}

func (r *WriterReporter) HadRuntimeError() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hadRuntimeError
}

// Reset clears the error flags; the REPL calls it between lines.
func (r *WriterReporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hadError = false
	r.hadRuntimeError = false
}

// Collector keeps every diagnostic in report order.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Messages returns just the message text of each diagnostic.
func (c *Collector) Messages() []string {
	out := make([]string, 0, len(c.Diagnostics))
	for _, d := range c.Diagnostics {
		out = append(out, d.Message)
	}
	return out
}
