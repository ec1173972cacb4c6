package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/checker"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
)

const cliToolVersion = "lox-cli 0.1.0-dev"

// Exit statuses follow sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
)

// checkModeEnv overrides the manifest's options.check.
const checkModeEnv = "LOX_CHECK"

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	loader *driver.Loader
	// workDir is where manifest discovery starts.
	workDir string
}

func main() {
	c := &cli{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		loader:  driver.NewLoader(nil),
		workDir: ".",
	}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		return c.runREPL()
	}

	switch args[0] {
	case "--help", "-h", "help":
		c.printUsage(c.stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return exitOK
	case "repl":
		return c.runREPL()
	case "run":
		return c.runEntry(args[1:])
	case "parse":
		return c.runParse(args[1:])
	case "check":
		return c.runCheck(args[1:])
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(c.stderr, "unknown flag: %s\n", args[0])
			c.printUsage(c.stderr)
			return exitUsage
		}
		return c.runEntry(args)
	}
}

func (c *cli) printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage:
  lox                         start an interactive session
  lox run [file|target]       run a script or a lox.yml target
  lox <file>                  same as lox run <file>
  lox parse [-format text|json|yaml] <file>
                              print the syntax tree
  lox check <file|target>     report operations certain to fail at run time
  lox version`)
}

// loadManifest finds lox.yml above the working directory. A missing
// manifest is not an error and yields nil.
func (c *cli) loadManifest() (*driver.Manifest, error) {
	path, err := driver.FindManifest(c.workDir)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return driver.LoadManifest(path)
}

// resolveSource turns a command-line argument into a script. With no
// argument the manifest's first target is used; otherwise a target name
// wins over a file of the same name.
func (c *cli) resolveSource(args []string) (*driver.Source, driver.Options, int) {
	opts := driver.Options{Check: driver.CheckOff}
	if len(args) > 1 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return nil, opts, exitUsage
	}
	manifest, err := c.loadManifest()
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load manifest: %v\n", err)
		return nil, opts, exitDataErr
	}
	if manifest != nil {
		opts = manifest.Options
	}
	if mode, ok := os.LookupEnv(checkModeEnv); ok {
		parsed, err := driver.ParseCheckMode(mode)
		if err != nil {
			fmt.Fprintf(c.stderr, "%s: %v\n", checkModeEnv, err)
			return nil, opts, exitUsage
		}
		opts.Check = parsed
	}

	ctx := context.Background()
	if len(args) == 0 {
		if manifest == nil {
			fmt.Fprintf(c.stderr, "lox run requires a source file or target (%s not found)\n", driver.ManifestFileName)
			return nil, opts, exitUsage
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(c.stderr, "manifest error: %v\n", err)
			return nil, opts, exitUsage
		}
		src, err := c.loader.LoadTarget(ctx, manifest, target)
		if err != nil {
			fmt.Fprintf(c.stderr, "failed to load target: %v\n", err)
			return nil, opts, exitNoInput
		}
		return src, opts, exitOK
	}

	if target, ok := manifest.FindTarget(args[0]); ok {
		src, err := c.loader.LoadTarget(ctx, manifest, target)
		if err != nil {
			fmt.Fprintf(c.stderr, "failed to load target: %v\n", err)
			return nil, opts, exitNoInput
		}
		return src, opts, exitOK
	}
	src, err := c.loader.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load program: %v\n", err)
		return nil, opts, exitNoInput
	}
	return src, opts, exitOK
}

func (c *cli) runEntry(args []string) int {
	src, opts, code := c.resolveSource(args)
	if src == nil {
		return code
	}
	return c.execute(src, opts)
}

func (c *cli) execute(src *driver.Source, opts driver.Options) int {
	reporter := diag.NewWriterReporter(c.stderr)
	tokens := scanner.New(src.Text, reporter).ScanTokens()
	stmts := parser.New(tokens, reporter).Parse()
	if reporter.HadError() {
		return exitDataErr
	}
	if opts.PrintAST {
		fmt.Fprintln(c.stderr, ast.FormatProgram(stmts))
	}
	if opts.Check != driver.CheckOff {
		if c.reportCheck(checker.New(), stmts, opts.Check, reporter) && opts.Check == driver.CheckStrict {
			return exitDataErr
		}
	}

	interp := interpreter.New(interpreter.WithOutput(c.stdout), interpreter.WithReporter(reporter))
	if err := interp.Interpret(stmts); err != nil {
		var rtErr *interpreter.RuntimeError
		if !errors.As(err, &rtErr) {
			fmt.Fprintf(c.stderr, "error: %v\n", err)
		}
		return exitSoftware
	}
	return exitOK
}

// reportCheck runs the static checker and reports its findings, as warnings
// unless mode is strict. It returns whether anything was found.
func (c *cli) reportCheck(chk *checker.Checker, stmts []ast.Statement, mode driver.CheckMode, reporter diag.Reporter) bool {
	severity := diag.SeverityWarning
	if mode == driver.CheckStrict {
		severity = diag.SeverityError
	}
	findings := chk.Check(stmts)
	for _, finding := range findings {
		reporter.Report(finding.Diag(severity))
	}
	return len(findings) > 0
}

func (c *cli) runCheck(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.stderr, "lox check requires a source file or target")
		return exitUsage
	}
	src, _, code := c.resolveSource(args)
	if src == nil {
		return code
	}
	reporter := diag.NewWriterReporter(c.stderr)
	stmts, parseErrs := parser.ParseSource(src.Text, reporter)
	if len(parseErrs) > 0 || reporter.HadError() {
		return exitDataErr
	}
	if c.reportCheck(checker.New(), stmts, driver.CheckStrict, reporter) {
		return exitDataErr
	}
	fmt.Fprintf(c.stdout, "%s: ok\n", src.Name)
	return exitOK
}
