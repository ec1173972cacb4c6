package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/parser"
)

func (c *cli) runParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	format := fs.String("format", "text", "output format: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(c.stderr, "lox parse requires exactly one source file")
		return exitUsage
	}
	src, err := c.loader.LoadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load program: %v\n", err)
		return exitNoInput
	}

	reporter := diag.NewWriterReporter(c.stderr)
	stmts, parseErrs := parser.ParseSource(src.Text, reporter)
	if len(parseErrs) > 0 || reporter.HadError() {
		return exitDataErr
	}
	out, err := renderProgram(stmts, *format)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return exitUsage
	}
	fmt.Fprint(c.stdout, out)
	return exitOK
}

func renderProgram(stmts []ast.Statement, format string) (string, error) {
	if stmts == nil {
		stmts = []ast.Statement{}
	}
	switch format {
	case "text":
		if len(stmts) == 0 {
			return "", nil
		}
		return ast.FormatProgram(stmts) + "\n", nil
	case "json":
		data, err := json.MarshalIndent(stmts, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data) + "\n", nil
	case "yaml":
		data, err := json.Marshal(stmts)
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		out, err := jsonToYAML(data)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// jsonToYAML re-encodes JSON as block-style YAML, keeping key order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}
