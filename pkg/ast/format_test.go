package ast

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{Bin(Num(1), "+", Bin(Num(2), "*", Num(3))), "(+ 1 (* 2 3))"},
		{Un("-", Group(Num(1.5))), "(- (group 1.5))"},
		{Bin(Str("a\"b"), "==", Nil()), `(== "a\"b" nil)`},
		{Assign("x", Bool(true)), "(= x true)"},
		{Print(Var("x")), "(print x)"},
		{ExprStmt(Assign("y", Num(0))), "(; (= y 0))"},
		{Decl("z", nil), "(var z)"},
		{Decl("z", Num(-2)), "(var z -2)"},
		{nil, "<nil>"},
	}
	for _, tc := range cases {
		if got := Format(tc.node); got != tc.want {
			t.Fatalf("Format = %s, want %s", got, tc.want)
		}
	}
}

func TestFormatProgram(t *testing.T) {
	prog := []Statement{Decl("a", Num(1)), Print(Var("a"))}
	if got := FormatProgram(prog); got != "(var a 1)\n(print a)" {
		t.Fatalf("FormatProgram = %q", got)
	}
	if got := FormatProgram(nil); got != "" {
		t.Fatalf("FormatProgram(nil) = %q", got)
	}
}

func TestNodeTypes(t *testing.T) {
	cases := []struct {
		node Node
		want NodeType
	}{
		{Nil(), NodeNilLiteral},
		{Bin(Num(1), "+", Num(2)), NodeBinaryExpression},
		{Decl("a", nil), NodeVarStatement},
	}
	for _, tc := range cases {
		if got := tc.node.NodeType(); got != tc.want {
			t.Fatalf("NodeType = %s, want %s", got, tc.want)
		}
	}
}
