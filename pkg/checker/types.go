package checker

import "lox/interpreter-go/pkg/runtime"

// Type is the static approximation of a runtime value's kind.
type Type interface {
	Name() string
}

type PrimitiveKind string

const (
	PrimitiveNil    PrimitiveKind = "nil"
	PrimitiveBool   PrimitiveKind = "bool"
	PrimitiveNumber PrimitiveKind = "number"
	PrimitiveString PrimitiveKind = "string"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string { return string(p.Kind) }

// UnknownType stands for any value; nothing is reported against it.
type UnknownType struct{}

func (UnknownType) Name() string { return "unknown" }

var (
	nilType    Type = PrimitiveType{Kind: PrimitiveNil}
	boolType   Type = PrimitiveType{Kind: PrimitiveBool}
	numberType Type = PrimitiveType{Kind: PrimitiveNumber}
	stringType Type = PrimitiveType{Kind: PrimitiveString}
	unknown    Type = UnknownType{}
)

func isKind(t Type, kind PrimitiveKind) bool {
	p, ok := t.(PrimitiveType)
	return ok && p.Kind == kind
}

func isKnown(t Type) bool {
	_, ok := t.(PrimitiveType)
	return ok
}

// TypeOf returns the static type of a runtime value.
func TypeOf(val runtime.Value) Type {
	switch val.(type) {
	case runtime.NilValue:
		return nilType
	case runtime.BoolValue:
		return boolType
	case runtime.NumberValue:
		return numberType
	case runtime.StringValue:
		return stringType
	default:
		return unknown
	}
}
