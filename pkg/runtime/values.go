package runtime

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. The set of
// implementations is closed: NilValue, BoolValue, NumberValue, StringValue.
type Value interface {
	Kind() Kind
	isValue()
}

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }
func (NilValue) isValue()   {}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }
func (BoolValue) isValue()     {}

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }
func (NumberValue) isValue()     {}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }
func (StringValue) isValue()     {}

// Nil is the single nil value.
var Nil Value = NilValue{}

// IsTruthy reports the boolean meaning of a value: nil and false are false,
// everything else (including 0 and "") is true.
func IsTruthy(val Value) bool {
	switch v := val.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return v.Val
	default:
		return true
	}
}

// Equal compares values without coercion. Values of different kinds are
// never equal. Numbers compare by value identity rather than IEEE ==.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil
	}
	if b == nil {
		b = Nil
	}
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && sameNumber(av.Val, bv.Val)
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	default:
		return false
	}
}

// sameNumber compares bit patterns, so NaN equals NaN and 0 differs from
// -0. All NaNs compare equal.
func sameNumber(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Float64bits(a) == math.Float64bits(b)
}

// Stringify renders a value the way print shows it. Integral numbers drop
// the fractional part, so 3.0 prints as "3".
func Stringify(val Value) string {
	switch v := val.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(v.Val)
	case NumberValue:
		return formatNumber(v.Val)
	case StringValue:
		return v.Val
	default:
		return fmt.Sprintf("[%s]", val.Kind())
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
