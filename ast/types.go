package ast

// TypeCode is the type of a symbol or expression.
type TypeCode int

const (
	TypeNone TypeCode = iota
	TypeInteger
	TypeBoolean
	TypeChar
	TypeReal
	TypeString
	TypeArray
)

var typeNames = [...]string{
	TypeNone:    "none",
	TypeInteger: "integer",
	TypeBoolean: "boolean",
	TypeChar:    "char",
	TypeReal:    "real",
	TypeString:  "string",
	TypeArray:   "array",
}

func (t TypeCode) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// IsNumeric reports whether t is integer or real.
func (t TypeCode) IsNumeric() bool {
	return t == TypeInteger || t == TypeReal
}

// AssignableTo reports whether a value of type t may be stored in a
// location of type target. Integers widen to reals.
func (t TypeCode) AssignableTo(target TypeCode) bool {
	return t == target || (t == TypeInteger && target == TypeReal)
}
