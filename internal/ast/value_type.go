package ast

// ValueType is the best-effort type the parser attaches to expressions.
type ValueType uint8

const (
	TypeUnknown ValueType = iota
	TypeInteger
	TypeFloat
	TypeString
	TypeBoolean
	// TypeID marks expressions whose type depends on a runtime binding.
	TypeID
	TypeList
)

func (t ValueType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeID:
		return "id"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// IsNumeric reports integer or float.
func (t ValueType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}
