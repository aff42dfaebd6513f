package schema

// FieldType is the semantic type of a model field.
type FieldType int

const (
	// TypeAny accepts any JSON value. Unrecognized type names resolve to it.
	TypeAny FieldType = iota
	TypeString
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeList
	TypeObject
)

// typeNames is the closed type-name vocabulary. Both schema forms accept
// the short names and the JSON Schema names.
var typeNames = map[string]FieldType{
	"str":     TypeString,
	"string":  TypeString,
	"int":     TypeInteger,
	"integer": TypeInteger,
	"float":   TypeFloat,
	"number":  TypeFloat,
	"bool":    TypeBoolean,
	"boolean": TypeBoolean,
	"list":    TypeList,
	"array":   TypeList,
	"dict":    TypeObject,
	"object":  TypeObject,
}

// ResolveType maps a type name to a FieldType. Names are matched exactly.
//
// Unknown names resolve to TypeAny instead of failing, so schemas that use
// types outside the vocabulary still translate. Callers that need a strict
// check can use IsKnownType.
func ResolveType(name string) FieldType {
	if t, ok := typeNames[name]; ok {
		return t
	}
	return TypeAny
}

// IsKnownType reports whether name is part of the type vocabulary.
func IsKnownType(name string) bool {
	_, ok := typeNames[name]
	return ok
}

// String returns the semantic name of the type.
func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeList:
		return "list"
	case TypeObject:
		return "object"
	default:
		return "any"
	}
}

// JSONType returns the JSON Schema type keyword, or "" for TypeAny.
func (t FieldType) JSONType() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeList:
		return "array"
	case TypeObject:
		return "object"
	default:
		return ""
	}
}

// Scalar reports whether the type needs no nested schema.
func (t FieldType) Scalar() bool {
	switch t {
	case TypeString, TypeInteger, TypeFloat, TypeBoolean:
		return true
	}
	return false
}
