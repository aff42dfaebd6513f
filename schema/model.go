package schema

import (
	"github.com/invopop/jsonschema"
)

// Field is a single named field of a Model.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
}

// Model is a named, ordered set of fields built from a schema description.
// It can be rendered as a JSON Schema for a completion request and used to
// validate the payload that comes back.
type Model struct {
	Name   string
	Fields []Field
}

// Field returns the field with the given name.
func (m *Model) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required returns the names of the required fields in field order.
func (m *Model) Required() []string {
	var names []string
	for _, f := range m.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Equal reports whether two models have the same name and fields.
func (m *Model) Equal(other *Model) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Name != other.Name || len(m.Fields) != len(other.Fields) {
		return false
	}
	for i := range m.Fields {
		if m.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}

// JSONSchema renders the model as an object schema. Properties keep field
// order and only required fields are listed in "required".
func (m *Model) JSONSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Title:      m.Name,
		Properties: jsonschema.NewProperties(),
	}
	for _, f := range m.Fields {
		s.Properties.Set(f.Name, f.Type.jsonSchema())
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}

// StrictJSONSchema renders the model in the form accepted by strict
// structured output: every property is required, optional fields become
// nullable and additional properties are rejected. The second result is
// false when a field has no scalar type, in which case the plain
// JSONSchema is returned instead.
func (m *Model) StrictJSONSchema() (*jsonschema.Schema, bool) {
	for _, f := range m.Fields {
		if !f.Type.Scalar() {
			return m.JSONSchema(), false
		}
	}
	s := &jsonschema.Schema{
		Type:                 "object",
		Title:                m.Name,
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
	for _, f := range m.Fields {
		prop := f.Type.jsonSchema()
		if !f.Required {
			prop = &jsonschema.Schema{
				AnyOf: []*jsonschema.Schema{prop, {Type: "null"}},
			}
		}
		s.Properties.Set(f.Name, prop)
		s.Required = append(s.Required, f.Name)
	}
	return s, true
}

func (t FieldType) jsonSchema() *jsonschema.Schema {
	// TypeAny yields an empty schema, which marshals as true.
	return &jsonschema.Schema{Type: t.JSONType()}
}
