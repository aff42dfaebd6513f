package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Validate checks a JSON payload against the model. The payload must be an
// object; required fields must be present, and non-null unless their type
// is TypeAny. Keys the model does not declare are ignored.
func (m *Model) Validate(payload []byte) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &ValidationErrors{Errors: []ValidationError{{Message: fmt.Sprintf("invalid JSON: %v", err)}}}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &ValidationErrors{Errors: []ValidationError{{Message: "unexpected data after JSON value"}}}
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return &ValidationErrors{Errors: []ValidationError{{Message: fmt.Sprintf("expected object, got %s", kindOf(doc))}}}
	}

	var errs []ValidationError
	for _, f := range m.Fields {
		value, present := obj[f.Name]
		switch {
		case !present:
			if f.Required {
				errs = append(errs, ValidationError{Path: f.Name, Message: "field required"})
			}
		case value == nil:
			if f.Required && f.Type != TypeAny {
				errs = append(errs, ValidationError{Path: f.Name, Message: "must not be null"})
			}
		case !f.Type.accepts(value):
			errs = append(errs, ValidationError{
				Path:    f.Name,
				Message: fmt.Sprintf("expected %s, got %s", f.Type, kindOf(value)),
			})
		}
	}
	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func (t FieldType) accepts(v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		n, ok := v.(json.Number)
		return ok && isIntegral(n)
	case TypeFloat:
		_, ok := v.(json.Number)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeList:
		_, ok := v.([]any)
		return ok
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	default:
		return true
	}
}

func isIntegral(n json.Number) bool {
	if _, err := n.Int64(); err == nil {
		return true
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) {
		return false
	}
	return f == math.Trunc(f)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
