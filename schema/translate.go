package schema

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
)

// DefaultModelName names models whose JSON Schema form has no title.
const DefaultModelName = "DynamicModel"

// LoadFile reads a schema file and translates it into a Model.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaFile, err)
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return Translate(desc)
}

// Parse decodes a YAML or JSON schema description. Mappings are decoded as
// yaml.MapSlice so that field order survives. The document must be a
// mapping.
func Parse(data []byte) (any, error) {
	var desc any
	if err := yaml.UnmarshalWithOptions(data, &desc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaFile, err)
	}
	if _, ok := entries(desc); !ok {
		return nil, fmt.Errorf("%w: document is not a mapping", ErrSchemaFile)
	}
	return desc, nil
}

// Translate converts a decoded schema description into a Model.
//
// Two shapes are accepted. The simple form is a mapping with exactly one
// key whose value is a mapping of field names to type names; the key names
// the model and every field is required. Anything else is read as a JSON
// Schema object using "title", "properties" and "required".
func Translate(desc any) (*Model, error) {
	top, ok := entries(desc)
	if !ok {
		return nil, fmt.Errorf("%w: expected a mapping, got %T", ErrSchemaShape, desc)
	}
	if m, ok := translateSimple(top); ok {
		return m, nil
	}
	return translateJSONSchema(top)
}

func translateSimple(top []entry) (*Model, bool) {
	if len(top) != 1 {
		return nil, false
	}
	fields, ok := entries(top[0].value)
	if !ok {
		return nil, false
	}
	// A lone "properties" key whose values are all property schemas is a
	// JSON Schema without title or required. With type names as values it
	// is a simple model named "properties".
	if top[0].key == "properties" && len(fields) > 0 && allPropertySchemas(fields) {
		return nil, false
	}
	m := &Model{Name: top[0].key, Fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		name, _ := f.value.(string)
		m.Fields = append(m.Fields, Field{
			Name:     f.key,
			Type:     ResolveType(name),
			Required: true,
		})
	}
	return m, true
}

func translateJSONSchema(top []entry) (*Model, error) {
	m := &Model{Name: DefaultModelName}
	var props []entry
	required := map[string]bool{}

	for _, e := range top {
		switch e.key {
		case "title":
			if title, ok := e.value.(string); ok && title != "" {
				m.Name = title
			}
		case "properties":
			if e.value == nil {
				continue
			}
			var ok bool
			if props, ok = entries(e.value); !ok {
				return nil, fmt.Errorf("%w: properties must be a mapping", ErrSchemaShape)
			}
		case "required":
			names, ok := sequence(e.value)
			if !ok {
				return nil, fmt.Errorf("%w: required must be a list of field names", ErrSchemaShape)
			}
			for _, name := range names {
				required[name] = true
			}
		}
	}

	m.Fields = make([]Field, 0, len(props))
	for _, p := range props {
		spec, ok := entries(p.value)
		if !ok {
			// The boolean schema true accepts any value.
			if accept, isBool := p.value.(bool); isBool && accept {
				m.Fields = append(m.Fields, Field{Name: p.key, Type: TypeAny, Required: required[p.key]})
				continue
			}
			return nil, fmt.Errorf("%w: property %q must be a mapping", ErrSchemaShape, p.key)
		}
		typeName := ""
		for _, e := range spec {
			if e.key == "type" {
				typeName, _ = e.value.(string)
			}
		}
		m.Fields = append(m.Fields, Field{
			Name:     p.key,
			Type:     ResolveType(typeName),
			Required: required[p.key],
		})
	}
	return m, nil
}

// allPropertySchemas reports whether every value is a mapping or the
// boolean schema true.
func allPropertySchemas(fields []entry) bool {
	for _, f := range fields {
		if _, ok := entries(f.value); ok {
			continue
		}
		if accept, ok := f.value.(bool); ok && accept {
			continue
		}
		return false
	}
	return true
}

type entry struct {
	key   string
	value any
}

// entries flattens the mapping types a description may contain. Go maps
// have no order, so their keys are sorted.
func entries(v any) ([]entry, bool) {
	switch m := v.(type) {
	case yaml.MapSlice:
		out := make([]entry, 0, len(m))
		for _, item := range m {
			out = append(out, entry{key: keyString(item.Key), value: item.Value})
		}
		return out, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]entry, 0, len(m))
		for _, k := range keys {
			out = append(out, entry{key: k, value: m[k]})
		}
		return out, true
	case map[any]any:
		out := make([]entry, 0, len(m))
		for k, val := range m {
			out = append(out, entry{key: keyString(k), value: val})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
		return out, true
	}
	return nil, false
}

func sequence(v any) ([]string, bool) {
	switch s := v.(type) {
	case nil:
		return nil, true
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			name, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, name)
		}
		return out, true
	}
	return nil, false
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
