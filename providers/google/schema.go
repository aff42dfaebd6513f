package google

import (
	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

var schemaTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
	"null":    genai.TypeNULL,
}

// convertSchema converts a JSON Schema to the Gemini schema subset. Property
// order is kept through PropertyOrdering and a two-branch anyOf with null
// becomes a nullable schema.
func convertSchema(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	if inner, ok := nullableBranch(s.AnyOf); ok {
		out := convertSchema(inner)
		nullable := true
		out.Nullable = &nullable
		if out.Description == "" {
			out.Description = s.Description
		}
		return out
	}

	out := &genai.Schema{
		Type:        schemaTypes[s.Type],
		Title:       s.Title,
		Description: s.Description,
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = convertSchema(pair.Value)
			out.PropertyOrdering = append(out.PropertyOrdering, pair.Key)
		}
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Items != nil {
		out.Items = convertSchema(s.Items)
	}
	for _, branch := range s.AnyOf {
		out.AnyOf = append(out.AnyOf, convertSchema(branch))
	}
	return out
}

func nullableBranch(anyOf []*jsonschema.Schema) (*jsonschema.Schema, bool) {
	if len(anyOf) != 2 {
		return nil, false
	}
	switch {
	case anyOf[1] != nil && anyOf[1].Type == "null":
		return anyOf[0], anyOf[0] != nil
	case anyOf[0] != nil && anyOf[0].Type == "null":
		return anyOf[1], anyOf[1] != nil
	}
	return nil, false
}

// expressible reports whether convertSchema can represent s. The Gemini
// subset needs a type on every node and items on every array, so schemas
// with list or untyped fields are sent as plain JSON Schema instead.
func expressible(s *jsonschema.Schema) bool {
	if s == nil {
		return true
	}
	if inner, ok := nullableBranch(s.AnyOf); ok {
		return expressible(inner)
	}
	if len(s.AnyOf) > 0 && s.Type == "" {
		for _, branch := range s.AnyOf {
			if branch == nil || !expressible(branch) {
				return false
			}
		}
		return true
	}
	if _, ok := schemaTypes[s.Type]; !ok {
		return false
	}
	if s.Type == "array" && s.Items == nil {
		return false
	}
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if !expressible(pair.Value) {
				return false
			}
		}
	}
	return expressible(s.Items)
}
