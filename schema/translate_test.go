package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveType(t *testing.T) {
	tests := []struct {
		name     string
		expected FieldType
	}{
		{"str", TypeString},
		{"string", TypeString},
		{"int", TypeInteger},
		{"integer", TypeInteger},
		{"float", TypeFloat},
		{"number", TypeFloat},
		{"bool", TypeBoolean},
		{"boolean", TypeBoolean},
		{"list", TypeList},
		{"array", TypeList},
		{"dict", TypeObject},
		{"object", TypeObject},
		{"custom", TypeAny},
		{"String", TypeAny},
		{"", TypeAny},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, ResolveType(tc.name))
		})
	}
}

func TestTranslateSimpleForm(t *testing.T) {
	desc, err := Parse([]byte("Person:\n  name: str\n  age: int\n"))
	require.NoError(t, err)

	m, err := Translate(desc)
	require.NoError(t, err)
	require.Equal(t, "Person", m.Name)
	require.Equal(t, []Field{
		{Name: "name", Type: TypeString, Required: true},
		{Name: "age", Type: TypeInteger, Required: true},
	}, m.Fields)
}

func TestTranslateJSONSchemaForm(t *testing.T) {
	desc, err := Parse([]byte(`{"title": "Item", "properties": {"qty": {"type": "integer"}}, "required": []}`))
	require.NoError(t, err)

	m, err := Translate(desc)
	require.NoError(t, err)
	require.Equal(t, "Item", m.Name)
	require.Equal(t, []Field{{Name: "qty", Type: TypeInteger, Required: false}}, m.Fields)
}

func TestTranslateJSONSchemaDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Model
	}{
		{
			name:  "missing title",
			input: `{"type": "object", "properties": {"a": {"type": "string"}}, "required": ["a"]}`,
			expected: &Model{Name: DefaultModelName, Fields: []Field{
				{Name: "a", Type: TypeString, Required: true},
			}},
		},
		{
			name:     "no properties",
			input:    `{"title": "Empty", "type": "object"}`,
			expected: &Model{Name: "Empty", Fields: []Field{}},
		},
		{
			name:  "lone properties key",
			input: "properties:\n  a:\n    type: boolean\n",
			expected: &Model{Name: DefaultModelName, Fields: []Field{
				{Name: "a", Type: TypeBoolean, Required: false},
			}},
		},
		{
			name:  "unknown and missing types",
			input: "title: T\nproperties:\n  a:\n    type: custom\n  b:\n    description: no type\nrequired: [b]\n",
			expected: &Model{Name: "T", Fields: []Field{
				{Name: "a", Type: TypeAny, Required: false},
				{Name: "b", Type: TypeAny, Required: true},
			}},
		},
		{
			name:  "required names not in properties are ignored",
			input: `{"title": "X", "properties": {"a": {"type": "number"}}, "required": ["a", "zzz"]}`,
			expected: &Model{Name: "X", Fields: []Field{
				{Name: "a", Type: TypeFloat, Required: true},
			}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			desc, err := Parse([]byte(tc.input))
			require.NoError(t, err)
			m, err := Translate(desc)
			require.NoError(t, err)
			require.Equal(t, tc.expected, m)
		})
	}
}

func TestTranslateSimpleFormNamedProperties(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Model
	}{
		{
			name:  "type names",
			input: "properties:\n  name: str\n  age: int\n",
			expected: &Model{Name: "properties", Fields: []Field{
				{Name: "name", Type: TypeString, Required: true},
				{Name: "age", Type: TypeInteger, Required: true},
			}},
		},
		{
			name:  "mixed values",
			input: "properties:\n  name: str\n  meta:\n    type: object\n",
			expected: &Model{Name: "properties", Fields: []Field{
				{Name: "name", Type: TypeString, Required: true},
				{Name: "meta", Type: TypeAny, Required: true},
			}},
		},
		{
			name:     "empty",
			input:    "properties: {}\n",
			expected: &Model{Name: "properties", Fields: []Field{}},
		},
		{
			name:  "property schemas",
			input: `{"properties": {"a": {"type": "string"}, "b": true}}`,
			expected: &Model{Name: DefaultModelName, Fields: []Field{
				{Name: "a", Type: TypeString},
				{Name: "b", Type: TypeAny},
			}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			desc, err := Parse([]byte(tc.input))
			require.NoError(t, err)
			m, err := Translate(desc)
			require.NoError(t, err)
			require.Equal(t, tc.expected, m)
		})
	}
}

func TestTranslateSimpleFormUnknownType(t *testing.T) {
	desc, err := Parse([]byte("Thing:\n  a: custom\n  b: list\n  c: dict\n"))
	require.NoError(t, err)

	m, err := Translate(desc)
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Name: "a", Type: TypeAny, Required: true},
		{Name: "b", Type: TypeList, Required: true},
		{Name: "c", Type: TypeObject, Required: true},
	}, m.Fields)
}

func TestTranslateGoMap(t *testing.T) {
	m, err := Translate(map[string]any{
		"title": "Sorted",
		"properties": map[string]any{
			"b": map[string]any{"type": "string"},
			"a": map[string]any{"type": "integer"},
		},
		"required": []string{"b"},
	})
	require.NoError(t, err)
	require.Equal(t, "Sorted", m.Name)
	require.Equal(t, []Field{
		{Name: "a", Type: TypeInteger},
		{Name: "b", Type: TypeString, Required: true},
	}, m.Fields)
}

func TestTranslateShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"not a mapping", []any{"a", "b"}},
		{"scalar", "Person"},
		{"properties not a mapping", map[string]any{"title": "X", "properties": []any{"a"}}},
		{"property not a mapping", map[string]any{"title": "X", "properties": map[string]any{"a": "string"}}},
		{"required not a list", map[string]any{"title": "X", "required": "a"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Translate(tc.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrSchemaShape), "got %v", err)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"sequence", "- a\n- b\n"},
		{"scalar", "hello"},
		{"syntax error", "a: [1, 2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrSchemaFile)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "person.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("Person:\n  name: str\n  age: int\n"), 0644))
	m, err := LoadFile(yamlPath)
	require.NoError(t, err)
	require.Equal(t, "Person", m.Name)
	require.Equal(t, []string{"name", "age"}, m.Required())

	jsonPath := filepath.Join(dir, "item.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"title": "Item", "properties": {"qty": {"type": "integer"}}, "required": []}`), 0644))
	m, err = LoadFile(jsonPath)
	require.NoError(t, err)
	require.Equal(t, "Item", m.Name)
	require.Empty(t, m.Required())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSchemaFile)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "missing.yaml")
}

func TestLoadFileNotMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name\n- age\n"), 0644))

	_, err := LoadFile(path)
	require.ErrorIs(t, err, ErrSchemaFile)
	require.Contains(t, err.Error(), "list.yaml")
}
