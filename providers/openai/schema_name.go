package openai

import "strings"

const maxSchemaNameLength = 64

// schemaName restricts a model name to the characters the API accepts in
// response format names: a-z, A-Z, 0-9, underscores and dashes.
func schemaName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		if b.Len() == maxSchemaNameLength {
			break
		}
	}
	if b.Len() == 0 {
		return "response"
	}
	return b.String()
}
