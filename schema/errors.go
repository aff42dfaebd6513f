package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaFile indicates the schema file is missing, unreadable, or
	// not a mapping document.
	ErrSchemaFile = errors.New("invalid schema file")

	// ErrSchemaShape indicates a mapping that neither schema form can
	// interpret.
	ErrSchemaShape = errors.New("invalid schema")
)

// ValidationError describes one field that failed validation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every failure found in a payload.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}
