package structure

import "errors"

var (
	ErrUnsupportedModel = errors.New("model does not support structured output")
	ErrEmptyResponse    = errors.New("no response from model")
	ErrValidation       = errors.New("response does not match schema")
	ErrNoPrompt         = errors.New("no prompt provided")
)
