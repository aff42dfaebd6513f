// Package schema translates loosely structured schema descriptions into a
// Model that can be rendered as JSON Schema and used to validate structured
// model output.
package schema
