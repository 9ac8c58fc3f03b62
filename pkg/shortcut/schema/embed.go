// Package schema provides the embedded JSON Schema for the shortcut
// interchange form and a small validator for it.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Embed the interchange JSON Schema so the CLI can check raw input shape
// before the semantic validator runs, and so tooling can export the schema.
//
//go:embed shortcut.schema.json
var shortcutSchema []byte

// GetEmbeddedSchema returns the embedded interchange JSON Schema as raw bytes.
func GetEmbeddedSchema() []byte {
	return shortcutSchema
}

// ValidateBytes checks raw JSON input against the embedded interchange
// schema. It reports shape problems (wrong types, missing required keys)
// without any registry knowledge.
func ValidateBytes(data []byte) error {
	var schemaDoc map[string]interface{}
	if err := json.Unmarshal(shortcutSchema, &schemaDoc); err != nil {
		return fmt.Errorf("embedded schema is invalid: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("input is not valid JSON: %w", err)
	}

	return NewValidator().Validate(schemaDoc, doc)
}
