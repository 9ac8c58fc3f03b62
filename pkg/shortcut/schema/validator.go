package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator validates data against a JSON Schema.
type Validator interface {
	// Validate checks if data conforms to the schema
	Validate(schema map[string]interface{}, data interface{}) error
}

// DefaultValidator implements the Validator interface with support for the
// subset of JSON Schema Draft 7 keywords the interchange schema uses:
// type, properties, required, items, enum, and local $ref into definitions.
type DefaultValidator struct {
	root map[string]interface{}
}

// NewValidator creates a new schema validator.
func NewValidator() Validator {
	return &DefaultValidator{}
}

// Validate validates data against a JSON Schema.
func (v *DefaultValidator) Validate(schema map[string]interface{}, data interface{}) error {
	v.root = schema
	return v.validate(schema, data, "$")
}

// validate is the recursive validation function with path tracking.
func (v *DefaultValidator) validate(schema map[string]interface{}, data interface{}, path string) error {
	if ref, ok := schema["$ref"].(string); ok {
		resolved, err := v.resolveRef(ref)
		if err != nil {
			return err
		}
		return v.validate(resolved, data, path)
	}

	schemaType, ok := schema["type"].(string)
	if !ok {
		return nil
	}
	if err := v.validateType(schemaType, data, path); err != nil {
		return err
	}

	switch schemaType {
	case "object":
		return v.validateObject(schema, data, path)
	case "array":
		return v.validateArray(schema, data, path)
	case "string":
		return v.validateString(schema, data, path)
	}
	return nil
}

// resolveRef resolves a local "#/definitions/..." reference.
func (v *DefaultValidator) resolveRef(ref string) (map[string]interface{}, error) {
	const prefix = "#/"
	if !strings.HasPrefix(ref, prefix) {
		return nil, fmt.Errorf("unsupported schema reference: %s", ref)
	}

	node := interface{}(v.root)
	for _, seg := range strings.Split(strings.TrimPrefix(ref, prefix), "/") {
		obj, ok := node.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("cannot resolve schema reference: %s", ref)
		}
		node = obj[seg]
	}

	resolved, ok := node.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("schema reference %s does not point to an object", ref)
	}
	return resolved, nil
}

// validateType checks if data matches the expected type.
func (v *DefaultValidator) validateType(schemaType string, data interface{}, path string) error {
	switch schemaType {
	case "object":
		if _, ok := data.(map[string]interface{}); !ok {
			return NewValidationError(path, "type", fmt.Sprintf("expected object, got %T", data))
		}
	case "array":
		if _, ok := data.([]interface{}); !ok {
			return NewValidationError(path, "type", fmt.Sprintf("expected array, got %T", data))
		}
	case "string":
		if _, ok := data.(string); !ok {
			return NewValidationError(path, "type", fmt.Sprintf("expected string, got %T", data))
		}
	case "number":
		switch data.(type) {
		case float64, float32, int, int64, json.Number:
			// Valid number types
		default:
			return NewValidationError(path, "type", fmt.Sprintf("expected number, got %T", data))
		}
	case "boolean":
		if _, ok := data.(bool); !ok {
			return NewValidationError(path, "type", fmt.Sprintf("expected boolean, got %T", data))
		}
	default:
		return fmt.Errorf("unsupported schema type: %s", schemaType)
	}
	return nil
}

// validateObject validates object properties and required fields.
func (v *DefaultValidator) validateObject(schema map[string]interface{}, data interface{}, path string) error {
	obj := data.(map[string]interface{})

	if required, ok := schema["required"].([]interface{}); ok {
		for _, reqField := range required {
			fieldName, ok := reqField.(string)
			if !ok {
				continue
			}
			if _, exists := obj[fieldName]; !exists {
				return NewValidationError(path, "required", fmt.Sprintf("missing required field: %s", fieldName))
			}
		}
	}

	if properties, ok := schema["properties"].(map[string]interface{}); ok {
		for fieldName, fieldValue := range obj {
			// Extra fields not in the schema are left to the semantic
			// validator, which reports them with action context.
			propSchema, ok := properties[fieldName].(map[string]interface{})
			if !ok {
				continue
			}
			fieldPath := fmt.Sprintf("%s.%s", path, fieldName)
			if err := v.validate(propSchema, fieldValue, fieldPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateArray validates array items.
func (v *DefaultValidator) validateArray(schema map[string]interface{}, data interface{}, path string) error {
	arr := data.([]interface{})

	if items, ok := schema["items"].(map[string]interface{}); ok {
		for i, item := range arr {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			if err := v.validate(items, item, itemPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateString validates string constraints (enum).
func (v *DefaultValidator) validateString(schema map[string]interface{}, data interface{}, path string) error {
	str := data.(string)

	if enum, ok := schema["enum"].([]interface{}); ok {
		for _, allowed := range enum {
			if allowedStr, ok := allowed.(string); ok && allowedStr == str {
				return nil
			}
		}
		enumJSON, _ := json.Marshal(enum)
		return NewValidationError(path, "enum", fmt.Sprintf("value %q not in allowed values: %s", str, enumJSON))
	}

	return nil
}
