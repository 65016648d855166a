package jsonschema

import (
	"encoding/json"
	"fmt"
	"math"
)

// ValidationError reports a mismatch between a model-supplied argument object
// and the declared parameter schema. Property identifies the offending field;
// it is empty when the document as a whole is malformed.
type ValidationError struct {
	Property string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("schema validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("schema validation failed for property %q: %s", e.Property, e.Reason)
}

// Validate checks a JSON document against the schema. It verifies that the
// document is an object when the schema declares one, that every required
// property is present, that each known property's JSON type matches the
// declared type, and that enum-constrained values are within the allowed set.
// Unknown properties are accepted, matching the permissive default of JSON
// Schema's additionalProperties.
//
// Returns a *ValidationError on the first mismatch found.
func (s *Schema) Validate(document []byte) error {
	if s == nil {
		return nil
	}

	var value any
	if err := json.Unmarshal(document, &value); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	return s.validateValue("", value)
}

// validateValue checks a single decoded JSON value against the schema node.
func (s *Schema) validateValue(property string, value any) error {
	if s == nil {
		return nil
	}

	switch s.Type {
	case "object":
		object, ok := value.(map[string]any)
		if !ok {
			return &ValidationError{Property: property, Reason: fmt.Sprintf("expected object, got %s", jsonTypeName(value))}
		}
		return s.validateObject(object)

	case "array":
		items, ok := value.([]any)
		if !ok {
			return &ValidationError{Property: property, Reason: fmt.Sprintf("expected array, got %s", jsonTypeName(value))}
		}
		for _, item := range items {
			if err := s.Items.validateValue(property, item); err != nil {
				return err
			}
		}

	case "string":
		if _, ok := value.(string); !ok {
			return &ValidationError{Property: property, Reason: fmt.Sprintf("expected string, got %s", jsonTypeName(value))}
		}

	case "boolean":
		if _, ok := value.(bool); !ok {
			return &ValidationError{Property: property, Reason: fmt.Sprintf("expected boolean, got %s", jsonTypeName(value))}
		}

	case "number":
		if _, ok := value.(float64); !ok {
			return &ValidationError{Property: property, Reason: fmt.Sprintf("expected number, got %s", jsonTypeName(value))}
		}

	case "integer":
		number, ok := value.(float64)
		if !ok {
			return &ValidationError{Property: property, Reason: fmt.Sprintf("expected integer, got %s", jsonTypeName(value))}
		}
		if number != math.Trunc(number) {
			return &ValidationError{Property: property, Reason: fmt.Sprintf("expected integer, got fractional number %v", number)}
		}
	}

	if len(s.Enum) > 0 {
		if err := s.validateEnum(property, value); err != nil {
			return err
		}
	}

	return nil
}

// validateObject checks required properties and recurses into known ones.
func (s *Schema) validateObject(object map[string]any) error {
	for _, requiredProperty := range s.Required {
		if _, present := object[requiredProperty]; !present {
			return &ValidationError{Property: requiredProperty, Reason: "required property is missing"}
		}
	}

	for propertyName, propertyValue := range object {
		propertySchema, known := s.Properties[propertyName]
		if !known {
			continue
		}
		if err := propertySchema.validateValue(propertyName, propertyValue); err != nil {
			return err
		}
	}

	return nil
}

// validateEnum checks the value against the allowed enum set.
// JSON numbers decode as float64, so integer enum values are compared numerically.
func (s *Schema) validateEnum(property string, value any) error {
	for _, allowed := range s.Enum {
		if allowedInt, ok := allowed.(int64); ok {
			if number, ok := value.(float64); ok && number == float64(allowedInt) {
				return nil
			}
			continue
		}
		if allowed == value {
			return nil
		}
	}
	return &ValidationError{Property: property, Reason: fmt.Sprintf("value %v is not one of the allowed values %v", value, s.Enum)}
}

// jsonTypeName returns the JSON type name of a decoded value for error messages.
func jsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
