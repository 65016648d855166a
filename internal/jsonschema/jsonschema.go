package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema represents the structure of JSON Schema used for defining tool
// arguments and responses. It follows the JSON Schema standard, supporting the
// subset of types and validation rules needed for LLM tool declarations:
// primitives, arrays, maps, and (possibly nested) plain structs.
type Schema struct {
	// Type specifies the data type (e.g., "object", "array", "string", "number")
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of the arguments, each with its own schema
	Properties map[string]*Schema `json:"properties,omitempty"`
	// For array types, defines the schema of items in the array
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether properties not defined in Properties are allowed
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Enum contains the list of allowed values for the parameter
	Enum []any `json:"enum,omitempty"`
}

// GenerateJSONSchema derives a JSON schema from the Go type T via reflection.
// Struct fields honor the json tag for naming and omission, and the jsonschema
// tag for customization:
//
//	type Input struct {
//	    A  float64 `json:"a"  jsonschema:"description=First operand,required"`
//	    Op string  `json:"op" jsonschema:"enum=add,enum=mul"`
//	}
//
// Non-pointer fields without omitempty are required by default. Recursive
// types are not supported; tool parameter types are expected to be flat.
func GenerateJSONSchema[T any]() *Schema {
	return generateSchema(reflect.TypeFor[T]())
}

// generateSchema builds the schema for a single type, dereferencing pointers.
func generateSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return generateSchema(t.Elem())

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Slice, reflect.Array:
		return &Schema{
			Type:  "array",
			Items: generateSchema(t.Elem()),
		}

	case reflect.Map:
		return &Schema{
			Type:                 "object",
			AdditionalProperties: generateSchema(t.Elem()),
		}

	case reflect.Struct:
		return generateStructSchema(t)

	default:
		return &Schema{Type: "object"}
	}
}

// generateStructSchema builds an object schema from a struct's exported fields.
func generateStructSchema(t reflect.Type) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{},
	}
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldName, isOmitEmpty, skip := parseJSONTag(field)
		if skip {
			continue
		}

		fieldSchema := generateSchema(field.Type)
		schema.Properties[fieldName] = fieldSchema

		isRequiredByTag, err := applyJSONSchemaTag(field.Type, field.Tag, fieldSchema)
		if err != nil {
			// Malformed tags keep the derived schema as is.
			continue
		}

		// Required when the field is a non-pointer without omitempty, or
		// explicitly marked required via the jsonschema tag.
		if (field.Type.Kind() != reflect.Ptr && !isOmitEmpty) || isRequiredByTag {
			required = append(required, fieldName)
		}
	}

	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// parseJSONTag resolves the effective property name from the json struct tag.
// Returns skip=true for fields tagged json:"-".
func parseJSONTag(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	name = field.Name

	jsonTag := field.Tag.Get("json")
	if jsonTag == "-" {
		return "", false, true
	}
	if jsonTag == "" {
		return name, false, false
	}

	if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
		if jsonTag[:commaIdx] != "" {
			name = jsonTag[:commaIdx]
		}
		omitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
	} else {
		name = jsonTag
	}
	return name, omitEmpty, false
}

// applyJSONSchemaTag parses the jsonschema struct tag and applies the settings
// to the schema. Supported directives:
//
//  1. jsonschema:"description=xxx"
//  2. jsonschema:"enum=xxx,enum=yyy" (values are converted to the field's type)
//  3. jsonschema:"required"
//
// Enum supports string, integer, float, and bool field types.
func applyJSONSchemaTag(fieldType reflect.Type, tag reflect.StructTag, schema *Schema) (bool, error) {
	jsonSchemaTag := tag.Get("jsonschema")
	if len(jsonSchemaTag) == 0 {
		return false, nil
	}

	isRequiredByTag := false
	for _, tagItem := range strings.Split(jsonSchemaTag, ",") {
		kv := strings.SplitN(tagItem, "=", 2)
		if len(kv) == 1 {
			if kv[0] == "required" {
				isRequiredByTag = true
			}
			continue
		}

		key, value := kv[0], kv[1]
		switch key {
		case "description":
			schema.Description = value
		case "enum":
			enumValue, err := convertEnumValue(fieldType, value)
			if err != nil {
				return isRequiredByTag, err
			}
			schema.Enum = append(schema.Enum, enumValue)
		}
	}

	return isRequiredByTag, nil
}

// convertEnumValue converts the raw tag string to the field's native type.
func convertEnumValue(fieldType reflect.Type, value string) (any, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v as int64: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v as float64: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v as bool: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type: %v", fieldType)
	}
}

// JsonString converts the Schema to its JSON representation.
// If indent is true, the output is formatted with two-space indentation.
func (s *Schema) JsonString(indent ...bool) (string, error) {
	shouldIndent := false
	if len(indent) > 0 {
		shouldIndent = indent[0]
	}

	var jsonBytes []byte
	var err error

	if shouldIndent {
		jsonBytes, err = json.MarshalIndent(s, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(s)
	}

	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// String returns the compact JSON representation of the schema.
// Returns an error message if marshalling fails.
func (s *Schema) String() string {
	jsonStr, err := s.JsonString()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return jsonStr
}
