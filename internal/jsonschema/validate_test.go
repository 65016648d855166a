package jsonschema

import (
	"errors"
	"testing"
)

func TestValidateAcceptsMatchingDocument(t *testing.T) {
	schema := GenerateJSONSchema[operands]()

	if err := schema.Validate([]byte(`{"a":12,"b":5}`)); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
}

func TestValidateRejectsMissingRequired(t *testing.T) {
	schema := GenerateJSONSchema[operands]()

	err := schema.Validate([]byte(`{"a":12}`))
	if err == nil {
		t.Fatal("expected error for missing required property, got nil")
	}

	var validationError *ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if validationError.Property != "b" {
		t.Errorf("expected property b, got %q", validationError.Property)
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	schema := GenerateJSONSchema[operands]()

	err := schema.Validate([]byte(`{"a":"twelve","b":5}`))
	if err == nil {
		t.Fatal("expected error for wrong type, got nil")
	}

	var validationError *ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if validationError.Property != "a" {
		t.Errorf("expected property a, got %q", validationError.Property)
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	schema := GenerateJSONSchema[operands]()

	err := schema.Validate([]byte(`{"a":12,`))
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestValidateAcceptsUnknownProperties(t *testing.T) {
	schema := GenerateJSONSchema[operands]()

	if err := schema.Validate([]byte(`{"a":1,"b":2,"c":3}`)); err != nil {
		t.Errorf("unknown properties should be accepted: %v", err)
	}
}

func TestValidateInteger(t *testing.T) {
	schema := GenerateJSONSchema[mixed]()

	if err := schema.Validate([]byte(`{"name":"x","count":3}`)); err != nil {
		t.Errorf("integral number rejected: %v", err)
	}

	if err := schema.Validate([]byte(`{"name":"x","count":3.5}`)); err == nil {
		t.Error("fractional number accepted for integer property")
	}
}

func TestValidateEnum(t *testing.T) {
	schema := GenerateJSONSchema[mixed]()

	if err := schema.Validate([]byte(`{"name":"x","mode":"fast"}`)); err != nil {
		t.Errorf("allowed enum value rejected: %v", err)
	}

	if err := schema.Validate([]byte(`{"name":"x","mode":"turbo"}`)); err == nil {
		t.Error("disallowed enum value accepted")
	}
}

func TestValidateNilSchema(t *testing.T) {
	var schema *Schema
	if err := schema.Validate([]byte(`anything`)); err != nil {
		t.Errorf("nil schema must accept everything: %v", err)
	}
}
