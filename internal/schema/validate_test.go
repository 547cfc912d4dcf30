package schema_test

import (
	"errors"
	"testing"

	"github.com/prismcms/prism/internal/schema"
)

func heroSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"headline"},
		"properties": map[string]any{
			"headline": map[string]any{"type": "string"},
			"ctaURL":   map[string]any{"type": "string"},
		},
	}
}

func TestValidateSchema(t *testing.T) {
	if err := schema.ValidateSchema(heroSchema()); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}
	if err := schema.ValidateSchema(nil); err != nil {
		t.Fatalf("nil schema must be accepted: %v", err)
	}
	if err := schema.ValidateSchema(map[string]any{"type": 42}); !errors.Is(err, schema.ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidatePayload(t *testing.T) {
	valid := map[string]any{"headline": "Hello"}
	if err := schema.ValidatePayload(heroSchema(), valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	// Nil schema accepts anything.
	if err := schema.ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("nil schema must accept all payloads: %v", err)
	}

	err := schema.ValidatePayload(heroSchema(), map[string]any{"headline": 42})
	if !errors.Is(err, schema.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if issues := schema.Issues(err); len(issues) == 0 {
		t.Fatal("expected at least one validation issue")
	}

	if err := schema.ValidatePayload(heroSchema(), map[string]any{}); !errors.Is(err, schema.ErrSchemaValidation) {
		t.Fatalf("expected required-field rejection, got %v", err)
	}
}
