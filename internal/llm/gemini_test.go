package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"emotion":      map[string]any{"type": "string", "enum": []any{"normal", "happy", "sad"}},
			"brief_reason": map[string]any{"type": "string"},
			"confidence":   map[string]any{"type": "integer"},
			"motions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"emotion", "brief_reason"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["brief_reason"].Type != "STRING" {
		t.Fatalf("expected STRING for brief_reason, got %s", schema.Properties["brief_reason"].Type)
	}
	if schema.Properties["confidence"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for confidence, got %s", schema.Properties["confidence"].Type)
	}
	if len(schema.Properties["emotion"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["emotion"].Enum))
	}
	if schema.Properties["motions"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for motions, got %s", schema.Properties["motions"].Type)
	}
	if schema.Properties["motions"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for motions items, got %s", schema.Properties["motions"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
