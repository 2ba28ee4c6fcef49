package curriculum

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema constrains the curriculum JSON document. Content edits
// that break the layout fail at load, before the engine ever sees them.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "phases"},
	"properties": map[string]any{
		"version": map[string]any{
			"type":    "string",
			"pattern": `^\d+\.\d+\.\d+$`,
		},
		"phases": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title", "lessons"},
				"properties": map[string]any{
					"id":          map[string]any{"type": "integer", "minimum": 1},
					"title":       map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"lessons": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    lessonSchema,
					},
				},
			},
		},
	},
}

var lessonSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "title", "concept", "challenge", "answer", "hints", "steps"},
	"properties": map[string]any{
		"id":        map[string]any{"type": "string", "pattern": `^\d+\.\d+$`},
		"title":     map[string]any{"type": "string", "minLength": 1},
		"concept":   map[string]any{"type": "string", "minLength": 1},
		"challenge": map[string]any{"type": "string", "minLength": 1},
		"answer":    map[string]any{"type": "string", "minLength": 1},
		"follow_up": map[string]any{"type": "string"},
		"ordered":   map[string]any{"type": "boolean"},
		"predicate": map[string]any{
			"type":     "object",
			"required": []any{"name", "column"},
			"properties": map[string]any{
				"name":   map[string]any{"type": "string", "enum": []any{"column-non-decreasing"}},
				"column": map[string]any{"type": "string", "minLength": 1},
			},
		},
		"hints": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"stage", "text"},
				"properties": map[string]any{
					"stage": map[string]any{
						"type": "string",
						"enum": []any{"clarifying-question", "approach", "concept", "code"},
					},
					"text": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
		"steps": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"sql"},
				"properties": map[string]any{
					"sql":  map[string]any{"type": "string", "minLength": 1},
					"note": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateDocument checks raw against the curriculum schema.
func validateDocument(raw []byte) error {
	compileOnce.Do(func() {
		compiledSchema, compileErr = compileDocumentSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile schema: %w", compileErr)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileDocumentSchema() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://curriculum.json"
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
}
