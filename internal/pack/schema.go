package pack

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// packSchema defines the JSON schema a cockpit pack must satisfy before
// it is unmarshalled.
var packSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":         map[string]any{"type": "string", "minLength": 1},
		"manufacturer": map[string]any{"type": "string"},
		"model":        map[string]any{"type": "string"},
		"type":         map[string]any{"type": "string"},
		"description":  map[string]any{"type": "string"},
		"media": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"link":   map[string]any{"type": "string", "minLength": 1},
					"type":   map[string]any{"type": "string"},
					"width":  map[string]any{"type": "integer", "minimum": 0},
					"height": map[string]any{"type": "integer", "minimum": 0},
				},
				"required":             []any{"link", "type"},
				"additionalProperties": false,
			},
		},
		"instruments": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"x":           map[string]any{"type": "integer", "minimum": 0},
					"y":           map[string]any{"type": "integer", "minimum": 0},
				},
				"required":             []any{"name", "x", "y"},
				"additionalProperties": false,
			},
		},
		"checklists": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "minLength": 1},
					"items": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"description":     map[string]any{"type": "string", "minLength": 1},
								"order":           map[string]any{"type": "integer"},
								"instrumentIndex": map[string]any{"type": "integer", "minimum": 0},
							},
							"required":             []any{"description", "instrumentIndex"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"name", "items"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"name", "media", "instruments"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Validate checks raw JSON against the pack schema.
func Validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("pack: invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("pack: compile schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("pack: schema validation failed: %w", err)
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not
		// raw bytes. Marshal then unmarshal to get a clean representation.
		defBytes, err := json.Marshal(packSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://cockpit-pack.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
