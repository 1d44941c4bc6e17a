package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/palabra-app/palabra/internal/catalog"
)

// The schemas accept every field-name convention the loader's normalizer
// understands. Structural problems (wrong types, missing required fields)
// fail here; referential problems (dangling prerequisites, cycles) are
// caught by catalog validation.

const catalogSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "mode", "unit", "dataPath"],
		"properties": {
			"id":    {"type": "string", "minLength": 1},
			"title": {"type": "string", "minLength": 1},
			"mode":  {"enum": ["flashcard", "quiz", "completion", "sorting", "matching", "reading"]},
			"levels": {
				"type": "array",
				"items": {"enum": ["a1", "a2", "b1", "b2", "c1", "c2"]}
			},
			"unit":          {"type": "integer", "minimum": 1, "maximum": 6},
			"prerequisites": {"type": "array", "items": {"type": "string"}},
			"dataPath":      {"type": "string", "minLength": 1}
		}
	}
}`

// pairConventions matches any of the historical vocabulary-pair spellings.
const pairConventions = `{"anyOf": [
	{"required": ["front", "back"]},
	{"required": ["en", "es"]},
	{"required": ["term", "definition"]},
	{"required": ["left", "right"]}
]}`

var dataSchemas = map[catalog.LearningMode]string{
	catalog.ModeFlashcard: `{
		"type": "array",
		"items": ` + pairConventions + `
	}`,
	catalog.ModeQuiz: `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["options", "correct"],
			"anyOf": [{"required": ["prompt"]}, {"required": ["question"]}],
			"properties": {
				"options": {"type": "array", "items": {"type": "string"}, "minItems": 2},
				"correct": {"type": "string", "minLength": 1}
			}
		}
	}`,
	catalog.ModeCompletion: `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["sentence", "correct"],
			"properties": {
				"sentence": {"type": "string", "minLength": 1},
				"correct":  {"type": "string", "minLength": 1}
			}
		}
	}`,
	catalog.ModeSorting: `{
		"type": "array",
		"items": {"anyOf": [
			{"required": ["word", "category"]},
			{"required": ["categories"]}
		]}
	}`,
	catalog.ModeMatching: `{
		"type": "array",
		"items": {"anyOf": [
			` + pairConventions + `,
			{"required": ["pairs"]}
		]}
	}`,
	catalog.ModeReading: `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["text"],
			"properties": {"text": {"type": "string", "minLength": 1}}
		}
	}`,
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name, definition string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(definition), &parsed); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", name, err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// validateAgainst checks raw JSON against the named schema definition.
func validateAgainst(name, definition string, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := compiledSchema(name, definition)
	if err != nil {
		return err
	}
	return compiled.Validate(parsed)
}
