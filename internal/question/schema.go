package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchema describes one question document. Only subject, question
// and answer are checked; optional fields of the wrong type fall back to
// their defaults while decoding.
const recordSchema = `{
  "type": "object",
  "required": ["subject", "question", "answer"],
  "properties": {
    "subject":  {"type": "string", "minLength": 1},
    "question": {"type": "string"},
    "answer":   {"type": ["string", "number", "boolean"]}
  }
}`

const recordSchemaURL = "schema://question-record.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// schema returns the compiled record schema, compiling it on first use.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(recordSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(recordSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateRecord checks a raw question document against the schema.
func validateRecord(raw json.RawMessage) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile question schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
