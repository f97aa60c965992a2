package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "tasks.schema.json"

// SnapshotSchema describes the persisted task list.
const SnapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed"],
    "properties": {
      "id":        {"type": "integer"},
      "title":     {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(SnapshotSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// ValidateSnapshot checks raw persisted bytes against SnapshotSchema.
func ValidateSnapshot(b []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
