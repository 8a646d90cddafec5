package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var errSchemaViolation = errors.New("document does not match schema")

// The schema only pins the shapes that would otherwise decode into garbage;
// it stays permissive about missing fields so old documents load and get
// backfilled by Migrate.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "categories": {"type": "array", "items": {"type": "string"}},
    "outlines": {
      "type": "object",
      "additionalProperties": {"type": "array", "items": {"$ref": "#/$defs/outlineNode"}}
    },
    "todos": {"type": "array", "items": {"$ref": "#/$defs/todo"}},
    "tomorrowTodos": {"type": "array", "items": {"$ref": "#/$defs/todo"}},
    "history": {"type": "array", "items": {"type": "object"}},
    "stats": {
      "type": "object",
      "properties": {
        "streakDays": {"type": "integer"},
        "todayCompleted": {"type": "integer"},
        "totalCompleted": {"type": "integer"},
        "lastActiveDate": {"type": "string"},
        "dailyResetTime": {"type": "string"}
      }
    }
  },
  "$defs": {
    "outlineNode": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "text": {"type": "string"},
        "level": {"type": "integer"},
        "expanded": {"type": "boolean"},
        "children": {"type": "array", "items": {"$ref": "#/$defs/outlineNode"}},
        "links": {"type": "array", "items": {"type": "object"}}
      }
    },
    "todo": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "text": {"type": "string"},
        "completed": {"type": "boolean"},
        "category": {"type": "string"},
        "createdDate": {"type": "string"},
        "targetDate": {"type": "string"},
        "isOverdue": {"type": "boolean"},
        "isLocked": {"type": "boolean"},
        "isImportant": {"type": "boolean"}
      }
    }
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("document.schema.json", bytes.NewReader([]byte(documentSchema))); err != nil {
		return nil, err
	}
	return compiler.Compile("document.schema.json")
})

// validateDocument checks raw JSON against the document schema. Violations
// are reported as corruption so the recovery path kicks in.
func validateDocument(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", errSchemaViolation, err)
	}
	return nil
}
