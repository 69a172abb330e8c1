package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema only constrains the overall shape. Individual server entries are normalized
// leniently so that a broken entry surfaces as a per-server failure rather than an empty list.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "inputs": {
      "type": "array",
      "items": { "type": "object" }
    },
    "servers": { "type": ["object", "array"] },
    "mcpServers": { "type": ["object", "array"] }
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
})

// validateShape checks the document against documentSchema.
func validateShape(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("%w: schema: %w", ErrConfigLoadFailed, err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
	}

	return nil
}
