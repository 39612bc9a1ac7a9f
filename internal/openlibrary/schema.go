package openlibrary

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema only constrains the fields that get mapped. Anything else
// the API adds is ignored. Explicit nulls read as absent.
const responseSchema = `{
  "type": "object",
  "properties": {
    "numFound": {"type": ["integer", "null"]},
    "start":    {"type": ["integer", "null"]},
    "docs": {
      "type": ["array", "null"],
      "items": {
        "type": ["object", "null"],
        "properties": {
          "title":                   {"type": ["string", "null"]},
          "title_suggest":           {"type": ["string", "null"]},
          "author_name":             {"type": ["array", "null"], "items": {"type": ["string", "null"]}},
          "author_alternative_name": {"type": ["array", "null"], "items": {"type": ["string", "null"]}},
          "first_publish_year":      {"type": ["integer", "null"]},
          "publish_year":            {"type": ["array", "null"], "items": {"type": ["integer", "null"]}},
          "publisher":               {"type": ["array", "null"], "items": {"type": ["string", "null"]}},
          "cover_i":                 {"type": ["integer", "null"]}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	})
	return schema, schemaErr
}

// validate checks body against responseSchema.
func validate(body []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(msgs, "; "))
	}
	return nil
}
