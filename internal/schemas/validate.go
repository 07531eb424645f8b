// Package schemas validates JSON documents against JSON Schemas.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	embedded "github.com/jonathan/contract-board/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// DocumentError means the document is not parseable JSON
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("invalid JSON document: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses schema content; name is only used in error messages
func Compile(name string, content []byte) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "invalid schema", Cause: err}
	}
	return &Schema{name: name, schema: s}, nil
}

// Validate checks doc against the schema. It returns *DocumentError for
// malformed JSON and *ValidationError listing every violation otherwise.
func (s *Schema) Validate(doc []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

var seedSchema = sync.OnceValues(func() (*Schema, error) {
	return Compile("seed.schema.json", embedded.Seed)
})

// ValidateSeed validates a seed fixture against the embedded seed schema
func ValidateSeed(doc []byte) error {
	s, err := seedSchema()
	if err != nil {
		return err
	}
	return s.Validate(doc)
}
