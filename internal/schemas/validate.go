// Package schemas provides JSON Schema validation of request bodies before they are sent.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	schemafiles "github.com/joblify/employer-console/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
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

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Fields returns the failing field paths.
func (ve *ValidationError) Fields() []string {
	out := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		out = append(out, e.Field)
	}
	return out
}

// ValidateJobPayload validates a job create/update body against the embedded schema.
func ValidateJobPayload(payload any) error {
	return ValidateValue(schemafiles.JobPayload, payload)
}

// ValidateValue marshals v and validates it against the named embedded schema.
func ValidateValue(name string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return validateEmbedded(name, string(doc))
}

// ValidateFile validates a JSON file against the named embedded schema.
func ValidateFile(name, jsonPath string) error {
	absPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", absPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return validateEmbedded(name, string(data))
}

func validateEmbedded(name, jsonContent string) error {
	schemaContent, err := schemafiles.Load(name)
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "schema not found", Cause: err}
	}
	return validate(name, schemaContent, jsonContent)
}

func validate(name, schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Name:    name,
			Message: "schema validation failed during load",
			Cause:   err,
		}
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
