// Package validation checks raw entity JSON against per-store schemas before
// it enters the local store or the mutation queue. Typed struct validation
// happens later in the entity facades; this layer rejects malformed payloads
// at the boundary.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// PayloadValidator validates entity JSON payloads against their store schema
type PayloadValidator interface {
	ValidatePayload(storeName string, data []byte) error
}

type payloadValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewPayloadValidator compiles the embedded schema for every known store.
func NewPayloadValidator() (PayloadValidator, error) {
	compiler := jsonschema.NewCompiler()
	schemas := make(map[string]*jsonschema.Schema, len(domain.StoreNames))

	for _, storeName := range domain.StoreNames {
		name := fmt.Sprintf("schemas/%s.json", storeName)

		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
		}

		if err := compiler.AddResource(name, doc); err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
		}

		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		schemas[storeName] = schema
	}

	return &payloadValidator{schemas: schemas}, nil
}

// ValidatePayload validates one entity snapshot against its store schema
func (v *payloadValidator) ValidatePayload(storeName string, data []byte) error {
	schema, ok := v.schemas[storeName]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownStore, storeName)
	}

	var jsonData interface{}
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(jsonData); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// formatValidationError formats validation errors to be user-friendly
func formatValidationError(err error) error {
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		var errors []string
		collectErrors(validationErr, &errors)
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return fmt.Errorf("validation error: %w", err)
}

// collectErrors recursively collects all validation errors
func collectErrors(err *jsonschema.ValidationError, errors *[]string) {
	msg := formatError(err)
	if msg != "" {
		*errors = append(*errors, msg)
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errors)
	}
}

// formatError formats a single validation error
func formatError(err *jsonschema.ValidationError) string {
	location := strings.Join(err.InstanceLocation, "/")
	if location == "" {
		location = "(root)"
	} else {
		location = "/" + location
	}

	keywords := ""
	if err.ErrorKind != nil {
		keywordPath := err.ErrorKind.KeywordPath()
		if len(keywordPath) > 0 {
			keywords = strings.Join(keywordPath, ".")
		}
	}

	if keywords != "" {
		return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
