package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed options_schema.json
var optionsSchemaBytes []byte

var (
	optionsSchema     *gojsonschema.Schema
	optionsSchemaOnce sync.Once
	optionsSchemaErr  error
)

// loadSchema compiles the embedded option schema once.
func loadSchema() (*gojsonschema.Schema, error) {
	optionsSchemaOnce.Do(func() {
		optionsSchema, optionsSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(optionsSchemaBytes))
		if optionsSchemaErr != nil {
			optionsSchemaErr = fmt.Errorf("failed to compile option schema: %w", optionsSchemaErr)
		}
	})
	return optionsSchema, optionsSchemaErr
}

// ValidateOptions checks the types of a typed option map, as decoded from
// YAML or JSON, before it is applied. Every violation is reported as a
// *ValidationError naming the key as it was written.
func ValidateOptions(opts map[string]any) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	normalized := make(map[string]any, len(opts))
	original := make(map[string]string, len(opts))
	for key, value := range opts {
		n := normalizeKey(key)
		normalized[n] = value
		original[n] = key
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(normalized))
	if err != nil {
		return fmt.Errorf("failed to validate options: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []error
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" || field == "" {
			// additionalProperties failures name the key in the details.
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		head, rest, nested := strings.Cut(field, ".")
		if key, ok := original[head]; ok {
			field = key
			if nested {
				field += "." + rest
			}
		}
		errs = append(errs, invalid(field, "%s", desc.Description()))
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return errors.Join(errs...)
}
