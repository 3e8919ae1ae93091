// Package schemas guards the boundary of the engine: raw JSON documents are checked
// against embedded JSON Schemas before they are decoded into engine types.
package schemas

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/mandate-configurator/internal/types"
)

//go:embed selection_state.schema.json
var selectionStateSchema []byte

const selectionStateName = "selection_state.schema.json"

var compiledSelectionState = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return compile(selectionStateName, selectionStateSchema)
})

// SelectionStateSchema returns the raw JSON Schema for selection documents.
func SelectionStateSchema() []byte {
	out := make([]byte, len(selectionStateSchema))
	copy(out, selectionStateSchema)
	return out
}

// DecodeSelectionState validates raw against the selection schema and decodes it.
// Structural violations such as a non-array roleIds are rejected with a
// *ValidationError. Days are clamped to the supported range and a missing
// language defaults to German.
func DecodeSelectionState(raw []byte) (types.SelectionState, error) {
	schema, err := compiledSelectionState()
	if err != nil {
		return types.SelectionState{}, err
	}
	if err := validate(schema, raw); err != nil {
		return types.SelectionState{}, err
	}

	var state types.SelectionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return types.SelectionState{}, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	return state.Normalized(), nil
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schema, err := compile("(string schema)", []byte(schemaContent))
	if err != nil {
		return err
	}
	return validate(schema, []byte(jsonContent))
}

func compile(name string, data []byte) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema could not be compiled", Cause: err}
	}
	return schema, nil
}

func validate(schema *gojsonschema.Schema, doc []byte) error {
	if !json.Valid(doc) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document is not valid JSON"}}}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
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
