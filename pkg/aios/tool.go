package aios

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ToolDescriptor advertises a tool the kernel may call while satisfying a
// query. Parameters holds the tool's JSON Schema, kept raw so descriptors
// round-trip byte-for-byte.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// SchemaValidator compiles and caches tool parameter schemas so repeated
// validations against the same descriptor don't recompile it.
type SchemaValidator struct {
	mu    sync.RWMutex
	cache map[string]*gojsonschema.Schema
}

// NewSchemaValidator creates an empty validator.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{
		cache: make(map[string]*gojsonschema.Schema),
	}
}

// ValidateArguments checks args against the tool's parameter schema. Tools
// without a schema accept anything. Schema violations are reported as
// *ValidationError; a malformed schema is an ordinary error.
func (sv *SchemaValidator) ValidateArguments(tool ToolDescriptor, args map[string]any) error {
	if len(tool.Parameters) == 0 {
		return nil
	}

	schema, err := sv.getSchema(string(tool.Parameters))
	if err != nil {
		return fmt.Errorf("compiling parameter schema for tool %q: %w", tool.Name, err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("validating arguments for tool %q: %w", tool.Name, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return &ValidationError{
			Field:  fmt.Sprintf("tools.%s.parameters", tool.Name),
			Reason: fmt.Sprintf("arguments rejected: %v", details),
		}
	}

	return nil
}

func (sv *SchemaValidator) getSchema(raw string) (*gojsonschema.Schema, error) {
	sv.mu.RLock()
	schema, ok := sv.cache[raw]
	sv.mu.RUnlock()
	if ok {
		return schema, nil
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, err
	}

	sv.mu.Lock()
	sv.cache[raw] = schema
	sv.mu.Unlock()

	return schema, nil
}
