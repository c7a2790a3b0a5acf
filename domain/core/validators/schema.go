package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// FieldType is a JSON-Schema primitive type.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
)

// Property describes a single field of an object schema.
type Property struct {
	Type  FieldType `json:"type"`
	Items *Property `json:"items,omitempty"`
}

// Schema is a JSON-Schema document for an object payload. The same document
// is compiled for validation and returned to API clients alongside
// validation failures.
type Schema struct {
	Title                string              `json:"title"`
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type compiledKey struct {
	schema   *Schema
	required string
}

var compiled sync.Map

// SchemaError reports every violation found in a payload.
type SchemaError struct {
	Schema     *Schema
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("payload does not match %s schema: %s", e.Schema.Title, strings.Join(e.Violations, "; "))
}

// Validate checks that payload carries every required field and that every
// field present has the declared type.
func (s *Schema) Validate(payload map[string]any) error {
	return s.validate(payload, s.Required)
}

// ValidatePartial type-checks the fields present in payload but only
// requires the listed fields.
func (s *Schema) ValidatePartial(payload map[string]any, required ...string) error {
	return s.validate(payload, required)
}

func (s *Schema) validate(payload map[string]any, required []string) error {
	schema, err := s.compile(required)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("failed to validate payload: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	sort.Strings(violations)
	return &SchemaError{Schema: s, Violations: violations}
}

// compile returns the compiled form of s with the given required fields.
// Compiled schemas are cached per required set.
func (s *Schema) compile(required []string) (*gojsonschema.Schema, error) {
	key := compiledKey{schema: s, required: strings.Join(required, ",")}
	if cached, ok := compiled.Load(key); ok {
		return cached.(*gojsonschema.Schema), nil
	}

	doc := &Schema{
		Title:                s.Title,
		Type:                 s.Type,
		Properties:           s.Properties,
		Required:             required,
		AdditionalProperties: s.AdditionalProperties,
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", s.Title, err)
	}
	actual, _ := compiled.LoadOrStore(key, schema)
	return actual.(*gojsonschema.Schema), nil
}

// Decode converts a validated payload into out. Integer-typed fields are
// normalized first so that values such as 1234.0 land in int fields.
func (s *Schema) Decode(payload map[string]any, out any) error {
	normalized := make(map[string]any, len(payload))
	for name, value := range payload {
		if prop, ok := s.Properties[name]; ok && prop.Type == TypeInteger {
			if f, ok := asFloat(value); ok {
				value = int64(f)
			}
		}
		normalized[name] = value
	}

	raw, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

// CoerceInteger truncates a numeric field of payload to an integer in place.
// Non-numeric or absent fields are left untouched.
func CoerceInteger(payload map[string]any, field string) {
	if f, ok := asFloat(payload[field]); ok {
		payload[field] = int64(math.Trunc(f))
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
