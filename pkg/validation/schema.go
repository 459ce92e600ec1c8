// Package validation checks tool parameters before any network or cache access.
package validation

import (
	"sort"
)

type Type string

const (
	TypeAny     Type = "any"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

type Format string

const (
	FormatEmail    Format = "email"
	FormatURL      Format = "url"
	FormatDateTime Format = "date-time"
	FormatDate     Format = "date"
)

type (
	// Constraint describes one field. Fields are optional unless Required.
	Constraint struct {
		Type        Type
		Description string
		Required    bool
		Enum        []any
		Min         *float64
		Max         *float64
		MinLength   *int
		MaxLength   *int
		Pattern     string
		Format      Format
		Items       *Constraint
		Properties  Schema
		Default     any
	}

	// Schema maps field names to constraints. Unknown input fields are ignored.
	Schema map[string]Constraint
)

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}

// Merge returns a new schema holding the fields of every given schema,
// later schemas overriding earlier ones.
func Merge(schemas ...Schema) Schema {
	merged := make(Schema)

	for _, schema := range schemas {
		for name, constraint := range schema {
			merged[name] = constraint
		}
	}

	return merged
}

// JSONSchema renders the schema as a JSON Schema object description.
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s))
	required := make([]string, 0)

	for name, constraint := range s {
		properties[name] = constraint.jsonSchema()

		if constraint.Required {
			required = append(required, name)
		}
	}

	sort.Strings(required)

	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		out["required"] = required
	}

	return out
}

func (c Constraint) jsonSchema() map[string]any {
	out := make(map[string]any)

	if c.Type != "" && c.Type != TypeAny {
		out["type"] = string(c.Type)
	}

	if c.Description != "" {
		out["description"] = c.Description
	}

	if len(c.Enum) > 0 {
		out["enum"] = c.Enum
	}

	if c.Min != nil {
		out["minimum"] = *c.Min
	}

	if c.Max != nil {
		out["maximum"] = *c.Max
	}

	if c.MinLength != nil {
		out["minLength"] = *c.MinLength
	}

	if c.MaxLength != nil {
		out["maxLength"] = *c.MaxLength
	}

	if c.Pattern != "" {
		out["pattern"] = c.Pattern
	}

	if c.Format != "" {
		out["format"] = string(c.Format)
	}

	if c.Default != nil {
		out["default"] = c.Default
	}

	if c.Items != nil {
		out["items"] = c.Items.jsonSchema()
	}

	if c.Properties != nil {
		nested := c.Properties.JSONSchema()
		out["properties"] = nested["properties"]

		if req, ok := nested["required"]; ok {
			out["required"] = req
		}
	}

	return out
}
