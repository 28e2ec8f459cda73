package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Draft identifies the JSON Schema dialect a document is checked against.
type Draft string

const (
	Draft7    Draft = "http://json-schema.org/draft-07/schema#"
	Draft2019 Draft = "https://json-schema.org/draft/2019-09/schema"
	Draft2020 Draft = "https://json-schema.org/draft/2020-12/schema"
)

// Schema is the subset of JSON Schema understood by the compiler, extended
// with the errorMessage keyword. Values are declared once and treated as
// immutable after compilation.
type Schema struct {
	// Annotations
	SchemaURI   string `json:"$schema,omitempty"`
	ID          string `json:"$id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type string `json:"type,omitempty"`
	Enum []any  `json:"enum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Format    string `json:"format,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`

	// Object
	Properties           Properties `json:"properties,omitempty"`
	Required             []string   `json:"required,omitempty"`
	AdditionalProperties *bool      `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Messages
	ErrorMessage *ErrorMessage `json:"errorMessage,omitempty"`
}

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties keeps object properties in declaration order. The order is
// observable: violations of sibling properties are reported in this order.
type Properties []Property

// Prop is a shorthand for building a Property.
func Prop(name string, s *Schema) Property { return Property{Name: name, Schema: s} }

// Props builds an ordered Properties list.
func Props(ps ...Property) Properties { return Properties(ps) }

// Get returns the schema declared for name.
func (ps Properties) Get(name string) (*Schema, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Names returns the property names in declaration order.
func (ps Properties) Names() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func (ps Properties) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		if p.Schema == nil {
			b.WriteString("{}")
			continue
		}
		v, err := json.Marshal(p.Schema)
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (ps *Properties) UnmarshalJSON(b []byte) error {
	members, err := orderedMembers(b)
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	out := make(Properties, 0, len(members))
	for _, m := range members {
		s := &Schema{}
		if err := decodeStrict(m.raw, s); err != nil {
			return fmt.Errorf("properties.%s: %w", m.key, err)
		}
		out = append(out, Property{Name: m.key, Schema: s})
	}
	*ps = out
	return nil
}

// ErrorMessage carries the messages attached to a schema node. Either
// Message is set (string form) or Keywords/Required are (object form).
type ErrorMessage struct {
	// Message replaces every violation raised by the node's own keywords.
	Message string
	// Keywords maps a keyword name (or "_" for the fallback) to a message.
	Keywords map[string]string
	// Required maps a required property name to its message.
	Required map[string]string
}

// Msg builds the string form of errorMessage.
func Msg(s string) *ErrorMessage { return &ErrorMessage{Message: s} }

// Msgs builds the keyword form of errorMessage.
func Msgs(kv map[string]string) *ErrorMessage { return &ErrorMessage{Keywords: kv} }

// WithRequired sets per-property messages for the required keyword.
func (m *ErrorMessage) WithRequired(kv map[string]string) *ErrorMessage {
	if m == nil {
		m = &ErrorMessage{}
	}
	m.Required = kv
	return m
}

// IsString reports whether the string form is used.
func (m *ErrorMessage) IsString() bool {
	return m != nil && m.Message != "" && len(m.Keywords) == 0 && len(m.Required) == 0
}

func (m ErrorMessage) MarshalJSON() ([]byte, error) {
	if m.Message != "" && len(m.Keywords) == 0 && len(m.Required) == 0 {
		return json.Marshal(m.Message)
	}
	keys := make([]string, 0, len(m.Keywords))
	for k := range m.Keywords {
		if k == "required" && len(m.Required) > 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b bytes.Buffer
	b.WriteByte('{')
	n := 0
	write := func(k string, v any) error {
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if n > 0 {
			b.WriteByte(',')
		}
		n++
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
		return nil
	}
	for _, k := range keys {
		if err := write(k, m.Keywords[k]); err != nil {
			return nil, err
		}
	}
	if len(m.Required) > 0 {
		if err := write("required", m.Required); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (m *ErrorMessage) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("errorMessage: empty value")
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("errorMessage: %w", err)
		}
		*m = ErrorMessage{Message: s}
		return nil
	}
	if b[0] != '{' {
		return errors.New("errorMessage: must be a string or an object")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("errorMessage: %w", err)
	}
	out := ErrorMessage{}
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		if k == "required" && len(v) > 0 && v[0] == '{' {
			var req map[string]string
			if err := json.Unmarshal(v, &req); err != nil {
				return fmt.Errorf("errorMessage.required: values must be strings: %w", err)
			}
			out.Required = req
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return fmt.Errorf("errorMessage.%s: must be a string: %w", k, err)
		}
		if out.Keywords == nil {
			out.Keywords = make(map[string]string, len(raw))
		}
		out.Keywords[k] = s
	}
	*m = out
	return nil
}

// Int returns a pointer to n, for optional integer keywords.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for optional numeric keywords.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b, for additionalProperties.
func Bool(b bool) *bool { return &b }

// String renders the schema as compact JSON; it is meant for diagnostics.
func (s *Schema) String() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "<invalid schema: " + strings.TrimSpace(err.Error()) + ">"
	}
	return string(b)
}
