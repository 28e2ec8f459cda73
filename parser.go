package jsonguard

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	eng "github.com/reoring/jsonguard/internal/engine"
	"github.com/reoring/jsonguard/jsonschema"
)

// Parser validates data and hands it back as a T.
type Parser[T any] struct {
	v *Validator
}

// NewParser wraps an already compiled Validator.
func NewParser[T any](v *Validator) *Parser[T] {
	return &Parser[T]{v: v}
}

// BuildParser compiles s with c and returns a Parser for T.
func BuildParser[T any](c *Compiler, s *jsonschema.Schema) (*Parser[T], error) {
	v, err := c.Compile(s)
	if err != nil {
		return nil, err
	}
	return NewParser[T](v), nil
}

// MustBuildParser is BuildParser that panics on a configuration error.
func MustBuildParser[T any](c *Compiler, s *jsonschema.Schema) *Parser[T] {
	p, err := BuildParser[T](c, s)
	if err != nil {
		panic(err)
	}
	return p
}

// Validator returns the underlying compiled schema.
func (p *Parser[T]) Validator() *Validator { return p.v }

// Parse validates data and returns it as a T. When data already is a T it is
// returned as is; otherwise a T is built from data. Values are never coerced:
// the T is only built after the schema accepted data.
func (p *Parser[T]) Parse(data any) (T, error) {
	var zero T
	if err := p.v.Check(data); err != nil {
		return zero, err
	}
	if t, ok := data.(T); ok {
		return t, nil
	}
	return construct[T](data)
}

// ParseBytes decodes a JSON document, validates it and builds a T from the
// decoded value.
// Malformed input yields a *ValidationError with a single parse_error issue.
func (p *Parser[T]) ParseBytes(b []byte, opts ...DecodeOpt) (T, error) {
	var zero T
	data, _, err := decodeJSON(b, lastDecodeOpt(opts))
	if err != nil {
		return zero, err
	}
	if err := p.v.Check(data); err != nil {
		return zero, err
	}
	if t, ok := data.(T); ok {
		return t, nil
	}
	return construct[T](data)
}

// ParseReader reads r fully and behaves like ParseBytes.
func (p *Parser[T]) ParseReader(r io.Reader, opts ...DecodeOpt) (T, error) {
	opt := lastDecodeOpt(opts)
	b, err := eng.ReadLimited(r, opt.MaxBytes)
	if err != nil {
		var zero T
		return zero, toValidationError(err)
	}
	return p.ParseBytes(b, opt)
}

// SafeParse parses data into T, returning (zero, false) on validation error.
func (p *Parser[T]) SafeParse(data any) (T, bool) {
	val, err := p.Parse(data)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if data conforms to the schema.
func (p *Parser[T]) Is(data any) bool {
	return p.v.Validate(data).OK()
}

// construct builds a T from validated data. Whole-valued numbers are written
// as integer literals first, so 30.0 lands in an int field.
func construct[T any](data any) (T, error) {
	var zero T
	b, err := json.Marshal(eng.WholeNumbers(data))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	return t, nil
}
