package engine

import (
	"errors"
	"strings"
	"testing"

	js "github.com/reoring/jsonguard/jsonschema"
)

func TestCompile_ConfigErrors(t *testing.T) {
	noFormats := Env{}
	cases := []struct {
		name    string
		schema  *js.Schema
		want    error
		loc     string
		keyword string
	}{
		{"nil", nil, ErrInvalidSchema, "#", ""},
		{"unknown type", &js.Schema{Type: "decimal"}, ErrInvalidSchema, "#", "type"},
		{"negative minItems", &js.Schema{MinItems: js.Int(-1)}, ErrInvalidSchema, "#", "minItems"},
		{"empty enum", &js.Schema{Enum: []any{}}, ErrInvalidSchema, "#", "enum"},
		{"bad pattern", &js.Schema{Pattern: "(["}, ErrInvalidPattern, "#", "pattern"},
		{
			"unregistered format",
			&js.Schema{Type: "object", Properties: js.Props(js.Prop("id", &js.Schema{Format: "luhn"}))},
			ErrUnknownFormat, "#/properties/id", "format",
		},
		{"duplicate required", &js.Schema{Required: []string{"a", "a"}}, ErrInvalidSchema, "#", "required"},
		{
			"mixed errorMessage",
			&js.Schema{ErrorMessage: &js.ErrorMessage{Message: "x", Keywords: map[string]string{"type": "y"}}},
			ErrInvalidErrorMessage, "#", "errorMessage",
		},
		{
			"unknown errorMessage keyword",
			&js.Schema{ErrorMessage: js.Msgs(map[string]string{"minimun": "typo"})},
			ErrInvalidErrorMessage, "#", "errorMessage",
		},
		{
			"required message for undeclared property",
			&js.Schema{Required: []string{"a"}, ErrorMessage: js.Msgs(nil).WithRequired(map[string]string{"b": "b?"})},
			ErrInvalidErrorMessage, "#", "errorMessage",
		},
		{
			"nested items location",
			&js.Schema{Type: "array", Items: &js.Schema{Type: "strng"}},
			ErrInvalidSchema, "#/items", "type",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.schema, noFormats)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("want *ConfigError, got %T", err)
			}
			if ce.Location != tc.loc || ce.Keyword != tc.keyword {
				t.Fatalf("location/keyword = %s/%s, want %s/%s", ce.Location, ce.Keyword, tc.loc, tc.keyword)
			}
		})
	}
}

func TestCompile_NilPropertySchemaAcceptsAnything(t *testing.T) {
	s := &js.Schema{Type: "object", Properties: js.Props(js.Prop("any", nil))}
	n, err := Compile(s, Env{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if vs := n.Validate(map[string]any{"any": []any{1, "x"}}); len(vs) != 0 {
		t.Fatalf("unexpected violations: %+v", vs)
	}
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Location: "#/properties/id", Keyword: "format", Err: ErrUnknownFormat}
	if !strings.Contains(err.Error(), "#/properties/id (format)") {
		t.Fatalf("unexpected text: %s", err)
	}
}

func TestCheckMeta(t *testing.T) {
	if err := CheckMeta([]byte(`{"type":"object","minItems":1}`), ""); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}
	err := CheckMeta([]byte(`{"type":"object","required":"name"}`), "")
	if !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("want ErrInvalidSchema, got %v", err)
	}
}

func TestCompile_UnsetBoundsAcceptEmpty(t *testing.T) {
	n, err := Compile(&js.Schema{Type: "object", Properties: js.Props(
		js.Prop("s", &js.Schema{Type: "string"}),
		js.Prop("a", &js.Schema{Type: "array"}),
	)}, Env{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if vs := n.Validate(map[string]any{"s": "", "a": []any{}}); len(vs) != 0 {
		t.Fatalf("unexpected violations: %+v", vs)
	}
}
