package jsonguard_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/reoring/jsonguard"
	"github.com/reoring/jsonguard/i18n"
	"github.com/reoring/jsonguard/jsonschema"
)

func TestCompiler_AddFormat(t *testing.T) {
	c := jsonguard.NewCompiler()
	if err := c.AddFormat("", func(any) bool { return true }); err == nil {
		t.Fatalf("empty name must be rejected")
	}
	if err := c.AddFormat("even", nil); err == nil {
		t.Fatalf("nil function must be rejected")
	}
	even := func(v any) bool {
		s, ok := v.(string)
		return ok && len(s)%2 == 0
	}
	if err := c.AddFormat("even", even); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.AddFormat("even", even); err != nil {
		t.Fatalf("re-adding must be idempotent: %v", err)
	}
	if !c.HasFormat("even") || c.HasFormat("odd") {
		t.Fatalf("HasFormat mismatch")
	}
	if got := c.Formats(); !reflect.DeepEqual(got, []string{"even"}) {
		t.Fatalf("formats = %v", got)
	}

	v, err := c.Compile(&jsonschema.Schema{Type: "string", Format: "even"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !v.Validate("ab").OK() || v.Validate("abc").OK() {
		t.Fatalf("format not applied")
	}
}

func TestCompiler_UnregisteredFormatIsConfigError(t *testing.T) {
	c := jsonguard.NewCompiler()
	_, err := c.Compile(&jsonschema.Schema{Type: "string", Format: "luhn"})
	var ce *jsonguard.ConfigError
	if !errors.As(err, &ce) || !errors.Is(err, jsonguard.ErrUnknownFormat) {
		t.Fatalf("want ConfigError(ErrUnknownFormat), got %v", err)
	}
	if errors.Is(err, jsonguard.ErrValidation) {
		t.Fatalf("a configuration error is not a validation error")
	}
}

func TestCompiler_CompileJSON(t *testing.T) {
	c := jsonguard.NewCompiler()
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown keyword", `{"type":"string","minLenght":3}`, jsonguard.ErrInvalidSchema},
		{"bad errorMessage", `{"type":"string","errorMessage":{"typo":"x"}}`, jsonguard.ErrInvalidErrorMessage},
		{"bad pattern", `{"type":"string","pattern":"(["}`, jsonguard.ErrInvalidPattern},
		{"not json", `{"type":`, jsonguard.ErrInvalidSchema},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.CompileJSON([]byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
	if _, err := c.CompileJSON([]byte(`{"type":"array","items":{"type":"integer"},"minItems":1}`)); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}
}

func TestCompiler_MetaSchemaCheck(t *testing.T) {
	doc := []byte(`{"$schema":"http://json-schema.org/draft-07/schema#","type":"object","required":["a"]}`)
	if _, err := jsonguard.NewCompiler().CompileJSON(doc); err != nil {
		t.Fatalf("draft-07 schema rejected: %v", err)
	}

	// The meta-schema of an unknown dialect cannot be resolved.
	custom := []byte(`{"$schema":"https://example.invalid/custom-dialect","type":"string"}`)
	if _, err := jsonguard.NewCompiler().CompileJSON(custom); !errors.Is(err, jsonguard.ErrInvalidSchema) {
		t.Fatalf("want ErrInvalidSchema, got %v", err)
	}
	if _, err := jsonguard.NewCompiler(jsonguard.WithMetaSchemaCheck(false)).CompileJSON(custom); err != nil {
		t.Fatalf("compile without meta check: %v", err)
	}
}

func TestCompiler_CompileYAML(t *testing.T) {
	c := jsonguard.NewCompiler()
	v, err := c.CompileYAML([]byte("type: object\nrequired: [b, a]\nproperties:\n  b: {type: string}\n  a: {type: integer}\n"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res := v.Validate(map[string]any{})
	if got := res.Issues.Messages(); !reflect.DeepEqual(got, []string{
		"must have required property 'b'",
		"must have required property 'a'",
	}) {
		t.Fatalf("got %v", got)
	}

	_, err = c.CompileYAML([]byte("type: object\ntype: string\n"))
	var dup *jsonschema.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("want DuplicateKeyError, got %v", err)
	}
}

func TestCompiler_WithTranslator(t *testing.T) {
	c := jsonguard.NewCompiler(jsonguard.WithTranslator(i18n.New("ja")))
	v := c.MustCompile(&jsonschema.Schema{Type: "object", Required: []string{"id"}})
	if got := v.Validate(map[string]any{}).Issues[0].Message; got != "必須プロパティ 'id' が不足しています" {
		t.Fatalf("got %q", got)
	}
}

func TestCompiler_MustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	jsonguard.NewCompiler().MustCompile(&jsonschema.Schema{Type: "decimal"})
}

func TestValidator_Schema(t *testing.T) {
	s := &jsonschema.Schema{Type: "string"}
	v := jsonguard.NewCompiler().MustCompile(s)
	if v.Schema() != s {
		t.Fatalf("Schema() must return the compiled schema")
	}
}
