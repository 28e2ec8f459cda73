package engine

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/reoring/jsonguard/i18n"
	js "github.com/reoring/jsonguard/jsonschema"
)

func alwaysFormat(ok bool) func(string) (FormatFunc, bool) {
	return func(name string) (FormatFunc, bool) {
		return func(any) bool { return ok }, true
	}
}

func mustCompile(t *testing.T, s *js.Schema, env Env) *Node {
	t.Helper()
	n, err := Compile(s, env)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return n
}

func messagesOf(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}

func TestValidate_ObjectOrder(t *testing.T) {
	s := &js.Schema{
		Type: "object",
		Properties: js.Props(
			js.Prop("b", &js.Schema{Type: "string", ErrorMessage: js.Msg("b must be a string")}),
			js.Prop("a", &js.Schema{Type: "integer", Minimum: js.Float(0), ErrorMessage: js.Msgs(map[string]string{
				"type":    "a must be an integer",
				"minimum": "a must be at least 0",
			})}),
		),
		Required:             []string{"c", "b"},
		AdditionalProperties: js.Bool(false),
	}
	n := mustCompile(t, s, Env{})
	vs := n.Validate(map[string]any{"b": 1, "a": -1.5, "zz": true, "yy": true})
	got := make([]string, 0, len(vs))
	for _, v := range vs {
		got = append(got, v.Keyword+"@"+v.Path)
	}
	want := []string{
		"required@/",
		"additionalProperties@/",
		"additionalProperties@/",
		"type@/b",
		"type@/a",
		"minimum@/a",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order mismatch\n got: %v\nwant: %v", got, want)
	}
	if vs[1].Params["additionalProperty"] != "yy" || vs[2].Params["additionalProperty"] != "zz" {
		t.Fatalf("unknown keys must be sorted: %v %v", vs[1].Params, vs[2].Params)
	}
	if vs[3].Message != "b must be a string" || vs[4].Message != "a must be an integer" || vs[5].Message != "a must be at least 0" {
		t.Fatalf("unexpected messages: %v", messagesOf(vs))
	}
}

func TestValidate_IntegerAndMinimum(t *testing.T) {
	n := mustCompile(t, &js.Schema{Type: "integer", Minimum: js.Float(0)}, Env{})
	cases := []struct {
		in   any
		want []string
	}{
		{0, nil},
		{30.0, nil},
		{json.Number("30"), nil},
		{json.Number("30.0"), nil},
		{30.5, []string{"type"}},
		{-1, []string{"minimum"}},
		{json.Number("-0.5"), []string{"type", "minimum"}},
		{"30", []string{"type"}},
	}
	for _, tc := range cases {
		var got []string
		for _, v := range n.Validate(tc.in) {
			got = append(got, v.Keyword)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%#v: got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidate_ConfiguredMessageEmittedOnce(t *testing.T) {
	s := &js.Schema{
		Type:                 "object",
		AdditionalProperties: js.Bool(false),
		ErrorMessage:         js.Msgs(map[string]string{"additionalProperties": "no extras"}),
	}
	n := mustCompile(t, s, Env{})
	vs := n.Validate(map[string]any{"x": 1, "y": 2, "z": 3})
	if len(vs) != 1 || vs[0].Message != "no extras" {
		t.Fatalf("want one configured message, got %v", messagesOf(vs))
	}

	open := mustCompile(t, &js.Schema{Type: "object", AdditionalProperties: js.Bool(false)}, Env{})
	if vs := open.Validate(map[string]any{"x": 1, "y": 2}); len(vs) != 2 {
		t.Fatalf("default messages must not be collapsed, got %v", messagesOf(vs))
	}
}

func TestValidate_StringFormAppliesToAllKeywords(t *testing.T) {
	s := &js.Schema{Type: "string", Pattern: `^\d{8}$`, Format: "x", ErrorMessage: js.Msg("bad id")}
	n := mustCompile(t, s, Env{Format: alwaysFormat(false)})
	vs := n.Validate("abc")
	if len(vs) != 1 || vs[0].Message != "bad id" {
		t.Fatalf("got %v", messagesOf(vs))
	}
}

func TestValidate_RequiredResolution(t *testing.T) {
	em := js.Msgs(map[string]string{"_": "fallback"}).WithRequired(map[string]string{"a": "a is required"})
	s := &js.Schema{
		Type:     "object",
		Required: []string{"a", "b"},
		Properties: js.Props(
			js.Prop("a", &js.Schema{}),
			js.Prop("b", &js.Schema{}),
		),
		ErrorMessage: em,
	}
	n := mustCompile(t, s, Env{})
	got := messagesOf(n.Validate(map[string]any{}))
	want := []string{"a is required", "fallback"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestValidate_DefaultMessages(t *testing.T) {
	s := &js.Schema{
		Type:     "object",
		Required: []string{"name"},
		Properties: js.Props(
			js.Prop("tags", &js.Schema{Type: "array", MinItems: js.Int(1), Items: &js.Schema{Type: "string"}}),
			js.Prop("code", &js.Schema{Type: "string", MaxLength: js.Int(2), Pattern: "^[A-Z]+$"}),
		),
	}
	n := mustCompile(t, s, Env{})
	vs := n.Validate(map[string]any{"tags": []any{}, "code": "abc"})
	got := messagesOf(vs)
	want := []string{
		"must have required property 'name'",
		"must NOT have fewer than 1 items",
		"must NOT have more than 2 characters",
		`must match pattern "^[A-Z]+$"`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}

	ja := mustCompile(t, s, Env{Translator: i18n.New("ja")})
	if m := ja.Validate(map[string]any{})[0].Message; m != "必須プロパティ 'name' が不足しています" {
		t.Fatalf("ja message: %q", m)
	}
}

func TestValidate_ArrayItems(t *testing.T) {
	s := &js.Schema{Type: "array", Items: &js.Schema{Type: "string", ErrorMessage: js.Msg("each must be a string")}}
	n := mustCompile(t, s, Env{})
	vs := n.Validate([]any{"ok", 1, true})
	if len(vs) != 2 || vs[0].Path != "/1" || vs[1].Path != "/2" {
		t.Fatalf("got %+v", vs)
	}
	// The once-per-instance rule is scoped to one node instance, so every
	// failing element reports.
	if vs[0].Message != "each must be a string" || vs[1].Message != "each must be a string" {
		t.Fatalf("got %v", messagesOf(vs))
	}
}

func TestValidate_Enum(t *testing.T) {
	n := mustCompile(t, &js.Schema{Enum: []any{"a", float64(1), nil}}, Env{})
	for _, ok := range []any{"a", 1, json.Number("1.0"), nil} {
		if vs := n.Validate(ok); len(vs) != 0 {
			t.Errorf("%#v: unexpected %v", ok, messagesOf(vs))
		}
	}
	if vs := n.Validate("b"); len(vs) != 1 || vs[0].Code != CodeInvalidEnum {
		t.Fatalf("got %+v", vs)
	}
}

func TestValidate_PatternIsECMAScript(t *testing.T) {
	n := mustCompile(t, &js.Schema{Type: "string", Pattern: `^\d{3}$`}, Env{})
	if vs := n.Validate("١٢٣"); len(vs) != 1 {
		t.Fatalf(`\d must only match ASCII digits, got %v`, messagesOf(vs))
	}
	if vs := n.Validate("123"); len(vs) != 0 {
		t.Fatalf("got %v", messagesOf(vs))
	}
}

func TestValidate_EscapedPaths(t *testing.T) {
	s := &js.Schema{Type: "object", Properties: js.Props(js.Prop("a/b~c", &js.Schema{Type: "string"}))}
	n := mustCompile(t, s, Env{})
	vs := n.Validate(map[string]any{"a/b~c": 1})
	if len(vs) != 1 || vs[0].Path != "/a~1b~0c" {
		t.Fatalf("got %+v", vs)
	}
}

func TestValidate_NonJSONValueFailsType(t *testing.T) {
	n := mustCompile(t, &js.Schema{Type: "object"}, Env{})
	type custom struct{ A int }
	if vs := n.Validate(custom{A: 1}); len(vs) != 1 || vs[0].Code != CodeInvalidType {
		t.Fatalf("got %+v", vs)
	}
}
