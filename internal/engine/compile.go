package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/reoring/jsonguard/i18n"
	js "github.com/reoring/jsonguard/jsonschema"
)

// Configuration errors raised at compile time.
var (
	ErrInvalidSchema       = errors.New("invalid schema")
	ErrUnknownFormat       = errors.New("unknown format")
	ErrInvalidPattern      = errors.New("invalid pattern")
	ErrInvalidErrorMessage = errors.New("invalid errorMessage")
)

// ConfigError reports a malformed schema. Location is the schema location
// ("#/properties/id") and Keyword the offending keyword.
type ConfigError struct {
	Location string
	Keyword  string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Keyword == "" {
		return fmt.Sprintf("jsonguard: invalid schema at %s: %v", e.Location, e.Err)
	}
	return fmt.Sprintf("jsonguard: invalid schema at %s (%s): %v", e.Location, e.Keyword, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FormatFunc reports whether v satisfies a named format.
type FormatFunc = func(v any) bool

// Env supplies what compilation needs from the owning compiler.
type Env struct {
	Format     func(name string) (FormatFunc, bool)
	Translator i18n.Translator
}

var knownTypes = map[string]bool{
	"string": true, "integer": true, "number": true, "boolean": true,
	"object": true, "array": true, "null": true,
}

// Compile turns a schema tree into an evaluation tree. All structural
// problems are reported here so that evaluation never fails on the schema.
func Compile(s *js.Schema, env Env) (*Node, error) {
	if s == nil {
		return nil, &ConfigError{Location: "#", Err: fmt.Errorf("%w: nil schema", ErrInvalidSchema)}
	}
	if env.Translator == nil {
		env.Translator = i18n.Default()
	}
	if env.Format == nil {
		env.Format = func(string) (FormatFunc, bool) { return nil, false }
	}
	return compileNode(s, "#", env)
}

func compileNode(s *js.Schema, loc string, env Env) (*Node, error) {
	n := &Node{
		location: loc,
		typ:      s.Type,
		enum:     s.Enum,
		minimum:  s.Minimum,
		maximum:  s.Maximum,
		exclMin:  s.ExclusiveMinimum,
		exclMax:  s.ExclusiveMaximum,
		tr:       env.Translator,
	}
	cfgErr := func(keyword string, err error) error {
		return &ConfigError{Location: loc, Keyword: keyword, Err: err}
	}

	if s.Type != "" && !knownTypes[s.Type] {
		return nil, cfgErr("type", fmt.Errorf("%w: unknown type %q", ErrInvalidSchema, s.Type))
	}
	var err error
	if n.minLength, err = bound("minLength", s.MinLength); err != nil {
		return nil, cfgErr("minLength", err)
	}
	if n.maxLength, err = bound("maxLength", s.MaxLength); err != nil {
		return nil, cfgErr("maxLength", err)
	}
	if n.minItems, err = bound("minItems", s.MinItems); err != nil {
		return nil, cfgErr("minItems", err)
	}
	if n.maxItems, err = bound("maxItems", s.MaxItems); err != nil {
		return nil, cfgErr("maxItems", err)
	}
	if s.Enum != nil && len(s.Enum) == 0 {
		return nil, cfgErr("enum", fmt.Errorf("%w: enum must not be empty", ErrInvalidSchema))
	}

	if s.Pattern != "" {
		re, err := CompilePattern(s.Pattern)
		if err != nil {
			return nil, cfgErr("pattern", fmt.Errorf("%w %q: %v", ErrInvalidPattern, s.Pattern, err))
		}
		n.pattern = re
		n.patternSrc = s.Pattern
	}
	if s.Format != "" {
		fn, ok := env.Format(s.Format)
		if !ok {
			return nil, cfgErr("format", fmt.Errorf("%w %q", ErrUnknownFormat, s.Format))
		}
		n.format = s.Format
		n.formatFn = fn
	}

	seenReq := make(map[string]struct{}, len(s.Required))
	for _, r := range s.Required {
		if _, dup := seenReq[r]; dup {
			return nil, cfgErr("required", fmt.Errorf("%w: %q listed twice", ErrInvalidSchema, r))
		}
		seenReq[r] = struct{}{}
	}
	n.required = append([]string(nil), s.Required...)

	if len(s.Properties) > 0 {
		n.propIndex = make(map[string]*Node, len(s.Properties))
		for _, p := range s.Properties {
			if _, dup := n.propIndex[p.Name]; dup {
				return nil, cfgErr("properties", fmt.Errorf("%w: property %q declared twice", ErrInvalidSchema, p.Name))
			}
			ps := p.Schema
			if ps == nil {
				ps = &js.Schema{}
			}
			child, err := compileNode(ps, loc+"/properties/"+pointerEscaper.Replace(p.Name), env)
			if err != nil {
				return nil, err
			}
			n.props = append(n.props, propNode{name: p.Name, node: child})
			n.propIndex[p.Name] = child
		}
	}
	n.closed = s.AdditionalProperties != nil && !*s.AdditionalProperties

	if s.Items != nil {
		child, err := compileNode(s.Items, loc+"/items", env)
		if err != nil {
			return nil, err
		}
		n.items = child
	}

	msgs, err := compileMessages(s.ErrorMessage, seenReq)
	if err != nil {
		return nil, cfgErr("errorMessage", err)
	}
	n.msgs = msgs
	return n, nil
}

func bound(name string, p *int) (int, error) {
	if p == nil {
		return -1, nil
	}
	if *p < 0 {
		return -1, fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidSchema, name, *p)
	}
	return *p, nil
}

func compileMessages(em *js.ErrorMessage, required map[string]struct{}) (messages, error) {
	if em == nil {
		return messages{}, nil
	}
	if em.Message != "" && (len(em.Keywords) > 0 || len(em.Required) > 0) {
		return messages{}, fmt.Errorf("%w: string form cannot be combined with keyword messages", ErrInvalidErrorMessage)
	}
	if _, ok := em.Keywords["required"]; ok && len(em.Required) > 0 {
		return messages{}, fmt.Errorf("%w: required given both as a string and per property", ErrInvalidErrorMessage)
	}
	var unknown []string
	for k := range em.Keywords {
		if _, ok := keywordCodes[k]; !ok && k != "_" {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return messages{}, fmt.Errorf("%w: unknown keyword(s) %s", ErrInvalidErrorMessage, strings.Join(unknown, ", "))
	}
	var notRequired []string
	for p := range em.Required {
		if _, ok := required[p]; !ok {
			notRequired = append(notRequired, p)
		}
	}
	if len(notRequired) > 0 {
		sort.Strings(notRequired)
		return messages{}, fmt.Errorf("%w: required message for property not listed in required: %s", ErrInvalidErrorMessage, strings.Join(notRequired, ", "))
	}
	return messages{all: em.Message, keywords: em.Keywords, required: em.Required}, nil
}

// CompilePattern compiles a pattern with ECMA-262 semantics, which is what
// JSON Schema requires of the pattern keyword.
func CompilePattern(expr string) (*regexp2.Regexp, error) {
	return regexp2.Compile(expr, regexp2.ECMAScript)
}
