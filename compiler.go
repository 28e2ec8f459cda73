package jsonguard

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/reoring/jsonguard/i18n"
	eng "github.com/reoring/jsonguard/internal/engine"
	"github.com/reoring/jsonguard/jsonschema"
)

// FormatFunc reports whether v satisfies a named format. It must not panic
// on any input, including non-strings.
type FormatFunc = func(v any) bool

// Compiler turns schemas into Validators. It owns the format registry, so
// formats are registered on an explicit instance rather than process-wide.
//
// Register formats first, then compile. Compilers are safe for concurrent use
// but a format added after a schema was compiled does not affect it.
type Compiler struct {
	mu        sync.RWMutex
	formats   map[string]FormatFunc
	tr        i18n.Translator
	metaCheck bool
	draft     jsonschema.Draft
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithTranslator selects the Translator used for violations without a
// configured errorMessage.
func WithTranslator(tr i18n.Translator) Option {
	return func(c *Compiler) {
		if tr != nil {
			c.tr = tr
		}
	}
}

// WithMetaSchemaCheck toggles validation of schemas against the JSON Schema
// meta-schema at compile time. It is on by default.
func WithMetaSchemaCheck(enabled bool) Option {
	return func(c *Compiler) { c.metaCheck = enabled }
}

// WithDraft sets the dialect assumed for schemas without $schema.
func WithDraft(d jsonschema.Draft) Option {
	return func(c *Compiler) {
		if d != "" {
			c.draft = d
		}
	}
}

// NewCompiler returns a Compiler with no formats registered.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		formats:   make(map[string]FormatFunc),
		tr:        i18n.Default(),
		metaCheck: true,
		draft:     jsonschema.Draft7,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AddFormat registers fn under name. Registering a name again replaces the
// previous function, which keeps repeated registration idempotent.
func (c *Compiler) AddFormat(name string, fn func(v any) bool) error {
	if name == "" {
		return errors.New("jsonguard: format name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("jsonguard: format %q: nil function", name)
	}
	c.mu.Lock()
	c.formats[name] = fn
	c.mu.Unlock()
	return nil
}

// HasFormat reports whether name is registered.
func (c *Compiler) HasFormat(name string) bool {
	c.mu.RLock()
	_, ok := c.formats[name]
	c.mu.RUnlock()
	return ok
}

// Formats lists the registered format names, sorted.
func (c *Compiler) Formats() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.formats))
	for k := range c.formats {
		out = append(out, k)
	}
	c.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Compile checks s and returns a reusable Validator. Every structural
// problem, including references to unregistered formats, is reported here
// as a *ConfigError.
func (c *Compiler) Compile(s *jsonschema.Schema) (*Validator, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	root, err := eng.Compile(s, eng.Env{
		Format: func(name string) (eng.FormatFunc, bool) {
			fn, ok := c.formats[name]
			return fn, ok
		},
		Translator: c.tr,
	})
	if err != nil {
		return nil, err
	}
	if c.metaCheck {
		doc, err := json.Marshal(s)
		if err != nil {
			return nil, &ConfigError{Location: "#", Err: fmt.Errorf("%w: %v", ErrInvalidSchema, err)}
		}
		if err := eng.CheckMeta(doc, string(c.draft)); err != nil {
			return nil, err
		}
	}
	return &Validator{root: root, schema: s}, nil
}

// CompileJSON parses a JSON schema document and compiles it.
func (c *Compiler) CompileJSON(doc []byte) (*Validator, error) {
	s, err := jsonschema.ParseJSON(doc)
	if err != nil {
		return nil, &ConfigError{Location: "#", Err: fmt.Errorf("%w: %w", ErrInvalidSchema, err)}
	}
	return c.Compile(s)
}

// CompileYAML parses a YAML schema document and compiles it.
func (c *Compiler) CompileYAML(doc []byte) (*Validator, error) {
	s, err := jsonschema.ParseYAML(doc)
	if err != nil {
		return nil, &ConfigError{Location: "#", Err: fmt.Errorf("%w: %w", ErrInvalidSchema, err)}
	}
	return c.Compile(s)
}

// CompileFile loads a schema file (JSON, or YAML by extension) and compiles it.
func (c *Compiler) CompileFile(path string) (*Validator, error) {
	s, err := jsonschema.Load(path)
	if err != nil {
		return nil, &ConfigError{Location: "#", Err: fmt.Errorf("%w: %w", ErrInvalidSchema, err)}
	}
	return c.Compile(s)
}

// MustCompile is Compile that panics on error. It is meant for package-level
// variables, where a bad schema is a programming error.
func (c *Compiler) MustCompile(s *jsonschema.Schema) *Validator {
	v, err := c.Compile(s)
	if err != nil {
		panic(err)
	}
	return v
}
