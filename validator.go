package jsonguard

import (
	eng "github.com/reoring/jsonguard/internal/engine"
	"github.com/reoring/jsonguard/jsonschema"
)

// Validator is a compiled schema. It holds no per-call state and may be used
// from many goroutines at once.
type Validator struct {
	root   *eng.Node
	schema *jsonschema.Schema
}

// Result is the outcome of one validation pass.
type Result struct {
	Issues Issues
}

// OK reports whether the input was accepted.
func (r Result) OK() bool { return len(r.Issues) == 0 }

// Err returns the *ValidationError for a rejected result, or nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Issues: r.Issues}
}

// Validate evaluates every constraint of the schema against v and reports
// all violations in evaluation order. v is a JSON-shaped value: map[string]any,
// []any, string, bool, nil, json.Number or a Go numeric type.
func (v *Validator) Validate(data any) Result {
	return Result{Issues: fromViolations(v.root.Validate(data))}
}

// Check is Validate reduced to an error: nil or a *ValidationError.
func (v *Validator) Check(data any) error {
	return v.Validate(data).Err()
}

// Schema returns the schema the Validator was compiled from.
func (v *Validator) Schema() *jsonschema.Schema { return v.schema }
