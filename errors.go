package jsonguard

import (
	"errors"
	"fmt"
	"strings"

	eng "github.com/reoring/jsonguard/internal/engine"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = eng.CodeInvalidType
	CodeRequired      = eng.CodeRequired
	CodeUnknownKey    = eng.CodeUnknownKey
	CodeDuplicateKey  = eng.CodeDuplicateKey
	CodeTooSmall      = eng.CodeTooSmall
	CodeTooBig        = eng.CodeTooBig
	CodeTooShort      = eng.CodeTooShort
	CodeTooLong       = eng.CodeTooLong
	CodePattern       = eng.CodePattern
	CodeInvalidEnum   = eng.CodeInvalidEnum
	CodeInvalidFormat = eng.CodeInvalidFormat
	CodeParseError    = eng.CodeParseError
	CodeTruncated     = eng.CodeTruncated
)

// ValidationPrefix starts every ValidationError message.
const ValidationPrefix = "Validation failed: "

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("jsonguard: validation failed")
	// ErrShapeMismatch reports validated data that could not be built into the
	// parser's Go type. It indicates a schema and type that disagree.
	ErrShapeMismatch = errors.New("jsonguard: validated data does not fit target type")
)

// ConfigError reports a malformed schema. It is returned by Compiler.Compile,
// never at validation time, and wraps one of the sentinels below.
type ConfigError = eng.ConfigError

var (
	ErrInvalidSchema       = eng.ErrInvalidSchema
	ErrUnknownFormat       = eng.ErrUnknownFormat
	ErrInvalidPattern      = eng.ErrInvalidPattern
	ErrInvalidErrorMessage = eng.ErrInvalidErrorMessage
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string         `json:"path"`              // JSON Pointer (for example: /data/age). The root is "/".
	Keyword string         `json:"keyword,omitempty"` // JSON Schema keyword that failed; empty for decode issues.
	Code    string         `json:"code"`              // One of the codes listed above.
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages returns the message of every issue, in order.
func (iss Issues) Messages() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Message
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ValidationError is returned when well-formed input fails the schema. Its
// message is ValidationPrefix followed by every issue message, joined by ", ".
type ValidationError struct {
	Issues Issues
}

func (e *ValidationError) Error() string {
	return ValidationPrefix + strings.Join(e.Issues.Messages(), ", ")
}

// Unwrap exposes the Issues to errors.As.
func (e *ValidationError) Unwrap() error { return e.Issues }

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func fromViolation(v eng.Violation) Issue {
	return Issue{Path: v.Path, Keyword: v.Keyword, Code: v.Code, Message: v.Message, Params: v.Params}
}

func fromViolations(vs []eng.Violation) Issues {
	if len(vs) == 0 {
		return nil
	}
	iss := make(Issues, 0, len(vs))
	for _, v := range vs {
		iss = append(iss, fromViolation(v))
	}
	return iss
}

// toValidationError maps an engine decode failure to the public error model.
func toValidationError(err error) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return &ValidationError{Issues: Issues{fromViolation(ie.Violation)}}
	}
	return &ValidationError{Issues: Issues{{Path: "/", Code: CodeParseError, Message: err.Error()}}}
}
