// Package middleware adapts a jsonguard.Parser to net/http handlers.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/reoring/jsonguard"
)

// ctxKeyValue is a typed context key for storing the parsed T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyValue[T any] struct{}

// ContextWithValue attaches a parsed T to the context.
func ContextWithValue[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValue[T]{}, v)
}

// ValueFromContext retrieves the parsed T from context.
func ValueFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValue[T]{}).(T)
	return v, ok
}

// DefaultDecodeOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are capped at 1 MiB
func DefaultDecodeOpt() jsonguard.DecodeOpt {
	return jsonguard.DecodeOpt{
		Strictness: jsonguard.Strictness{OnDuplicateKey: jsonguard.Error},
		MaxBytes:   1 << 20,
	}
}

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	decode  jsonguard.DecodeOpt
	onError ErrorHandler
}

// Option configures Validate.
type Option func(*config)

// WithDecodeOpt replaces DefaultDecodeOpt.
func WithDecodeOpt(o jsonguard.DecodeOpt) Option {
	return func(c *config) { c.decode = o }
}

// WithErrorHandler replaces WriteError.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		if h != nil {
			c.onError = h
		}
	}
}

// Validate parses the request body with p and stores the T in the request
// context (see ValueFromContext). Rejected requests never reach next.
func Validate[T any](p *jsonguard.Parser[T], opts ...Option) func(http.Handler) http.Handler {
	cfg := config{decode: DefaultDecodeOpt(), onError: WriteError}
	for _, o := range opts {
		o(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := p.ParseReader(r.Body, cfg.decode)
			if err != nil {
				cfg.onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), v)))
		})
	}
}

// StatusFor maps a parse error to an HTTP status: 400 for undecodable
// bodies, 413 for oversized ones, 422 for schema violations and 500 for
// anything else.
func StatusFor(err error) int {
	iss, ok := jsonguard.AsIssues(err)
	if !ok || !errors.Is(err, jsonguard.ErrValidation) {
		return http.StatusInternalServerError
	}
	if len(iss) == 1 {
		switch iss[0].Code {
		case jsonguard.CodeParseError, jsonguard.CodeDuplicateKey:
			return http.StatusBadRequest
		case jsonguard.CodeTruncated:
			return http.StatusRequestEntityTooLarge
		}
	}
	return http.StatusUnprocessableEntity
}

// ErrorPayload shapes an error for JSON responses.
func ErrorPayload(err error) map[string]any {
	body := map[string]any{"error": err.Error()}
	if iss, ok := jsonguard.AsIssues(err); ok {
		body["issues"] = iss
	}
	return body
}

// WriteError is the default ErrorHandler.
func WriteError(w http.ResponseWriter, _ *http.Request, err error) {
	status := StatusFor(err)
	body := ErrorPayload(err)
	if status == http.StatusInternalServerError {
		body = map[string]any{"error": http.StatusText(status)}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
