package jsonguard

import (
	"io"

	eng "github.com/reoring/jsonguard/internal/engine"
)

// DecodeJSON decodes one JSON document into the value model validators
// accept (numbers are kept as json.Number). Duplicate keys are handled per
// opt.Strictness; with Warn they are returned as warnings. Failures are
// *ValidationError values carrying a parse_error, duplicate_key or truncated
// issue.
func DecodeJSON(b []byte, opts ...DecodeOpt) (any, Issues, error) {
	return decodeJSON(b, lastDecodeOpt(opts))
}

// DecodeJSONReader reads r fully, honouring MaxBytes, and behaves like DecodeJSON.
func DecodeJSONReader(r io.Reader, opts ...DecodeOpt) (any, Issues, error) {
	opt := lastDecodeOpt(opts)
	b, err := eng.ReadLimited(r, opt.MaxBytes)
	if err != nil {
		return nil, nil, toValidationError(err)
	}
	return decodeJSON(b, opt)
}

func decodeJSON(b []byte, opt DecodeOpt) (any, Issues, error) {
	v, warnings, err := eng.DecodeJSON(b, eng.DecodeOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxBytes:    opt.MaxBytes,
	})
	if err != nil {
		return nil, fromViolations(warnings), toValidationError(err)
	}
	return v, fromViolations(warnings), nil
}
