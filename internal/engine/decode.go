package engine

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// DecodeOptions configures DecodeJSON.
type DecodeOptions struct {
	OnDuplicate DuplicateStrictness
	MaxBytes    int64 // 0 disables the limit
}

// DecodeJSON decodes a single JSON document into the generic value model the
// evaluator understands. Numbers are kept as json.Number. Duplicate keys found
// under DupWarn are returned as warnings; any failure is an IssueError.
func DecodeJSON(data []byte, opt DecodeOptions) (any, []Violation, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, nil, IssueError{Violation{Code: CodeTruncated, Path: "/", Message: fmt.Sprintf("max bytes exceeded (%d > %d)", len(data), opt.MaxBytes)}}
	}

	var warnings []Violation
	if opt.OnDuplicate != DupIgnore {
		dups, err := DetectJSONDuplicateKeysBytes(data, opt.OnDuplicate, -1)
		if err != nil {
			return nil, nil, parseError(err)
		}
		if len(dups) > 0 {
			if opt.OnDuplicate == DupError {
				return nil, nil, IssueError{dups[0]}
			}
			warnings = dups
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, warnings, parseError(err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, warnings, parseError(fmt.Errorf("unexpected data after top-level value"))
	}
	return v, warnings, nil
}

// ReadLimited reads r fully, failing once more than max bytes arrive.
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, parseError(err)
		}
		return b, nil
	}
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, parseError(err)
	}
	if int64(len(b)) > max {
		return nil, IssueError{Violation{Code: CodeTruncated, Path: "/", Message: fmt.Sprintf("max bytes exceeded (limit %d)", max)}}
	}
	return b, nil
}

func parseError(err error) error {
	return IssueError{Violation{Code: CodeParseError, Path: "/", Message: err.Error()}}
}
