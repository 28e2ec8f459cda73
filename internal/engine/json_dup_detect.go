package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
}

// DetectJSONDuplicateKeysBytes detects duplicate object keys from a JSON byte slice.
// If onDup is DupIgnore, no issues are produced. maxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
// With DupError detection stops at the first duplicate.
func DetectJSONDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]Violation, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	return detectJSONDuplicateKeys(json.NewDecoder(bytes.NewReader(data)), onDup, maxIssues)
}

// DetectJSONDuplicateKeysReader detects duplicate object keys from an io.Reader.
// Note: this will consume the reader fully.
func DetectJSONDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]Violation, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	return detectJSONDuplicateKeys(json.NewDecoder(r), onDup, maxIssues)
}

func detectJSONDuplicateKeys(dec *json.Decoder, onDup DuplicateStrictness, maxIssues int) ([]Violation, error) {
	dec.UseNumber()
	var issues []Violation
	var stack []dupFrame

	appendIssue := func(v Violation) bool {
		if maxIssues == 0 {
			return false
		}
		issues = append(issues, v)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, Violation{Code: CodeTruncated, Path: "/", Message: "max issues reached"})
			return false
		}
		return true
	}

	// valuePath returns the pointer of the value about to be read and marks
	// the enclosing container as having consumed it.
	valuePath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := Index(top.path, top.nextIndex)
			top.nextIndex++
			return p
		}
		top.expectingKey = true
		return top.path
	}
	var pendingKey string

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return issues, err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				p := valuePath()
				if len(stack) > 0 && stack[len(stack)-1].kind == kindObject {
					p = Field(p, pendingKey)
				}
				kind := kindArray
				if v == '{' {
					kind = kindObject
				}
				stack = append(stack, dupFrame{kind: kind, keys: make(map[string]struct{}), expectingKey: true, path: p})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		case string:
			if n := len(stack); n > 0 {
				top := &stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						more := appendIssue(Violation{Code: CodeDuplicateKey, Path: Render(Field(top.path, v)), Message: "key '" + v + "' duplicated"})
						if onDup == DupError || !more {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					pendingKey = v
					continue
				}
			}
			valuePath()
		default:
			valuePath()
		}
	}

	return issues, nil
}
