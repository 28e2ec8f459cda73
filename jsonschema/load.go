package jsonschema

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// ParseJSON decodes a schema document. Unknown keywords are rejected, as are
// duplicate keys inside "properties".
func ParseJSON(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := decodeStrict(data, s); err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	return s, nil
}

// ParseYAML decodes a YAML schema document. Mapping order is kept, so
// properties are declared in file order. Duplicate keys are an error.
func ParseYAML(data []byte) (*Schema, error) {
	js, err := yamlToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	return ParseJSON(js)
}

// Load reads a schema file, choosing YAML for .yaml/.yml and JSON otherwise.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after schema document")
	}
	return nil
}

type member struct {
	key string
	raw []byte
}

// orderedMembers splits a JSON object into its members, keeping key order.
// go-json has no ordered-map decoding, so the members are walked with the
// encoding/json token stream, the same way duplicate keys are detected.
func orderedMembers(data []byte) ([]member, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(stdjson.Delim); !ok || d != '{' {
		return nil, errors.New("must be an object")
	}
	seen := make(map[string]struct{})
	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("invalid object key")
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("key '%s' duplicated", key)
		}
		seen[key] = struct{}{}
		var raw stdjson.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, member{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}
