package engine

import (
	"bytes"
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const metaResource = "schema.json"

// CheckMeta validates a schema document against its JSON Schema meta-schema.
// draft is the dialect assumed when the document has no $schema.
func CheckMeta(doc []byte, draft string) error {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(metaDraft(draft))
	c.UseRegexpEngine(ecmaRegexpEngine)

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return &ConfigError{Location: "#", Err: fmt.Errorf("%w: %v", ErrInvalidSchema, err)}
	}
	if err := c.AddResource(metaResource, parsed); err != nil {
		return &ConfigError{Location: "#", Keyword: "$schema", Err: fmt.Errorf("%w: %v", ErrInvalidSchema, err)}
	}
	if _, err := c.Compile(metaResource); err != nil {
		return &ConfigError{Location: "#", Keyword: "$schema", Err: fmt.Errorf("%w: %v", ErrInvalidSchema, err)}
	}
	return nil
}

func metaDraft(uri string) *jsonschema.Draft {
	switch uri {
	case "https://json-schema.org/draft/2020-12/schema":
		return jsonschema.Draft2020
	case "https://json-schema.org/draft/2019-09/schema":
		return jsonschema.Draft2019
	default:
		return jsonschema.Draft7
	}
}

// ecmaRegexp lets the meta-schema check accept the same patterns the
// evaluator does.
type ecmaRegexp struct{ re *regexp2.Regexp }

func (r ecmaRegexp) MatchString(s string) bool {
	ok, err := r.re.MatchString(s)
	return err == nil && ok
}

func (r ecmaRegexp) String() string { return r.re.String() }

func ecmaRegexpEngine(expr string) (jsonschema.Regexp, error) {
	re, err := CompilePattern(expr)
	if err != nil {
		return nil, err
	}
	return ecmaRegexp{re: re}, nil
}
