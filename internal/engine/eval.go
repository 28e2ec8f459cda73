package engine

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/reoring/jsonguard/i18n"
)

// Node is a compiled schema node. It is read-only after Compile, so a single
// Node may be evaluated from many goroutines at once.
type Node struct {
	location string
	typ      string
	enum     []any

	minLength, maxLength int
	pattern              *regexp2.Regexp
	patternSrc           string
	format               string
	formatFn             FormatFunc

	minimum, maximum *float64
	exclMin, exclMax *float64

	required  []string
	props     []propNode
	propIndex map[string]*Node
	closed    bool

	items              *Node
	minItems, maxItems int

	msgs messages
	tr   i18n.Translator
}

type propNode struct {
	name string
	node *Node
}

// messages holds the errorMessage of one node.
type messages struct {
	all      string
	keywords map[string]string
	required map[string]string
}

// resolve picks the configured message for a violation, most specific first.
func (m messages) resolve(keyword, property string) (string, bool) {
	if keyword == "required" && property != "" {
		if s, ok := m.required[property]; ok {
			return s, true
		}
	}
	if s, ok := m.keywords[keyword]; ok {
		return s, true
	}
	if s, ok := m.keywords["_"]; ok {
		return s, true
	}
	if m.all != "" {
		return m.all, true
	}
	return "", false
}

// Location returns the schema location of the node.
func (n *Node) Location() string { return n.location }

// Validate evaluates every applicable keyword against v and returns all
// violations in evaluation order. It never stops at the first failure.
func (n *Node) Validate(v any) []Violation {
	var out []Violation
	n.eval(v, "", &out)
	return out
}

// emitter appends violations for one node instance. A configured message is
// emitted at most once per instance; default messages are never collapsed.
type emitter struct {
	n    *Node
	path string
	out  *[]Violation
	seen map[string]struct{}
}

func (e *emitter) emit(keyword, property string, params map[string]any) {
	code := keywordCodes[keyword]
	msg, configured := e.n.msgs.resolve(keyword, property)
	if configured {
		if _, dup := e.seen[msg]; dup {
			return
		}
		if e.seen == nil {
			e.seen = make(map[string]struct{}, 2)
		}
		e.seen[msg] = struct{}{}
	} else {
		msg = e.n.tr.Message(code, stringify(params))
	}
	*e.out = append(*e.out, Violation{
		Path:    Render(e.path),
		Keyword: keyword,
		Code:    code,
		Message: msg,
		Params:  params,
	})
}

func (n *Node) eval(v any, path string, out *[]Violation) {
	e := &emitter{n: n, path: path, out: out}

	if n.typ != "" && !matchesType(v, n.typ) {
		e.emit("type", "", map[string]any{"expected": n.typ})
	}
	if n.enum != nil && !inEnum(v, n.enum) {
		e.emit("enum", "", map[string]any{"allowedValues": n.enum})
	}

	switch t := v.(type) {
	case string:
		n.evalString(t, e)
	case map[string]any:
		n.evalObject(t, path, e)
	case []any:
		n.evalArray(t, path, e)
	default:
		if f, ok := toFloat(v); ok {
			n.evalNumber(f, e)
		}
	}
}

func (n *Node) evalString(s string, e *emitter) {
	if n.minLength >= 0 || n.maxLength >= 0 {
		l := utf8.RuneCountInString(s)
		if n.minLength >= 0 && l < n.minLength {
			e.emit("minLength", "", map[string]any{"limit": n.minLength, "unit": "characters"})
		}
		if n.maxLength >= 0 && l > n.maxLength {
			e.emit("maxLength", "", map[string]any{"limit": n.maxLength, "unit": "characters"})
		}
	}
	if n.pattern != nil {
		if ok, err := n.pattern.MatchString(s); err != nil || !ok {
			e.emit("pattern", "", map[string]any{"pattern": n.patternSrc})
		}
	}
	if n.formatFn != nil && !n.formatFn(s) {
		e.emit("format", "", map[string]any{"format": n.format})
	}
}

func (n *Node) evalNumber(f float64, e *emitter) {
	if n.minimum != nil && f < *n.minimum {
		e.emit("minimum", "", map[string]any{"comparison": ">=", "limit": *n.minimum})
	}
	if n.maximum != nil && f > *n.maximum {
		e.emit("maximum", "", map[string]any{"comparison": "<=", "limit": *n.maximum})
	}
	if n.exclMin != nil && f <= *n.exclMin {
		e.emit("exclusiveMinimum", "", map[string]any{"comparison": ">", "limit": *n.exclMin})
	}
	if n.exclMax != nil && f >= *n.exclMax {
		e.emit("exclusiveMaximum", "", map[string]any{"comparison": "<", "limit": *n.exclMax})
	}
}

func (n *Node) evalObject(obj map[string]any, path string, e *emitter) {
	for _, name := range n.required {
		if _, ok := obj[name]; !ok {
			e.emit("required", name, map[string]any{"property": name})
		}
	}
	if n.closed {
		var unknown []string
		for k := range obj {
			if _, ok := n.propIndex[k]; !ok {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		for _, k := range unknown {
			e.emit("additionalProperties", "", map[string]any{"additionalProperty": k})
		}
	}
	for _, p := range n.props {
		if pv, ok := obj[p.name]; ok {
			p.node.eval(pv, Field(path, p.name), e.out)
		}
	}
}

func (n *Node) evalArray(arr []any, path string, e *emitter) {
	if n.minItems >= 0 && len(arr) < n.minItems {
		e.emit("minItems", "", map[string]any{"limit": n.minItems, "unit": "items"})
	}
	if n.maxItems >= 0 && len(arr) > n.maxItems {
		e.emit("maxItems", "", map[string]any{"limit": n.maxItems, "unit": "items"})
	}
	if n.items != nil {
		for i, it := range arr {
			n.items.eval(it, Index(path, i), e.out)
		}
	}
}

func stringify(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}
