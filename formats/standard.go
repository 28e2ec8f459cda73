package formats

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validator tags backing the standard formats.
var standardTags = map[string]string{
	"email":     "email",
	"hostname":  "hostname_rfc1123",
	"ipv4":      "ipv4",
	"ipv6":      "ipv6",
	"uri":       "uri",
	"date":      "datetime=2006-01-02",
	"date-time": "datetime=2006-01-02T15:04:05Z07:00",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func stdValidator() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })
	return validate
}

// StandardNames lists the standard format names in registration order.
func StandardNames() []string {
	return []string{"email", "hostname", "ipv4", "ipv6", "uri", "uuid", "date", "date-time"}
}

// Standard returns the predicate for a standard format name.
func Standard(name string) (func(v any) bool, bool) {
	if name == "uuid" {
		return IsUUID, true
	}
	tag, ok := standardTags[name]
	if !ok {
		return nil, false
	}
	return func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		return stdValidator().Var(s, tag) == nil
	}, true
}

// IsUUID accepts the canonical hyphenated form only.
func IsUUID(v any) bool {
	s, ok := v.(string)
	if !ok || len(s) != 36 {
		return false
	}
	return uuid.Validate(s) == nil
}
