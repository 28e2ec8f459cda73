package formats

import (
	"strconv"
	"strings"
	"sync"

	"github.com/biter777/countries"
)

// CountryCodeName is the format name of the ISO 3166-1 predicate.
const CountryCodeName = "iso-country-code"

// CountryCodes is a set of ISO 3166-1 codes. Lookups are case-insensitive
// and accept alpha-2, alpha-3 and three digit numeric codes.
type CountryCodes interface {
	IsValidCode(code string) bool
}

// NewCountryCodeFormat returns an "iso-country-code" predicate backed by ds.
func NewCountryCodeFormat(ds CountryCodes) func(v any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		if !ok || s == "" {
			return false
		}
		return ds.IsValidCode(s)
	}
}

var defaultCountryFormat = sync.OnceValue(func() func(any) bool {
	return NewCountryCodeFormat(DefaultCountryCodes())
})

// IsCountryCode is the "iso-country-code" format over the default dataset.
func IsCountryCode(v any) bool {
	return defaultCountryFormat()(v)
}

// CodeSet is a CountryCodes held in memory.
type CodeSet map[string]struct{}

// NewCodeSet builds a CodeSet from codes in any case.
func NewCodeSet(codes ...string) CodeSet {
	cs := make(CodeSet, len(codes))
	for _, c := range codes {
		cs[strings.ToUpper(c)] = struct{}{}
	}
	return cs
}

func (cs CodeSet) IsValidCode(code string) bool {
	_, ok := cs[strings.ToUpper(code)]
	return ok
}

var (
	defaultCodesOnce sync.Once
	defaultCodes     CodeSet
)

// DefaultCountryCodes returns the dataset shipped with
// github.com/biter777/countries. It is built on first use.
func DefaultCountryCodes() CountryCodes {
	defaultCodesOnce.Do(func() {
		defaultCodes = make(CodeSet, 3*300)
		for _, c := range countries.All() {
			if !c.IsValid() {
				continue
			}
			n := int(c)
			// 900-999 is the user-assigned numeric range.
			if n <= 0 || n >= 900 {
				continue
			}
			a2, a3 := c.Alpha2(), c.Alpha3()
			if len(a2) != 2 || len(a3) != 3 {
				continue
			}
			defaultCodes[strings.ToUpper(a2)] = struct{}{}
			defaultCodes[strings.ToUpper(a3)] = struct{}{}
			defaultCodes[pad3(n)] = struct{}{}
		}
	})
	return defaultCodes
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
