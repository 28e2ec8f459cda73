// Package formats holds the named format predicates used by schemas: the
// Luhn checksum, ISO 3166-1 country codes and a standard set (email, uri,
// date-time, ...).
package formats

import "fmt"

// Registrar accepts named formats. *jsonguard.Compiler satisfies it.
type Registrar interface {
	AddFormat(name string, fn func(v any) bool) error
}

// Options customises Register.
type Options struct {
	// Countries replaces the default ISO 3166-1 dataset.
	Countries CountryCodes
}

// Register adds "luhn" and "iso-country-code" to r. Calling it again on the
// same registrar has no further effect.
func Register(r Registrar) error {
	return RegisterWith(r, Options{})
}

// RegisterWith is Register with a custom dataset.
func RegisterWith(r Registrar, opts Options) error {
	country := IsCountryCode
	if opts.Countries != nil {
		country = NewCountryCodeFormat(opts.Countries)
	}
	if err := r.AddFormat(LuhnName, IsLuhn); err != nil {
		return fmt.Errorf("formats: register %s: %w", LuhnName, err)
	}
	if err := r.AddFormat(CountryCodeName, country); err != nil {
		return fmt.Errorf("formats: register %s: %w", CountryCodeName, err)
	}
	return nil
}

// RegisterStandard adds the standard formats to r.
func RegisterStandard(r Registrar) error {
	for _, name := range StandardNames() {
		fn, _ := Standard(name)
		if err := r.AddFormat(name, fn); err != nil {
			return fmt.Errorf("formats: register %s: %w", name, err)
		}
	}
	return nil
}

// RegisterAll is Register followed by RegisterStandard.
func RegisterAll(r Registrar) error {
	if err := Register(r); err != nil {
		return err
	}
	return RegisterStandard(r)
}
