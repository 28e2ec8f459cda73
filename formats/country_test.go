package formats_test

import (
	"sync"
	"testing"

	"github.com/reoring/jsonguard/formats"
)

func TestIsCountryCode(t *testing.T) {
	valid := []string{"US", "USA", "840", "us", "usa", "Fr", "FRA", "250", "JP", "JPN", "392", "008"}
	for _, c := range valid {
		if !formats.IsCountryCode(c) {
			t.Errorf("IsCountryCode(%q) = false", c)
		}
	}
	invalid := []any{"XYZ", "999", "", "U", "USAA", "84", "8400", 840, 999, nil, true}
	for _, c := range invalid {
		if formats.IsCountryCode(c) {
			t.Errorf("IsCountryCode(%#v) = true", c)
		}
	}
}

func TestNewCountryCodeFormat_CustomDataset(t *testing.T) {
	fn := formats.NewCountryCodeFormat(formats.NewCodeSet("XK", "xkx"))
	for _, c := range []string{"XK", "xk", "XKX"} {
		if !fn(c) {
			t.Errorf("%q should be accepted by the custom dataset", c)
		}
	}
	if fn("US") {
		t.Errorf("US is not in the custom dataset")
	}
	if fn(1) {
		t.Errorf("non-string must be rejected")
	}
}

func TestIsCountryCode_MatchesDefaultDataset(t *testing.T) {
	fn := formats.NewCountryCodeFormat(formats.DefaultCountryCodes())
	inputs := []any{"US", "usa", "840", "XYZ", "", 7}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, in := range inputs {
				if formats.IsCountryCode(in) != fn(in) {
					t.Errorf("IsCountryCode(%#v) disagrees with the default dataset", in)
				}
			}
		}()
	}
	wg.Wait()
}
