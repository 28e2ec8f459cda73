package formats_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/reoring/jsonguard/formats"
)

// refLuhn walks left to right with a doubling table, independent of the
// right-to-left implementation under test.
func refLuhn(s string) bool {
	if s == "" {
		return false
	}
	doubled := [10]int{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}
	parity := len(s) % 2
	sum := 0
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		d := int(r - '0')
		if i%2 == parity {
			d = doubled[d]
		}
		sum += d
	}
	return sum%10 == 0
}

func TestLuhn_MatchesReference(t *testing.T) {
	for width := 1; width <= 4; width++ {
		limit := 1
		for i := 0; i < width; i++ {
			limit *= 10
		}
		for n := 0; n < limit; n++ {
			s := strconv.Itoa(n)
			s = strings.Repeat("0", width-len(s)) + s
			if got, want := formats.Luhn(s), refLuhn(s); got != want {
				t.Fatalf("Luhn(%q) = %v, reference %v", s, got, want)
			}
		}
	}
}

func TestLuhn_Samples(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"00000000", true},
		{"0", true},
		{"79927398713", true},
		{"4111111111111111", true},
		{"12345678", false},
		{"79927398710", false},
		{"", false},
		{"1234-5678", false},
		{" 0", false},
		{"１２", false},
	}
	for _, tc := range cases {
		if got := formats.Luhn(tc.in); got != tc.want {
			t.Errorf("Luhn(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if got := refLuhn(tc.in); got != tc.want {
			t.Errorf("reference(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsLuhn_NonString(t *testing.T) {
	for _, v := range []any{nil, 0, 79927398713, 1.5, true, []any{"0"}, map[string]any{}, []byte("0")} {
		if formats.IsLuhn(v) {
			t.Errorf("IsLuhn(%#v) = true", v)
		}
	}
	if !formats.IsLuhn("00000000") {
		t.Fatalf("IsLuhn(\"00000000\") = false")
	}
}
