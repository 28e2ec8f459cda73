package formats

// LuhnName is the format name of the Luhn checksum predicate.
const LuhnName = "luhn"

// IsLuhn is the "luhn" format: v must be a non-empty string of decimal
// digits whose Luhn checksum is divisible by 10. Non-strings are rejected.
func IsLuhn(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return Luhn(s)
}

// Luhn reports whether s is a non-empty digit string passing the Luhn check.
func Luhn(s string) bool {
	if s == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
