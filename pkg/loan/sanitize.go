package loan

import "strings"

func digitsOnly(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// SanitizeInt keeps the digits of raw.
func SanitizeInt(raw string) string {
	return digitsOnly(raw)
}

// StripLeadingZeros removes leading zeros but keeps a single "0".
func StripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}

// SanitizeDecimal keeps digits and the first decimal point.
func SanitizeDecimal(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	head, tail, found := strings.Cut(cleaned, ".")
	if !found {
		return cleaned
	}
	return head + "." + strings.ReplaceAll(tail, ".", "")
}

// NormalizeDecimal strips leading zeros of the integer part and turns a bare
// "." prefix into "0.".
func NormalizeDecimal(s string) string {
	head, tail, found := strings.Cut(s, ".")
	if !found {
		return StripLeadingZeros(s)
	}
	head = StripLeadingZeros(head)
	if head == "" {
		head = "0"
	}
	return head + "." + tail
}
