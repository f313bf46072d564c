package validator

import (
	"strings"
	"unicode"
)

// Required trims s and reports whether anything is left.
func Required(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// ValidatePhone only rejects input that cannot be a phone number at all.
// Formatting is left as the client typed it.
func ValidatePhone(phone string) bool {
	return strings.IndexFunc(phone, unicode.IsDigit) >= 0
}
