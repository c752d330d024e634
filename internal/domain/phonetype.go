package domain

import (
	"regexp"
	"strings"
)

// PhoneType is a normalized phone category key. Keeping it a distinct type
// prevents raw user input from being compared against stored keys.
type PhoneType string

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	allowedCharsRe = regexp.MustCompile(`^[A-Za-z0-9+\-/() ]+$`)
	alphanumericRe = regexp.MustCompile(`[A-Za-z0-9]`)
)

// NormalizePhoneType trims, collapses internal whitespace and lowercases the
// raw input. Normalization happens exactly once, at the ingestion boundary.
func NormalizePhoneType(raw string) PhoneType {
	collapsed := whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	return PhoneType(strings.ToLower(collapsed))
}

// ValidatePhoneType checks a normalized phone type against the submission
// rules: 3-80 characters from the allowed set, with at least one letter or
// digit. An empty result means the value is acceptable.
func ValidatePhoneType(pt PhoneType) string {
	s := string(pt)
	if s == "" {
		return "phone type is required"
	}
	if len(s) < 3 {
		return "phone type must be at least 3 characters"
	}
	if len(s) > 80 {
		return "phone type must not exceed 80 characters"
	}
	if !allowedCharsRe.MatchString(s) {
		return "phone type contains invalid characters"
	}
	if !alphanumericRe.MatchString(s) {
		return "phone type must contain at least one letter or number"
	}
	return ""
}
