// internal/app/system/inputval/inputval.go

// Package inputval holds field-level validation predicates shared by the
// entity routes. Handlers collect the failures and return them in the
// errors array of the 400 envelope.
package inputval

import (
	"net/mail"
	"strings"
)

// IsValidEmail reports whether s parses as a bare RFC 5322 address
// (no display-name form).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// Reject "Name <user@host>" forms; only the bare address is accepted.
	if addr.Address != s {
		return false
	}
	// mail.ParseAddress tolerates some shapes we do not want stored.
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return false
	}
	return true
}

// IsValidScore reports whether n is a valid award score (0..100).
func IsValidScore(n int) bool {
	return n >= 0 && n <= 100
}

// IsValidAwardYear reports whether n is a plausible award year (>= 1900).
func IsValidAwardYear(n int) bool {
	return n >= 1900
}

// NonEmpty reports whether s has content after trimming.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MaxLen reports whether s fits within n bytes after trimming.
func MaxLen(s string, n int) bool {
	return len(strings.TrimSpace(s)) <= n
}
