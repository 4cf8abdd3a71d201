// internal/domain/models/status.go
package models

import "strings"

// Canonical lifecycle status identifiers shared by wineries, wines, and
// vintages. Transitions are unconstrained: any status may move to any other
// status through a plain update.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Statuses is the full set of allowed status identifiers.
var Statuses = []string{
	StatusDraft,
	StatusPublished,
	StatusArchived,
}

// DefaultStatus is used when no status is provided at creation time.
const DefaultStatus = StatusDraft

// IsValidStatus reports whether s (case-insensitive, trimmed) is an
// allowed status identifier.
func IsValidStatus(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}
