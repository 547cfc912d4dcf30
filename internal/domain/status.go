package domain

import "strings"

// Status represents lifecycle states for prism entities
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusScheduled Status = "scheduled"
)

// NormalizeStatus coerces arbitrary status strings into a known value,
// defaulting to draft.
func NormalizeStatus(input string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(input)))
	switch status {
	case StatusDraft, StatusPublished, StatusScheduled:
		return status
	default:
		return StatusDraft
	}
}

// IsValidStatus reports whether the value is one of the known lifecycle states.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	default:
		return false
	}
}
