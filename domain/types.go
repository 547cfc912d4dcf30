package domain

import internaldomain "github.com/prismcms/prism/internal/domain"

// Status represents lifecycle states for prism entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies content available to consumers.
	StatusPublished = internaldomain.StatusPublished
	// StatusScheduled marks content that has a future publish time configured.
	StatusScheduled = internaldomain.StatusScheduled
)
