package domain

import (
	"time"

	internaldomain "github.com/goliatone/go-cms-api/internal/domain"
)

// Status represents lifecycle states for CMS entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies content available to consumers.
	StatusPublished = internaldomain.StatusPublished
	// StatusArchived marks content that is retained for history but not publicly visible.
	StatusArchived = internaldomain.StatusArchived
	// StatusScheduled marks content that has a future publish time configured.
	StatusScheduled = internaldomain.StatusScheduled
)

// ParseStatus coerces arbitrary status strings into a known Status.
func ParseStatus(input string) Status {
	return internaldomain.ParseStatus(input)
}

// EffectiveStatus resolves the externally observable status once scheduling
// windows are applied.
func EffectiveStatus(status Status, publishAt, unpublishAt *time.Time, now time.Time) Status {
	return internaldomain.EffectiveStatus(status, publishAt, unpublishAt, now)
}

// IsLive reports whether an entity should be served to anonymous consumers.
func IsLive(status Status, publishAt, unpublishAt *time.Time, now time.Time) bool {
	return internaldomain.IsLive(status, publishAt, unpublishAt, now)
}
