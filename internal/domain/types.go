package domain

import (
	"strings"
	"time"
)

// Status represents lifecycle states for CMS entities
type Status string

const (
	// StatusDraft indicates content still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to consumers
	StatusPublished Status = "published"
	// StatusArchived marks content that is retained for history but not publicly visible
	StatusArchived Status = "archived"
	// StatusScheduled marks content that has a future publish time configured
	StatusScheduled Status = "scheduled"
)

// ParseStatus coerces arbitrary status strings into a known representation.
// Unknown or empty input maps to draft so partially migrated rows stay hidden.
func ParseStatus(input string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(input))) {
	case StatusPublished:
		return StatusPublished
	case StatusArchived:
		return StatusArchived
	case StatusScheduled:
		return StatusScheduled
	default:
		return StatusDraft
	}
}

// EffectiveStatus resolves the externally observable status once scheduling
// windows are applied. A scheduled entity whose publish time has passed
// reports published; a published entity whose unpublish time has passed
// reports archived.
func EffectiveStatus(status Status, publishAt, unpublishAt *time.Time, now time.Time) Status {
	switch status {
	case StatusPublished, StatusScheduled:
	default:
		return status
	}

	if publishAt != nil && now.Before(*publishAt) {
		return StatusScheduled
	}
	if unpublishAt != nil && !now.Before(*unpublishAt) {
		return StatusArchived
	}
	return StatusPublished
}

// IsLive reports whether an entity with the given status and scheduling
// window should be served to anonymous consumers at now.
func IsLive(status Status, publishAt, unpublishAt *time.Time, now time.Time) bool {
	return EffectiveStatus(status, publishAt, unpublishAt, now) == StatusPublished
}
