package pages

import (
	"time"

	"github.com/google/uuid"
)

func cloneUUIDPointer(src *uuid.UUID) *uuid.UUID {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

func cloneTimePointer(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

func cloneStringPointer(src *string) *string {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
