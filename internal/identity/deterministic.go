package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageUUID keys on locale plus slug so translated siblings get distinct ids.
func PageUUID(locale, slug string) uuid.UUID {
	return UUID("go-cms-api:page:" + strings.ToLower(strings.TrimSpace(locale)) + ":" + strings.TrimSpace(slug))
}

// TranslationKeyUUID keys on slug alone so translated siblings share a key.
func TranslationKeyUUID(slug string) uuid.UUID {
	return UUID("go-cms-api:translation_key:" + strings.TrimSpace(slug))
}

func RedirectUUID(oldPath string) uuid.UUID {
	return UUID("go-cms-api:redirect:" + strings.TrimSpace(oldPath))
}

func ImageUUID(file string) uuid.UUID {
	return UUID("go-cms-api:image:" + strings.TrimSpace(file))
}

func DocumentUUID(file string) uuid.UUID {
	return UUID("go-cms-api:document:" + strings.TrimSpace(file))
}
