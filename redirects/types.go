package redirects

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Redirect maps an old site path to a new destination. The destination is
// either an external URL or another page.
type Redirect struct {
	bun.BaseModel `bun:"table:redirects,alias:r"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	OldPath     string     `bun:"old_path,notnull" json:"old_path"`
	ToURL       *string    `bun:"to_url" json:"to_url,omitempty"`
	PageID      *uuid.UUID `bun:"page_id,type:uuid,nullzero" json:"page_id,omitempty"`
	IsPermanent bool       `bun:"is_permanent,notnull,default:true" json:"is_permanent"`
	DeletedAt   *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Location returns the redirect destination, preferring the explicit URL
// over the linked page's html URL.
func (r *Redirect) Location(pageURL string) string {
	if r == nil {
		return ""
	}
	if r.ToURL != nil && strings.TrimSpace(*r.ToURL) != "" {
		return strings.TrimSpace(*r.ToURL)
	}
	return pageURL
}

// NormalizePath canonicalizes a site-relative path for redirect matching:
// surrounding whitespace is dropped, a leading slash is enforced, and the
// trailing slash is trimmed so /about/ and /about match the same record.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
