package pages

import (
	"time"

	"github.com/goliatone/go-cms-api/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is the delivery-side record for a routable CMS page. Stored field
// values live in the Fields map and are interpreted against the page type's
// registered Definition.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID                uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	ParentID          *uuid.UUID     `bun:"parent_id,type:uuid,nullzero" json:"parent_id,omitempty"`
	Type              string         `bun:"type,notnull" json:"type"`
	TranslationKey    uuid.UUID      `bun:"translation_key,notnull,type:uuid" json:"translation_key"`
	Locale            string         `bun:"locale,notnull,default:'en'" json:"locale"`
	Slug              string         `bun:"slug,notnull" json:"slug"`
	Path              string         `bun:"path,notnull" json:"path"`
	Title             string         `bun:"title,notnull" json:"title"`
	Status            domain.Status  `bun:"status,notnull,default:'draft'" json:"status"`
	PublishAt         *time.Time     `bun:"publish_at,nullzero" json:"publish_at,omitempty"`
	UnpublishAt       *time.Time     `bun:"unpublish_at,nullzero" json:"unpublish_at,omitempty"`
	FirstPublishedAt  *time.Time     `bun:"first_published_at,nullzero" json:"first_published_at,omitempty"`
	LastPublishedAt   *time.Time     `bun:"last_published_at,nullzero" json:"last_published_at,omitempty"`
	ShowInMenus       bool           `bun:"show_in_menus,notnull,default:false" json:"show_in_menus"`
	SEOTitle          *string        `bun:"seo_title" json:"seo_title,omitempty"`
	SearchDescription *string        `bun:"search_description" json:"search_description,omitempty"`
	Fields            map[string]any `bun:"fields,type:jsonb" json:"fields,omitempty"`
	DeletedAt         *time.Time     `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt         time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Parent *Page `bun:"rel:belongs-to,join:parent_id=id" json:"parent,omitempty"`

	EffectiveStatus domain.Status `bun:"-" json:"effective_status,omitempty"`
	IsLive          bool          `bun:"-" json:"is_live,omitempty"`
}

// Live reports whether the page should be served to anonymous consumers at
// the supplied instant. Soft-deleted rows are never live.
func (p *Page) Live(now time.Time) bool {
	if p == nil || p.DeletedAt != nil {
		return false
	}
	return domain.IsLive(p.Status, p.PublishAt, p.UnpublishAt, now)
}

// Annotate fills the computed status columns relative to now.
func (p *Page) Annotate(now time.Time) {
	if p == nil {
		return
	}
	p.EffectiveStatus = domain.EffectiveStatus(p.Status, p.PublishAt, p.UnpublishAt, now)
	p.IsLive = p.Live(now)
}

// Field returns a stored field value by name.
func (p *Page) Field(name string) (any, bool) {
	if p == nil || p.Fields == nil {
		return nil, false
	}
	value, ok := p.Fields[name]
	return value, ok
}
