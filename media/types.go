package media

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Image is a stored raster asset referenced by page image fields.
type Image struct {
	bun.BaseModel `bun:"table:images,alias:img"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Title     string     `bun:"title,notnull" json:"title"`
	File      string     `bun:"file,notnull" json:"file"`
	Width     int        `bun:"width,notnull,default:0" json:"width"`
	Height    int        `bun:"height,notnull,default:0" json:"height"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Document is a stored downloadable asset referenced by page document fields.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:doc"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Title     string     `bun:"title,notnull" json:"title"`
	File      string     `bun:"file,notnull" json:"file"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
