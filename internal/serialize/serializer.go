// Package serialize builds API response payloads from page, redirect, and
// media models. Page fields go through the same resolutions the schema
// generator declares types from, so serialized output and documented shape
// share one source of truth.
package serialize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cms-api/blocks"
	"github.com/goliatone/go-cms-api/internal/fields"
	"github.com/goliatone/go-cms-api/internal/logging"
	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
	"github.com/goliatone/go-cms-api/media"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
	"github.com/goliatone/go-cms-api/redirects"
	"github.com/google/uuid"
)

// Media meta type identifiers mirrored into image and document payloads.
const (
	ImageMetaType    = "cms.image"
	DocumentMetaType = "cms.document"
)

// PageLookup fetches a page by id for parent links and redirect targets.
type PageLookup func(ctx context.Context, id uuid.UUID) (*pages.Page, error)

// Option configures a Serializer.
type Option func(*Serializer)

// WithBlocks supplies the block registry consulted for stream serialize
// hooks.
func WithBlocks(registry *blocks.Registry) Option {
	return func(s *Serializer) {
		s.blocks = registry
	}
}

// WithMedia wires the asset lookup used by image and document fields.
func WithMedia(service media.Service) Option {
	return func(s *Serializer) {
		s.media = service
	}
}

// WithMarkdown wires the parser rendering richtext fields to HTML.
func WithMarkdown(parser interfaces.MarkdownParser) Option {
	return func(s *Serializer) {
		s.markdown = parser
	}
}

// WithURLBuilder overrides the URL builder.
func WithURLBuilder(urls *URLBuilder) Option {
	return func(s *Serializer) {
		s.urls = urls
	}
}

// WithPageLookup wires the page fetch used for parent links and redirect
// locations.
func WithPageLookup(lookup PageLookup) Option {
	return func(s *Serializer) {
		s.pageLookup = lookup
	}
}

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Serializer renders models into response maps.
type Serializer struct {
	definitions *pages.Registry
	resolver    *fields.Resolver
	blocks      *blocks.Registry
	media       media.Service
	markdown    interfaces.MarkdownParser
	urls        *URLBuilder
	pageLookup  PageLookup
	logger      interfaces.Logger
}

// New constructs a serializer over the definition registry and resolver.
func New(definitions *pages.Registry, resolver *fields.Resolver, opts ...Option) *Serializer {
	s := &Serializer{
		definitions: definitions,
		resolver:    resolver,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.urls == nil {
		s.urls = NewURLBuilder(runtimeconfig.Config{}, nil)
	}
	return s
}

// PageSummary renders the base list-item envelope for a page.
func (s *Serializer) PageSummary(ctx context.Context, page *pages.Page) (map[string]any, error) {
	if page == nil {
		return nil, pages.ErrPageNotFound
	}
	return map[string]any{
		"id":           page.ID,
		"title":        page.Title,
		"content_type": page.Type,
		"meta":         s.pageMeta(page),
	}, nil
}

// PageDetail renders the full detail payload: the base envelope, detail
// meta, and every exposed field of the page's registered definition.
func (s *Serializer) PageDetail(ctx context.Context, page *pages.Page) (map[string]any, error) {
	if page == nil {
		return nil, pages.ErrPageNotFound
	}
	def, ok := s.definitions.Get(page.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", pages.ErrDefinitionUnknown, page.Type)
	}
	resolutions, err := s.resolver.Resolutions(def)
	if err != nil {
		return nil, err
	}

	meta := s.pageMeta(page)
	meta["show_in_menus"] = page.ShowInMenus
	meta["seo_title"] = stringOrEmpty(page.SEOTitle)
	meta["search_description"] = stringOrEmpty(page.SearchDescription)
	parent, err := s.parentLink(ctx, page)
	if err != nil {
		return nil, err
	}
	meta["parent"] = parent

	out := map[string]any{
		"id":           page.ID,
		"title":        page.Title,
		"content_type": page.Type,
		"meta":         meta,
	}

	for _, resolution := range resolutions {
		value, err := resolution.Value(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("serialize: field %s.%s: %w", page.Type, resolution.Name, err)
		}
		rendered, present, err := s.renderValue(ctx, resolution, value)
		if err != nil {
			return nil, fmt.Errorf("serialize: field %s.%s: %w", page.Type, resolution.Name, err)
		}
		if !present && !resolution.Required() {
			continue
		}
		out[resolution.Name] = rendered
	}
	return out, nil
}

// Redirect renders a redirect record, resolving its destination through the
// linked page when no explicit URL is stored.
func (s *Serializer) Redirect(ctx context.Context, redirect *redirects.Redirect) (map[string]any, error) {
	if redirect == nil {
		return nil, redirects.ErrRedirectNotFound
	}
	location, err := s.redirectLocation(ctx, redirect)
	if err != nil {
		return nil, err
	}
	out := map[string]any{
		"id":           redirect.ID,
		"old_path":     redirect.OldPath,
		"is_permanent": redirect.IsPermanent,
	}
	if location == "" {
		out["location"] = nil
	} else {
		out["location"] = location
	}
	return out, nil
}

// RedirectLocation resolves the destination URL for a redirect.
func (s *Serializer) RedirectLocation(ctx context.Context, redirect *redirects.Redirect) (string, error) {
	return s.redirectLocation(ctx, redirect)
}

// Image renders an image with its download metadata.
func (s *Serializer) Image(img *media.Image) map[string]any {
	if img == nil {
		return nil
	}
	return map[string]any{
		"id":     img.ID,
		"title":  img.Title,
		"width":  img.Width,
		"height": img.Height,
		"meta": map[string]any{
			"type":         ImageMetaType,
			"download_url": s.urls.MediaDownloadURL(img.File),
		},
	}
}

// Document renders a document with its download metadata.
func (s *Serializer) Document(doc *media.Document) map[string]any {
	if doc == nil {
		return nil
	}
	return map[string]any{
		"id":    doc.ID,
		"title": doc.Title,
		"meta": map[string]any{
			"type":         DocumentMetaType,
			"download_url": s.urls.MediaDownloadURL(doc.File),
		},
	}
}

func (s *Serializer) pageMeta(page *pages.Page) map[string]any {
	meta := map[string]any{
		"type":       page.Type,
		"detail_url": s.urls.PageDetailURL(page.ID),
		"html_url":   s.urls.PageHTMLURL(page),
		"slug":       page.Slug,
		"locale":     page.Locale,
	}
	if page.FirstPublishedAt != nil {
		meta["first_published_at"] = page.FirstPublishedAt.UTC().Format(time.RFC3339)
	}
	if page.LastPublishedAt != nil {
		meta["last_published_at"] = page.LastPublishedAt.UTC().Format(time.RFC3339)
	}
	return meta
}

func (s *Serializer) parentLink(ctx context.Context, page *pages.Page) (any, error) {
	parent := page.Parent
	if parent == nil && page.ParentID != nil && s.pageLookup != nil {
		found, err := s.pageLookup(ctx, *page.ParentID)
		if err != nil {
			if errors.Is(err, pages.ErrPageNotFound) {
				return nil, nil
			}
			return nil, err
		}
		parent = found
	}
	if parent == nil {
		return nil, nil
	}
	return map[string]any{
		"id":    parent.ID,
		"title": parent.Title,
		"meta": map[string]any{
			"type":       parent.Type,
			"detail_url": s.urls.PageDetailURL(parent.ID),
			"html_url":   s.urls.PageHTMLURL(parent),
		},
	}, nil
}

func (s *Serializer) redirectLocation(ctx context.Context, redirect *redirects.Redirect) (string, error) {
	pageURL := ""
	if redirect.PageID != nil && s.pageLookup != nil {
		target, err := s.pageLookup(ctx, *redirect.PageID)
		if err != nil && !errors.Is(err, pages.ErrPageNotFound) {
			return "", err
		}
		if target != nil {
			pageURL = s.urls.PageHTMLURL(target)
		}
	}
	return redirect.Location(pageURL), nil
}

// renderValue applies kind-aware rendering to a resolved field value. The
// present flag reports whether the field carries a value at all; absent
// optional fields stay out of the payload.
func (s *Serializer) renderValue(ctx context.Context, resolution fields.Resolution, value any) (any, bool, error) {
	spec, stored := resolution.FieldSpec()
	if !stored {
		return value, value != nil, nil
	}
	if value == nil {
		return nil, false, nil
	}

	switch spec.Kind {
	case pages.KindRichText:
		return s.renderRichText(value)
	case pages.KindStream:
		return s.renderStream(value)
	case pages.KindImage:
		return s.renderImage(ctx, value)
	case pages.KindDocument:
		return s.renderDocument(ctx, value)
	case pages.KindReference:
		return renderReference(value)
	default:
		return value, true, nil
	}
}

func (s *Serializer) renderRichText(value any) (any, bool, error) {
	text, ok := value.(string)
	if !ok {
		return value, true, nil
	}
	if s.markdown == nil {
		return text, true, nil
	}
	html, err := s.markdown.Parse([]byte(text))
	if err != nil {
		return nil, false, err
	}
	return string(html), true, nil
}

func (s *Serializer) renderStream(value any) (any, bool, error) {
	stream, err := blocks.ParseStream(value)
	if err != nil {
		return nil, false, err
	}
	out := make([]any, 0, len(stream))
	for _, block := range stream {
		rendered := block.Value
		if s.blocks != nil {
			if def, ok := s.blocks.Get(block.Type); ok && def.Serialize != nil {
				rendered, err = def.Serialize(block.Value)
				if err != nil {
					return nil, false, fmt.Errorf("block %s: %w", block.Type, err)
				}
			}
		}
		entry := map[string]any{
			"type":  block.Type,
			"value": rendered,
		}
		if block.ID != "" {
			entry["id"] = block.ID
		}
		out = append(out, entry)
	}
	return out, true, nil
}

func (s *Serializer) renderImage(ctx context.Context, value any) (any, bool, error) {
	id, ok := assetID(value)
	if !ok {
		s.logger.Warn("image field carries unusable reference", "value", fmt.Sprint(value))
		return nil, true, nil
	}
	if s.media == nil {
		return nil, true, nil
	}
	img, err := s.media.GetImage(ctx, id)
	if err != nil {
		if errors.Is(err, media.ErrImageNotFound) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return s.Image(img), true, nil
}

func (s *Serializer) renderDocument(ctx context.Context, value any) (any, bool, error) {
	id, ok := assetID(value)
	if !ok {
		s.logger.Warn("document field carries unusable reference", "value", fmt.Sprint(value))
		return nil, true, nil
	}
	if s.media == nil {
		return nil, true, nil
	}
	doc, err := s.media.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, media.ErrDocumentNotFound) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return s.Document(doc), true, nil
}

func renderReference(value any) (any, bool, error) {
	switch typed := value.(type) {
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			if id, ok := assetID(item); ok {
				out = append(out, id.String())
			}
		}
		return out, true, nil
	case []string:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			if id, ok := assetID(item); ok {
				out = append(out, id.String())
			}
		}
		return out, true, nil
	default:
		if id, ok := assetID(value); ok {
			return []any{id.String()}, true, nil
		}
		return []any{}, true, nil
	}
}

func assetID(value any) (uuid.UUID, bool) {
	switch typed := value.(type) {
	case uuid.UUID:
		return typed, typed != uuid.Nil
	case *uuid.UUID:
		if typed == nil {
			return uuid.Nil, false
		}
		return *typed, *typed != uuid.Nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(typed))
		if err != nil {
			return uuid.Nil, false
		}
		return id, id != uuid.Nil
	default:
		return uuid.Nil, false
	}
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
