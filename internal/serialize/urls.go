package serialize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
	"github.com/goliatone/go-cms-api/pages"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
)

// URLBuilder produces the URLs embedded in serialized responses. When a
// go-urlkit route manager is configured the named groups and routes build
// the URLs; otherwise they fall back to joining the configured base URLs.
type URLBuilder struct {
	manager *urlkit.RouteManager

	apiGroup      string
	siteGroup     string
	pageDetail    string
	redirectRoute string
	pageHTML      string
	mediaRoute    string
	idParam       string
	pathParam     string
	fileParam     string

	siteBase  string
	mediaBase string
	basePath  string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewURLBuilder wires a builder from runtime configuration. The manager may
// be nil.
func NewURLBuilder(cfg runtimeconfig.Config, manager *urlkit.RouteManager) *URLBuilder {
	names := cfg.Routes.URLKit
	builder := &URLBuilder{
		manager:       manager,
		apiGroup:      defaultString(names.APIGroup, "api"),
		siteGroup:     defaultString(names.SiteGroup, "site"),
		pageDetail:    defaultString(names.PageDetailRoute, "page_detail"),
		redirectRoute: defaultString(names.RedirectDetailRoute, "redirect_detail"),
		pageHTML:      defaultString(names.PageHTMLRoute, "page_html"),
		mediaRoute:    defaultString(names.MediaDownloadRoute, "media_download"),
		idParam:       defaultString(names.IDParam, "id"),
		pathParam:     defaultString(names.PathParam, "path"),
		fileParam:     defaultString(names.FileParam, "file"),
		siteBase:      strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/"),
		mediaBase:     strings.TrimRight(strings.TrimSpace(cfg.Site.MediaBaseURL), "/"),
		basePath:      cfg.BasePath(),
		groupCache:    map[string]*urlkit.Group{},
	}
	return builder
}

// PageDetailURL returns the API detail URL for a page id.
func (b *URLBuilder) PageDetailURL(id uuid.UUID) string {
	if url, ok := b.build(b.apiGroup, b.pageDetail, map[string]any{b.idParam: id.String()}); ok {
		return url
	}
	return b.siteBase + b.basePath + "/pages/" + id.String()
}

// RedirectDetailURL returns the API detail URL for a redirect id.
func (b *URLBuilder) RedirectDetailURL(id uuid.UUID) string {
	if url, ok := b.build(b.apiGroup, b.redirectRoute, map[string]any{b.idParam: id.String()}); ok {
		return url
	}
	return b.siteBase + b.basePath + "/redirects/" + id.String()
}

// PageHTMLURL returns the public site URL a page is served under.
func (b *URLBuilder) PageHTMLURL(page *pages.Page) string {
	if page == nil {
		return ""
	}
	path := page.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if url, ok := b.build(b.siteGroup, b.pageHTML, map[string]any{b.pathParam: strings.TrimPrefix(path, "/")}); ok {
		return url
	}
	return b.siteBase + path
}

// MediaDownloadURL returns the download URL for a stored media file.
func (b *URLBuilder) MediaDownloadURL(file string) string {
	file = strings.TrimLeft(strings.TrimSpace(file), "/")
	if file == "" {
		return ""
	}
	if url, ok := b.build(b.siteGroup, b.mediaRoute, map[string]any{b.fileParam: file}); ok {
		return url
	}
	if b.mediaBase != "" {
		return b.mediaBase + "/" + file
	}
	return b.siteBase + "/media/" + file
}

func (b *URLBuilder) build(groupPath, route string, params map[string]any) (string, bool) {
	if b == nil || b.manager == nil || groupPath == "" || route == "" {
		return "", false
	}
	group, err := b.groupForPath(groupPath)
	if err != nil || group == nil {
		return "", false
	}
	builder, err := safeBuilder(group, route)
	if err != nil || builder == nil {
		return "", false
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	url, err := builder.Build()
	if err != nil || url == "" {
		return "", false
	}
	return url, true
}

func (b *URLBuilder) groupForPath(path string) (*urlkit.Group, error) {
	b.mu.RLock()
	group, ok := b.groupCache[path]
	b.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	root, err := lookupGroup(b.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	b.groupCache[path] = current
	b.mu.Unlock()
	return current, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("serialize: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("serialize: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("serialize: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("serialize: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("serialize: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("serialize: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}

func defaultString(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
