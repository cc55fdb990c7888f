package redirects_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	internalredirects "github.com/goliatone/go-cms-api/internal/redirects"
	"github.com/goliatone/go-cms-api/redirects"
)

func seedRedirect(repo *internalredirects.MemoryRepository, oldPath, toURL string) *redirects.Redirect {
	record := &redirects.Redirect{
		ID:          uuid.New(),
		OldPath:     oldPath,
		IsPermanent: true,
	}
	if toURL != "" {
		record.ToURL = &toURL
	}
	repo.Put(record)
	return record
}

func TestServiceFindByPath_MatchesNormalizedVariants(t *testing.T) {
	repo := internalredirects.NewMemoryRepository()
	stored := seedRedirect(repo, "/old-blog/", "https://blog.example.com")

	svc := internalredirects.NewService(repo)
	for _, input := range []string{"/old-blog", "/old-blog/", "old-blog", " /old-blog/ "} {
		record, err := svc.FindByPath(context.Background(), input)
		if err != nil {
			t.Fatalf("FindByPath(%q) returned error: %v", input, err)
		}
		if record.ID != stored.ID {
			t.Fatalf("FindByPath(%q) resolved %s", input, record.OldPath)
		}
	}
}

func TestServiceFindByPath_FallsBackToLowerCase(t *testing.T) {
	repo := internalredirects.NewMemoryRepository()
	stored := seedRedirect(repo, "/old-blog", "https://blog.example.com")

	svc := internalredirects.NewService(repo)
	record, err := svc.FindByPath(context.Background(), "/Old-Blog")
	if err != nil {
		t.Fatalf("FindByPath returned error: %v", err)
	}
	if record.ID != stored.ID {
		t.Fatalf("expected %s, resolved %s", stored.OldPath, record.OldPath)
	}
}

func TestServiceFindByPath_NotFound(t *testing.T) {
	svc := internalredirects.NewService(internalredirects.NewMemoryRepository())

	_, err := svc.FindByPath(context.Background(), "/missing")
	if !errors.Is(err, redirects.ErrRedirectNotFound) {
		t.Fatalf("expected ErrRedirectNotFound, got %v", err)
	}
}

func TestServiceFindByPath_RequiresPath(t *testing.T) {
	svc := internalredirects.NewService(internalredirects.NewMemoryRepository())

	_, err := svc.FindByPath(context.Background(), "   ")
	if !errors.Is(err, redirects.ErrPathRequired) {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
}

func TestServiceList_OrderedByOldPath(t *testing.T) {
	repo := internalredirects.NewMemoryRepository()
	seedRedirect(repo, "/z-last", "https://example.com/z")
	seedRedirect(repo, "/a-first", "https://example.com/a")

	svc := internalredirects.NewService(repo)
	records, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() returned error: %v", err)
	}
	if len(records) != 2 || records[0].OldPath != "/a-first" || records[1].OldPath != "/z-last" {
		t.Fatalf("unexpected ordering: %+v", records)
	}
}

func TestRedirectLocation_PrefersExplicitURL(t *testing.T) {
	external := "https://blog.example.com/post"
	record := &redirects.Redirect{OldPath: "/old", ToURL: &external}
	if got := record.Location("/new"); got != external {
		t.Fatalf("Location() = %q, want %q", got, external)
	}

	pageOnly := &redirects.Redirect{OldPath: "/old"}
	if got := pageOnly.Location("/new"); got != "/new" {
		t.Fatalf("Location() = %q, want /new", got)
	}
}
