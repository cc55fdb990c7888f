package console_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-cms-api/internal/logging/console"
)

func fixedClock() time.Time {
	return time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC)
}

func TestConsoleLoggerFormatsSortedFields(t *testing.T) {
	var buf strings.Builder
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock})

	logger := provider.GetLogger("cmsapi.http")
	logger.Info("request served", "status", 200, "path", "/api/pages")

	line := strings.TrimSuffix(buf.String(), "\n")
	want := "2025-03-01T10:30:00Z INFO request served logger=cmsapi.http path=/api/pages status=200"
	if line != want {
		t.Fatalf("line = %q, want %q", line, want)
	}
}

func TestConsoleLoggerMinLevel(t *testing.T) {
	var buf strings.Builder
	min := console.LevelWarn
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock, MinLevel: &min})

	logger := provider.GetLogger("test")
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("low severity entries leaked: %q", out)
	}
	if !strings.Contains(out, "WARN shown") {
		t.Fatalf("warn entry missing: %q", out)
	}
}

func TestConsoleLoggerDanglingArg(t *testing.T) {
	var buf strings.Builder
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock})

	provider.GetLogger("test").Info("odd args", "orphan")

	if !strings.Contains(buf.String(), "field_0=orphan") {
		t.Fatalf("dangling argument dropped: %q", buf.String())
	}
}
