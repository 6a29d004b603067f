package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-addressformat/internal/logging"
	"github.com/goliatone/go-addressformat/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("addressformat.formats")
	logger = logging.WithFields(logger, map[string]any{"module": "addressformat.formats"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"correlation_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	logger.Info("formats.lookup.fallback",
		"country_code", "XK",
		"required_fields", []string{"address_line1", "locality"},
	)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO formats.lookup.fallback correlation_id=req-1234 country_code=XK logger=addressformat.formats module=addressformat.formats required_fields=address_line1,locality"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("t").Error("failed", "error", errors.New("boom went"), "dangling")

	line := buf.String()
	if !strings.Contains(line, `error="boom went"`) {
		t.Fatalf("expected quoted error, got %s", line)
	}
	if !strings.Contains(line, "arg_2=dangling") {
		t.Fatalf("expected dangling arg to be kept, got %s", line)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("addressformat.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, ok := console.ParseLevel("Warning"); !ok || lvl != console.LevelWarn {
		t.Fatalf("expected warn level, got %v %v", lvl, ok)
	}
	if _, ok := console.ParseLevel("verbose"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}
