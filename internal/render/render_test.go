package render

import (
	"strings"
	"testing"

	"github.com/dost-cli/dost/internal/config"
)

func TestMarkdown_Basic(t *testing.T) {
	out, err := Markdown("# Heading\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() returned error: %v", err)
	}
	if !strings.Contains(out, "Heading") {
		t.Errorf("output missing heading text: %q", out)
	}
	if !strings.Contains(out, "bold") {
		t.Errorf("output missing body text: %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	out, err := MarkdownWithWidth("hello world", 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth() returned error: %v", err)
	}
	if out == "" {
		t.Error("expected non-empty output")
	}
}

func TestCache_ReusesPoolPerOptions(t *testing.T) {
	ClearCache()

	opts := DefaultOptions()
	if _, err := Markdown("one", opts); err != nil {
		t.Fatalf("Markdown() returned error: %v", err)
	}
	if _, err := Markdown("two", opts); err != nil {
		t.Fatalf("Markdown() returned error: %v", err)
	}
	if CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1 for identical options", CacheSize())
	}

	if _, err := Markdown("three", opts.WithWidth(40)); err != nil {
		t.Fatalf("Markdown() returned error: %v", err)
	}
	if CacheSize() != 2 {
		t.Errorf("CacheSize() = %d, want 2 after a second configuration", CacheSize())
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "light"
	cfg.Markdown.EnableEmoji = false

	opts := OptionsFromConfig(cfg)
	if opts.Style != "light" {
		t.Errorf("Style = %q, want light", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("EnableEmoji should follow config")
	}
}

func TestOptionsFromConfig_EnvOverridesStyle(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "notty")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "light"

	opts := OptionsFromConfig(cfg)
	if opts.Style != "notty" {
		t.Errorf("Style = %q, want env override notty", opts.Style)
	}
}
