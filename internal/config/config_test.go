package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"heptabundle/internal/app/exporter"
	"heptabundle/internal/domain/hb"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
db = "notes.db"
output = "out.md"

[settings]
include_linked_cards = true
include_images = true

[[whiteboards]]
id = "wb-1"
enabled = true
select = "include"
sections = ["sec-1", "sec-2"]

[[whiteboards]]
id = "wb-2"

[journals]
enabled = true
type = "last-n-days"
days = 7

[tags]
views = ["view-1"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB != "notes.db" || cfg.Output != "out.md" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
	if len(cfg.Whiteboards) != 2 || cfg.Whiteboards[0].Sections[1] != "sec-2" {
		t.Fatalf("unexpected whiteboards: %+v", cfg.Whiteboards)
	}
	if cfg.Journals.Type != hb.JournalLastNDays || cfg.Journals.Days != 7 {
		t.Fatalf("unexpected journals: %+v", cfg.Journals)
	}

	state := cfg.ExportState()
	if state.Whiteboards[0].SelectType != exporter.SelectInclude {
		t.Fatalf("unexpected select type: %q", state.Whiteboards[0].SelectType)
	}
	// An omitted select mode defaults to the full whiteboard.
	if state.Whiteboards[1].SelectType != exporter.SelectAll {
		t.Fatalf("unexpected default select type: %q", state.Whiteboards[1].SelectType)
	}
	if !state.Settings.IncludeLinkedCards || state.Settings.IncludeLinkedFiles {
		t.Fatalf("unexpected settings: %+v", state.Settings)
	}
	if _, ok := state.Tags.SelectedViews["view-1"]; !ok {
		t.Fatalf("unexpected tag views: %+v", state.Tags)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB != "heptabase.db" || cfg.Output != "export.md" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, `databse = "typo.db"`))
	if err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("expected unknown-key error, got %v", err)
	}
}

func TestLoadBadSelectMode(t *testing.T) {
	_, err := Load(writeConfig(t, `
[[whiteboards]]
id = "wb-1"
select = "sometimes"
`))
	if err == nil || !strings.Contains(err.Error(), "unknown select mode") {
		t.Fatalf("expected select mode error, got %v", err)
	}
}

func TestLoadBadJournalWindow(t *testing.T) {
	_, err := Load(writeConfig(t, `
[journals]
enabled = true
type = "last-n-days"
`))
	if err == nil || !strings.Contains(err.Error(), "days > 0") {
		t.Fatalf("expected journal window error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
