package exporter

import (
	"strings"
	"testing"
	"time"

	"heptabundle/internal/domain/hb"
)

func TestExportStateRoundTrip(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	state := ExportState{
		Whiteboards: []WhiteboardExportState{
			{WhiteboardID: "wb-1", Enabled: true, SelectType: SelectInclude, SelectedIDs: []string{"sec-1"}},
			{WhiteboardID: "wb-2", SelectType: SelectAll},
		},
		Journals: JournalExportState{
			Enabled: true,
			Config:  hb.JournalFilter{Type: hb.JournalCustom, StartDate: &start},
		},
		Tags: TagsExportState{SelectedViews: map[string]struct{}{"view-b": {}, "view-a": {}}},
		Settings: ExportSettings{
			IncludeLinkedCards: true,
			IncludeImages:      true,
		},
	}

	raw, err := EncodeState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// The view set serializes as a sorted array.
	if !strings.Contains(string(raw), `"selectedViews":["view-a","view-b"]`) {
		t.Fatalf("unexpected encoding: %s", raw)
	}

	decoded, err := DecodeState(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Whiteboards) != 2 || decoded.Whiteboards[0].SelectedIDs[0] != "sec-1" {
		t.Fatalf("unexpected whiteboards: %+v", decoded.Whiteboards)
	}
	if !decoded.Journals.Enabled || decoded.Journals.Config.StartDate == nil || !decoded.Journals.Config.StartDate.Equal(start) {
		t.Fatalf("unexpected journals: %+v", decoded.Journals)
	}
	if _, ok := decoded.Tags.SelectedViews["view-b"]; !ok || len(decoded.Tags.SelectedViews) != 2 {
		t.Fatalf("unexpected tags: %+v", decoded.Tags)
	}
	if !decoded.Settings.IncludeLinkedCards || decoded.Settings.IncludeOtherFiles {
		t.Fatalf("unexpected settings: %+v", decoded.Settings)
	}
}

func TestDecodeStateMalformed(t *testing.T) {
	if _, err := DecodeState([]byte("{broken")); err == nil {
		t.Fatal("expected error for malformed state")
	}
}

func TestSectionScope(t *testing.T) {
	include := WhiteboardExportState{SelectType: SelectInclude, SelectedIDs: []string{"sec-1"}}
	if include.sectionScope().Include == nil {
		t.Fatal("expected include scope")
	}
	exclude := WhiteboardExportState{SelectType: SelectExclude}
	if exclude.sectionScope().Exclude == nil {
		t.Fatal("expected non-nil exclude scope even with no ids")
	}
	all := WhiteboardExportState{SelectType: SelectAll}
	scope := all.sectionScope()
	if scope.Include != nil || scope.Exclude != nil {
		t.Fatal("expected unrestricted scope")
	}
}

func TestSortedViews(t *testing.T) {
	tags := TagsExportState{SelectedViews: map[string]struct{}{"b": {}, "a": {}, "c": {}}}
	views := tags.SortedViews()
	if len(views) != 3 || views[0] != "a" || views[2] != "c" {
		t.Fatalf("unexpected order: %v", views)
	}
}

func TestNewHistoryEntry(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	entry, err := NewHistoryEntry(ExportState{}, now)
	if err != nil {
		t.Fatalf("new history entry: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("expected generated id")
	}
	if entry.Name != "Export 2026-08-30 09:30:00" {
		t.Fatalf("unexpected name: %q", entry.Name)
	}
	if len(entry.State) == 0 {
		t.Fatal("expected serialized state")
	}
}
