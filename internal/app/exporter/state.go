package exporter

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"heptabundle/internal/domain/hb"
	"heptabundle/internal/infra/filedb"
)

// ExportSettings are the independent output toggles. IncludeLinkedFiles
// doubles as the ZIP switch: binary assets cannot be inlined into
// Markdown, so any export that pulls files must produce an archive.
type ExportSettings struct {
	IncludeLinkedCards bool `json:"includeLinkedCards"`
	IncludeLinkedFiles bool `json:"includeLinkedFiles"`
	IncludeImages      bool `json:"includeImages"`
	IncludeAudioVideo  bool `json:"includeAudioVideo"`
	IncludeOtherFiles  bool `json:"includeOtherFiles"`
}

const (
	SelectAll     = "all"
	SelectInclude = "include"
	SelectExclude = "exclude"
)

// WhiteboardExportState is the per-whiteboard selection row.
type WhiteboardExportState struct {
	WhiteboardID string   `json:"whiteboardId"`
	Enabled      bool     `json:"enabled"`
	SelectType   string   `json:"selectType"`
	SelectedIDs  []string `json:"selectedIds"`
}

func (w WhiteboardExportState) sectionScope() hb.SectionScope {
	switch w.SelectType {
	case SelectInclude:
		return hb.SectionScope{Include: nonNil(w.SelectedIDs)}
	case SelectExclude:
		return hb.SectionScope{Exclude: nonNil(w.SelectedIDs)}
	default:
		return hb.SectionScope{}
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

type JournalExportState struct {
	Enabled bool             `json:"enabled"`
	Config  hb.JournalFilter `json:"config"`
}

// TagsExportState holds the selected collection-view ids. The set is
// serialized as a sorted array so saved states round-trip losslessly.
type TagsExportState struct {
	SelectedViews map[string]struct{} `json:"-"`
}

func (t TagsExportState) MarshalJSON() ([]byte, error) {
	views := make([]string, 0, len(t.SelectedViews))
	for view := range t.SelectedViews {
		views = append(views, view)
	}
	sort.Strings(views)
	return json.Marshal(struct {
		SelectedViews []string `json:"selectedViews"`
	}{SelectedViews: views})
}

func (t *TagsExportState) UnmarshalJSON(raw []byte) error {
	var wire struct {
		SelectedViews []string `json:"selectedViews"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}
	t.SelectedViews = make(map[string]struct{}, len(wire.SelectedViews))
	for _, view := range wire.SelectedViews {
		t.SelectedViews[view] = struct{}{}
	}
	return nil
}

// SortedViews returns the selection in deterministic order for
// processing and display.
func (t TagsExportState) SortedViews() []string {
	views := make([]string, 0, len(t.SelectedViews))
	for view := range t.SelectedViews {
		views = append(views, view)
	}
	sort.Strings(views)
	return views
}

// ExportState is the full resumable selection snapshot: what to export
// and with which settings. It is persisted as the account's last export
// state and embedded into every history entry.
type ExportState struct {
	Whiteboards []WhiteboardExportState `json:"whiteboards"`
	Journals    JournalExportState      `json:"journals"`
	Tags        TagsExportState         `json:"tags"`
	Settings    ExportSettings          `json:"exportSettings"`
}

func EncodeState(state ExportState) (json.RawMessage, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode export state: %w", err)
	}
	return raw, nil
}

func DecodeState(raw json.RawMessage) (ExportState, error) {
	var state ExportState
	if err := json.Unmarshal(raw, &state); err != nil {
		return ExportState{}, fmt.Errorf("decode export state: %w", err)
	}
	return state, nil
}

// NewHistoryEntry snapshots a state into a history record with a fresh
// identifier and a timestamp-derived default name.
func NewHistoryEntry(state ExportState, now time.Time) (filedb.HistoryEntry, error) {
	raw, err := EncodeState(state)
	if err != nil {
		return filedb.HistoryEntry{}, err
	}
	return filedb.HistoryEntry{
		ID:    uuid.NewString(),
		Date:  now.UTC(),
		Name:  "Export " + now.UTC().Format("2006-01-02 15:04:05"),
		State: raw,
	}, nil
}
