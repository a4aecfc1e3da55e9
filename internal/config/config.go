// Package config loads the TOML export configuration for the CLI. The
// file describes the store location and the selection: which
// whiteboards, which journal window, which tag views, and the output
// settings.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"heptabundle/internal/app/exporter"
	"heptabundle/internal/domain/hb"
)

type Config struct {
	DB       string   `toml:"db"`
	Output   string   `toml:"output"`
	LogLevel string   `toml:"log_level"`
	Settings Settings `toml:"settings"`

	Whiteboards []WhiteboardSelection `toml:"whiteboards"`
	Journals    JournalSelection      `toml:"journals"`
	Tags        TagSelection          `toml:"tags"`
}

type Settings struct {
	IncludeLinkedCards bool `toml:"include_linked_cards"`
	IncludeLinkedFiles bool `toml:"include_linked_files"`
	IncludeImages      bool `toml:"include_images"`
	IncludeAudioVideo  bool `toml:"include_audio_video"`
	IncludeOtherFiles  bool `toml:"include_other_files"`
}

// WhiteboardSelection is one [[whiteboards]] entry. Select is "all",
// "include", or "exclude"; Sections lists the section ids the mode
// applies to.
type WhiteboardSelection struct {
	ID       string   `toml:"id"`
	Enabled  bool     `toml:"enabled"`
	Select   string   `toml:"select"`
	Sections []string `toml:"sections"`
}

type JournalSelection struct {
	Enabled bool `toml:"enabled"`
	hb.JournalFilter
}

type TagSelection struct {
	Views []string `toml:"views"`
}

func defaults() Config {
	return Config{
		DB:       "heptabase.db",
		Output:   "export.md",
		LogLevel: "info",
	}
}

// Load reads and validates a config file. Unknown keys are an error so
// typos do not silently disable a selection.
func Load(path string) (Config, error) {
	cfg := defaults()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DB == "" {
		return fmt.Errorf("db path must not be empty")
	}
	for _, wb := range c.Whiteboards {
		if wb.ID == "" {
			return fmt.Errorf("whiteboard entry without id")
		}
		switch wb.Select {
		case "", exporter.SelectAll, exporter.SelectInclude, exporter.SelectExclude:
		default:
			return fmt.Errorf("whiteboard %s: unknown select mode %q", wb.ID, wb.Select)
		}
	}
	if c.Journals.Enabled {
		switch c.Journals.Type {
		case hb.JournalThisWeek, hb.JournalThisMonth, hb.JournalLastMonth, hb.JournalThisYear, hb.JournalCustom:
		case hb.JournalLastNDays:
			if c.Journals.Days <= 0 {
				return fmt.Errorf("journals: last-n-days needs days > 0")
			}
		default:
			return fmt.Errorf("journals: unknown window type %q", c.Journals.Type)
		}
	}
	return nil
}

// ExportState converts the selection into the resumable state the
// exporter consumes.
func (c Config) ExportState() exporter.ExportState {
	state := exporter.ExportState{
		Journals: exporter.JournalExportState{
			Enabled: c.Journals.Enabled,
			Config:  c.Journals.JournalFilter,
		},
		Tags: exporter.TagsExportState{SelectedViews: make(map[string]struct{}, len(c.Tags.Views))},
		Settings: exporter.ExportSettings{
			IncludeLinkedCards: c.Settings.IncludeLinkedCards,
			IncludeLinkedFiles: c.Settings.IncludeLinkedFiles,
			IncludeImages:      c.Settings.IncludeImages,
			IncludeAudioVideo:  c.Settings.IncludeAudioVideo,
			IncludeOtherFiles:  c.Settings.IncludeOtherFiles,
		},
	}
	for _, wb := range c.Whiteboards {
		selectType := wb.Select
		if selectType == "" {
			selectType = exporter.SelectAll
		}
		state.Whiteboards = append(state.Whiteboards, exporter.WhiteboardExportState{
			WhiteboardID: wb.ID,
			Enabled:      wb.Enabled,
			SelectType:   selectType,
			SelectedIDs:  wb.Sections,
		})
	}
	for _, view := range c.Tags.Views {
		state.Tags.SelectedViews[view] = struct{}{}
	}
	return state
}
