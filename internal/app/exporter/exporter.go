package exporter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"heptabundle/internal/domain/hb"
	"heptabundle/internal/infra/filedb"
)

// ContentStore is the file lookup surface the exporter consumes. The
// store is read-only for the duration of an export run.
type ContentStore interface {
	GetFilesByTitle(ctx context.Context, logicalPath string, q filedb.Query) ([]filedb.FileEntity, error)
}

// Exporter resolves a selection against one snapshot and assembles the
// output bundle. One instance serves one run; the dedup set, the log
// and the assembled entries are owned state, so concurrent runs need
// separate instances.
type Exporter struct {
	store    ContentStore
	data     *hb.Data
	settings ExportSettings
	logger   *zap.Logger
	clock    func() time.Time

	exports  []string
	assets   []filedb.FileEntity
	logs     []string
	exported map[string]struct{}
}

func New(store ContentStore, data *hb.Data, settings ExportSettings, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		store:    store,
		data:     data,
		settings: settings,
		logger:   logger,
		clock:    time.Now,
		exported: make(map[string]struct{}),
	}
}

// ExportWhiteboards runs the whiteboard phase of the selection: cards
// per enabled whiteboard narrowed by section scope, then the
// whiteboard's assets when the settings ask for linked files.
func (e *Exporter) ExportWhiteboards(ctx context.Context, states []WhiteboardExportState) error {
	for _, state := range states {
		if !state.Enabled {
			continue
		}
		whiteboardIDs := map[string]struct{}{state.WhiteboardID: {}}
		scope := state.sectionScope()

		for _, card := range hb.CardsInWhiteboards(whiteboardIDs, e.data, scope) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.exportCard(ctx, card); err != nil {
				return err
			}
		}
		if !e.settings.IncludeLinkedFiles {
			continue
		}
		for _, asset := range hb.AssetsInWhiteboards(whiteboardIDs, e.data, scope) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.exportWhiteboardAsset(ctx, asset); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportJournals runs the journal phase against the filter's date
// window.
func (e *Exporter) ExportJournals(ctx context.Context, state JournalExportState) error {
	if !state.Enabled {
		return nil
	}
	for _, journal := range hb.FilterJournals(e.data.JournalList, state.Config, e.clock()) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.exportJournal(ctx, journal); err != nil {
			return err
		}
	}
	return nil
}

// ExportTags runs the tag phase: every selected view's filter config
// evaluated over the full card and journal universe.
func (e *Exporter) ExportTags(ctx context.Context, state TagsExportState) error {
	for _, entity := range hb.FilterCardsAndJournalsByViews(e.data, state.SortedViews()) {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		if entity.Card != nil {
			err = e.exportCard(ctx, *entity.Card)
		} else {
			err = e.exportJournal(ctx, *entity.Journal)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) exportCard(ctx context.Context, card hb.Card) error {
	files, err := e.store.GetFilesByTitle(ctx, "Card Library/"+filedb.NormalizePathPart(card.Title), filedb.Query{})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		e.logf("No file found for card %q", card.Title)
		return nil
	}
	files = bestMatchedFiles(files, card.Content)
	if len(files) > 1 {
		paths := make([]string, len(files))
		for i, file := range files {
			paths[i] = file.Path
		}
		e.logf("Multiple files found for card %q. Using all files: %s", card.Title, strings.Join(paths, ", "))
	}
	for _, file := range files {
		if err := e.exportDocumentFile(ctx, file, []metaField{
			{Key: "Card Title", Value: card.Title},
			{Key: "Created At", Value: hb.FormatDate(card.CreatedTime)},
			{Key: "File", Value: file.Path},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) exportJournal(ctx context.Context, journal hb.Journal) error {
	files, err := e.store.GetFilesByTitle(ctx, "Journal/"+filedb.NormalizePathPart(journal.Date)+".md", filedb.Query{Exact: true})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		e.logf("No file found for journal %q", journal.Date)
		return nil
	}
	for _, file := range files {
		if err := e.exportDocumentFile(ctx, file, []metaField{
			{Key: "Journal Date", Value: journal.Date},
			{Key: "File", Value: file.Path},
		}); err != nil {
			return err
		}
	}
	return nil
}

// exportDocumentFile admits one resolved document into the bundle and
// follows its links. The shared exported set is checked first, which
// both deduplicates and bounds the link recursion.
func (e *Exporter) exportDocumentFile(ctx context.Context, file filedb.FileEntity, meta []metaField) error {
	if _, done := e.exported[file.Path]; done {
		return nil
	}
	e.exported[file.Path] = struct{}{}
	e.exports = append(e.exports, renderEntry(file.Content, meta))
	e.logger.Debug("document exported", zap.String("path", file.Path))

	if !e.settings.IncludeLinkedCards && !e.settings.IncludeLinkedFiles {
		return nil
	}
	return e.processLinked(ctx, linkedPaths(file.Content, file.Path))
}

func (e *Exporter) processLinked(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if _, done := e.exported[path]; done {
			continue
		}
		switch classifyLinkedPath(path) {
		case linkAsset:
			if !e.settings.IncludeLinkedFiles {
				continue
			}
			files, err := e.store.GetFilesByTitle(ctx, path, filedb.Query{Exact: true})
			if err != nil {
				return err
			}
			if len(files) > 0 {
				e.exportAssetFile(files[0])
			}
		case linkDocument:
			if !e.settings.IncludeLinkedCards {
				continue
			}
			files, err := e.store.GetFilesByTitle(ctx, path, filedb.Query{Exact: true})
			if err != nil {
				return err
			}
			if len(files) > 0 {
				if err := e.exportDocumentFile(ctx, files[0], []metaField{{Key: "File", Value: files[0].Path}}); err != nil {
					return err
				}
			}
		default:
			e.logf("Linked file %q is not in \"Card Library\" or \"Journal\".", path)
		}
	}
	return nil
}

// exportWhiteboardAsset matches a whiteboard media element or PDF card
// to stored files by normalized name and exact byte-size equality.
func (e *Exporter) exportWhiteboardAsset(ctx context.Context, asset hb.WhiteboardAsset) error {
	name := asset.File.Name
	ext := ""
	if dot := strings.Index(name, "."); dot >= 0 {
		ext = name[dot+1:]
		name = name[:dot]
	}

	var path string
	if asset.Media != nil {
		path = "Whiteboard/" + filedb.NormalizePathPart(asset.Whiteboard.Name) + "-assets/" + filedb.NormalizePathPart(name)
	} else {
		path = "Card Library/" + filedb.NormalizePathPart(name)
		ext = "pdf"
	}

	files, err := e.store.GetFilesByTitle(ctx, path, filedb.Query{Ext: ext})
	if err != nil {
		return err
	}
	for _, file := range files {
		if file.Size == asset.File.Size {
			e.exportAssetFile(file)
		}
	}
	return nil
}

// exportAssetFile admits an asset subject to the per-kind settings
// gates.
func (e *Exporter) exportAssetFile(file filedb.FileEntity) {
	if _, done := e.exported[file.Path]; done {
		return
	}
	e.exported[file.Path] = struct{}{}

	kind := assetKind(file.Type)
	if (kind == "image" && e.settings.IncludeImages) ||
		(kind == "audio/video" && e.settings.IncludeAudioVideo) ||
		(kind == "other" && e.settings.IncludeOtherFiles) {
		e.assets = append(e.assets, file)
		e.logger.Debug("asset exported", zap.String("path", file.Path), zap.String("kind", kind))
	}
}

func (e *Exporter) logf(format string, args ...any) {
	entry := fmt.Sprintf(format, args...)
	e.logs = append(e.logs, entry)
	e.logger.Info("export note", zap.String("entry", entry))
}

// ExportAsZip reports whether the output must be a ZIP archive: linked
// binary files cannot be inlined into Markdown.
func (e *Exporter) ExportAsZip() bool {
	return e.settings.IncludeLinkedFiles
}

// Markdown returns the assembled bundle in admission order.
func (e *Exporter) Markdown() string {
	return strings.Join(e.exports, "")
}

// Zip serializes the archive output. A serialization failure is
// recorded in the log and still returned: a partial archive is not
// deliverable.
func (e *Exporter) Zip() ([]byte, error) {
	data, err := buildZip(e.Markdown(), e.assets, e.clock(), e.logf)
	if err != nil {
		e.logf("Failed to build ZIP: %v", err)
		return nil, err
	}
	return data, nil
}

// Logs returns the accumulated non-fatal log entries in order.
func (e *Exporter) Logs() []string {
	return e.logs
}

// Count is the number of distinct files admitted into the export.
func (e *Exporter) Count() int {
	return len(e.exported)
}
