package exporter

import (
	"context"

	"go.uber.org/zap"
)

// Result is the deliverable of one export run. Exactly one of Markdown
// and Zip is populated, decided by the settings.
type Result struct {
	Markdown string
	Zip      []byte
	Count    int
	Logs     []string
}

// Run executes the three selection phases in order — whiteboards,
// journals, tags — and serializes the output. Cancellation is honored
// between top-level entities; a mid-run abort leaves the instance
// unusable for another run.
func (e *Exporter) Run(ctx context.Context, state ExportState) (Result, error) {
	total := 1
	for _, wb := range state.Whiteboards {
		if wb.Enabled {
			total++
		}
	}
	if state.Journals.Enabled {
		total++
	}
	total += len(state.Tags.SelectedViews)

	bar := newExportProgressBar(total)
	defer bar.Close()

	for _, wb := range state.Whiteboards {
		if !wb.Enabled {
			continue
		}
		if err := e.ExportWhiteboards(ctx, []WhiteboardExportState{wb}); err != nil {
			return Result{}, err
		}
		bar.Advance("exporting whiteboards")
	}
	if state.Journals.Enabled {
		if err := e.ExportJournals(ctx, state.Journals); err != nil {
			return Result{}, err
		}
		bar.Advance("exporting journals")
	}
	for _, view := range state.Tags.SortedViews() {
		if err := e.ExportTags(ctx, TagsExportState{SelectedViews: map[string]struct{}{view: {}}}); err != nil {
			return Result{}, err
		}
		bar.Advance("exporting tags")
	}

	result := Result{Count: e.Count()}
	if e.ExportAsZip() {
		data, err := e.Zip()
		if err != nil {
			return Result{}, err
		}
		result.Zip = data
	} else {
		result.Markdown = e.Markdown()
	}
	result.Logs = e.Logs()

	bar.Finish("done")
	e.logger.Info("export finished",
		zap.Int("files", result.Count),
		zap.Int("notes", len(result.Logs)),
		zap.Bool("zip", e.ExportAsZip()))
	return result, nil
}
