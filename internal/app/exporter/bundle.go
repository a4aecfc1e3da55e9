package exporter

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"strings"
	"time"

	"heptabundle/internal/infra/filedb"
)

// metaField is one "Key: Value" line of an entry's metadata comment.
// Order is preserved in the output.
type metaField struct {
	Key   string
	Value string
}

func renderEntry(content []byte, meta []metaField) string {
	var b strings.Builder
	b.WriteString("---\n\n<!--\n")
	for _, field := range meta {
		b.WriteString(field.Key)
		b.WriteString(": ")
		b.WriteString(field.Value)
		b.WriteString("\n")
	}
	b.WriteString("-->\n\n")
	b.Write(content)
	b.WriteString("\n\n")
	return b.String()
}

// assetKind buckets an asset by its MIME-ish type string for the
// settings gates: image, audio/video, or other (PDFs, office docs).
func assetKind(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "image"), strings.Contains(mimeType, "img"):
		return "image"
	case strings.Contains(mimeType, "audio"), strings.Contains(mimeType, "video"):
		return "audio/video"
	default:
		return "other"
	}
}

// buildZip assembles the archive: export.md at the root plus every
// asset at its stored relative path. Compression favors speed; most
// assets are already-compressed binaries. Per-asset failures are
// logged and skipped, but a failure to serialize the archive itself is
// fatal since a truncated ZIP is not deliverable.
func buildZip(markdown string, assets []filedb.FileEntity, now time.Time, logf func(format string, args ...any)) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	writeEntry := func(name string, modified time.Time, content []byte) error {
		if modified.IsZero() {
			modified = now
		}
		entry, err := w.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return err
		}
		_, err = entry.Write(content)
		return err
	}

	if err := writeEntry("export.md", now, []byte(markdown)); err != nil {
		w.Close()
		return nil, fmt.Errorf("write export.md: %w", err)
	}
	for _, asset := range assets {
		if asset.Path == "" || len(asset.Content) == 0 {
			continue
		}
		if err := writeEntry(asset.Path, asset.LastModified, asset.Content); err != nil {
			logf("Failed to add %s to ZIP: %v", asset.Path, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}
