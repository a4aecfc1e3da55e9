package filedb

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"heptabundle/internal/domain/hb"
	"heptabundle/internal/infra/snapshotjson"
)

// ImportBackup ingests an exported backup directory: the root manifest
// is decoded to identify the account, the existing file table is
// cleared, and every regular file is stored under its slash-separated
// path relative to the backup root. Returns the decoded manifest and
// the number of stored files.
func (s *Store) ImportBackup(ctx context.Context, dir string) (*hb.Data, int, error) {
	manifestPath := filepath.Join(dir, snapshotjson.ManifestName)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, 0, fmt.Errorf("backup directory has no %s: %w", snapshotjson.ManifestName, err)
	}
	data, err := snapshotjson.ReadFile(manifestPath)
	if err != nil {
		return nil, 0, err
	}

	if err := s.DeleteAllFiles(ctx); err != nil {
		return nil, 0, err
	}

	count := 0
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		file := FileEntity{
			Path:         filepath.ToSlash(rel),
			Name:         entry.Name(),
			Type:         detectContentType(entry.Name(), content),
			Size:         info.Size(),
			Content:      content,
			LastModified: info.ModTime().UTC(),
		}
		if err := s.PutFile(ctx, file); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info("backup imported",
		zap.String("dir", dir),
		zap.String("account", data.AccountID),
		zap.Int("files", count))
	return data, count, nil
}

// LoadManifest fetches and decodes the root manifest from the store. A
// missing or malformed manifest aborts the export session.
func (s *Store) LoadManifest(ctx context.Context) (*hb.Data, error) {
	files, err := s.GetFilesByTitle(ctx, snapshotjson.ManifestName, Query{Exact: true})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s not found in store", snapshotjson.ManifestName)
	}
	return snapshotjson.Decode(files[0].Content)
}

var preferredTypes = map[string]string{
	".md":   "text/markdown",
	".json": "application/json",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

func detectContentType(name string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := preferredTypes[ext]; ok {
		return t
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		if idx := strings.Index(byExt, ";"); idx >= 0 {
			byExt = strings.TrimSpace(byExt[:idx])
		}
		return byExt
	}
	if len(content) == 0 {
		return "application/octet-stream"
	}
	sniffLen := len(content)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detected := http.DetectContentType(content[:sniffLen])
	if idx := strings.Index(detected, ";"); idx >= 0 {
		detected = strings.TrimSpace(detected[:idx])
	}
	return detected
}
