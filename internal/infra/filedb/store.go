package filedb

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// FileEntity is one stored content file. Path is the account-scoped
// logical path, forward-slash separated, with the leaf segment
// normalized (see NormalizePathPart).
type FileEntity struct {
	Path         string
	Name         string
	Type         string
	Size         int64
	Content      []byte
	LastModified time.Time
}

// Query controls a GetFilesByTitle lookup. Exact asks for a direct key
// lookup; otherwise the path is treated as a title prefix and Ext names
// the expected extension, "md" when empty.
type Query struct {
	Exact bool
	Ext   string
}

const schema = `
CREATE TABLE IF NOT EXISTS files (
	path TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT '',
	size INTEGER NOT NULL DEFAULT 0,
	content BLOB,
	last_modified INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS export_history (
	id TEXT PRIMARY KEY,
	date INTEGER NOT NULL,
	name TEXT NOT NULL,
	is_starred INTEGER NOT NULL DEFAULT 0,
	state BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS export_state (
	account TEXT PRIMARY KEY,
	state BLOB NOT NULL
);
`

// Store is a SQLite-backed content store for one account's files plus
// its export history and last export state.
type Store struct {
	db     *sql.DB
	cache  *lru.Cache[string, FileEntity]
	logger *zap.Logger
}

func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	cache, err := lru.New[string, FileEntity](256)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, cache: cache, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetFilesByTitle looks files up by logical path. An exact query is a
// key lookup. A fuzzy query treats the path's leaf as a title and
// returns files under the same prefix whose basename is the title with
// an optional " <n>" disambiguator before the extension.
func (s *Store) GetFilesByTitle(ctx context.Context, logicalPath string, q Query) ([]FileEntity, error) {
	if q.Exact {
		if file, ok := s.cache.Get(logicalPath); ok {
			return []FileEntity{file}, nil
		}
		file, err := s.getFile(ctx, logicalPath)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		s.cache.Add(logicalPath, file)
		return []FileEntity{file}, nil
	}

	ext := q.Ext
	if ext == "" {
		ext = "md"
	}
	title := logicalPath
	if idx := strings.LastIndex(logicalPath, "/"); idx >= 0 {
		title = logicalPath[idx+1:]
	}
	basename, err := regexp.Compile(`^` + regexp.QuoteMeta(title) + `(\s\d+)?\.` + regexp.QuoteMeta(ext) + `$`)
	if err != nil {
		return nil, fmt.Errorf("compile title pattern: %w", err)
	}

	// Range over the path index: [prefix, prefix+"￿").
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, name, type, size, content, last_modified FROM files WHERE path >= ? AND path < ? ORDER BY path`,
		logicalPath, logicalPath+"￿")
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var out []FileEntity
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		base := file.Path
		if idx := strings.LastIndex(base, "/"); idx >= 0 {
			base = base[idx+1:]
		}
		if basename.MatchString(base) {
			out = append(out, file)
		}
	}
	return out, rows.Err()
}

func (s *Store) getFile(ctx context.Context, path string) (FileEntity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT path, name, type, size, content, last_modified FROM files WHERE path = ?`, path)
	return scanFile(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (FileEntity, error) {
	var file FileEntity
	var modified int64
	if err := row.Scan(&file.Path, &file.Name, &file.Type, &file.Size, &file.Content, &modified); err != nil {
		return FileEntity{}, err
	}
	if modified > 0 {
		file.LastModified = time.UnixMilli(modified).UTC()
	}
	return file, nil
}

func (s *Store) PutFile(ctx context.Context, file FileEntity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO files (path, name, type, size, content, last_modified) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET name=excluded.name, type=excluded.type, size=excluded.size,
		 content=excluded.content, last_modified=excluded.last_modified`,
		file.Path, file.Name, file.Type, file.Size, file.Content, file.LastModified.UnixMilli())
	if err != nil {
		return fmt.Errorf("put file %s: %w", file.Path, err)
	}
	s.cache.Remove(file.Path)
	return nil
}

// DeleteAllFiles clears the file table, used before re-importing a
// backup for the same account.
func (s *Store) DeleteAllFiles(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM files`); err != nil {
		return fmt.Errorf("delete files: %w", err)
	}
	s.cache.Purge()
	return nil
}
