package filedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// HistoryEntry is one persisted export attempt: the full selection and
// settings snapshot, replayable from the history surface.
type HistoryEntry struct {
	ID        string
	Date      time.Time
	Name      string
	IsStarred bool
	State     json.RawMessage
}

func (s *Store) SaveHistory(ctx context.Context, entry HistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO export_history (id, date, name, is_starred, state) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET date=excluded.date, name=excluded.name,
		 is_starred=excluded.is_starred, state=excluded.state`,
		entry.ID, entry.Date.UnixMilli(), entry.Name, entry.IsStarred, []byte(entry.State))
	if err != nil {
		return fmt.Errorf("save history %s: %w", entry.ID, err)
	}
	return nil
}

// ListHistory returns entries newest first, starred entries before the
// rest.
func (s *Store) ListHistory(ctx context.Context) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, name, is_starred, state FROM export_history ORDER BY is_starred DESC, date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var date int64
		var state []byte
		if err := rows.Scan(&entry.ID, &date, &entry.Name, &entry.IsStarred, &state); err != nil {
			return nil, err
		}
		entry.Date = time.UnixMilli(date).UTC()
		entry.State = json.RawMessage(state)
		out = append(out, entry)
	}
	return out, rows.Err()
}

// StarHistory toggles the starred flag on one entry.
func (s *Store) StarHistory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE export_history SET is_starred = NOT is_starred WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("star history %s: %w", id, err)
	}
	return requireRow(res, id)
}

func (s *Store) RenameHistory(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE export_history SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename history %s: %w", id, err)
	}
	return requireRow(res, id)
}

func (s *Store) DeleteHistory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM export_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete history %s: %w", id, err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("history entry %s not found", id)
	}
	return nil
}

// SaveLastState persists the most recent export selection for an
// account so the next session can resume from it.
func (s *Store) SaveLastState(ctx context.Context, account string, state json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO export_state (account, state) VALUES (?, ?)
		 ON CONFLICT(account) DO UPDATE SET state=excluded.state`,
		account, []byte(state))
	if err != nil {
		return fmt.Errorf("save export state: %w", err)
	}
	return nil
}

// LoadLastState returns nil without error when no state was saved yet.
func (s *Store) LoadLastState(ctx context.Context, account string) (json.RawMessage, error) {
	var state []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM export_state WHERE account = ?`, account).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load export state: %w", err)
	}
	return json.RawMessage(state), nil
}
