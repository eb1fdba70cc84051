// Package store persists the raw transcript and notes of each video in
// SQLite. Structured views are never stored; they are rebuilt from the raw
// texts on every read.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a video id has no record.
var ErrNotFound = errors.New("video not found")

const schema = `
CREATE TABLE IF NOT EXISTS videos (
	video_id     TEXT PRIMARY KEY,
	url          TEXT NOT NULL DEFAULT '',
	transcript   TEXT NOT NULL,
	notes        TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_videos_updated ON videos(updated_at DESC);
`

// Record is one stored video.
type Record struct {
	VideoID     string    `json:"video_id"`
	URL         string    `json:"url,omitempty"`
	Transcript  string    `json:"transcript"`
	Notes       string    `json:"notes"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary is a Record without its texts.
type Summary struct {
	VideoID     string    `json:"video_id"`
	URL         string    `json:"url,omitempty"`
	ContentHash string    `json:"content_hash"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary drops the texts from r.
func (r Record) Summary() Summary {
	return Summary{VideoID: r.VideoID, URL: r.URL, ContentHash: r.ContentHash, UpdatedAt: r.UpdatedAt}
}

// Store is a SQLite-backed video record store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	// Pragmas are per connection and :memory: is per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ContentHash returns the BLAKE3 hex digest of a transcript/notes pair.
func ContentHash(transcript, notes string) string {
	h := blake3.New()
	h.Write([]byte(transcript))
	h.Write([]byte{0})
	h.Write([]byte(notes))
	return hex.EncodeToString(h.Sum(nil))
}

// Put inserts or replaces a record. changed is false when the stored texts
// already hash to the same value and the URL is unchanged, in which case
// nothing is written.
func (s *Store) Put(ctx context.Context, rec Record) (Record, bool, error) {
	if rec.VideoID == "" {
		return Record{}, false, errors.New("store: video id is required")
	}
	rec.ContentHash = ContentHash(rec.Transcript, rec.Notes)

	existing, err := s.Get(ctx, rec.VideoID)
	switch {
	case err == nil && existing.ContentHash == rec.ContentHash && existing.URL == rec.URL:
		return existing, false, nil
	case err == nil:
		rec.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		rec.CreatedAt = time.Now().UTC()
	default:
		return Record{}, false, err
	}
	rec.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO videos (video_id, url, transcript, notes, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			url = excluded.url,
			transcript = excluded.transcript,
			notes = excluded.notes,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at`,
		rec.VideoID, rec.URL, rec.Transcript, rec.Notes, rec.ContentHash,
		rec.CreatedAt.UnixMilli(), rec.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return Record{}, false, fmt.Errorf("store: put %s: %w", rec.VideoID, err)
	}
	return rec, true, nil
}

// Get returns the record for videoID.
func (s *Store) Get(ctx context.Context, videoID string) (Record, error) {
	var rec Record
	var created, updated int64
	err := s.db.QueryRowContext(ctx, `
		SELECT video_id, url, transcript, notes, content_hash, created_at, updated_at
		FROM videos WHERE video_id = ?`, videoID,
	).Scan(&rec.VideoID, &rec.URL, &rec.Transcript, &rec.Notes, &rec.ContentHash, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("store: get %s: %w", videoID, err)
	}
	rec.CreatedAt = time.UnixMilli(created).UTC()
	rec.UpdatedAt = time.UnixMilli(updated).UTC()
	return rec, nil
}

// List returns up to limit summaries, most recently updated first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT video_id, url, content_hash, updated_at
		FROM videos ORDER BY updated_at DESC, video_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var updated int64
		if err := rows.Scan(&sm.VideoID, &sm.URL, &sm.ContentHash, &updated); err != nil {
			return nil, fmt.Errorf("store: list scan: %w", err)
		}
		sm.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Delete removes the record for videoID and reports whether one existed.
func (s *Store) Delete(ctx context.Context, videoID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE video_id = ?`, videoID)
	if err != nil {
		return false, fmt.Errorf("store: delete %s: %w", videoID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: delete %s: %w", videoID, err)
	}
	return n > 0, nil
}
