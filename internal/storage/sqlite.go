// Package storage provides the SQLite-backed song library catalogue.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the song catalogue.
type Store struct {
	db *sql.DB
}

// SongRecord is the catalogue entry of one song file.
type SongRecord struct {
	ID        int64
	Path      string
	Title     string
	Artist    string
	Events    int
	Lanes     int   // lanes with at least one prompt
	LengthMs  int64 // offset of the last prompt
	Checksum  string
	Valid     bool
	Problem   string // why the song cannot be played; empty when valid
	IndexedAt time.Time
}

// LibraryStats contains aggregated statistics over the catalogue.
type LibraryStats struct {
	Songs         int
	Playable      int
	TotalLengthMs int64
	LastIndexed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			artist TEXT NOT NULL DEFAULT '',
			events INTEGER NOT NULL DEFAULT 0,
			lanes INTEGER NOT NULL DEFAULT 0,
			length_ms INTEGER NOT NULL DEFAULT 0,
			checksum TEXT NOT NULL,
			valid INTEGER NOT NULL DEFAULT 0,
			problem TEXT NOT NULL DEFAULT '',
			indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_songs_title ON songs(title);
		CREATE INDEX IF NOT EXISTS idx_songs_checksum ON songs(checksum);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// UpsertSong inserts a catalogue entry or replaces the one with the same path.
// Returns the ID of the record.
func (s *Store) UpsertSong(rec SongRecord) (int64, error) {
	_, err := s.db.Exec(
		`INSERT INTO songs (path, title, artist, events, lanes, length_ms, checksum, valid, problem, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(path) DO UPDATE SET
		   title = excluded.title,
		   artist = excluded.artist,
		   events = excluded.events,
		   lanes = excluded.lanes,
		   length_ms = excluded.length_ms,
		   checksum = excluded.checksum,
		   valid = excluded.valid,
		   problem = excluded.problem,
		   indexed_at = excluded.indexed_at`,
		rec.Path, rec.Title, rec.Artist, rec.Events, rec.Lanes, rec.LengthMs,
		rec.Checksum, rec.Valid, rec.Problem,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save song %s: %w", rec.Path, err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM songs WHERE path = ?", rec.Path).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get song ID: %w", err)
	}
	return id, nil
}

const songColumns = `id, path, title, artist, events, lanes, length_ms, checksum, valid, problem, indexed_at`

// Songs retrieves the whole catalogue ordered by title, then path.
// With playableOnly set, songs that failed validation are left out.
func (s *Store) Songs(playableOnly bool) ([]SongRecord, error) {
	query := `SELECT ` + songColumns + ` FROM songs`
	if playableOnly {
		query += ` WHERE valid = 1`
	}
	query += ` ORDER BY title, path`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query songs: %w", err)
	}
	defer rows.Close()

	var records []SongRecord
	for rows.Next() {
		rec, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SongByPath retrieves a catalogue entry. Returns nil if the path is not indexed.
func (s *Store) SongByPath(path string) (*SongRecord, error) {
	row := s.db.QueryRow(`SELECT `+songColumns+` FROM songs WHERE path = ?`, path)
	rec, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteSong removes a catalogue entry.
func (s *Store) DeleteSong(path string) error {
	_, err := s.db.Exec("DELETE FROM songs WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("storage: cannot delete song %s: %w", path, err)
	}
	return nil
}

// Stats retrieves aggregated statistics over the catalogue.
func (s *Store) Stats() (*LibraryStats, error) {
	stats := &LibraryStats{}
	var lastIndexed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(valid), 0), COALESCE(SUM(length_ms), 0), MAX(indexed_at)
		 FROM songs`,
	).Scan(&stats.Songs, &stats.Playable, &stats.TotalLengthMs, &lastIndexed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get library stats: %w", err)
	}
	stats.LastIndexed = parseTime(lastIndexed)

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (SongRecord, error) {
	var rec SongRecord
	var indexedAt any

	err := row.Scan(
		&rec.ID,
		&rec.Path,
		&rec.Title,
		&rec.Artist,
		&rec.Events,
		&rec.Lanes,
		&rec.LengthMs,
		&rec.Checksum,
		&rec.Valid,
		&rec.Problem,
		&indexedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot scan song row: %w", err)
	}

	rec.IndexedAt = parseTime(indexedAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
