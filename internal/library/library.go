// Package library indexes a directory of song files into the SQLite catalogue.
package library

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clonebeat/internal/song"
	"github.com/vovakirdan/clonebeat/internal/storage"
)

// Report summarizes one indexing pass.
type Report struct {
	Scanned  int
	Playable int
	Invalid  int // parsed but failed validation
	Broken   int // could not be read or parsed
	Removed  int // catalogue entries whose file is gone
}

// Indexer walks a song directory and keeps the catalogue in sync with it.
type Indexer struct {
	store  *storage.Store
	rules  song.Rules
	logger *log.Logger
}

// NewIndexer creates an indexer. A nil logger discards output.
func NewIndexer(store *storage.Store, rules song.Rules, logger *log.Logger) *Indexer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Indexer{store: store, rules: rules, logger: logger}
}

// Index records every song file under dir. Files that cannot be parsed are still
// catalogued, marked invalid with the parse error, so the listing explains them.
// Entries under no longer existing paths are removed.
func (ix *Indexer) Index(dir string) (Report, error) {
	var rep Report

	paths, err := song.NewLoader(dir).Paths()
	if err != nil {
		return rep, fmt.Errorf("library: scanning %s: %w", dir, err)
	}

	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		seen[p] = true
		rec, parsed := ix.inspect(p)
		rep.Scanned++
		switch {
		case rec.Valid:
			rep.Playable++
		case parsed:
			rep.Invalid++
		default:
			rep.Broken++
		}

		if _, err := ix.store.UpsertSong(rec); err != nil {
			return rep, fmt.Errorf("library: %w", err)
		}
		ix.logger.Debug("indexed", "path", p, "valid", rec.Valid, "problem", rec.Problem)
	}

	existing, err := ix.store.Songs(false)
	if err != nil {
		return rep, fmt.Errorf("library: %w", err)
	}
	for _, rec := range existing {
		if seen[rec.Path] || !within(dir, rec.Path) {
			continue
		}
		if _, err := os.Stat(rec.Path); err == nil {
			continue
		}
		if err := ix.store.DeleteSong(rec.Path); err != nil {
			return rep, fmt.Errorf("library: %w", err)
		}
		rep.Removed++
	}

	ix.logger.Info("library indexed",
		"dir", dir,
		"scanned", rep.Scanned,
		"playable", rep.Playable,
		"invalid", rep.Invalid,
		"broken", rep.Broken,
		"removed", rep.Removed,
	)
	return rep, nil
}

// inspect reads, parses and validates one file into a catalogue record.
// parsed is false when the file could not be read or decoded.
func (ix *Indexer) inspect(path string) (rec storage.SongRecord, parsed bool) {
	rec = storage.SongRecord{Path: path, Title: filepath.Base(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		rec.Problem = err.Error()
		return rec, false
	}
	rec.Checksum = Checksum(data)

	s, err := song.ParseFile(path, data)
	if err != nil {
		rec.Problem = err.Error()
		return rec, false
	}

	rec.Title = s.Title
	rec.Artist = s.Artist
	rec.Events = len(s.Events)
	rec.Lanes = s.LanesUsed()
	rec.LengthMs = s.Length().Milliseconds()
	if err := ix.rules.Validate(s.Events); err != nil {
		rec.Problem = err.Error()
		return rec, true
	}
	rec.Valid = true
	return rec, true
}

// within reports whether path lies under dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Checksum returns the hex SHA-256 of a song file's contents.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
