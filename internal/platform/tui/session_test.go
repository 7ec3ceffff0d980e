package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/storage"
)

func testSession(t *testing.T) SessionModel {
	t.Helper()
	dir := t.TempDir()

	songPath := filepath.Join(dir, "alpha.yaml")
	data := "title: Alpha\nevents:\n  - { lane: 0, offset: 1000 }\n"
	if err := os.WriteFile(songPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := storage.Open(filepath.Join(dir, "library.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	records := []storage.SongRecord{
		{Path: songPath, Title: "Alpha", Events: 1, Lanes: 1, LengthMs: 1000, Valid: true},
		{Path: filepath.Join(dir, "gone.yaml"), Title: "Gone", Events: 1, Lanes: 1, LengthMs: 1000, Valid: true},
	}
	for _, rec := range records {
		if _, err := store.UpsertSong(rec); err != nil {
			t.Fatalf("UpsertSong() failed: %v", err)
		}
	}

	opts := testOptions(t)
	opts.Library = store
	return NewSessionModel(opts, core.DefaultConfig(), "tester")
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func TestSessionPlayAndBack(t *testing.T) {
	m := testSession(t)
	if m.InGame() {
		t.Fatal("session should open on the picker")
	}

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InGame() || cmd == nil {
		t.Fatalf("InGame() = %v, expected enter to start the song", m.InGame())
	}
	m, _ = updateSession(t, m, TickMsg(time.Now()))
	if !strings.Contains(m.View(), "Alpha") {
		t.Error("View() during play should show the song title")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.InGame() {
		t.Error("esc during play should return to the picker")
	}
	if m.quitting {
		t.Error("esc during play should not quit the session")
	}
	if !strings.Contains(m.View(), "CLONEBEAT") {
		t.Error("View() after esc should show the picker")
	}
}

func TestSessionQuit(t *testing.T) {
	tests := []struct {
		name   string
		inGame bool
		keys   []tea.KeyMsg
	}{
		{"from picker", false, []tea.KeyMsg{{Type: tea.KeyCtrlC}}},
		{"from play", true, []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyCtrlC}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testSession(t)
			var cmd tea.Cmd
			for i, k := range tt.keys {
				m, cmd = updateSession(t, m, k)
				if i == 0 && m.InGame() != tt.inGame {
					t.Fatalf("InGame() = %v, expected %v", m.InGame(), tt.inGame)
				}
			}
			if !m.quitting || cmd == nil {
				t.Error("ctrl+c should quit the session")
			}
			if m.View() != "" {
				t.Errorf("View() = %q, expected empty after quit", m.View())
			}
		})
	}
}

func TestSessionReportsUnplayableFile(t *testing.T) {
	m := testSession(t)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.InGame() || cmd != nil {
		t.Error("a missing song file should keep the session in the picker")
	}
	if !strings.Contains(m.View(), "gone.yaml") {
		t.Error("View() should name the file that could not be played")
	}
}
