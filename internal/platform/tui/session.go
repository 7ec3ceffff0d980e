package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clonebeat/internal/clock"
	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/song"
	"github.com/vovakirdan/clonebeat/internal/storage"
)

// SessionModel manages the full session flow: picker -> play -> picker.
// It is the top-level model for both the local menu and SSH sessions.
type SessionModel struct {
	opts     Options
	config   core.RuntimeConfig
	username string
	picker   PickerModel
	play     *PlayModel
	inGame   bool
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options, cfg core.RuntimeConfig, username string) SessionModel {
	m := SessionModel{
		opts:     opts,
		config:   cfg,
		username: username,
	}
	m.picker = NewPickerModel(m.loadSongs(), cfg.ScreenW, cfg.ScreenH)
	return m
}

// loadSongs reads the catalogue. A failing catalogue shows as an empty list.
func (m SessionModel) loadSongs() []storage.SongRecord {
	if m.opts.Library == nil {
		return nil
	}
	songs, err := m.opts.Library.Songs(false)
	if err != nil {
		m.opts.Logger.Warn("could not read song library", "error", err)
		return nil
	}
	return songs
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.inGame && m.play != nil {
		return m.updatePlay(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates while choosing a song.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.picker.Selected()
	if selected == nil {
		return m, cmd
	}

	s, err := song.LoadFile(selected.Path)
	if err == nil {
		opts := m.opts
		opts.Runtime = m.config
		var play PlayModel
		play, err = NewPlayModel(opts, s, clock.NewMonotonic())
		if err == nil {
			m.opts.Logger.Info("song started", "user", m.username, "song", s.Title)
			m.play = &play
			m.inGame = true
			return m, m.play.Init()
		}
	}

	// The file changed since it was indexed; stay in the picker and say why.
	m.opts.Logger.Warn("cannot play song", "user", m.username, "path", selected.Path, "error", err)
	m.picker = NewPickerModel(m.loadSongs(), m.config.ScreenW, m.config.ScreenH)
	m.picker.SetStatus(err.Error())
	return m, nil
}

// updatePlay handles updates during a run.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasFinished := m.play.Finished()

	newModel, cmd := m.play.Update(msg)
	if play, ok := newModel.(PlayModel); ok {
		m.play = &play
	}

	if m.play.Finished() && !wasFinished {
		m.opts.Logger.Info("song finished", "user", m.username, "summary", m.play.Summary().String())
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.inGame = false
		m.play = nil
		m.picker = NewPickerModel(m.loadSongs(), m.config.ScreenW, m.config.ScreenH)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inGame && m.play != nil {
		return m.play.View()
	}

	return m.picker.View()
}

// InGame reports whether a song is being played.
func (m SessionModel) InGame() bool {
	return m.inGame
}

// RunSession runs the picker and play screens in the local terminal.
func RunSession(opts Options) error {
	model := NewSessionModel(opts, opts.Runtime, "local")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
