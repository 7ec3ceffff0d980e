package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/clonebeat/internal/storage"
)

// Picker layout constants
const (
	pickerChrome = 8 // Rows taken by the title, help and margins
	minTableRows = 3
)

// PickerKeyMap defines the key bindings for the song picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Quit},
	}
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PickerModel is the Bubble Tea model for choosing a song from the catalogue.
type PickerModel struct {
	songs    []storage.SongRecord
	table    table.Model
	help     help.Model
	keys     PickerKeyMap
	width    int
	height   int
	status   string // Shown above the help bar, e.g. why a song cannot be played
	selected *storage.SongRecord
	quitting bool
}

// NewPickerModel creates a picker over the given catalogue entries.
func NewPickerModel(songs []storage.SongRecord, width, height int) PickerModel {
	h := help.New()
	h.ShowAll = false

	m := PickerModel{
		songs:  songs,
		keys:   DefaultPickerKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized to the terminal.
func (m *PickerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Title", Width: 24},
		{Title: "Artist", Width: 14},
		{Title: "Notes", Width: 6},
		{Title: "Length", Width: 7},
		{Title: "Status", Width: 10},
	}

	// Give the title column whatever width is left
	fixed := 0
	for _, c := range columns[1:] {
		fixed += c.Width + 2
	}
	if avail := m.width - 8 - fixed; avail > columns[0].Width {
		columns[0].Width = min(avail, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-pickerChrome, minTableRows)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the catalogue.
func (m *PickerModel) updateTableRows() {
	rows := make([]table.Row, len(m.songs))
	for i, s := range m.songs {
		status := "ok"
		if !s.Valid {
			status = "invalid"
		}
		rows[i] = table.Row{
			s.Title,
			s.Artist,
			fmt.Sprintf("%d", s.Events),
			fmt.Sprintf("%.1fs", float64(s.LengthMs)/1000),
			status,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			return m.choose()

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.status = ""
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// choose selects the song under the cursor if it is playable.
func (m PickerModel) choose() (tea.Model, tea.Cmd) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.songs) {
		return m, nil
	}
	rec := m.songs[i]
	if !rec.Valid {
		m.status = fmt.Sprintf("%s: %s", rec.Title, rec.Problem)
		return m, nil
	}
	m.selected = &rec
	return m, nil
}

// SetStatus shows a message above the help bar.
func (m *PickerModel) SetStatus(s string) {
	m.status = s
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("CLONEBEAT", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.songs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(centerText(tableStyle.Render(emptyStyle.Render("No songs found.\nAdd .yaml or .json songs to the library directory.")), m.width))
	} else {
		b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	}
	b.WriteString("\n")

	if m.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the chosen song, or nil while the user is still choosing.
func (m PickerModel) Selected() *storage.SongRecord {
	return m.selected
}

// IsQuitting returns true if user wants to quit entirely.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}
