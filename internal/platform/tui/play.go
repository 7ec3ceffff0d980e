package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clonebeat/internal/clock"
	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/engine"
	"github.com/vovakirdan/clonebeat/internal/lane"
	"github.com/vovakirdan/clonebeat/internal/song"
)

// HUD layout constants
const (
	hudX        = 50 // Column where the side panel starts
	progressLen = 20 // Width of the progress bar
)

// PlayModel is the Bubble Tea model for one song run.
// Key presses are stamped with the run clock as they arrive and judged on the next tick.
type PlayModel struct {
	opts       Options
	song       *song.Song
	clock      clock.Clock
	ctrl       *engine.Controller
	screen     *core.Screen
	surface    *ScreenSurface
	input      *core.InputFrame
	keyMapper  *KeyMapper
	labels     []string
	config     core.RuntimeConfig
	finished   bool
	quitting   bool
	backToMenu bool
	exitOnBack bool // standalone play quits instead of returning to a menu
}

// NewPlayModel prepares a run of s and starts its timeline on c.
// An unplayable song is reported here, before any frame is drawn.
func NewPlayModel(opts Options, s *song.Song, c clock.Clock) (PlayModel, error) {
	engineOpts, err := opts.Config.EngineOptions(opts.Sheet.Len())
	if err != nil {
		return PlayModel{}, err
	}

	cfg := opts.Runtime
	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	surface := NewScreenSurface(screen, opts.Sheet, opts.Config.Layout())
	ctrl := engine.New(engineOpts, c, surface, opts.Logger)
	if err := ctrl.Start(s); err != nil {
		return PlayModel{}, err
	}

	return PlayModel{
		opts:      opts,
		song:      s,
		clock:     c,
		ctrl:      ctrl,
		screen:    screen,
		surface:   surface,
		input:     core.NewInputFrame(),
		keyMapper: NewKeyMapper(opts.Config.Keys),
		labels:    laneLabels(opts.Config.Keys),
		config:    cfg,
	}, nil
}

// laneLabels picks the key shown under each lane.
func laneLabels(keys map[string]int) []string {
	labels := make([]string, song.LaneCount)
	for id := range labels {
		var bound []string
		for k, l := range keys {
			if l == id {
				bound = append(bound, k)
			}
		}
		sort.Strings(bound)
		if len(bound) > 0 {
			labels[id] = bound[0]
		}
	}
	return labels
}

// Init starts the frame loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key, ok := m.keyMapper.LaneKey(msg); ok {
		if !m.finished {
			m.input.PushAt(key, m.clock.Now())
		}
		return m, nil
	}

	switch m.keyMapper.MapPlayKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionRestart:
		if m.finished {
			return m.restart()
		}
	}

	return m, nil
}

// restart replays the song from the beginning.
func (m PlayModel) restart() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Start(m.song); err != nil {
		// The song was playable a moment ago; nothing to do but stay on the results.
		m.opts.Logger.Error("restart failed", "song", m.song.Title, "error", err)
		return m, nil
	}
	m.finished = false
	m.input.Clear()
	m.screen.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleTick runs one engine frame.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	if !m.ctrl.Step(m.input.Drain()) {
		m.finished = true
	}
	m.drawLabels()
	m.drawHUD()

	if m.finished {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// drawLabels writes each lane's key and last judgment in the row below its cell.
func (m PlayModel) drawLabels() {
	layout := m.opts.Config.Layout()
	for id := 0; id < song.LaneCount; id++ {
		r := layout.Rect(id)
		row := core.NewRect(r.X, r.Bottom(), r.W, 1)
		m.screen.FillRect(row)

		state := m.ctrl.Lane(id).State()
		text := m.labels[id]
		if state.Judged() {
			text += " " + strings.ToUpper(state.String())
		}
		m.screen.DrawLines(row, []string{text}, StateColor(state))
	}
}

// drawHUD draws the side panel: song, time, tallies and key hints.
func (m PlayModel) drawHUD() {
	x := hudX
	m.screen.FillRect(core.NewRect(x, 0, core.Max(0, m.screen.Width()-x), m.screen.Height()))

	m.screen.DrawTextColor(x, 1, m.song.Title, core.ColorBrightCyan)
	if m.song.Artist != "" {
		m.screen.DrawTextColor(x, 2, m.song.Artist, core.ColorGray)
	}

	elapsed := core.Max(0, int(m.ctrl.Elapsed()/time.Millisecond))
	total := int((m.ctrl.EndTime() - m.ctrl.StartTime()) / time.Millisecond)
	m.screen.DrawText(x, 4, fmt.Sprintf("%5.1fs / %.1fs", float64(elapsed)/1000, float64(total)/1000))
	m.screen.DrawText(x, 5, progressBar(elapsed, total, progressLen))

	sum := m.ctrl.Summary()
	m.screen.DrawTextColor(x, 7, fmt.Sprintf("PERFECT %4d", sum.Perfect), StateColor(lane.StatePerfect))
	m.screen.DrawTextColor(x, 8, fmt.Sprintf("GREAT   %4d", sum.Great), StateColor(lane.StateGreat))
	m.screen.DrawTextColor(x, 9, fmt.Sprintf("GOOD    %4d", sum.Good), StateColor(lane.StateGood))
	m.screen.DrawTextColor(x, 10, fmt.Sprintf("MISS    %4d", sum.Miss), StateColor(lane.StateMiss))

	if sum.Hits() > 0 {
		m.screen.DrawTextColor(x, 12, fmt.Sprintf("mean  %+6.1fms", durationMs(sum.Mean())), core.ColorGray)
		m.screen.DrawTextColor(x, 13, fmt.Sprintf("stdev %6.1fms", durationMs(sum.StdDev())), core.ColorGray)
	}

	if m.finished {
		m.screen.DrawTextColor(x, 15, "FINISHED", core.ColorBrightYellow)
		m.screen.DrawTextColor(x, 16, "ctrl+r replay  esc back", core.ColorGray)
	} else {
		m.screen.DrawTextColor(x, 16, "esc back  ctrl+c quit", core.ColorGray)
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// progressBar renders done/total as a bar of n cells.
func progressBar(done, total, n int) string {
	filled := n
	if total > 0 {
		filled = core.Clamp(done*n/total, 0, n)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", n-filled) + "]"
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.screen)
}

// Finished reports whether the run has ended.
func (m PlayModel) Finished() bool {
	return m.finished
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the song list.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Summary returns the results of the run so far.
func (m PlayModel) Summary() engine.Summary {
	return m.ctrl.Summary()
}

// Screen returns the frame buffer.
func (m PlayModel) Screen() *core.Screen {
	return m.screen
}

// RunPlay plays a single song in the terminal and returns its summary.
func RunPlay(opts Options, s *song.Song) (engine.Summary, error) {
	model, err := NewPlayModel(opts, s, clock.NewMonotonic())
	if err != nil {
		return engine.Summary{}, err
	}
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return engine.Summary{}, err
	}

	m, ok := finalModel.(PlayModel)
	if !ok {
		return engine.Summary{}, nil
	}
	return m.Summary(), nil
}
