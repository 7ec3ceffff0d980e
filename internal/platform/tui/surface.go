package tui

import (
	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/lane"
	"github.com/vovakirdan/clonebeat/internal/skin"
)

// ScreenSurface draws lane frames from a skin into a screen buffer.
// It implements engine.Surface.
type ScreenSurface struct {
	screen   *core.Screen
	sheet    *skin.Sheet
	layout   lane.Layout
	frames   []int
	presents int
}

// NewScreenSurface creates a surface over screen.
func NewScreenSurface(screen *core.Screen, sheet *skin.Sheet, layout lane.Layout) *ScreenSurface {
	return &ScreenSurface{
		screen: screen,
		sheet:  sheet,
		layout: layout,
		frames: make([]int, lane.GridSize*lane.GridSize),
	}
}

// DrawFrame clears the lane's cell and draws frame n of the sheet into it.
func (s *ScreenSurface) DrawFrame(id, frame int) {
	r := s.layout.Rect(id)
	s.screen.FillRect(r)
	s.screen.DrawLines(r, s.sheet.Frame(frame), s.sheet.Color(frame))
	if id >= 0 && id < len(s.frames) {
		s.frames[id] = frame
	}
}

// Present completes a frame. The screen is read by the Bubble Tea view, so there
// is nothing to flush.
func (s *ScreenSurface) Present() {
	s.presents++
}

// Frame returns the last frame drawn for a lane.
func (s *ScreenSurface) Frame(id int) int {
	if id < 0 || id >= len(s.frames) {
		return 0
	}
	return s.frames[id]
}

// Presents returns the number of completed frames.
func (s *ScreenSurface) Presents() int {
	return s.presents
}

// Screen returns the underlying buffer.
func (s *ScreenSurface) Screen() *core.Screen {
	return s.screen
}
