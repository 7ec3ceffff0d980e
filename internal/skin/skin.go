// Package skin provides the terminal sprite sheets lanes are drawn with.
//
// A sheet is a list of equally sized text frames. Frame 0 is the idle frame;
// frames 1..n-1 animate a prompt from the moment its window opens. Sheets are either
// built in (registered by id in init) or loaded from YAML files.
package skin

import (
	"github.com/vovakirdan/clonebeat/internal/core"
)

// DefaultFrames is the size of the built-in sheets.
const DefaultFrames = 28

// ColorStop colors every frame from From up to the next stop.
type ColorStop struct {
	From  int
	Color core.Color
}

// Sheet is a validated sprite sheet.
type Sheet struct {
	ID     string
	Title  string
	Width  int
	Height int
	Frames [][]string
	Colors []ColorStop
}

// Len returns the number of frames.
func (s *Sheet) Len() int {
	return len(s.Frames)
}

// Frame returns the lines of frame n, clamped to the sheet.
func (s *Sheet) Frame(n int) []string {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[core.Clamp(n, 0, len(s.Frames)-1)]
}

// Color returns the color of frame n.
func (s *Sheet) Color(n int) core.Color {
	c := core.ColorDefault
	for _, stop := range s.Colors {
		if n < stop.From {
			break
		}
		c = stop.Color
	}
	return c
}
