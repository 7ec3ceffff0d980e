package skin

import (
	"strings"

	"github.com/vovakirdan/clonebeat/internal/core"
)

// Style describes a generated sheet: a bordered box that fills from the bottom as
// the prompt approaches.
type Style struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	Fill        rune
}

// Generate builds a sheet of n frames of w x h cells.
// Boxes smaller than 3x3 have no border and fill the whole cell.
func Generate(id, title string, w, h, n int, st Style) *Sheet {
	s := &Sheet{
		ID:     id,
		Title:  title,
		Width:  w,
		Height: h,
		Frames: make([][]string, n),
		Colors: approachColors(n),
	}
	for f := 0; f < n; f++ {
		s.Frames[f] = generateFrame(w, h, fillRows(f, n, innerHeight(w, h)), st)
	}
	return s
}

// fillRows returns how many inner rows frame f fills. The idle frame fills none and
// the last frame fills all of them.
func fillRows(f, n, inner int) int {
	if f <= 0 || n <= 1 {
		return 0
	}
	return (f*inner + n - 2) / (n - 1)
}

func bordered(w, h int) bool {
	return w >= 3 && h >= 3
}

func innerHeight(w, h int) int {
	if bordered(w, h) {
		return h - 2
	}
	return h
}

func generateFrame(w, h, filled int, st Style) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	lines := make([]string, h)

	if !bordered(w, h) {
		for y := 0; y < h; y++ {
			if y >= h-filled {
				lines[y] = strings.Repeat(string(st.Fill), w)
			} else {
				lines[y] = strings.Repeat(" ", w)
			}
		}
		return lines
	}

	edge := strings.Repeat(string(st.Horizontal), w-2)
	lines[0] = string(st.TopLeft) + edge + string(st.TopRight)
	lines[h-1] = string(st.BottomLeft) + edge + string(st.BottomRight)

	inner := h - 2
	for y := 1; y <= inner; y++ {
		body := strings.Repeat(" ", w-2)
		if y > inner-filled {
			body = strings.Repeat(string(st.Fill), w-2)
		}
		lines[y] = string(st.Vertical) + body + string(st.Vertical)
	}
	return lines
}

// approachColors dims the idle frame and brightens as the prompt gets closer.
func approachColors(n int) []ColorStop {
	stops := []ColorStop{
		{From: 0, Color: core.ColorGray},
		{From: 1, Color: core.ColorBlue},
	}
	if n > 4 {
		stops = append(stops,
			ColorStop{From: n / 2, Color: core.ColorYellow},
			ColorStop{From: n - n/4, Color: core.ColorBrightGreen},
		)
	}
	return stops
}
