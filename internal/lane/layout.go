package lane

import "github.com/vovakirdan/clonebeat/internal/core"

// GridSize is the number of lanes per grid row and column.
const GridSize = 4

// Layout places the 16 lanes on screen. Lane n sits in grid column n/4 and
// grid row n%4, so each keyboard column (1qaz, 2wsx, ...) maps to one screen column.
type Layout struct {
	BaseX   int
	StrideX int
	BaseY   int
	StrideY int
	CellW   int
	CellH   int
}

// DefaultLayout fits the grid in an 80x24 terminal with room for the HUD.
func DefaultLayout() Layout {
	return Layout{
		BaseX:   2,
		StrideX: 12,
		BaseY:   1,
		StrideY: 5,
		CellW:   10,
		CellH:   4,
	}
}

// Rect returns the fixed screen area of a lane.
func (l Layout) Rect(id int) core.Rect {
	col, row := id/GridSize, id%GridSize
	return core.NewRect(
		core.Spacing(l.BaseX, l.StrideX, col),
		core.Spacing(l.BaseY, l.StrideY, row),
		l.CellW,
		l.CellH,
	)
}

// Bounds returns the total width and height covered by the grid.
func (l Layout) Bounds() (int, int) {
	last := l.Rect(GridSize*GridSize - 1)
	return last.Right(), last.Bottom()
}
