package skin

var (
	blocksStyle = Style{
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│', Fill: '▓',
	}
	asciiStyle = Style{
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		Horizontal: '-', Vertical: '|', Fill: '#',
	}
)

func init() {
	Register("blocks", func(w, h, n int) *Sheet {
		return Generate("blocks", "Blocks", w, h, n, blocksStyle)
	})
	Register("ascii", func(w, h, n int) *Sheet {
		return Generate("ascii", "ASCII", w, h, n, asciiStyle)
	})
}
