package skin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/clonebeat/internal/core"
)

// yamlSkin is the file format of a custom skin.
// A skin either lists its frames or describes a Style to generate them from.
type yamlSkin struct {
	ID     string          `yaml:"id"`
	Title  string          `yaml:"title"`
	Width  int             `yaml:"width"`
	Height int             `yaml:"height"`
	Frames int             `yaml:"frames"` // generated frame count
	Style  *yamlStyle      `yaml:"style"`
	Sheet  []string        `yaml:"sheet"` // explicit frames, one block per frame
	Colors []yamlColorStop `yaml:"colors"`
}

type yamlStyle struct {
	Corner     string `yaml:"corner"`
	Horizontal string `yaml:"horizontal"`
	Vertical   string `yaml:"vertical"`
	Fill       string `yaml:"fill"`
}

type yamlColorStop struct {
	From  int    `yaml:"from"`
	Color string `yaml:"color"`
}

// LoadFile loads a YAML skin. Missing sizes default to the lane cell size and a
// missing generated frame count to n.
func LoadFile(path string, cellW, cellH, n int) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skin: reading %s: %w", path, err)
	}
	s, err := Parse(data, cellW, cellH, n)
	if err != nil {
		return nil, fmt.Errorf("skin: parsing %s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a YAML skin.
func Parse(data []byte, cellW, cellH, n int) (*Sheet, error) {
	var ys yamlSkin
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	w, h := ys.Width, ys.Height
	if w == 0 {
		w = cellW
	}
	if h == 0 {
		h = cellH
	}
	if ys.Frames > 0 {
		n = ys.Frames
	}

	var s *Sheet
	switch {
	case len(ys.Sheet) > 0:
		s = &Sheet{ID: ys.ID, Title: ys.Title, Width: w, Height: h}
		for _, block := range ys.Sheet {
			s.Frames = append(s.Frames, strings.Split(strings.TrimSuffix(block, "\n"), "\n"))
		}
		s.Colors = approachColors(len(s.Frames))
	case ys.Style != nil:
		st, err := ys.Style.style()
		if err != nil {
			return nil, err
		}
		s = Generate(ys.ID, ys.Title, w, h, n, st)
	default:
		return nil, fmt.Errorf("skin needs either sheet or style")
	}

	if len(ys.Colors) > 0 {
		s.Colors = s.Colors[:0]
		for _, c := range ys.Colors {
			color, ok := core.ParseColor(c.Color)
			if !ok {
				return nil, fmt.Errorf("unknown color %q", c.Color)
			}
			s.Colors = append(s.Colors, ColorStop{From: c.From, Color: color})
		}
	}
	if s.Title == "" {
		s.Title = s.ID
	}
	return s, nil
}

func (ys yamlStyle) style() (Style, error) {
	corner, err := singleRune("corner", ys.Corner, '+')
	if err != nil {
		return Style{}, err
	}
	horizontal, err := singleRune("horizontal", ys.Horizontal, '-')
	if err != nil {
		return Style{}, err
	}
	vertical, err := singleRune("vertical", ys.Vertical, '|')
	if err != nil {
		return Style{}, err
	}
	fill, err := singleRune("fill", ys.Fill, '#')
	if err != nil {
		return Style{}, err
	}
	return Style{
		TopLeft: corner, TopRight: corner, BottomLeft: corner, BottomRight: corner,
		Horizontal: horizontal, Vertical: vertical, Fill: fill,
	}, nil
}

func singleRune(field, s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("style.%s must be a single character, got %q", field, s)
	}
	return r[0], nil
}

// Resolve returns the sheet named by a config value: a registered skin id or the
// path of a YAML skin file. The sheet is validated against the lane cell size.
func Resolve(name string, cellW, cellH, n int) (*Sheet, error) {
	var (
		s   *Sheet
		err error
	)
	switch {
	case Exists(name):
		s, err = Create(name, cellW, cellH, n)
	case strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml"):
		s, err = LoadFile(name, cellW, cellH, n)
	default:
		err = fmt.Errorf("skin: unknown skin %q (not registered and not a .yaml file)", name)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(s, cellW, cellH); err != nil {
		return nil, err
	}
	return s, nil
}
