package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, 'X', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawText(0, 0, "XXXX")
	s.Clear()

	if s.Row(0) != "    " {
		t.Errorf("After Clear, row 0 = %q", s.Row(0))
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if !strings.HasPrefix(s.Row(1)[2:], "Hello") {
		t.Errorf("DrawText: row 1 = %q", s.Row(1))
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawLines(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawText(0, 1, "..........")
	s.DrawLines(NewRect(2, 1, 3, 2), []string{"a b", "cdef", "ghi"}, ColorCyan)

	if s.Row(1) != "..a.b....." {
		t.Errorf("row 1 = %q, spaces should be transparent", s.Row(1))
	}
	if s.Row(2) != "  cde     " {
		t.Errorf("row 2 = %q, lines should be clipped to the rect width", s.Row(2))
	}
	if s.Row(3) != "          " {
		t.Errorf("row 3 = %q, lines should be clipped to the rect height", s.Row(3))
	}
	if s.GetCell(2, 1).Color != ColorCyan {
		t.Error("DrawLines should apply the color")
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 1, "ABCDE")
	s.FillRect(NewRect(1, 1, 3, 1))

	if s.Row(1) != "A   E" {
		t.Errorf("FillRect: row 1 = %q", s.Row(1))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
}

func TestInputFrameDrain(t *testing.T) {
	f := NewInputFrame()
	f.Push("q")
	f.PushAt("a", 1500)

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", f.Len())
	}

	events := f.Drain()
	if len(events) != 2 {
		t.Fatalf("Drain() returned %d events, expected 2", len(events))
	}
	if events[0].Key != "q" || events[0].Stamped {
		t.Errorf("first event = %+v, expected unstamped q", events[0])
	}
	if events[1].Key != "a" || !events[1].Stamped || events[1].At != 1500 {
		t.Errorf("second event = %+v, expected a stamped at 1500", events[1])
	}
	if f.Len() != 0 || f.Drain() != nil {
		t.Error("Drain should empty the frame")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", ColorRed, true},
		{"Bright_Green", ColorBrightGreen, true},
		{" grey ", ColorGray, true},
		{"default", ColorDefault, true},
		{"ultraviolet", ColorDefault, false},
	}

	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = %v, %v, expected %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
