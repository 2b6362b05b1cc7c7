package core

import (
	"strings"
	"testing"
)

// row returns the runes of row y as a string.
func row(s *Screen, y int) string {
	var sb strings.Builder
	for x := 0; x < s.Width(); x++ {
		sb.WriteRune(s.GetCell(x, y).Rune)
	}
	return sb.String()
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with uncolored spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.GetCell(x, y)
			if c.Rune != ' ' || c.FG != ColorDefault || c.BG != ColorDefault {
				t.Errorf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetCellBounds(t *testing.T) {
	s := NewScreen(10, 10)

	c := Cell{Rune: 'X', FG: RGB(1, 2, 3), BG: RGB(4, 5, 6)}
	s.SetCell(5, 5, c)
	if s.GetCell(5, 5) != c {
		t.Errorf("GetCell(5, 5) = %+v, expected %+v", s.GetCell(5, 5), c)
	}

	// Out of bounds should be silent
	s.SetCell(-1, 0, c)
	s.SetCell(100, 0, c)
	s.SetCell(0, -1, c)
	s.SetCell(0, 100, c)

	if s.GetCell(-1, 0) != blank || s.GetCell(100, 0) != blank {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenDrawTextKeepsBackground(t *testing.T) {
	s := NewScreen(4, 4)
	red := RGB(255, 0, 0)
	blue := RGB(0, 0, 255)

	s.SetCell(1, 1, Cell{Rune: '▀', FG: red, BG: blue})
	s.DrawText(1, 1, "x", red)

	c := s.GetCell(1, 1)
	if c.Rune != 'x' || c.FG != red || c.BG != blue {
		t.Errorf("DrawText should replace the rune and foreground only, got %+v", c)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetCell(3, 3, Cell{Rune: 'X', FG: RGB(1, 2, 3), BG: RGB(4, 5, 6)})

	s.Resize(6, 6)
	if got := s.GetCell(5, 5); got != blank {
		t.Errorf("new cells after growing should be blank, got %+v", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	white := RGB(255, 255, 255)
	s.DrawText(2, 1, "Hello", white)

	expected := "Hello"
	for i, ch := range expected {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, c.Rune)
		}
		if c.FG != white {
			t.Errorf("DrawText: expected white foreground at (%d, 1), got %v", 2+i, c.FG)
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello", white) // Only "He" should fit
	if got := row(s, 0)[18:]; got != "He" {
		t.Errorf("Text should be clipped at right boundary, got %q", got)
	}

	// Clipped on the left too
	s.DrawText(-2, 3, "Hello", white)
	if !strings.HasPrefix(row(s, 3), "llo ") {
		t.Errorf("Text should be clipped at left boundary, row = %q", row(s, 3))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(10, 2, "Hi", ColorDefault)

	// "Hi" is 2 chars, centered on column 10 should start at position 9
	if s.GetCell(9, 2).Rune != 'H' || s.GetCell(10, 2).Rune != 'i' {
		t.Errorf("DrawTextCentered failed, row = %q", row(s, 2))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorDefault)
	s.DrawText(0, 5, "World", ColorDefault)

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	if row0 := row(s, 0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	if row0 := row(s, 0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c        Color
		expected string
	}{
		{RGB(255, 255, 255), "#ffffff"},
		{RGB(21, 98, 98), "#156262"},
		{RGB(0, 0, 0), "#000000"},
		{ColorDefault, ""},
	}

	for _, tc := range tests {
		if got := tc.c.Hex(); got != tc.expected {
			t.Errorf("Hex() = %q, expected %q", got, tc.expected)
		}
	}
}
