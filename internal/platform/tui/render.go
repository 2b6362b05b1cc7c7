package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// colorPair is the cache key for a cell style.
type colorPair struct {
	fg, bg core.Color
}

// StyleCache maps cell colors to lipgloss styles. A frame uses only a few
// hundred distinct pairs, so styles are built once and reused.
type StyleCache struct {
	styles map[colorPair]lipgloss.Style
}

// NewStyleCache creates an empty cache.
func NewStyleCache() *StyleCache {
	return &StyleCache{styles: make(map[colorPair]lipgloss.Style)}
}

// Style returns the style for a foreground and background color.
func (c *StyleCache) Style(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}
	if s, ok := c.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(fg.Hex()))
	}
	if bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(bg.Hex()))
	}
	c.styles[key] = s
	return s
}

// Len returns the number of cached styles.
func (c *StyleCache) Len() int {
	return len(c.styles)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (c *StyleCache) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(c.Style(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
