package tui

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// HalfBlock is drawn in every pixel cell: the foreground paints the upper
// pixel row, the background the lower one.
const HalfBlock = '▀'

// label is a text request kept until Present, since text is drawn on the
// cell grid rather than into the pixel buffer.
type label struct {
	text string
	fg   core.Color
	x, y int // Logical pixels, top edge centered
}

// Canvas implements game.Renderer for a terminal.
// Draw calls go to an offscreen image at the game's logical size; Present
// scales it down to the cell grid and swaps it into the visible screen.
type Canvas struct {
	back   *image.RGBA // Logical framebuffer
	scaled *image.RGBA // Framebuffer scaled to cols x rows*2
	labels []label
	front  *core.Screen
}

// NewCanvas creates a canvas for a width x height game shown in cols x rows cells.
func NewCanvas(width, height, cols, rows int) *Canvas {
	c := &Canvas{back: image.NewRGBA(image.Rect(0, 0, width, height))}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell grid. The next Present fills it.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = core.Max(cols, 1), core.Max(rows, 1)
	c.scaled = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	if c.front == nil {
		c.front = core.NewScreen(cols, rows)
		return
	}
	c.front.Resize(cols, rows)
}

// Fill paints the whole frame with col.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.back, c.back.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// DrawImage blits img with its top-left corner at (x, y), honoring alpha.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(c.back, dst, img, b.Min, draw.Over)
}

// DrawText queues text with its top edge centered on (x, y). Size is ignored:
// a terminal has one font size.
func (c *Canvas) DrawText(text string, _ int, col color.Color, x, y int) {
	c.labels = append(c.labels, label{text: text, fg: core.FromColor(col), x: x, y: y})
}

// Present converts the frame to cells.
func (c *Canvas) Present() {
	draw.NearestNeighbor.Scale(c.scaled, c.scaled.Bounds(), c.back, c.back.Bounds(), draw.Src, nil)

	cols, rows := c.front.Width(), c.front.Height()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c.front.SetCell(col, row, core.Cell{
				Rune: HalfBlock,
				FG:   core.FromColor(c.scaled.RGBAAt(col, row*2)),
				BG:   core.FromColor(c.scaled.RGBAAt(col, row*2+1)),
			})
		}
	}

	// Text keeps the cell background, which is the lower pixel's color
	w, h := c.back.Bounds().Dx(), c.back.Bounds().Dy()
	for _, l := range c.labels {
		row := core.Clamp(l.y*rows/h, 0, rows-1)
		c.front.DrawTextCentered(l.x*cols/w, row, l.text, l.fg)
	}
	c.labels = c.labels[:0]
}

// Screen returns the last presented frame.
func (c *Canvas) Screen() *core.Screen {
	return c.front
}

// Frame returns the logical framebuffer of the frame being drawn.
func (c *Canvas) Frame() *image.RGBA {
	return c.back
}
