package core

import (
	"fmt"
	"image/color"
)

// Color represents a 24-bit RGB color for a screen cell.
// ColorDefault leaves the terminal's own color in place.
type Color int32

// ColorDefault means "no explicit color".
const ColorDefault Color = -1

// RGB packs three 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b))
}

// FromColor converts any image/color value to a Color, dropping alpha.
func FromColor(c color.Color) Color {
	if c == nil {
		return ColorDefault
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Channels returns the red, green and blue components.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as "#rrggbb", or "" for ColorDefault.
func (c Color) Hex() string {
	if c == ColorDefault {
		return ""
	}
	r, g, b := c.Channels()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
