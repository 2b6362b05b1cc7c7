// Package sprite provides per-pixel collision masks.
//
// A Mask records which pixels of an image are solid. Two masks collide when
// at least one solid pixel of each lands on the same world position, which is
// stricter than a bounding-box test for sprites with transparent regions.
package sprite

import (
	"image"
	"math/bits"
)

// AlphaThreshold is the alpha value a pixel must exceed to count as solid.
const AlphaThreshold = 127

// Mask is a bitset of solid pixels, stored row by row in 64-bit words.
type Mask struct {
	w, h   int
	stride int // Words per row
	bits   []uint64
}

// NewMask creates an empty w*h mask.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 63) / 64
	return &Mask{w: w, h: h, stride: stride, bits: make([]uint64, stride*h)}
}

// FromImage builds a mask from an image's alpha channel.
// Pixels with alpha above AlphaThreshold are solid.
func FromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a>>8 > AlphaThreshold {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.h }

// Set marks the pixel at (x, y) solid or clear. Out-of-range writes are ignored.
func (m *Mask) Set(x, y int, solid bool) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return
	}
	i := y*m.stride + x/64
	bit := uint64(1) << (x % 64)
	if solid {
		m.bits[i] |= bit
	} else {
		m.bits[i] &^= bit
	}
}

// Get reports whether the pixel at (x, y) is solid. Out-of-range pixels are clear.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.bits[y*m.stride+x/64]&(uint64(1)<<(x%64)) != 0
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Overlap reports whether m and other share a solid pixel when other's
// top-left corner is placed at (dx, dy) relative to m's top-left corner.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	if m == nil || other == nil {
		return false
	}

	// Intersection of the two masks in m's coordinate space
	x0 := max(0, dx)
	y0 := max(0, dy)
	x1 := min(m.w, dx+other.w)
	y1 := min(m.h, dy+other.h)
	if x0 >= x1 || y0 >= y1 {
		return false
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.Get(x, y) && other.Get(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}
