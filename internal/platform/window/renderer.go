// Package window runs the game in a desktop window through Ebitengine.
package window

import (
	"bytes"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

type opKind int

const (
	opFill opKind = iota
	opImage
	opText
)

// op is one recorded draw request.
type op struct {
	kind opKind
	img  image.Image
	text string
	size int
	col  color.Color
	x, y int
}

// Renderer implements game.Renderer as a display list.
// The controller records a frame during Update; Present publishes it and
// Draw replays the last published frame onto the window.
type Renderer struct {
	recording []op
	ready     []op

	images map[image.Image]*ebiten.Image
	faces  map[int]*text.GoTextFace
	source *text.GoTextFaceSource
}

// NewRenderer creates a renderer using the Go Regular font for text.
func NewRenderer() (*Renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &Renderer{
		images: make(map[image.Image]*ebiten.Image),
		faces:  make(map[int]*text.GoTextFace),
		source: src,
	}, nil
}

// Fill paints the whole frame with c.
func (r *Renderer) Fill(c color.Color) {
	r.recording = append(r.recording, op{kind: opFill, col: c})
}

// DrawImage blits img with its top-left corner at (x, y).
func (r *Renderer) DrawImage(img image.Image, x, y int) {
	r.recording = append(r.recording, op{kind: opImage, img: img, x: x, y: y})
}

// DrawText draws text with its top edge centered on (x, y).
func (r *Renderer) DrawText(s string, size int, c color.Color, x, y int) {
	r.recording = append(r.recording, op{kind: opText, text: s, size: size, col: c, x: x, y: y})
}

// Present publishes the recorded frame and drops textures no longer drawn.
func (r *Renderer) Present() {
	r.ready, r.recording = r.recording, r.ready[:0]

	used := make(map[image.Image]bool, len(r.ready))
	for _, o := range r.ready {
		if o.kind == opImage {
			used[o.img] = true
		}
	}
	for img, tex := range r.images {
		if !used[img] {
			tex.Deallocate()
			delete(r.images, img)
		}
	}
}

// Draw replays the last presented frame onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	for _, o := range r.ready {
		switch o.kind {
		case opFill:
			screen.Fill(o.col)
		case opImage:
			opts := &ebiten.DrawImageOptions{}
			opts.GeoM.Translate(float64(o.x), float64(o.y))
			screen.DrawImage(r.texture(o.img), opts)
		case opText:
			opts := &text.DrawOptions{}
			opts.GeoM.Translate(float64(o.x), float64(o.y))
			opts.ColorScale.ScaleWithColor(o.col)
			opts.PrimaryAlign = text.AlignCenter
			text.Draw(screen, o.text, r.face(o.size), opts)
		}
	}
}

// texture uploads img once and reuses it while it keeps being drawn.
func (r *Renderer) texture(img image.Image) *ebiten.Image {
	if tex, ok := r.images[img]; ok {
		return tex
	}
	tex := ebiten.NewImageFromImage(img)
	r.images[img] = tex
	return tex
}

func (r *Renderer) face(size int) *text.GoTextFace {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: r.source, Size: float64(size)}
	r.faces[size] = f
	return f
}
