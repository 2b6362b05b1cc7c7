package assets

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Builtin palette
var (
	skyTop    = color.RGBA{R: 0x4e, G: 0xc0, B: 0xca, A: 0xff}
	skyBottom = color.RGBA{R: 0xb8, G: 0xe8, B: 0xec, A: 0xff}
	cloud     = color.RGBA{R: 0xea, G: 0xfa, B: 0xf8, A: 0xff}
	hill      = color.RGBA{R: 0x5e, G: 0xa8, B: 0x3c, A: 0xff}
	pipeFill  = color.RGBA{R: 0x73, G: 0xbf, B: 0x2e, A: 0xff}
	pipeShade = color.RGBA{R: 0x55, G: 0x8c, B: 0x22, A: 0xff}
	pipeLight = color.RGBA{R: 0x9c, G: 0xe6, B: 0x59, A: 0xff}
	pipeRim   = color.RGBA{R: 0x2f, G: 0x4f, B: 0x14, A: 0xff}
	birdBody  = color.RGBA{R: 0xf8, G: 0xc8, B: 0x30, A: 0xff}
	birdWing  = color.RGBA{R: 0xf0, G: 0xe8, B: 0xc8, A: 0xff}
	birdEye   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	birdPupil = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	birdBeak  = color.RGBA{R: 0xf0, G: 0x60, B: 0x20, A: 0xff}
)

// Builtin generates the full image set in memory, sized from cfg.
// Sound paths are left empty so the audio backend synthesizes them.
func Builtin(cfg *config.Config) (*Library, error) {
	images := map[string]image.Image{
		ImageBackground:   drawBackground(cfg.Window.Width/2, cfg.Window.Height),
		ImagePipeBody:     drawPipeBody(cfg.Pipes.SegmentWidth, cfg.Pipes.SegmentHeight),
		ImagePipeEnd:      drawPipeEnd(cfg.Pipes.SegmentWidth, cfg.Pipes.SegmentHeight),
		ImageBirdWingUp:   drawBird(cfg.Player.Width, cfg.Player.Height, true),
		ImageBirdWingDown: drawBird(cfg.Player.Width, cfg.Player.Height, false),
	}
	sounds := make(map[string]string, len(SoundKeys))
	for _, key := range SoundKeys {
		sounds[key] = ""
	}
	return New(images, sounds)
}

// drawBackground paints a sky gradient with a cloud band and hills.
// Two copies side by side cover the screen.
func drawBackground(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	for y := 0; y < h; y++ {
		c := lerp(skyTop, skyBottom, float64(y)/float64(max(h-1, 1)))
		draw.Draw(img, image.Rect(0, y, w, y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}

	cloudY := h * 2 / 3
	for i := 0; i < 4; i++ {
		cx := i*w/3 + w/8
		fillEllipse(img, cx, cloudY, w/6, h/20, cloud)
	}
	draw.Draw(img, image.Rect(0, cloudY, w, h), image.NewUniform(cloud), image.Point{}, draw.Src)

	hillY := h * 5 / 6
	for i := 0; i < 3; i++ {
		cx := i * w / 2
		fillEllipse(img, cx, hillY, w/3, h/12, hill)
	}
	draw.Draw(img, image.Rect(0, hillY, w, h), image.NewUniform(hill), image.Point{}, draw.Src)
	return img
}

// drawPipeBody paints one opaque body segment with shaded edges.
func drawPipeBody(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(pipeFill), image.Point{}, draw.Src)

	edge := max(w/10, 1)
	draw.Draw(img, image.Rect(0, 0, edge, h), image.NewUniform(pipeRim), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w-edge, 0, w, h), image.NewUniform(pipeRim), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(edge, 0, edge*3, h), image.NewUniform(pipeLight), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w-edge*3, 0, w-edge, h), image.NewUniform(pipeShade), image.Point{}, draw.Src)
	return img
}

// drawPipeEnd paints an opaque cap: a body segment framed top and bottom.
func drawPipeEnd(w, h int) *image.RGBA {
	img := drawPipeBody(w, h)
	rim := max(h/8, 1)
	draw.Draw(img, image.Rect(0, 0, w, rim), image.NewUniform(pipeRim), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, h-rim, w, h), image.NewUniform(pipeRim), image.Point{}, draw.Src)
	return img
}

// drawBird paints the avatar on a transparent canvas. The wing is raised or
// lowered depending on the variant, which changes the collision mask.
func drawBird(w, h int, wingUp bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))

	cx, cy := w/2, h/2
	fillEllipse(img, cx-w/16, cy, w*3/8, h*5/16, birdBody)

	// Beak
	draw.Draw(img, image.Rect(cx+w/4, cy, cx+w/2, cy+h/8), image.NewUniform(birdBeak), image.Point{}, draw.Src)

	// Eye
	fillEllipse(img, cx+w/8, cy-h/8, w/8, h/8, birdEye)
	fillEllipse(img, cx+w/6, cy-h/8, w/20+1, h/20+1, birdPupil)

	// Wing
	wingY := cy + h/8
	if wingUp {
		wingY = cy - h/4
	}
	fillEllipse(img, cx-w/4, wingY, w/5, h/8, birdWing)
	return img
}

// fillEllipse fills the axis-aligned ellipse centered at (cx, cy).
func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	b := img.Bounds()
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if !(image.Point{X: x, Y: y}).In(b) {
				continue
			}
			dx := float64(x-cx) / float64(rx)
			dy := float64(y-cy) / float64(ry)
			if dx*dx+dy*dy <= 1 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}
