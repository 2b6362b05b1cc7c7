package game

import (
	"image"
	"image/draw"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sprite"
)

// Obstacle is a pipe pair: a bottom run and a top run of body segments, each
// capped by an end piece, with a gap between the caps.
type Obstacle struct {
	x    float64 // Left edge
	y    int     // Top edge, only changes when the world scrolls
	step float64 // Pixels moved left per tick

	segH        int
	bottomCount int // Body segments plus the end cap
	topCount    int

	image   *image.RGBA
	mask    *sprite.Mask
	retired bool
}

// NewObstacle builds a randomized pipe pair at the right edge of the screen.
func NewObstacle(cfg *config.Config, lib *assets.Library, rng *rand.Rand) *Obstacle {
	segW, segH := cfg.Pipes.SegmentWidth, cfg.Pipes.SegmentHeight
	h := cfg.Window.Height
	total := cfg.TotalSegments()

	bottom := 1 + rng.Intn(total)
	top := total - bottom

	img := image.NewRGBA(image.Rect(0, 0, segW, h))
	body := lib.Image(assets.ImagePipeBody)
	end := lib.Image(assets.ImagePipeEnd)

	// Bottom run grows upward from the bottom edge
	for i := 1; i <= bottom; i++ {
		blit(img, body, h-i*segH)
	}
	blit(img, end, h-bottom*segH-segH)

	// Top run grows downward from the top edge
	for i := 0; i < top; i++ {
		blit(img, body, i*segH)
	}
	blit(img, end, top*segH)

	return &Obstacle{
		x:           float64(cfg.Window.Width - 1),
		step:        cfg.PipeStep(),
		segH:        segH,
		bottomCount: bottom + 1,
		topCount:    top + 1,
		image:       img,
		mask:        sprite.FromImage(img),
	}
}

// blit draws src over dst with its top-left corner at (0, y).
func blit(dst *image.RGBA, src image.Image, y int) {
	b := src.Bounds()
	r := image.Rect(0, y, b.Dx(), y+b.Dy())
	draw.Draw(dst, r, src, b.Min, draw.Over)
}

// Tick moves the obstacle left by its per-tick step.
func (o *Obstacle) Tick() {
	o.x -= o.step
}

// Rect returns the obstacle's bounding box in world space.
func (o *Obstacle) Rect() core.Rect {
	b := o.image.Bounds()
	return core.NewRect(int(math.Floor(o.x)), o.y, b.Dx(), b.Dy())
}

// CollidesWith reports whether any solid pixel of the obstacle overlaps a
// solid pixel of the avatar's frame at the given session time.
func (o *Obstacle) CollidesWith(a *Avatar, elapsed time.Duration) bool {
	if o.retired || a.Retired() {
		return false
	}
	m := a.Mask(elapsed)
	or := o.Rect()
	ar := core.NewRect(a.Rect().X, a.Rect().Y, m.Width(), m.Height())
	if !or.Intersects(ar) {
		return false
	}
	return o.mask.Overlap(m, ar.X-or.X, ar.Y-or.Y)
}

// Passed reports whether the obstacle has moved a full width past the left edge.
func (o *Obstacle) Passed() bool {
	return o.Rect().X < -o.Width()
}

// Scroll moves the obstacle up by dy pixels and retires it once it is fully
// above the top edge.
func (o *Obstacle) Scroll(dy int) {
	o.y -= dy
	if o.Rect().Bottom() < 0 {
		o.retired = true
	}
}

// Retire marks the obstacle as gone. It reports false if it already was.
func (o *Obstacle) Retire() bool {
	if o.retired {
		return false
	}
	o.retired = true
	return true
}

// Gap returns the world-space rows between the two end caps: [top, bottom).
func (o *Obstacle) Gap() (top, bottom int) {
	h := o.image.Bounds().Dy()
	return o.y + o.topCount*o.segH, o.y + h - o.bottomCount*o.segH
}

func (o *Obstacle) X() float64         { return o.x }
func (o *Obstacle) Width() int         { return o.image.Bounds().Dx() }
func (o *Obstacle) BottomCount() int   { return o.bottomCount }
func (o *Obstacle) TopCount() int      { return o.topCount }
func (o *Obstacle) Image() image.Image { return o.image }
func (o *Obstacle) Mask() *sprite.Mask { return o.mask }
func (o *Obstacle) Retired() bool      { return o.retired }
