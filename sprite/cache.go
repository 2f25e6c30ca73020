package sprite

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isec/common"
)

// RotationCache holds copies of an image pre-rotated at a fixed angular
// resolution.
type RotationCache struct {
	base   *ebiten.Image
	images []*ebiten.Image
	step   float64
}

// NewRotationCache renders steps rotated copies of src, evenly spread over a
// full turn.
func NewRotationCache(src *ebiten.Image, steps int) (*RotationCache, error) {
	if src == nil {
		return nil, fmt.Errorf("sprite: rotation cache: %w", common.Configf("nil source image"))
	}
	if steps <= 0 {
		return nil, fmt.Errorf("sprite: rotation cache: %w", common.Configf("steps must be positive, got %d", steps))
	}
	c := &RotationCache{
		base:   src,
		images: make([]*ebiten.Image, steps),
		step:   360 / float64(steps),
	}
	w, h := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	for i := range c.images {
		rad := common.DegToRad(float64(i) * c.step)
		rw, rh := rotatedExtent(w, h, rad)
		img := ebiten.NewImage(int(math.Ceil(rw)), int(math.Ceil(rh)))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Rotate(rad)
		op.GeoM.Translate(math.Ceil(rw)/2, math.Ceil(rh)/2)
		op.Filter = ebiten.FilterLinear
		img.DrawImage(src, op)
		c.images[i] = img
	}
	return c, nil
}

// Len returns the number of cached orientations.
func (c *RotationCache) Len() int {
	return len(c.images)
}

// Base returns the unrotated source image.
func (c *RotationCache) Base() *ebiten.Image {
	return c.base
}

// Index returns the cache slot closest to angle (degrees).
func (c *RotationCache) Index(angle float64) int {
	if len(c.images) == 0 {
		return 0
	}
	return int(math.Round(common.Wrap360(angle)/c.step)) % len(c.images)
}

// Image returns the copy rotated closest to angle.
func (c *RotationCache) Image(angle float64) *ebiten.Image {
	return c.images[c.Index(angle)]
}

// rotatedExtent is the axis-aligned size of a w*h box rotated by rad.
func rotatedExtent(w, h, rad float64) (float64, float64) {
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	return w*cos + h*sin, w*sin + h*cos
}
