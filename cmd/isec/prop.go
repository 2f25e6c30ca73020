package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/isec/entity"
	"github.com/milk9111/isec/physics"
	"github.com/milk9111/isec/position"
	"github.com/milk9111/isec/sprite"
)

const (
	propSize      = 20
	propCacheStep = 64
)

// prop is a loose crate. It is dropped once it falls below killY.
type prop struct {
	*entity.Base
	Body  *position.Body
	killY float64
}

// crateImage draws a crate with a diagonal brace so rotation is visible.
func crateImage() *ebiten.Image {
	img := ebiten.NewImage(propSize, propSize)
	img.Fill(colornames.Burlywood)
	vector.StrokeLine(img, 0, 0, propSize, propSize, 2, colornames.Saddlebrown, false)
	vector.StrokeRect(img, 1, 1, propSize-2, propSize-2, 2, colornames.Saddlebrown, false)
	return img
}

// newProps creates crates alternating between per-draw rotation and a
// rotation cache.
func newProps(origin cp.Vector, n int, killY float64, profile physics.ShapeProfile) ([]*prop, error) {
	img := crateImage()
	cache, err := sprite.NewRotationCache(img, propCacheStep)
	if err != nil {
		return nil, err
	}
	out := make([]*prop, 0, n)
	for i := 0; i < n; i++ {
		var spr *sprite.Sprite
		if i%2 == 0 {
			spr, err = sprite.New(img, sprite.Rotated)
		} else {
			spr, err = sprite.NewCached(cache)
		}
		if err != nil {
			return nil, err
		}
		body := position.NewBody(origin.Add(cp.Vector{X: float64(i) * (propSize + 6), Y: -float64(i%3) * propSize}), position.BodyConfig{
			Type:    position.BodyDynamic,
			Profile: profile,
		})
		body.AddBox(propSize, propSize, 0.5)
		out = append(out, &prop{Base: entity.New(body, spr, "prop"), Body: body, killY: killY})
	}
	return out, nil
}

func (p *prop) Update(dt float64) {
	p.Base.Update(dt)
	if p.Body.Pos().Y > p.killY {
		p.MarkForRemoval()
	}
}
