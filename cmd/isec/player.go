package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/isec/entity"
	"github.com/milk9111/isec/physics"
	"github.com/milk9111/isec/position"
	"github.com/milk9111/isec/sprite"
)

const (
	playerW      = 24
	playerH      = 32
	runSpeed     = 220.0
	jumpSpeed    = 430.0
	airControl   = 0.4
	groundNormal = 0.5
)

// player is a fixed-rotation dynamic box steered by the bound actions.
type player struct {
	*entity.Base
	Body *position.Body

	move      float64
	jumpQueue bool
	ground    map[*cp.Shape]struct{}
}

func newPlayer(spawn cp.Vector, profile physics.ShapeProfile) (*player, error) {
	img := ebiten.NewImage(playerW, playerH)
	img.Fill(colornames.Orange)
	spr, err := sprite.New(img, sprite.Static)
	if err != nil {
		return nil, err
	}
	body := position.NewBody(spawn, position.BodyConfig{
		Type:          position.BodyDynamic,
		Mass:          1,
		FixedRotation: true,
		Profile:       profile,
	})
	body.AddBox(playerW, playerH, 1)
	return &player{
		Base:   entity.New(body, spr, "player"),
		Body:   body,
		ground: make(map[*cp.Shape]struct{}),
	}, nil
}

func (p *player) left()  { p.move-- }
func (p *player) right() { p.move++ }
func (p *player) jump()  { p.jumpQueue = true }

func (p *player) grounded() bool {
	return len(p.ground) > 0
}

// landed and leave track the terrain shapes the player stands on.
func (p *player) landed(c physics.Contact) bool {
	if c.Normal.Y > groundNormal {
		p.ground[c.ShapeB] = struct{}{}
	}
	return true
}

func (p *player) leave(c physics.Contact) {
	delete(p.ground, c.ShapeB)
}

func (p *player) Update(dt float64) {
	v := p.Body.Velocity()
	target := p.move * runSpeed
	if p.grounded() {
		v.X = target
	} else {
		v.X += (target - v.X) * airControl
	}
	if p.jumpQueue && p.grounded() {
		v.Y = -jumpSpeed
	}
	p.Body.SetVelocity(v)
	if p.move < 0 {
		p.Sprite.Flip(true, false)
	} else if p.move > 0 {
		p.Sprite.Flip(false, false)
	}
	p.move, p.jumpQueue = 0, false
	p.Base.Update(dt)
}
