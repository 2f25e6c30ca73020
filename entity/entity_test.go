package entity

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/position"
	"github.com/milk9111/isec/sprite"
)

type crate struct {
	Base
	ticks int
}

func (c *crate) Update(dt float64) {
	c.ticks++
	c.Base.Update(dt)
}

func TestBaseUpdateMovesPosition(t *testing.T) {
	k := position.NewKinematic(cp.Vector{})
	k.SetVelocity(cp.Vector{X: 60})
	c := &crate{Base: Base{Position: k, Tag: "crate"}}

	var e Entity = c
	e.Update(0.5)
	if c.ticks != 1 || k.Pos().X != 30 {
		t.Fatalf("ticks=%d pos=%v", c.ticks, k.Pos())
	}
	if e.Core() != &c.Base {
		t.Fatalf("Core should return the embedded base")
	}
}

func TestAttachDetach(t *testing.T) {
	b := New(position.NewStatic(cp.Vector{}, 0), nil, "")
	if !b.Attach(1) || b.SceneID() != 1 {
		t.Fatalf("first attach should succeed")
	}
	if b.Attach(2) {
		t.Fatalf("attaching to a second scene should fail")
	}
	b.MarkForRemoval()
	if !b.PendingRemoval() {
		t.Fatalf("expected pending removal")
	}
	b.Detach()
	if b.InScene() || b.PendingRemoval() {
		t.Fatalf("detach should clear scene and removal flag")
	}
}

func TestDrawUsesPositionAngle(t *testing.T) {
	spr, err := sprite.New(ebiten.NewImage(10, 10), sprite.Rotated)
	if err != nil {
		t.Fatalf("sprite.New: %v", err)
	}
	b := New(position.NewStatic(cp.Vector{}, 45), spr, "")
	dst := ebiten.NewImage(50, 50)
	if !b.Draw(dst, image.Rect(0, 0, 50, 50), cp.Vector{X: 25, Y: 25}) {
		t.Fatalf("visible entity should draw")
	}
	if New(nil, nil, "").Draw(dst, image.Rect(0, 0, 50, 50), cp.Vector{}) {
		t.Fatalf("entity without sprite should not draw")
	}
}
