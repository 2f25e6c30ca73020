// Package entity couples a Position with a Sprite. Gameplay objects embed
// Base and override Update or Draw as needed.
package entity

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/position"
	"github.com/milk9111/isec/sprite"
)

// Entity is anything a scene can hold.
type Entity interface {
	Core() *Base
	Update(dt float64)
	// Draw renders the entity with its position already mapped to screen
	// space and reports whether anything was drawn.
	Draw(dst *ebiten.Image, view image.Rectangle, screen cp.Vector) bool
}

// Base is the default Entity implementation.
type Base struct {
	Position position.Position
	Sprite   *sprite.Sprite
	Tag      string

	scene          uint64
	pendingRemoval bool
}

func New(pos position.Position, spr *sprite.Sprite, tag string) *Base {
	return &Base{Position: pos, Sprite: spr, Tag: tag}
}

func (b *Base) Core() *Base {
	return b
}

// Update advances position then sprite animation.
func (b *Base) Update(dt float64) {
	if b.Position != nil {
		b.Position.Update(dt)
	}
	if b.Sprite != nil {
		b.Sprite.Update(dt)
	}
}

func (b *Base) Draw(dst *ebiten.Image, view image.Rectangle, screen cp.Vector) bool {
	if b.Sprite == nil {
		return false
	}
	angle := 0.0
	if b.Position != nil {
		angle = b.Position.Angle()
	}
	return b.Sprite.Render(dst, view, screen, angle)
}

// MarkForRemoval asks the owning scene to drop the entity at the end of the
// current update pass.
func (b *Base) MarkForRemoval() {
	b.pendingRemoval = true
}

func (b *Base) PendingRemoval() bool {
	return b.pendingRemoval
}

// SceneID returns the id of the owning scene, or 0.
func (b *Base) SceneID() uint64 {
	return b.scene
}

func (b *Base) InScene() bool {
	return b.scene != 0
}

// Attach records the owning scene. It fails if the entity already belongs to
// a different scene.
func (b *Base) Attach(sceneID uint64) bool {
	if b.scene != 0 && b.scene != sceneID {
		return false
	}
	b.scene = sceneID
	b.pendingRemoval = false
	return true
}

// Detach clears the scene back-reference and any pending removal.
func (b *Base) Detach() {
	b.scene = 0
	b.pendingRemoval = false
}
