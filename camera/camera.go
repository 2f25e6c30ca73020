// Package camera maps world coordinates to screen coordinates. The camera
// position is the world point drawn at the screen's top-left corner.
package camera

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
	"github.com/milk9111/isec/position"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera holds the view position as a static position.
type Camera struct {
	Position *position.Static

	panX *gween.Tween
	panY *gween.Tween
}

func New(pos cp.Vector) *Camera {
	return &Camera{Position: position.NewStatic(pos, 0)}
}

func (c *Camera) Pos() cp.Vector {
	return c.Position.Pos()
}

// SetPos moves the camera immediately and cancels any pan in progress.
func (c *Camera) SetPos(p cp.Vector) {
	c.panX, c.panY = nil, nil
	c.Position.SetPos(p)
}

// Offset maps a world position to screen space.
func (c *Camera) Offset(world cp.Vector) cp.Vector {
	return world.Sub(c.Position.Pos())
}

// Unproject maps a screen position back to world space.
func (c *Camera) Unproject(screen cp.Vector) cp.Vector {
	return screen.Add(c.Position.Pos())
}

// CenterOn places target in the middle of a viewW x viewH view.
func (c *Camera) CenterOn(target cp.Vector, viewW, viewH float64) {
	c.SetPos(cp.Vector{X: target.X - viewW/2, Y: target.Y - viewH/2})
}

// PanTo tweens the camera to target over seconds. A nil easing is linear.
func (c *Camera) PanTo(target cp.Vector, seconds float32, easing ease.TweenFunc) {
	if easing == nil {
		easing = ease.Linear
	}
	from := c.Position.Pos()
	c.panX = gween.New(float32(from.X), float32(target.X), seconds, easing)
	c.panY = gween.New(float32(from.Y), float32(target.Y), seconds, easing)
}

// Panning reports whether a pan is in progress.
func (c *Camera) Panning() bool {
	return c.panX != nil || c.panY != nil
}

// Update advances any pan by dt seconds.
func (c *Camera) Update(dt float64) {
	if !c.Panning() {
		return
	}
	p := c.Position.Pos()
	if c.panX != nil {
		x, done := c.panX.Update(float32(dt))
		p.X = float64(x)
		if done {
			c.panX = nil
		}
	}
	if c.panY != nil {
		y, done := c.panY.Update(float32(dt))
		p.Y = float64(y)
		if done {
			c.panY = nil
		}
	}
	c.Position.SetPos(p)
}

// Bounds is a world rectangle used to restrict the camera.
type Bounds struct {
	X, Y, W, H float64
}

// Clamp keeps a viewW x viewH view starting at pos inside b. A view larger
// than the bounds is centred on them.
func Clamp(pos cp.Vector, viewW, viewH float64, b Bounds) cp.Vector {
	if b.W <= 0 || b.H <= 0 {
		return pos
	}
	if viewW >= b.W {
		pos.X = b.X + (b.W-viewW)/2
	} else {
		pos.X = common.Clamp(pos.X, b.X, b.X+b.W-viewW)
	}
	if viewH >= b.H {
		pos.Y = b.Y + (b.H-viewH)/2
	} else {
		pos.Y = common.Clamp(pos.Y, b.Y, b.Y+b.H-viewH)
	}
	return pos
}
