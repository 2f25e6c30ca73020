package sprite

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
)

// Bounds returns the screen rectangle the sprite covers when centred on
// center and drawn at angle degrees.
func (s *Sprite) Bounds(center cp.Vector, angle float64) image.Rectangle {
	w, h := s.extent(angle)
	minX := int(math.Round(center.X - w/2))
	minY := int(math.Round(center.Y - h/2))
	return image.Rect(minX, minY, minX+int(math.Ceil(w)), minY+int(math.Ceil(h)))
}

func (s *Sprite) extent(angle float64) (float64, float64) {
	switch s.technique {
	case Cached:
		b := s.caches[s.frame].Image(angle).Bounds()
		return float64(b.Dx()), float64(b.Dy())
	case Rotated:
		b := s.frames[s.frame].Bounds()
		return rotatedExtent(float64(b.Dx()), float64(b.Dy()), common.DegToRad(angle))
	default:
		b := s.frames[s.frame].Bounds()
		return float64(b.Dx()), float64(b.Dy())
	}
}

// Render draws the current frame centred on center (already in screen
// space). Nothing is drawn when the sprite lies outside view; the return
// value reports whether anything was drawn.
func (s *Sprite) Render(dst *ebiten.Image, view image.Rectangle, center cp.Vector, angle float64) bool {
	if s == nil || dst == nil {
		return false
	}
	rect := s.Bounds(center, angle)
	if !rect.Overlaps(view) {
		return false
	}

	switch s.technique {
	case OptimizedStatic:
		if !s.flipX && !s.flipY {
			s.drawClipped(dst, view, rect)
			return true
		}
		s.drawTransformed(dst, s.frames[s.frame], rect, 0)
	case Rotated:
		s.drawTransformed(dst, s.frames[s.frame], rect, angle)
	case Cached:
		s.drawTransformed(dst, s.caches[s.frame].Image(angle), rect, 0)
	default:
		s.drawTransformed(dst, s.frames[s.frame], rect, 0)
	}
	return true
}

// drawClipped blits only the part of the frame inside view.
func (s *Sprite) drawClipped(dst *ebiten.Image, view, rect image.Rectangle) {
	visible := rect.Intersect(view)
	img := s.frames[s.frame]
	src := visible.Sub(rect.Min).Add(img.Bounds().Min)
	sub, ok := img.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(visible.Min.X), float64(visible.Min.Y))
	dst.DrawImage(sub, op)
}

func (s *Sprite) drawTransformed(dst, img *ebiten.Image, rect image.Rectangle, angle float64) {
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	sx, sy := 1.0, 1.0
	if s.flipX {
		sx = -1
	}
	if s.flipY {
		sy = -1
	}
	op.GeoM.Scale(sx, sy)
	if angle != 0 {
		op.GeoM.Rotate(common.DegToRad(angle))
		op.Filter = ebiten.FilterLinear
	}
	cx := float64(rect.Min.X) + float64(rect.Dx())/2
	cy := float64(rect.Min.Y) + float64(rect.Dy())/2
	op.GeoM.Translate(cx, cy)
	dst.DrawImage(img, op)
}
