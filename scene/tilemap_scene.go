package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/camera"
	"github.com/milk9111/isec/tilemap"
)

// TilemapScene draws one tile layer at its parallax depth.
type TilemapScene struct {
	Layer *tilemap.Layer
}

func NewTilemapScene(l *tilemap.Layer) *TilemapScene {
	return &TilemapScene{Layer: l}
}

func (t *TilemapScene) Depth() float64 {
	if t == nil || t.Layer == nil {
		return 1
	}
	return t.Layer.Depth()
}

// origin is the world point of the layer drawn at the screen's top-left.
func (t *TilemapScene) origin(cam cp.Vector) cp.Vector {
	return cam.Mult(t.Depth())
}

// VisibleRange returns the half-open tile window [x0,x1) x [y0,y1) covered
// by a viewW x viewH view with the camera at cam, clamped to the grid.
func (t *TilemapScene) VisibleRange(cam cp.Vector, viewW, viewH int) (x0, y0, x1, y1 int) {
	if t == nil || t.Layer == nil {
		return 0, 0, 0, 0
	}
	ts := float64(t.Layer.TileSize())
	o := t.origin(cam)
	x0 = max(0, int(math.Floor(o.X/ts)))
	y0 = max(0, int(math.Floor(o.Y/ts)))
	x1 = min(t.Layer.Width(), int(math.Ceil((o.X+float64(viewW))/ts)))
	y1 = min(t.Layer.Height(), int(math.Ceil((o.Y+float64(viewH))/ts)))
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return x0, y0, x1, y1
}

// Render blits the visible window and returns the number of tiles drawn.
func (t *TilemapScene) Render(dst *ebiten.Image, cam *camera.Camera) int {
	if t == nil || t.Layer == nil {
		return 0
	}
	var camPos cp.Vector
	if cam != nil {
		camPos = cam.Pos()
	}
	b := dst.Bounds()
	x0, y0, x1, y1 := t.VisibleRange(camPos, b.Dx(), b.Dy())
	o := t.origin(camPos)
	ts := float64(t.Layer.TileSize())

	drawn := 0
	op := &ebiten.DrawImageOptions{}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img := t.Layer.Tile(t.Layer.At(x, y))
			if img == nil {
				continue
			}
			op.GeoM.Reset()
			op.GeoM.Translate(float64(x)*ts-o.X, float64(y)*ts-o.Y)
			dst.DrawImage(img, op)
			drawn++
		}
	}
	return drawn
}
