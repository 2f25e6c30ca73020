package camera

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestOffsetUnprojectRoundtrip(t *testing.T) {
	cam := New(cp.Vector{X: 100, Y: 40})
	world := cp.Vector{X: 130, Y: 90}
	screen := cam.Offset(world)
	if screen != (cp.Vector{X: 30, Y: 50}) {
		t.Fatalf("Offset = %v", screen)
	}
	if back := cam.Unproject(screen); back != world {
		t.Fatalf("Unproject = %v, want %v", back, world)
	}
}

func TestPanTo(t *testing.T) {
	cam := New(cp.Vector{})
	cam.PanTo(cp.Vector{X: 100, Y: 200}, 1.0, ease.Linear)

	cam.Update(0.5)
	if !approxEqual(cam.Pos().X, 50, 1.0) || !approxEqual(cam.Pos().Y, 100, 1.0) {
		t.Errorf("pan halfway: cam = %v, want ~(50,100)", cam.Pos())
	}
	cam.Update(0.5)
	if !approxEqual(cam.Pos().X, 100, 1.0) || !approxEqual(cam.Pos().Y, 200, 1.0) {
		t.Errorf("pan end: cam = %v, want ~(100,200)", cam.Pos())
	}
	if cam.Panning() {
		t.Errorf("pan should be finished")
	}
}

func TestSetPosCancelsPan(t *testing.T) {
	cam := New(cp.Vector{})
	cam.PanTo(cp.Vector{X: 100}, 1.0, nil)
	cam.SetPos(cp.Vector{X: 5})
	cam.Update(0.5)
	if cam.Pos().X != 5 || cam.Panning() {
		t.Fatalf("SetPos should cancel the pan, got %v", cam.Pos())
	}
}

func TestClamp(t *testing.T) {
	world := Bounds{W: 1000, H: 500}
	cases := []struct {
		name string
		in   cp.Vector
		vw   float64
		vh   float64
		want cp.Vector
	}{
		{"inside", cp.Vector{X: 100, Y: 100}, 400, 300, cp.Vector{X: 100, Y: 100}},
		{"left_top", cp.Vector{X: -50, Y: -10}, 400, 300, cp.Vector{X: 0, Y: 0}},
		{"right_bottom", cp.Vector{X: 900, Y: 400}, 400, 300, cp.Vector{X: 600, Y: 200}},
		{"view_wider_than_world", cp.Vector{X: 300, Y: 0}, 1200, 300, cp.Vector{X: -100, Y: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.in, c.vw, c.vh, world); got != c.want {
				t.Fatalf("Clamp = %v, want %v", got, c.want)
			}
		})
	}
}
