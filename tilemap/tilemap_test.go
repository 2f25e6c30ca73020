package tilemap

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
)

func TestTilesetGrid(t *testing.T) {
	cases := []struct {
		name               string
		w, h, size, m, s   int
		wantCols, wantRows int
		wantErr            bool
	}{
		{"plain", 64, 32, 16, 0, 0, 4, 2, false},
		{"margin_spacing", 37, 19, 8, 2, 1, 4, 2, false},
		{"bad_width", 65, 32, 16, 0, 0, 0, 0, true},
		{"bad_height", 64, 30, 16, 0, 0, 0, 0, true},
		{"zero_size", 64, 32, 0, 0, 0, 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cols, rows, err := TilesetGrid(c.w, c.h, c.size, c.m, c.s)
			if c.wantErr {
				if !errors.Is(err, common.ErrConfiguration) {
					t.Fatalf("expected configuration error, got %v", err)
				}
				return
			}
			if err != nil || cols != c.wantCols || rows != c.wantRows {
				t.Fatalf("got %d x %d, %v; want %d x %d", cols, rows, err, c.wantCols, c.wantRows)
			}
		})
	}
}

func TestTileRect(t *testing.T) {
	r := TileRect(5, 4, 8, 2, 1)
	if r.Min.X != 2+1*9 || r.Min.Y != 2+1*9 || r.Dx() != 8 || r.Dy() != 8 {
		t.Fatalf("TileRect = %v", r)
	}
}

func TestSliceTileset(t *testing.T) {
	ts, err := SliceTileset(ebiten.NewImage(64, 32), 16, 0, 0)
	if err != nil {
		t.Fatalf("SliceTileset: %v", err)
	}
	if len(ts) != 8 {
		t.Fatalf("expected 8 tiles, got %d", len(ts))
	}
	if b := ts[7].Bounds(); b.Dx() != 16 || b.Min.X != 48 || b.Min.Y != 16 {
		t.Fatalf("tile 7 bounds = %v", b)
	}
}

func testTileset() Tileset {
	img := ebiten.NewImage(8, 8)
	return Tileset{0: img, 1: img}
}

func TestNewLayerValidation(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		ok   bool
	}{
		{"valid", [][]int{{0, Empty}, {1, 0}}, true},
		{"unknown_tile", [][]int{{0, 7}}, false},
		{"ragged", [][]int{{0, 1}, {0}}, false},
		{"empty", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewLayer(c.grid, testTileset(), 8, 1)
			if c.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !c.ok && !errors.Is(err, common.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestCollisionMapBorderIsOpen(t *testing.T) {
	grid := [][]int{
		{1, 1, 1, 1},
		{1, 1, 0, 1},
		{1, 0, 1, 1},
		{1, 1, 1, 1},
	}
	l, err := NewLayer(grid, testTileset(), 8, 1)
	if err != nil {
		t.Fatalf("NewLayer: %v", err)
	}
	m, err := l.CollisionMap(1)
	if err != nil {
		t.Fatalf("CollisionMap: %v", err)
	}
	want := CollisionMap{
		{false, false, false, false},
		{false, true, false, false},
		{false, false, true, false},
		{false, false, false, false},
	}
	for y := range want {
		for x := range want[y] {
			if m[y][x] != want[y][x] {
				t.Fatalf("cell (%d,%d) = %v, want %v", x, y, m[y][x], want[y][x])
			}
		}
	}
	if m.Count() != 2 {
		t.Fatalf("Count = %d", m.Count())
	}
	if _, err := l.CollisionMap(); !errors.Is(err, common.ErrConfiguration) {
		t.Fatalf("empty solid set should fail, got %v", err)
	}
}

func TestCastRay(t *testing.T) {
	m := make(CollisionMap, 10)
	for y := range m {
		m[y] = make([]bool, 10)
		if y > 0 && y < 9 {
			m[y][6] = true
		}
	}
	start := cp.Vector{X: 25, Y: 55}

	cases := []struct {
		name    string
		dir     cp.Vector
		max     float64
		wantHit bool
		wantPos cp.Vector
	}{
		{"hits_wall", cp.Vector{X: 1}, 20, true, cp.Vector{X: 60, Y: 55}},
		{"too_short", cp.Vector{X: 1}, 2, false, cp.Vector{X: 45, Y: 55}},
		{"leaves_map", cp.Vector{X: -1}, 20, false, cp.Vector{X: -175, Y: 55}},
		{"zero_direction", cp.Vector{}, 20, false, start},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos, hit := m.CastRay(10, start, c.dir, c.max)
			if hit != c.wantHit {
				t.Fatalf("hit = %v, want %v", hit, c.wantHit)
			}
			if pos.Distance(c.wantPos) > 1e-9 {
				t.Fatalf("pos = %v, want %v", pos, c.wantPos)
			}
		})
	}
}
