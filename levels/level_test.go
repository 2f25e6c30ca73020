package levels

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
	"github.com/milk9111/isec/terrain"
	"github.com/milk9111/isec/tilemap"
)

const small = `{
	"width": 4, "height": 4,
	"layers": [
		[0,0,0,0, 0,1,1,0, 0,1,2,0, 0,0,0,0],
		[1,1,1,1, 1,0,0,1, 1,0,0,1, 1,1,1,1]
	],
	"layer_meta": [{"has_physics": true, "color": "#ff0000"}],
	"spawn_x": 2, "spawn_y": 1
}`

func TestParse(t *testing.T) {
	lvl, err := Parse([]byte(small))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lvl.LayerMeta) != 2 {
		t.Fatalf("layer meta = %d", len(lvl.LayerMeta))
	}
	if lvl.LayerMeta[1].HasPhysics || lvl.LayerMeta[1].Color != defaultColor || lvl.LayerMeta[1].Depth != 1 {
		t.Fatalf("filled meta = %+v", lvl.LayerMeta[1])
	}
	g := lvl.Grid(0)
	if g[0][0] != tilemap.Empty || g[1][1] != TileBlock || g[2][2] != TileTriangle {
		t.Fatalf("grid = %v", g)
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"zero_size", `{"width":0,"height":2,"layers":[[]]}`},
		{"no_layers", `{"width":1,"height":1}`},
		{"short_layer", `{"width":2,"height":2,"layers":[[0,1,0]]}`},
		{"unknown_tile", `{"width":1,"height":1,"layers":[[7]]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.json)); !errors.Is(err, common.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
	if _, err := Parse([]byte("{")); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestCollisionMapUsesPhysicsLayersOnly(t *testing.T) {
	lvl, err := Parse([]byte(small))
	if err != nil {
		t.Fatal(err)
	}
	m := lvl.CollisionMap()
	if m.Count() != 4 {
		t.Fatalf("count = %d", m.Count())
	}
	for _, c := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if !m.Solid(c[0], c[1]) {
			t.Fatalf("(%d,%d) should be solid", c[0], c[1])
		}
	}
	// The border ring lives on a non-physics layer.
	if m.Solid(0, 0) {
		t.Fatal("border must stay open")
	}
}

func TestSpawnPosition(t *testing.T) {
	lvl, err := Parse([]byte(small))
	if err != nil {
		t.Fatal(err)
	}
	if got := lvl.SpawnPosition(32); got != (cp.Vector{X: 80, Y: 48}) {
		t.Fatalf("spawn = %v", got)
	}
	lvl.SpawnX = 99
	if got := lvl.SpawnPosition(32); got.X != 16 {
		t.Fatalf("out of range spawn should clamp, got %v", got)
	}
}

func TestTileLayers(t *testing.T) {
	lvl, err := Parse([]byte(small))
	if err != nil {
		t.Fatal(err)
	}
	layers, err := lvl.TileLayers(8)
	if err != nil {
		t.Fatalf("TileLayers: %v", err)
	}
	if len(layers) != 2 || layers[0].Width() != 4 || layers[0].TileSize() != 8 {
		t.Fatalf("layers = %v", layers)
	}
	if layers[0].Tile(TileTriangle) == nil || layers[0].Tile(layers[0].At(0, 0)) != nil {
		t.Fatal("tileset should hold block and triangle tiles only")
	}
}

func TestParseHexColor(t *testing.T) {
	if c := parseHexColor("#102030"); c.R != 0x10 || c.G != 0x20 || c.B != 0x30 || c.A != 0xff {
		t.Fatalf("color = %v", c)
	}
	if c := parseHexColor("blue"); c.B != 0xff || c.R != 0 {
		t.Fatalf("fallback = %v", c)
	}
}

func TestLoadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.json")
	if err := os.WriteFile(path, []byte(small), 0o644); err != nil {
		t.Fatal(err)
	}
	lvl, err := LoadLevel(path)
	if err != nil || lvl.Width != 4 {
		t.Fatalf("LoadLevel = %v, %v", lvl, err)
	}
	if _, err := LoadLevel(Demo); err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}
}

func TestDemoLevelBuildsTerrain(t *testing.T) {
	lvl, err := LoadLevelFromFS(Demo)
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	m := lvl.CollisionMap()
	b := terrain.NewBuilder(32, terrain.WithLogger(log.New(io.Discard)))
	polys, err := b.Polygons(m)
	if err != nil {
		t.Fatalf("Polygons: %v", err)
	}
	var area float64
	for _, p := range polys {
		var a float64
		for i, v := range p {
			w := p[(i+1)%len(p)]
			a += v.X*w.Y - w.X*v.Y
		}
		area += a / 2
	}
	if want := float64(m.Count()) * 32 * 32; math.Abs(area-want) > 1e-6 {
		t.Fatalf("area = %v, want %v", area, want)
	}
}
