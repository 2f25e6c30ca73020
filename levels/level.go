// Package levels reads tile levels stored as JSON and turns them into
// tilemap layers and collision data.
package levels

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
	"github.com/milk9111/isec/tilemap"
)

// Tile values stored in level layers.
const (
	TileNone     = 0
	TileBlock    = 1
	TileTriangle = 2
)

const defaultColor = "#3c78ff"

// Level represents a simple tile map stored as JSON.
type Level struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Layers is a slice of layers. Each layer is a flat array of length
	// Width*Height (row-major). Layer 0 is drawn first (bottom).
	Layers [][]int `json:"layers"`

	// LayerMeta holds per-layer metadata such as whether tiles on the layer
	// have physics and the display color for that layer's tiles.
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`

	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool   `json:"has_physics"`
	Color      string `json:"color"`
	// Depth is the parallax depth; zero means 1.
	Depth float64 `json:"depth,omitempty"`
}

// Parse decodes and validates a level. Missing layer metadata is filled with
// non-physics defaults.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("levels: parse: %w", err)
	}
	for len(lvl.LayerMeta) < len(lvl.Layers) {
		lvl.LayerMeta = append(lvl.LayerMeta, LayerMeta{Color: defaultColor})
	}
	for i := range lvl.LayerMeta {
		if lvl.LayerMeta[i].Depth == 0 {
			lvl.LayerMeta[i].Depth = 1
		}
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return common.Configf("invalid level dimensions: %dx%d", l.Width, l.Height)
	}
	if len(l.Layers) == 0 {
		return common.Configf("level has no layers")
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return common.Configf("layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
		for idx, v := range layer {
			if v < TileNone || v > TileTriangle {
				return common.Configf("layer %d: unknown tile %d at (%d,%d)", i, v, idx%l.Width, idx/l.Width)
			}
		}
	}
	return nil
}

// Grid returns layer i as rows of tile indices, with empty cells set to
// tilemap.Empty.
func (l *Level) Grid(i int) [][]int {
	grid := make([][]int, l.Height)
	for y := range grid {
		grid[y] = make([]int, l.Width)
		for x := range grid[y] {
			v := l.Layers[i][y*l.Width+x]
			if v == TileNone {
				v = tilemap.Empty
			}
			grid[y][x] = v
		}
	}
	return grid
}

// TileLayers builds one tilemap layer per level layer, each with a tileset
// rendered in the layer's color.
func (l *Level) TileLayers(tileSize int) ([]*tilemap.Layer, error) {
	out := make([]*tilemap.Layer, 0, len(l.Layers))
	for i := range l.Layers {
		meta := l.LayerMeta[i]
		c := parseHexColor(meta.Color)
		ts := tilemap.Tileset{
			TileBlock:    layerImageFromHex(tileSize, meta.Color),
			TileTriangle: triangleImage(tileSize, c),
		}
		layer, err := tilemap.NewLayer(l.Grid(i), ts, tileSize, meta.Depth)
		if err != nil {
			return nil, fmt.Errorf("levels: layer %d: %w", i, err)
		}
		out = append(out, layer)
	}
	return out, nil
}

// CollisionMap merges every physics layer into one solid grid. The border
// cells stay open.
func (l *Level) CollisionMap() tilemap.CollisionMap {
	m := make(tilemap.CollisionMap, l.Height)
	for y := range m {
		m[y] = make([]bool, l.Width)
	}
	for i, layer := range l.Layers {
		if !l.LayerMeta[i].HasPhysics {
			continue
		}
		for y := 1; y < l.Height-1; y++ {
			for x := 1; x < l.Width-1; x++ {
				if layer[y*l.Width+x] != TileNone {
					m[y][x] = true
				}
			}
		}
	}
	return m
}

// SpawnPosition returns the player's spawn position in world pixels (center
// of the spawn cell). If the stored spawn is out-of-bounds it clamps to cell
// (0,0).
func (l *Level) SpawnPosition(tileSize float64) cp.Vector {
	x, y := l.SpawnX, l.SpawnY
	if x < 0 || x >= l.Width {
		x = 0
	}
	if y < 0 || y >= l.Height {
		y = 0
	}
	return cp.Vector{X: (float64(x) + 0.5) * tileSize, Y: (float64(y) + 0.5) * tileSize}
}

// layerImageFromHex creates an image filled with the provided hex color ("#rrggbb").
func layerImageFromHex(size int, hex string) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.Fill(parseHexColor(hex))
	return img
}

// triangleImage builds an image with a filled upward-pointing triangle.
func triangleImage(size int, col color.RGBA) *ebiten.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	for y := 0; y < size; y++ {
		progress := 1.0
		if size > 1 {
			progress = float64(y) / float64(size-1)
		}
		half := progress * float64(size) / 2
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			if fx >= cx-half && fx <= cx+half {
				rgba.Set(x, y, col)
			}
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

// parseHexColor parses a color in the form #rrggbb. Returns opaque blue if
// parse fails.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0x00, 0x00, 0xff
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r, g, b = uint8(ri), uint8(gi), uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
