// Package tilemap holds tile grids, their tilesets and the collision data
// derived from them.
package tilemap

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isec/common"
)

// Empty marks a cell without a tile.
const Empty = -1

// Tileset maps tile indices to images.
type Tileset map[int]*ebiten.Image

// Layer is a grid of tile indices drawn with a tileset at a parallax depth.
// Depth 0 ignores the camera, 1 moves with it and values above 1 are drawn
// in front of entities.
type Layer struct {
	grid     [][]int
	tileset  Tileset
	tileSize int
	depth    float64
}

// NewLayer validates the grid against the tileset.
func NewLayer(grid [][]int, tileset Tileset, tileSize int, depth float64) (*Layer, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tilemap: new layer: %w", common.Configf("tile size must be positive, got %d", tileSize))
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("tilemap: new layer: %w", common.Configf("empty grid"))
	}
	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("tilemap: new layer: %w", common.Configf("row %d has %d tiles, want %d", y, len(row), width))
		}
		for x, idx := range row {
			if idx == Empty {
				continue
			}
			if _, ok := tileset[idx]; !ok {
				return nil, fmt.Errorf("tilemap: new layer: %w", common.Configf("tile %d at (%d,%d) is not in the tileset", idx, x, y))
			}
		}
	}
	return &Layer{grid: grid, tileset: tileset, tileSize: tileSize, depth: depth}, nil
}

func (l *Layer) Width() int {
	return len(l.grid[0])
}

func (l *Layer) Height() int {
	return len(l.grid)
}

func (l *Layer) TileSize() int {
	return l.tileSize
}

// Depth returns the parallax depth.
func (l *Layer) Depth() float64 {
	return l.depth
}

// At returns the tile index at (x, y), or Empty outside the grid.
func (l *Layer) At(x, y int) int {
	if y < 0 || y >= len(l.grid) || x < 0 || x >= len(l.grid[y]) {
		return Empty
	}
	return l.grid[y][x]
}

// Tile returns the image for a tile index.
func (l *Layer) Tile(idx int) *ebiten.Image {
	if idx == Empty {
		return nil
	}
	return l.tileset[idx]
}

// CollisionMap marks every cell whose tile is in solid. The outermost rows
// and columns are always left open.
func (l *Layer) CollisionMap(solid ...int) (CollisionMap, error) {
	if len(solid) == 0 {
		return nil, fmt.Errorf("tilemap: collision map: %w", common.Configf("solid tile set must not be empty"))
	}
	set := make(map[int]struct{}, len(solid))
	for _, s := range solid {
		set[s] = struct{}{}
	}
	h, w := l.Height(), l.Width()
	m := make(CollisionMap, h)
	for y := range m {
		m[y] = make([]bool, w)
		if y == 0 || y == h-1 {
			continue
		}
		for x := 1; x < w-1; x++ {
			_, m[y][x] = set[l.grid[y][x]]
		}
	}
	return m, nil
}
