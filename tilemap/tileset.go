package tilemap

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isec/common"
)

// TilesetGrid returns the number of columns and rows an image of w x h
// pixels holds for the given tile geometry. margin is the offset of the first
// tile from the top-left corner and spacing the gap between tiles.
func TilesetGrid(w, h, tileSize, margin, spacing int) (cols, rows int, err error) {
	if tileSize <= 0 || margin < 0 || spacing < 0 {
		return 0, 0, common.Configf("invalid tile geometry size=%d margin=%d spacing=%d", tileSize, margin, spacing)
	}
	pitch := tileSize + spacing
	if (w-margin+spacing)%pitch != 0 {
		return 0, 0, common.Configf("tileset width %d does not fit tiles of %d (margin %d, spacing %d)", w, tileSize, margin, spacing)
	}
	if (h-margin+spacing)%pitch != 0 {
		return 0, 0, common.Configf("tileset height %d does not fit tiles of %d (margin %d, spacing %d)", h, tileSize, margin, spacing)
	}
	cols = (w - margin + spacing) / pitch
	rows = (h - margin + spacing) / pitch
	if cols <= 0 || rows <= 0 {
		return 0, 0, common.Configf("tileset %dx%d holds no tiles", w, h)
	}
	return cols, rows, nil
}

// TileRect is the source rectangle of tile i, numbered row-major.
func TileRect(i, cols, tileSize, margin, spacing int) image.Rectangle {
	col, row := i%cols, i/cols
	x := margin + col*(tileSize+spacing)
	y := margin + row*(tileSize+spacing)
	return image.Rect(x, y, x+tileSize, y+tileSize)
}

// SliceTileset cuts img into a tileset indexed from 0 in row-major order.
func SliceTileset(img *ebiten.Image, tileSize, margin, spacing int) (Tileset, error) {
	if img == nil {
		return nil, fmt.Errorf("tilemap: slice tileset: %w", common.Configf("nil image"))
	}
	b := img.Bounds()
	cols, rows, err := TilesetGrid(b.Dx(), b.Dy(), tileSize, margin, spacing)
	if err != nil {
		return nil, fmt.Errorf("tilemap: slice tileset: %w", err)
	}
	ts := make(Tileset, cols*rows)
	for i := 0; i < cols*rows; i++ {
		r := TileRect(i, cols, tileSize, margin, spacing).Add(b.Min)
		sub, ok := img.SubImage(r).(*ebiten.Image)
		if !ok {
			continue
		}
		ts[i] = sub
	}
	return ts, nil
}
