package tilemap

import (
	"math"

	"github.com/jakecoffman/cp"
)

// CollisionMap is a solid/open grid indexed [y][x].
type CollisionMap [][]bool

func (m CollisionMap) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func (m CollisionMap) Height() int {
	return len(m)
}

// Solid reports whether (x, y) is solid; cells outside the map are open.
func (m CollisionMap) Solid(x, y int) bool {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return false
	}
	return m[y][x]
}

// Count returns the number of solid cells.
func (m CollisionMap) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// CastRay walks the grid from start (world pixels) along dir with a DDA and
// returns where the ray stopped and whether it hit a solid cell. maxDist is
// in tiles. A ray reaching the map's border row or column stops there
// without a hit.
func (m CollisionMap) CastRay(tileSize float64, start, dir cp.Vector, maxDist float64) (cp.Vector, bool) {
	if dir.X == 0 && dir.Y == 0 || tileSize <= 0 {
		return start, false
	}
	d := dir.Normalize()
	origin := start.Mult(1 / tileSize)
	cellX, cellY := math.Floor(origin.X), math.Floor(origin.Y)

	stepX, stepY := math.Inf(1), math.Inf(1)
	if d.X != 0 {
		stepX = math.Abs(1 / d.X)
	}
	if d.Y != 0 {
		stepY = math.Abs(1 / d.Y)
	}

	var dx, dy int
	var lenX, lenY float64
	if d.X < 0 {
		dx = -1
		lenX = (origin.X - cellX) * stepX
	} else {
		dx = 1
		lenX = (cellX + 1 - origin.X) * stepX
	}
	if d.Y < 0 {
		dy = -1
		lenY = (origin.Y - cellY) * stepY
	} else {
		dy = 1
		lenY = (cellY + 1 - origin.Y) * stepY
	}
	if math.IsNaN(lenX) {
		lenX = math.Inf(1)
	}
	if math.IsNaN(lenY) {
		lenY = math.Inf(1)
	}

	x, y := int(cellX), int(cellY)
	dist := 0.0
	hit := false
	for !hit && dist < maxDist {
		if lenX < lenY {
			x += dx
			dist = lenX
			lenX += stepX
		} else {
			y += dy
			dist = lenY
			lenY += stepY
		}
		if x < 1 || y < 1 || x >= m.Width()-1 || y >= m.Height()-1 {
			break
		}
		hit = m[y][x]
	}
	if !hit || dist > maxDist {
		return origin.Add(d.Mult(maxDist)).Mult(tileSize), false
	}
	return origin.Add(d.Mult(dist)).Mult(tileSize), true
}
