package terrain

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/tilemap"
)

// pt is a corner of the cell lattice. Corner (x, y) sits at grid position
// (x-0.5, y-0.5), i.e. the top-left corner of cell (x, y).
type pt struct {
	X, Y int
}

func (p pt) sub(o pt) pt {
	return pt{p.X - o.X, p.Y - o.Y}
}

// cross is the z component of (b-a) x (c-a).
func cross(a, b, c pt) int64 {
	return int64(b.X-a.X)*int64(c.Y-a.Y) - int64(b.Y-a.Y)*int64(c.X-a.X)
}

func dot(u, v pt) int64 {
	return int64(u.X)*int64(v.X) + int64(u.Y)*int64(v.Y)
}

// area2 is twice the signed shoelace area.
func area2(ring []pt) int64 {
	var a int64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		a += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}
	return a
}

func reversed(ring []pt) []pt {
	out := make([]pt, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

type latticeEdge struct {
	a, b pt
}

// Contour is one closed boundary in grid units: cell centres are at integer
// coordinates and boundaries at half-integers.
type Contour struct {
	Points []cp.Vector
	// Hole is set for boundaries enclosing open cells inside a solid region.
	Hole bool
}

// Contours extracts the boundaries of the solid cells of m. Outer
// boundaries have positive signed area and holes negative.
func Contours(m tilemap.CollisionMap) []Contour {
	loops := traceLoops(m)
	out := make([]Contour, 0, len(loops))
	for _, l := range loops {
		c := Contour{Points: make([]cp.Vector, len(l)), Hole: area2(l) < 0}
		for i, p := range l {
			c.Points[i] = cp.Vector{X: float64(p.X) - 0.5, Y: float64(p.Y) - 0.5}
		}
		out = append(out, c)
	}
	return out
}

// traceLoops extracts the boundary loops of the solid cells of m, oriented so
// the solid lies on the left. Loops around solid regions therefore come out
// with positive area and loops around holes with negative area.
//
// The segments come from hard marching squares over the cell centres. Where
// two solid cells touch only at a corner the walk turns left, keeping them in
// separate loops that share the corner.
func traceLoops(m tilemap.CollisionMap) [][]pt {
	edges := marchEdges(m)
	outgoing := make(map[pt][]int, len(edges))
	for i, e := range edges {
		outgoing[e.a] = append(outgoing[e.a], i)
	}

	used := make([]bool, len(edges))
	var loops [][]pt
	for start := range edges {
		if used[start] {
			continue
		}
		var loop []pt
		cur := start
		for {
			used[cur] = true
			e := edges[cur]
			loop = append(loop, e.a)
			next := pickNext(edges, outgoing[e.b], used, start, e)
			if next < 0 || next == start {
				break
			}
			cur = next
		}
		simplified := simplify(loop)
		if len(simplified) < 3 {
			continue
		}
		// every turn sits on a cell corner, so halving is exact
		for i, p := range simplified {
			simplified[i] = pt{p.X / 2, p.Y / 2}
		}
		loops = append(loops, simplified)
	}
	return loops
}

// marchEdges returns the marching squares segments of m in half-corner units.
// Sampling spans one cell past every side so solid cells on the map border
// still close their loops.
func marchEdges(m tilemap.CollisionMap) []latticeEdge {
	w, h := m.Width(), m.Height()
	if w == 0 || h == 0 {
		return nil
	}
	bb := cp.BB{L: -1, B: -1, R: float64(w), T: float64(h)}
	set := cp.MarchHard(bb, int64(w+2), int64(h+2), 0.5, keepSegment, func(p cp.Vector) float64 {
		if m.Solid(int(math.Round(p.X)), int(math.Round(p.Y))) {
			return 1
		}
		return 0
	})

	edges := make([]latticeEdge, 0, len(set.Lines))
	for _, l := range set.Lines {
		edges = append(edges, latticeEdge{halfCorner(l.Verts[0]), halfCorner(l.Verts[1])})
	}
	if len(edges) > 0 && !solidOnLeft(m, edges[0]) {
		for i, e := range edges {
			edges[i] = latticeEdge{e.b, e.a}
		}
	}
	return edges
}

// keepSegment stores every segment as its own line. cp.PolyLineCollectSegment
// links lines through a shared corner in arrival order, which can make a
// boundary cross itself there instead of touching.
func keepSegment(v0, v1 cp.Vector, set *cp.PolyLineSet) {
	set.Push(&cp.PolyLine{Verts: []cp.Vector{v0, v1}})
}

// halfCorner maps a grid position onto the lattice at half-corner resolution.
func halfCorner(v cp.Vector) pt {
	return pt{int(math.Round(2*v.X + 1)), int(math.Round(2*v.Y + 1))}
}

// solidOnLeft reports whether the cell left of e's first half step is solid.
func solidOnLeft(m tilemap.CollisionMap, e latticeEdge) bool {
	sx, sy := sign(e.b.X-e.a.X), sign(e.b.Y-e.a.Y)
	cx := math.Floor(float64(2*e.a.X+sx-sy) / 4)
	cy := math.Floor(float64(2*e.a.Y+sy+sx) / 4)
	return m.Solid(int(cx), int(cy))
}

// pickNext chooses the outgoing edge making the sharpest left turn, then
// straight, then right. The loop's first edge stays a candidate so the walk
// closes where it started.
func pickNext(edges []latticeEdge, candidates []int, used []bool, start int, in latticeEdge) int {
	din := in.b.sub(in.a)
	best, bestRank := -1, 3
	for _, j := range candidates {
		if used[j] && j != start {
			continue
		}
		dout := edges[j].b.sub(edges[j].a)
		c := int64(din.X)*int64(dout.Y) - int64(din.Y)*int64(dout.X)
		rank := 1
		switch {
		case c > 0:
			rank = 0
		case c < 0:
			rank = 2
		}
		if rank < bestRank {
			best, bestRank = j, rank
		}
	}
	return best
}

// simplify drops collinear and repeated vertices from a closed ring.
func simplify(ring []pt) []pt {
	out := append([]pt(nil), ring...)
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			a := out[(i+len(out)-1)%len(out)]
			b := out[i]
			c := out[(i+1)%len(out)]
			if b == c || (cross(a, b, c) == 0 && dot(b.sub(a), c.sub(b)) >= 0) {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return out
}

// insideRing reports whether (px, py) lies inside ring by ray casting.
func insideRing(ring []pt, px, py float64) bool {
	in := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := float64(ring[i].X), float64(ring[i].Y)
		xj, yj := float64(ring[j].X), float64(ring[j].Y)
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}

// holeSample returns the centre of an open cell just inside a hole loop.
func holeSample(hole []pt) (float64, float64) {
	a, b := hole[0], hole[1]
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	// open side of a directed edge (dx, dy) is (dy, -dx)
	return float64(a.X) + 0.5*float64(sx) + 0.5*float64(sy),
		float64(a.Y) + 0.5*float64(sy) - 0.5*float64(sx)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// region is an outer loop with the holes it directly encloses.
type region struct {
	outer []pt
	holes [][]pt
}

// groupRegions assigns every hole to the smallest outer loop containing it.
func groupRegions(loops [][]pt) (regions []region, orphans int) {
	var holes [][]pt
	for _, l := range loops {
		if area2(l) > 0 {
			regions = append(regions, region{outer: l})
		} else {
			holes = append(holes, l)
		}
	}
	for _, h := range holes {
		px, py := holeSample(h)
		best := -1
		var bestArea int64
		for i, r := range regions {
			if !insideRing(r.outer, px, py) {
				continue
			}
			if a := area2(r.outer); best < 0 || a < bestArea {
				best, bestArea = i, a
			}
		}
		if best < 0 {
			orphans++
			continue
		}
		regions[best].holes = append(regions[best].holes, h)
	}
	return regions, orphans
}
