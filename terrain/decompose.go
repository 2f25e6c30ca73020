package terrain

import (
	"errors"
	"sort"
)

var (
	errWinding    = errors.New("non-positive winding")
	errNoEar      = errors.New("no ear found")
	errNoBridge   = errors.New("hole has no visible bridge vertex")
	errAreaDrift  = errors.New("pieces do not cover the polygon")
	errNotConvex  = errors.New("piece is not convex")
	errDegenerate = errors.New("degenerate polygon")
)

// bridgeHoles splices every hole into the outer ring through a zero-width
// cut, producing one weakly simple ring. Holes are taken right to left.
func bridgeHoles(outer []pt, holes [][]pt) ([]pt, error) {
	ring := append([]pt(nil), outer...)
	pending := make([][]pt, len(holes))
	copy(pending, holes)
	sort.SliceStable(pending, func(i, j int) bool {
		mi, mj := pending[i][rightmost(pending[i])], pending[j][rightmost(pending[j])]
		if mi.X != mj.X {
			return mi.X > mj.X
		}
		return mi.Y < mj.Y
	})

	for len(pending) > 0 {
		hole := pending[0]
		pending = pending[1:]
		m := rightmost(hole)
		M := hole[m]

		at := visibleVertex(ring, M, hole, pending)
		if at < 0 {
			return nil, errNoBridge
		}
		P := ring[at]
		next := make([]pt, 0, len(ring)+len(hole)+2)
		next = append(next, ring[:at+1]...)
		next = append(next, hole[m:]...)
		next = append(next, hole[:m]...)
		next = append(next, M, P)
		next = append(next, ring[at+1:]...)
		ring = dedupe(next)
	}
	return ring, nil
}

func rightmost(ring []pt) int {
	best := 0
	for i, p := range ring {
		if p.X > ring[best].X || (p.X == ring[best].X && p.Y < ring[best].Y) {
			best = i
		}
	}
	return best
}

// visibleVertex finds the closest ring vertex that M can be joined to
// without leaving the polygon.
func visibleVertex(ring []pt, M pt, hole []pt, others [][]pt) int {
	best := -1
	var bestDist int64
	for i, P := range ring {
		if P == M {
			return i
		}
		d := P.sub(M)
		dist := dot(d, d)
		if best >= 0 && dist >= bestDist {
			continue
		}
		if !inWedge(ring, i, M) {
			continue
		}
		if blocked(M, P, ring) || blocked(M, P, hole) {
			continue
		}
		hidden := false
		for _, o := range others {
			if blocked(M, P, o) {
				hidden = true
				break
			}
		}
		if hidden {
			continue
		}
		mx, my := float64(M.X+P.X)/2, float64(M.Y+P.Y)/2
		if !insideRing(ring, mx, my) || insideRing(hole, mx, my) {
			continue
		}
		best, bestDist = i, dist
	}
	return best
}

// inWedge reports whether x lies in the interior angle of ring at i.
func inWedge(ring []pt, i int, x pt) bool {
	return inAngle(ring[(i+len(ring)-1)%len(ring)], ring[i], ring[(i+1)%len(ring)], x)
}

// blocked reports whether segment m-p properly crosses an edge of ring or
// passes through one of its vertices.
func blocked(m, p pt, ring []pt) bool {
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		if a != m && a != p && onOpenSegment(a, m, p) {
			return true
		}
		o1, o2 := cross(m, p, a), cross(m, p, b)
		o3, o4 := cross(a, b, m), cross(a, b, p)
		if ((o1 > 0 && o2 < 0) || (o1 < 0 && o2 > 0)) && ((o3 > 0 && o4 < 0) || (o3 < 0 && o4 > 0)) {
			return true
		}
	}
	return false
}

func onOpenSegment(x, a, b pt) bool {
	if cross(a, b, x) != 0 {
		return false
	}
	return dot(x.sub(a), b.sub(a)) > 0 && dot(x.sub(b), a.sub(b)) > 0
}

// dedupe removes consecutive repeated vertices, including across the seam.
func dedupe(ring []pt) []pt {
	out := ring[:0:0]
	for _, p := range ring {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// triangulate ear-clips a positively wound, weakly simple ring. Candidates
// are scanned from the end of the ring when backward is set.
func triangulate(ring []pt, backward bool) ([][]pt, error) {
	poly := make([]int, len(ring))
	for i := range poly {
		poly[i] = i
	}
	var tris [][]pt
	for len(poly) > 3 {
		n := len(poly)
		clipped := false
		for i := 0; i < n; i++ {
			k := i
			if backward {
				k = n - 1 - i
			}
			a, b, c := ring[poly[(k+n-1)%n]], ring[poly[k]], ring[poly[(k+1)%n]]
			cr := cross(a, b, c)
			// A straight vertex shared with a bridge still anchors the cut.
			if cr == 0 && (dot(b.sub(a), c.sub(b)) <= 0 || !shared(ring, poly, k)) {
				poly = append(poly[:k], poly[k+1:]...)
				clipped = true
				break
			}
			if cr <= 0 || !isEar(ring, poly, k) {
				continue
			}
			tris = append(tris, []pt{a, b, c})
			poly = append(poly[:k], poly[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, errNoEar
		}
	}
	if len(poly) == 3 {
		a, b, c := ring[poly[0]], ring[poly[1]], ring[poly[2]]
		switch cr := cross(a, b, c); {
		case cr > 0:
			tris = append(tris, []pt{a, b, c})
		case cr < 0:
			return nil, errWinding
		}
	}
	return tris, nil
}

// shared reports whether another remaining vertex sits on poly[k].
func shared(ring []pt, poly []int, k int) bool {
	for j := range poly {
		if j != k && ring[poly[j]] == ring[poly[k]] {
			return true
		}
	}
	return false
}

// isEar checks that the triangle at poly[k] can be cut off. No other
// remaining vertex may lie inside or on it, and a vertex repeating one of its
// corners must keep both its edges and its interior angle out of the
// triangle.
func isEar(ring []pt, poly []int, k int) bool {
	n := len(poly)
	ia, ib, ic := (k+n-1)%n, k, (k+1)%n
	a, b, c := ring[poly[ia]], ring[poly[ib]], ring[poly[ic]]
	for j := range poly {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := ring[poly[j]]
		var x, y, z pt
		switch p {
		case a:
			x, y, z = a, b, c
		case b:
			x, y, z = b, c, a
		case c:
			x, y, z = c, a, b
		default:
			if cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0 {
				return false
			}
			continue
		}
		prev, next := ring[poly[(j+n-1)%n]], ring[poly[(j+1)%n]]
		for _, q := range [2]pt{prev, next} {
			if q != x && cross(x, y, q) > 0 && cross(z, x, q) > 0 {
				return false
			}
		}
		// a point along the ray from x through the triangle's centroid
		g := pt{a.X + b.X + c.X - 2*x.X, a.Y + b.Y + c.Y - 2*x.Y}
		if inAngle(prev, x, next, g) {
			return false
		}
	}
	return true
}

// inAngle reports whether q lies strictly inside the interior angle a-b-c.
func inAngle(a, b, c, q pt) bool {
	left1 := cross(a, b, q) > 0
	left2 := cross(b, c, q) > 0
	if cross(a, b, c) >= 0 {
		return left1 && left2
	}
	return left1 || left2
}

type edgeKey struct {
	a, b pt
}

// mergeConvex greedily removes diagonals between adjacent pieces while the
// union stays convex (Hertel-Mehlhorn).
func mergeConvex(tris [][]pt) [][]pt {
	polys := make([][]pt, len(tris))
	copy(polys, tris)
	alive := make([]bool, len(polys))
	owner := make(map[edgeKey]int, len(polys)*3)
	register := func(i int) {
		p := polys[i]
		for j := range p {
			owner[edgeKey{p[j], p[(j+1)%len(p)]}] = i
		}
	}
	unregister := func(i int) {
		p := polys[i]
		for j := range p {
			k := edgeKey{p[j], p[(j+1)%len(p)]}
			if owner[k] == i {
				delete(owner, k)
			}
		}
	}
	for i := range polys {
		alive[i] = true
		register(i)
	}

	for changed := true; changed; {
		changed = false
		for i := range polys {
			if !alive[i] {
				continue
			}
			for j := 0; j < len(polys[i]); j++ {
				p := polys[i]
				u, v := p[j], p[(j+1)%len(p)]
				k, ok := owner[edgeKey{v, u}]
				if !ok || k == i || !alive[k] {
					continue
				}
				merged, ok := join(p, j, polys[k])
				if !ok || !convex(merged) {
					continue
				}
				unregister(i)
				unregister(k)
				polys[i] = merged
				alive[k] = false
				register(i)
				changed = true
				j = -1
			}
		}
	}

	var out [][]pt
	for i, p := range polys {
		if alive[i] {
			out = append(out, straighten(p))
		}
	}
	return out
}

// join glues q onto p across p's edge j, which q holds reversed.
func join(p []pt, j int, q []pt) ([]pt, bool) {
	u, v := p[j], p[(j+1)%len(p)]
	at := -1
	for i := range q {
		if q[i] == v && q[(i+1)%len(q)] == u {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, false
	}
	out := make([]pt, 0, len(p)+len(q)-2)
	for i := 0; i < len(p); i++ {
		out = append(out, p[(j+1+i)%len(p)])
	}
	for i := 2; i < len(q); i++ {
		out = append(out, q[(at+i)%len(q)])
	}
	return out, true
}

// convex accepts straight vertices but rejects reflex corners and spikes.
func convex(p []pt) bool {
	n := len(p)
	if n < 3 {
		return false
	}
	for i := range p {
		a, b, c := p[(i+n-1)%n], p[i], p[(i+1)%n]
		cr := cross(a, b, c)
		if cr < 0 {
			return false
		}
		if cr == 0 && dot(b.sub(a), c.sub(b)) <= 0 {
			return false
		}
	}
	return area2(p) > 0
}

// straighten drops vertices lying on a straight edge.
func straighten(p []pt) []pt {
	out := append([]pt(nil), p...)
	for i := 0; i < len(out) && len(out) > 3; {
		n := len(out)
		a, b, c := out[(i+n-1)%n], out[i], out[(i+1)%n]
		if cross(a, b, c) == 0 {
			out = append(out[:i], out[i+1:]...)
			continue
		}
		i++
	}
	return out
}

// decompose splits a ring into convex pieces. A negatively wound ring is
// flipped and its ears are searched from the far end, so decomposing the
// reversed ring clips in a different order.
func decompose(ring []pt) ([][]pt, error) {
	if len(ring) < 3 {
		return nil, errDegenerate
	}
	total := area2(ring)
	backward := false
	if total < 0 {
		ring, total, backward = reversed(ring), -total, true
	}
	if total == 0 {
		return nil, errDegenerate
	}
	tris, err := triangulate(ring, backward)
	if err != nil {
		return nil, err
	}
	var sum int64
	for _, t := range tris {
		sum += area2(t)
	}
	if sum != total {
		return nil, errAreaDrift
	}
	pieces := mergeConvex(tris)
	for _, p := range pieces {
		if !convex(p) {
			return nil, errNotConvex
		}
	}
	return pieces, nil
}
