// Package terrain turns a CollisionMap into a small set of convex static
// bodies. Per-tile boxes leave seams that catch moving bodies; merging the
// solid cells into outlines and decomposing those avoids them.
package terrain

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
	"github.com/milk9111/isec/entity"
	"github.com/milk9111/isec/physics"
	"github.com/milk9111/isec/position"
	"github.com/milk9111/isec/tilemap"
)

const (
	DefaultRadius = 4.0
	Tag           = "terrain"
)

var outlineColor = color.RGBA{R: 0x40, G: 0xe0, B: 0x60, A: 0xff}

// Builder configures terrain generation.
type Builder struct {
	TileSize float64
	// Radius rounds the corners of every piece so bodies slide across the
	// seams between neighbours.
	Radius  float64
	Profile physics.ShapeProfile
	// Visible makes colliders draw their outline.
	Visible bool

	logger *log.Logger
}

type Option func(*Builder)

func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

func NewBuilder(tileSize float64, opts ...Option) *Builder {
	b := &Builder{
		TileSize: tileSize,
		Radius:   DefaultRadius,
		Profile:  physics.DefaultProfile(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Polygons returns the convex pieces covering the solid cells of m in world
// units, each wound with positive signed area.
func (b *Builder) Polygons(m tilemap.CollisionMap) ([][]cp.Vector, error) {
	if b.TileSize <= 0 {
		return nil, common.Configf("terrain: tile size %v", b.TileSize)
	}
	regions, orphans := groupRegions(traceLoops(m))
	if orphans > 0 {
		b.logger.Warn("terrain: holes outside any region", "count", orphans)
	}

	var out [][]cp.Vector
	for i, r := range regions {
		pieces, err := b.decomposeRegion(r)
		if err != nil {
			minX, minY, maxX, maxY := bounds(r.outer)
			return nil, &common.TopologyError{
				Polygon: i,
				MinX:    b.world(minX),
				MinY:    b.world(minY),
				MaxX:    b.world(maxX),
				MaxY:    b.world(maxY),
				Err:     err,
			}
		}
		for _, p := range pieces {
			out = append(out, b.toWorld(p))
		}
	}
	b.logger.Debug("terrain: decomposed", "regions", len(regions), "polygons", len(out))
	return out, nil
}

// decomposeRegion bridges the region's holes and decomposes the result,
// retrying once with the vertex order reversed.
func (b *Builder) decomposeRegion(r region) ([][]pt, error) {
	ring, err := bridgeHoles(r.outer, r.holes)
	if err != nil {
		return nil, err
	}
	pieces, err := decompose(ring)
	if err == nil {
		return pieces, nil
	}
	b.logger.Debug("terrain: retrying reversed", "err", err)
	pieces, rerr := decompose(reversed(ring))
	if rerr != nil {
		return nil, errors.Join(err, rerr)
	}
	return pieces, nil
}

// world maps a lattice corner to world units. Corners sit half a cell off
// the grid, so grid*ts + ts/2 reduces to corner*ts.
func (b *Builder) world(c int) float64 {
	return float64(c) * b.TileSize
}

func (b *Builder) toWorld(p []pt) []cp.Vector {
	out := make([]cp.Vector, len(p))
	for i, v := range p {
		out[i] = cp.Vector{X: b.world(v.X), Y: b.world(v.Y)}
	}
	return out
}

func bounds(ring []pt) (minX, minY, maxX, maxY int) {
	minX, minY = math.MaxInt, math.MaxInt
	maxX, maxY = math.MinInt, math.MinInt
	for _, p := range ring {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return
}

// Build creates one static collider per convex piece. The colliders are not
// yet in any world; adding them to a scene enrolls their bodies.
func (b *Builder) Build(m tilemap.CollisionMap) ([]*Collider, error) {
	polys, err := b.Polygons(m)
	if err != nil {
		return nil, err
	}
	out := make([]*Collider, 0, len(polys))
	for _, p := range polys {
		out = append(out, b.collider(p))
	}
	b.logger.Info("terrain: built colliders", "count", len(out), "tiles", m.Count())
	return out, nil
}

func (b *Builder) collider(poly []cp.Vector) *Collider {
	centre := centroid(poly)
	local := make([]cp.Vector, len(poly))
	for i, v := range poly {
		local[i] = v.Sub(centre)
	}
	body := position.NewBody(centre, position.BodyConfig{
		Type:    position.BodyStatic,
		Profile: b.Profile,
	})
	body.AddPolygon(local, b.Radius)
	return &Collider{
		Base:    entity.New(body, nil, Tag),
		Body:    body,
		Local:   local,
		Visible: b.Visible,
	}
}

func centroid(poly []cp.Vector) cp.Vector {
	var c cp.Vector
	for _, v := range poly {
		c = c.Add(v)
	}
	return c.Mult(1 / float64(len(poly)))
}

// Collider is a terrain entity holding one convex polygon.
type Collider struct {
	*entity.Base
	Body *position.Body
	// Local holds the polygon relative to the body position.
	Local   []cp.Vector
	Visible bool
}

// Polygon returns the collider outline in world units.
func (c *Collider) Polygon() []cp.Vector {
	p := c.Body.Pos()
	out := make([]cp.Vector, len(c.Local))
	for i, v := range c.Local {
		out[i] = v.Add(p)
	}
	return out
}

func (c *Collider) Draw(dst *ebiten.Image, view image.Rectangle, screen cp.Vector) bool {
	if !c.Visible || len(c.Local) < 2 {
		return false
	}
	for i, a := range c.Local {
		b := c.Local[(i+1)%len(c.Local)]
		ebitenutil.DrawLine(dst, screen.X+a.X, screen.Y+a.Y, screen.X+b.X, screen.Y+b.Y, outlineColor)
	}
	return true
}
