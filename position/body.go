package position

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
	"github.com/milk9111/isec/physics"
)

type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyKinematic
	BodyStatic
)

// BodyConfig describes a rigid body before it has shapes.
type BodyConfig struct {
	Type BodyType
	// Mass of a dynamic body. When set, shape densities no longer change it.
	Mass float64
	// FixedRotation gives the body infinite moment so it never spins. Shape
	// densities then only contribute mass.
	FixedRotation bool
	// Profile is applied to shapes added without their own profile. The zero
	// value selects physics.DefaultProfile.
	Profile physics.ShapeProfile
}

// Body delegates its state to a chipmunk body. Shapes are only present in a
// world while the body is, and are removed together with it.
type Body struct {
	body    *cp.Body
	shapes  []*cp.Shape
	profile physics.ShapeProfile
	mass    float64
	moment  float64
	fixed   bool

	// explicit is set when BodyConfig.Mass was given.
	explicit    bool
	// densityMass sums density*area of shapes whose density the body absorbed.
	densityMass float64

	world  *physics.World
	handle physics.Handle
}

func NewBody(pos cp.Vector, cfg BodyConfig) *Body {
	b := &Body{profile: cfg.Profile, mass: cfg.Mass, fixed: cfg.FixedRotation, explicit: cfg.Mass > 0}
	if b.profile == (physics.ShapeProfile{}) {
		b.profile = physics.DefaultProfile()
	}
	switch cfg.Type {
	case BodyStatic:
		b.body = cp.NewStaticBody()
	case BodyKinematic:
		b.body = cp.NewKinematicBody()
	default:
		if b.mass <= 0 {
			b.mass = 1
		}
		moment := 1.0
		if b.fixed {
			moment = math.Inf(1)
		}
		b.body = cp.NewBody(b.mass, moment)
	}
	b.body.SetPosition(pos)
	b.body.UserData = b
	return b
}

// CPBody exposes the chipmunk body.
func (b *Body) CPBody() *cp.Body {
	return b.body
}

func (b *Body) Shapes() []*cp.Shape {
	return b.shapes
}

func (b *Body) Type() BodyType {
	switch b.body.GetType() {
	case cp.BODY_STATIC:
		return BodyStatic
	case cp.BODY_KINEMATIC:
		return BodyKinematic
	default:
		return BodyDynamic
	}
}

// AddShape configures shape with profile (or the body default) and attaches
// it. If the body is already in a world the shape joins it immediately.
func (b *Body) AddShape(shape *cp.Shape, profile ...physics.ShapeProfile) *cp.Shape {
	if shape == nil {
		return nil
	}
	p := b.profile
	if len(profile) > 0 {
		p = profile[0]
	}
	if p.Density > 0 && b.body.GetType() == cp.BODY_DYNAMIC && (b.fixed || b.explicit) {
		// chipmunk would rebuild mass and moment from the density once the
		// shape reaches a space
		if !b.explicit {
			b.densityMass += p.Density * shape.Area()
			b.mass = b.densityMass
			b.body.SetMass(b.mass)
		}
		p.Density = 0
	}
	p.Apply(shape)
	b.shapes = append(b.shapes, shape)
	if b.world != nil {
		if err := b.world.AttachShape(b.handle, shape); err != nil {
			// the world dropped the body; the shape joins on the next AddToWorld
			b.world.Logger().Warn("position: shape not attached", "err", err)
			b.world, b.handle = nil, physics.Handle{}
		}
	}
	return shape
}

// RemoveShape detaches shape from the body and from its world. It reports
// false when shape does not belong to the body.
func (b *Body) RemoveShape(shape *cp.Shape) bool {
	for i, s := range b.shapes {
		if s != shape {
			continue
		}
		b.shapes = append(b.shapes[:i], b.shapes[i+1:]...)
		if b.world != nil {
			b.world.DetachShape(shape)
		}
		return true
	}
	return false
}

// AddBox attaches a box centred on the body.
func (b *Body) AddBox(w, h, radius float64, profile ...physics.ShapeProfile) *cp.Shape {
	b.accumulateMoment(cp.MomentForBox(b.mass, w, h))
	return b.AddShape(cp.NewBox(b.body, w, h, radius), profile...)
}

// AddCircle attaches a circle at offset from the body centre.
func (b *Body) AddCircle(radius float64, offset cp.Vector, profile ...physics.ShapeProfile) *cp.Shape {
	b.accumulateMoment(cp.MomentForCircle(b.mass, 0, radius, offset))
	return b.AddShape(cp.NewCircle(b.body, radius, offset), profile...)
}

// AddPolygon attaches a convex polygon given in body-local coordinates with
// positive winding.
func (b *Body) AddPolygon(verts []cp.Vector, radius float64, profile ...physics.ShapeProfile) *cp.Shape {
	if len(verts) < 3 {
		return nil
	}
	minX, minY, maxX, maxY := verts[0].X, verts[0].Y, verts[0].X, verts[0].Y
	for _, v := range verts[1:] {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	b.accumulateMoment(cp.MomentForBox(b.mass, maxX-minX, maxY-minY))
	return b.AddShape(cp.NewPolyShapeRaw(b.body, len(verts), verts, radius), profile...)
}

func (b *Body) accumulateMoment(m float64) {
	if b.fixed || b.body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	if b.moment == 0 {
		b.moment = m
	} else {
		b.moment += m
	}
	b.body.SetMoment(b.moment)
}

// AddToWorld enrolls the body and its shapes. Adding to the same world twice
// is a no-op; adding to another world first removes it from the current one.
func (b *Body) AddToWorld(w *physics.World) {
	if w == nil || (b.world == w && w.Contains(b.handle)) {
		return
	}
	b.RemoveFromWorld()
	b.world = w
	b.handle = w.Add(b.body, b.shapes...)
}

// RemoveFromWorld takes the body and all its shapes out of its world.
func (b *Body) RemoveFromWorld() {
	if b.world == nil {
		return
	}
	b.world.Remove(b.handle)
	b.world = nil
	b.handle = physics.Handle{}
}

func (b *Body) InWorld() bool {
	return b.world != nil && b.world.Contains(b.handle)
}

func (b *Body) World() *physics.World {
	return b.world
}

func (b *Body) Handle() physics.Handle {
	return b.handle
}

func (b *Body) Pos() cp.Vector {
	return b.body.Position()
}

// SetPos teleports the body.
func (b *Body) SetPos(p cp.Vector) {
	b.body.SetPosition(p)
	b.reindex()
}

func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

// SetVelocity is ignored for static bodies.
func (b *Body) SetVelocity(v cp.Vector) {
	if b.body.GetType() == cp.BODY_STATIC {
		return
	}
	b.body.SetVelocityVector(v)
}

func (b *Body) Angle() float64 {
	return common.Wrap360(common.RadToDeg(b.body.Angle()))
}

// SetAngle teleports the body's rotation.
func (b *Body) SetAngle(deg float64) {
	b.body.SetAngle(common.DegToRad(common.Wrap360(deg)))
	b.reindex()
}

func (b *Body) AngularVelocity() float64 {
	return common.RadToDeg(b.body.AngularVelocity())
}

func (b *Body) SetAngularVelocity(deg float64) {
	if b.body.GetType() == cp.BODY_STATIC {
		return
	}
	b.body.SetAngularVelocity(common.DegToRad(deg))
}

// Teleport moves and rotates the body in one step.
func (b *Body) Teleport(p cp.Vector, deg float64) {
	b.body.SetPosition(p)
	b.body.SetAngle(common.DegToRad(common.Wrap360(deg)))
	b.reindex()
}

func (b *Body) reindex() {
	if b.world != nil && b.body.GetType() == cp.BODY_STATIC {
		b.world.Reindex(b.handle)
	}
}

// Update is a no-op; the world steps the body.
func (b *Body) Update(float64) {}

func (b *Body) Kind() Kind {
	return KindBody
}

func (b *Body) sealed() {}
