// Package position implements the motion models an entity can carry: a fixed
// point, a self-integrated kinematic point and a chipmunk rigid body.
package position

import "github.com/jakecoffman/cp"

type Kind int

const (
	KindStatic Kind = iota
	KindKinematic
	KindBody
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindKinematic:
		return "kinematic"
	case KindBody:
		return "body"
	default:
		return "unknown"
	}
}

// Position is the closed set of motion models. Angles are in degrees and
// always reported in [0, 360).
type Position interface {
	Pos() cp.Vector
	SetPos(p cp.Vector)
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	Angle() float64
	SetAngle(deg float64)
	AngularVelocity() float64
	SetAngularVelocity(deg float64)
	// Update advances the model by dt seconds.
	Update(dt float64)
	Kind() Kind

	sealed()
}
