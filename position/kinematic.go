package position

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
)

// Kinematic integrates its own motion each tick:
//
//	v += a*dt; v *= damping^dt; p += v*dt
//
// and the same for the angle. A damping of 1 keeps speed constant.
type Kinematic struct {
	pos   cp.Vector
	vel   cp.Vector
	accel cp.Vector

	angle      float64
	angVel     float64
	angAccel   float64
	damping    float64
	angDamping float64
}

func NewKinematic(pos cp.Vector) *Kinematic {
	return &Kinematic{pos: pos, damping: 1, angDamping: 1}
}

func (k *Kinematic) Pos() cp.Vector {
	return k.pos
}

func (k *Kinematic) SetPos(p cp.Vector) {
	k.pos = p
}

func (k *Kinematic) Velocity() cp.Vector {
	return k.vel
}

func (k *Kinematic) SetVelocity(v cp.Vector) {
	k.vel = v
}

func (k *Kinematic) Acceleration() cp.Vector {
	return k.accel
}

func (k *Kinematic) SetAcceleration(a cp.Vector) {
	k.accel = a
}

func (k *Kinematic) Angle() float64 {
	return k.angle
}

func (k *Kinematic) SetAngle(deg float64) {
	k.angle = common.Wrap360(deg)
}

func (k *Kinematic) AngularVelocity() float64 {
	return k.angVel
}

func (k *Kinematic) SetAngularVelocity(deg float64) {
	k.angVel = deg
}

func (k *Kinematic) SetAngularAcceleration(deg float64) {
	k.angAccel = deg
}

// SetDamping sets the per-second retention factors; negative values are
// clamped to zero.
func (k *Kinematic) SetDamping(linear, angular float64) {
	k.damping = math.Max(linear, 0)
	k.angDamping = math.Max(angular, 0)
}

func (k *Kinematic) Update(dt float64) {
	if dt <= 0 {
		return
	}
	k.vel = k.vel.Add(k.accel.Mult(dt))
	k.vel = k.vel.Mult(math.Pow(k.damping, dt))
	k.pos = k.pos.Add(k.vel.Mult(dt))

	k.angVel += k.angAccel * dt
	k.angVel *= math.Pow(k.angDamping, dt)
	k.angle = common.Wrap360(k.angle + k.angVel*dt)
}

func (k *Kinematic) Kind() Kind {
	return KindKinematic
}

func (k *Kinematic) sealed() {}
