package position

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
)

// Static is a point that only moves when explicitly set.
type Static struct {
	pos   cp.Vector
	angle float64
}

func NewStatic(pos cp.Vector, angle float64) *Static {
	return &Static{pos: pos, angle: common.Wrap360(angle)}
}

func (s *Static) Pos() cp.Vector {
	return s.pos
}

func (s *Static) SetPos(p cp.Vector) {
	s.pos = p
}

// Velocity is always zero.
func (s *Static) Velocity() cp.Vector {
	return cp.Vector{}
}

func (s *Static) SetVelocity(cp.Vector) {}

func (s *Static) Angle() float64 {
	return s.angle
}

func (s *Static) SetAngle(deg float64) {
	s.angle = common.Wrap360(deg)
}

func (s *Static) AngularVelocity() float64 {
	return 0
}

func (s *Static) SetAngularVelocity(float64) {}

func (s *Static) Update(float64) {}

func (s *Static) Kind() Kind {
	return KindStatic
}

func (s *Static) sealed() {}
