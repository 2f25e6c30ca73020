package physics

import "github.com/jakecoffman/cp"

const (
	// AllCategories matches every collision category bit.
	AllCategories = ^uint(0)
	// NoGroup disables group based filtering.
	NoGroup uint = 0
)

// ShapeProfile is the collision configuration applied to a shape.
type ShapeProfile struct {
	CollisionType cp.CollisionType
	Group         uint
	Category      uint
	Mask          uint
	Friction      float64
	Elasticity    float64
	// Density is applied only when positive; otherwise the body keeps its
	// explicit mass.
	Density float64
	Sensor  bool
}

// DefaultProfile collides with everything and uses moderate surface values.
func DefaultProfile() ShapeProfile {
	return ShapeProfile{
		Group:      NoGroup,
		Category:   AllCategories,
		Mask:       AllCategories,
		Friction:   0.5,
		Elasticity: 0.5,
		Density:    0.5,
	}
}

// Filter returns the chipmunk shape filter for the profile.
func (p ShapeProfile) Filter() cp.ShapeFilter {
	return cp.ShapeFilter{Group: p.Group, Categories: p.Category, Mask: p.Mask}
}

// Apply copies the profile onto shape.
func (p ShapeProfile) Apply(shape *cp.Shape) {
	if shape == nil {
		return
	}
	shape.SetFriction(p.Friction)
	shape.SetElasticity(p.Elasticity)
	shape.SetCollisionType(p.CollisionType)
	shape.SetSensor(p.Sensor)
	shape.SetFilter(p.Filter())
	if p.Density > 0 {
		shape.SetDensity(p.Density)
	}
}
