package physics

import "github.com/jakecoffman/cp"

// Contact describes one collision pair reported by chipmunk. A and B are the
// handles of the bodies owning the shapes in the order the handler was
// registered; either may be the zero handle for shapes not enrolled via Add.
type Contact struct {
	A, B   Handle
	ShapeA *cp.Shape
	ShapeB *cp.Shape
	Normal cp.Vector
}

// ContactFunc returns false to make chipmunk ignore the collision.
type ContactFunc func(c Contact) bool

// CollisionHandlers groups the callbacks for one pair of collision types.
// Nil callbacks keep chipmunk's default behaviour.
type CollisionHandlers struct {
	Begin    ContactFunc
	PreSolve ContactFunc
	Separate func(c Contact)
}

// OnCollision installs handlers for collisions between types a and b.
func (w *World) OnCollision(a, b cp.CollisionType, hs CollisionHandlers) {
	if w == nil || w.space == nil {
		return
	}
	handler := w.space.NewCollisionHandler(a, b)
	handler.UserData = w
	if hs.Begin != nil {
		begin := hs.Begin
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			world, ok := userData.(*World)
			if !ok || world == nil {
				return true
			}
			return begin(world.contact(arb))
		}
	}
	if hs.PreSolve != nil {
		preSolve := hs.PreSolve
		handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			world, ok := userData.(*World)
			if !ok || world == nil {
				return true
			}
			return preSolve(world.contact(arb))
		}
	}
	if hs.Separate != nil {
		separate := hs.Separate
		handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			world, ok := userData.(*World)
			if !ok || world == nil {
				return
			}
			separate(world.contact(arb))
		}
	}
	w.logger.Debug("collision handler installed", "a", a, "b", b)
}

func (w *World) contact(arb *cp.Arbiter) Contact {
	shapeA, shapeB := arb.Shapes()
	c := Contact{
		ShapeA: shapeA,
		ShapeB: shapeB,
		Normal: arb.Normal(),
	}
	c.A, _ = w.Owner(shapeA)
	c.B, _ = w.Owner(shapeB)
	return c
}
