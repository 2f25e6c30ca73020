package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestHandleStoreRecycles(t *testing.T) {
	var s handleStore
	a := s.create()
	b := s.create()
	if a == b || !s.isAlive(a) || !s.isAlive(b) {
		t.Fatalf("expected two distinct live handles, got %v %v", a, b)
	}
	if !s.destroy(a) {
		t.Fatalf("destroy should succeed for live handle")
	}
	if s.destroy(a) {
		t.Fatalf("second destroy should be a no-op")
	}
	c := s.create()
	if c.ID != a.ID || c.Gen == a.Gen {
		t.Fatalf("expected recycled id with new generation, got %v from %v", c, a)
	}
	if s.isAlive(a) {
		t.Fatalf("stale handle should not be alive")
	}
}

func newBox(mass, size float64) (*cp.Body, *cp.Shape) {
	body := cp.NewBody(mass, cp.MomentForBox(mass, size, size))
	shape := cp.NewBox(body, size, size, 0)
	return body, shape
}

func TestWorldAddRemove(t *testing.T) {
	w := NewWorld(DefaultConfig())
	body, shape := newBox(1, 10)
	h := w.Add(body, shape)

	cases := []struct {
		name  string
		check func(t *testing.T)
	}{
		{"contains", func(t *testing.T) {
			if !w.Contains(h) || w.Len() != 1 {
				t.Fatalf("expected body in world")
			}
		}},
		{"owner", func(t *testing.T) {
			got, ok := w.Owner(shape)
			if !ok || got != h {
				t.Fatalf("Owner = %v,%v want %v", got, ok, h)
			}
		}},
		{"re_add_returns_same_handle", func(t *testing.T) {
			if again := w.Add(body); again != h || w.Len() != 1 {
				t.Fatalf("re-adding a body should not duplicate it")
			}
		}},
		{"remove", func(t *testing.T) {
			if !w.Remove(h) {
				t.Fatalf("Remove should succeed")
			}
			if w.Contains(h) {
				t.Fatalf("body should be gone")
			}
			if _, ok := w.Owner(shape); ok {
				t.Fatalf("shape should be unmapped after removal")
			}
		}},
		{"double_remove_noop", func(t *testing.T) {
			if w.Remove(h) {
				t.Fatalf("second Remove should be a no-op")
			}
		}},
		{"attach_to_stale", func(t *testing.T) {
			_, extra := newBox(1, 4)
			if err := w.AttachShape(h, extra); err != ErrStaleHandle {
				t.Fatalf("expected ErrStaleHandle, got %v", err)
			}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, c.check)
	}
}

func TestWorldStepIntegratesGravity(t *testing.T) {
	w := NewWorld(Config{Gravity: cp.Vector{Y: 100}, Damping: 1, Iterations: 10})
	body, shape := newBox(1, 10)
	body.SetPosition(cp.Vector{X: 0, Y: 0})
	w.Add(body, shape)

	for i := 0; i < 10; i++ {
		w.Step(1.0 / 60.0)
	}
	if body.Position().Y <= 0 {
		t.Fatalf("expected body to fall, y=%v", body.Position().Y)
	}
}

func TestRemoveDuringStepIsQueued(t *testing.T) {
	const (
		typeWall cp.CollisionType = iota + 1
		typeBall
	)
	w := NewWorld(DefaultConfig())

	wall := cp.NewStaticBody()
	wall.SetPosition(cp.Vector{})
	wallShape := cp.NewCircle(wall, 10, cp.Vector{})
	wallShape.SetCollisionType(typeWall)
	wallHandle := w.Add(wall, wallShape)

	ball := cp.NewBody(1, cp.MomentForCircle(1, 0, 10, cp.Vector{}))
	ball.SetPosition(cp.Vector{X: 5})
	ballShape := cp.NewCircle(ball, 10, cp.Vector{})
	ballShape.SetCollisionType(typeBall)
	ballHandle := w.Add(ball, ballShape)

	hits := 0
	w.OnCollision(typeWall, typeBall, CollisionHandlers{
		Begin: func(c Contact) bool {
			hits++
			if c.A != wallHandle || c.B != ballHandle {
				t.Errorf("unexpected contact handles %v %v", c.A, c.B)
			}
			if !w.Stepping() {
				t.Errorf("callback should run while stepping")
			}
			w.Remove(c.B)
			return false
		},
	})

	w.Step(1.0 / 60.0)
	if hits != 1 {
		t.Fatalf("expected one begin callback, got %d", hits)
	}
	if w.Contains(ballHandle) || w.Len() != 1 {
		t.Fatalf("ball should have been removed after the step")
	}
	w.Step(1.0 / 60.0)
	if hits != 1 {
		t.Fatalf("removed body should not collide again")
	}
}
