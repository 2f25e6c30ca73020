package physics

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
)

var ErrStaleHandle = errors.New("physics: stale handle")

// Config holds the simulation parameters of a World.
type Config struct {
	Gravity    cp.Vector
	Damping    float64
	Iterations uint
}

// DefaultConfig returns chipmunk defaults with no gravity.
func DefaultConfig() Config {
	return Config{Damping: 1, Iterations: 10}
}

// World owns a Chipmunk space and the bodies enrolled in it. Adding or
// removing bodies while the space is stepping is queued until the step ends.
type World struct {
	space  *cp.Space
	store  handleStore
	bodies map[Handle]*worldBody

	bodyToHandle  map[*cp.Body]Handle
	shapeToHandle map[*cp.Shape]Handle

	stepping bool
	pending  []func()

	logger *log.Logger
}

type worldBody struct {
	body   *cp.Body
	shapes []*cp.Shape
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld creates a physics world.
func NewWorld(cfg Config, opts ...Option) *World {
	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = cfg.Iterations
	}
	space.SetGravity(cfg.Gravity)
	if cfg.Damping > 0 {
		space.SetDamping(cfg.Damping)
	}

	w := &World{
		space:         space,
		bodies:        make(map[Handle]*worldBody),
		bodyToHandle:  make(map[*cp.Body]Handle),
		shapeToHandle: make(map[*cp.Shape]Handle),
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Add enrolls body and shapes and returns the body's handle. Adding a body
// that is already enrolled attaches any new shapes to it.
func (w *World) Add(body *cp.Body, shapes ...*cp.Shape) Handle {
	if w == nil || body == nil {
		return Handle{}
	}
	if h, ok := w.bodyToHandle[body]; ok {
		for _, s := range shapes {
			w.AttachShape(h, s)
		}
		return h
	}

	h := w.store.create()
	wb := &worldBody{body: body}
	w.bodies[h] = wb
	w.bodyToHandle[body] = h
	w.queue(func() {
		w.space.AddBody(body)
	})
	for _, s := range shapes {
		w.AttachShape(h, s)
	}
	return h
}

// Logger returns the world's diagnostic logger.
func (w *World) Logger() *log.Logger {
	return w.logger
}

// AttachShape adds shape to the body identified by h.
func (w *World) AttachShape(h Handle, shape *cp.Shape) error {
	if w == nil || shape == nil {
		return nil
	}
	wb, ok := w.bodies[h]
	if !ok || !w.store.isAlive(h) {
		return ErrStaleHandle
	}
	if _, dup := w.shapeToHandle[shape]; dup {
		return nil
	}
	wb.shapes = append(wb.shapes, shape)
	w.shapeToHandle[shape] = h
	w.queue(func() {
		w.space.AddShape(shape)
	})
	return nil
}

// DetachShape removes a single shape from the world, leaving its body.
func (w *World) DetachShape(shape *cp.Shape) bool {
	if w == nil || shape == nil {
		return false
	}
	h, ok := w.shapeToHandle[shape]
	if !ok {
		return false
	}
	delete(w.shapeToHandle, shape)
	if wb := w.bodies[h]; wb != nil {
		for i, s := range wb.shapes {
			if s == shape {
				wb.shapes = append(wb.shapes[:i], wb.shapes[i+1:]...)
				break
			}
		}
	}
	w.queue(func() {
		w.space.RemoveShape(shape)
	})
	return true
}

// Remove takes the body and all of its shapes out of the world. Removing a
// stale handle is a no-op.
func (w *World) Remove(h Handle) bool {
	if w == nil {
		return false
	}
	wb, ok := w.bodies[h]
	if !ok || !w.store.destroy(h) {
		return false
	}
	delete(w.bodies, h)
	delete(w.bodyToHandle, wb.body)
	shapes := append([]*cp.Shape(nil), wb.shapes...)
	for _, s := range shapes {
		delete(w.shapeToHandle, s)
	}
	w.queue(func() {
		for _, s := range shapes {
			w.space.RemoveShape(s)
		}
		w.space.RemoveBody(wb.body)
	})
	return true
}

// Contains reports whether h names a live body.
func (w *World) Contains(h Handle) bool {
	if w == nil {
		return false
	}
	_, ok := w.bodies[h]
	return ok && w.store.isAlive(h)
}

// Body returns the chipmunk body for h.
func (w *World) Body(h Handle) *cp.Body {
	if w == nil {
		return nil
	}
	if wb, ok := w.bodies[h]; ok {
		return wb.body
	}
	return nil
}

// Shapes returns the shapes attached to h.
func (w *World) Shapes(h Handle) []*cp.Shape {
	if w == nil {
		return nil
	}
	if wb, ok := w.bodies[h]; ok {
		return append([]*cp.Shape(nil), wb.shapes...)
	}
	return nil
}

// Owner resolves a shape back to the handle of its body.
func (w *World) Owner(shape *cp.Shape) (Handle, bool) {
	if w == nil || shape == nil {
		return Handle{}, false
	}
	h, ok := w.shapeToHandle[shape]
	return h, ok
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.bodies)
}

// Reindex refreshes the spatial index for a teleported body.
func (w *World) Reindex(h Handle) {
	if w == nil {
		return
	}
	wb, ok := w.bodies[h]
	if !ok {
		return
	}
	w.queue(func() {
		w.space.ReindexShapesForBody(wb.body)
	})
}

// Step advances the simulation by dt and flushes queued mutations.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.stepping = true
	w.space.Step(dt)
	w.stepping = false
	w.flush()
}

// Stepping reports whether the space is inside Step.
func (w *World) Stepping() bool {
	return w != nil && w.stepping
}

func (w *World) queue(fn func()) {
	if w.stepping {
		w.pending = append(w.pending, fn)
		return
	}
	fn()
}

func (w *World) flush() {
	for len(w.pending) > 0 {
		queue := w.pending
		w.pending = nil
		for _, fn := range queue {
			fn()
		}
	}
}
