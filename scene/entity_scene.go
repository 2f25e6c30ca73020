// Package scene drives entities, the physics world and tile layers through
// one deterministic update and render pass per frame.
package scene

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/camera"
	"github.com/milk9111/isec/entity"
	"github.com/milk9111/isec/physics"
	"github.com/milk9111/isec/position"
)

const DefaultFPS = 60

var lastSceneID atomic.Uint64

// EntityScene owns one physics world and an ordered entity list. List order
// is render order.
type EntityScene struct {
	id       uint64
	world    *physics.World
	entities []entity.Entity
	byHandle map[physics.Handle]entity.Entity

	fixedDT   float64
	updating  bool
	debugDraw bool

	logger *log.Logger
}

type Option func(*EntityScene)

func WithLogger(l *log.Logger) Option {
	return func(s *EntityScene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebugDraw overlays the physics shapes after the entities.
func WithDebugDraw(on bool) Option {
	return func(s *EntityScene) {
		s.debugDraw = on
	}
}

// NewEntityScene creates a scene stepping its world at 1/fps per update.
func NewEntityScene(cfg physics.Config, fps int, opts ...Option) *EntityScene {
	if fps <= 0 {
		fps = DefaultFPS
	}
	s := &EntityScene{
		id:       lastSceneID.Add(1),
		byHandle: make(map[physics.Handle]entity.Entity),
		fixedDT:  1 / float64(fps),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.world = physics.NewWorld(cfg, physics.WithLogger(s.logger))
	return s
}

func (s *EntityScene) ID() uint64 {
	return s.id
}

func (s *EntityScene) World() *physics.World {
	return s.world
}

// FixedDT is the step every update uses regardless of wall time.
func (s *EntityScene) FixedDT() float64 {
	return s.fixedDT
}

func (s *EntityScene) SetDebugDraw(on bool) {
	s.debugDraw = on
}

// Entities returns a copy of the entity list in render order.
func (s *EntityScene) Entities() []entity.Entity {
	return append([]entity.Entity(nil), s.entities...)
}

func (s *EntityScene) Len() int {
	return len(s.entities)
}

func (s *EntityScene) indexOf(e entity.Entity) int {
	if e == nil {
		return -1
	}
	core := e.Core()
	for i, x := range s.entities {
		if x.Core() == core {
			return i
		}
	}
	return -1
}

func (s *EntityScene) Contains(e entity.Entity) bool {
	return s.indexOf(e) >= 0
}

// Add appends entities and enrolls physics bodies into the scene's world.
// Entities already in this scene are skipped; entities owned by another
// scene are rejected.
func (s *EntityScene) Add(es ...entity.Entity) {
	for _, e := range es {
		if e == nil || e.Core() == nil || s.indexOf(e) >= 0 {
			continue
		}
		core := e.Core()
		if !core.Attach(s.id) {
			s.logger.Warn("scene: entity belongs to another scene", "tag", core.Tag, "owner", core.SceneID())
			continue
		}
		if body, ok := core.Position.(*position.Body); ok {
			body.AddToWorld(s.world)
			s.byHandle[body.Handle()] = e
		}
		s.entities = append(s.entities, e)
	}
}

// Remove drops entities. During an update pass they are only flagged and
// leave the list when the pass ends. Absent entities are ignored.
func (s *EntityScene) Remove(es ...entity.Entity) {
	for _, e := range es {
		i := s.indexOf(e)
		if i < 0 {
			continue
		}
		if s.updating {
			e.Core().MarkForRemoval()
			continue
		}
		s.removeAt(i)
	}
}

// RemoveByTag removes every entity carrying tag and returns how many matched.
func (s *EntityScene) RemoveByTag(tag string) int {
	var matched []entity.Entity
	for _, e := range s.entities {
		if e.Core().Tag == tag {
			matched = append(matched, e)
		}
	}
	s.Remove(matched...)
	return len(matched)
}

func (s *EntityScene) removeAt(i int) {
	e := s.entities[i]
	s.entities = append(s.entities[:i], s.entities[i+1:]...)
	core := e.Core()
	if body, ok := core.Position.(*position.Body); ok {
		delete(s.byHandle, body.Handle())
		body.RemoveFromWorld()
	}
	core.Detach()
}

// BringToFront moves e to the end of the list so it draws last.
func (s *EntityScene) BringToFront(e entity.Entity) {
	i := s.indexOf(e)
	if i < 0 || i == len(s.entities)-1 {
		return
	}
	e = s.entities[i]
	copy(s.entities[i:], s.entities[i+1:])
	s.entities[len(s.entities)-1] = e
}

// EntityForShape resolves a collision shape to the entity owning its body.
func (s *EntityScene) EntityForShape(shape *cp.Shape) (entity.Entity, bool) {
	h, ok := s.world.Owner(shape)
	if !ok {
		return nil, false
	}
	e, ok := s.byHandle[h]
	return e, ok
}

// Update advances every entity by the fixed step, sweeps removals and steps
// the physics world once. The wall delta is ignored. Removals requested by
// collision callbacks are swept after the step as well.
func (s *EntityScene) Update(float64) {
	if s.updating {
		s.logger.Warn("scene: re-entrant update ignored", "scene", s.id)
		return
	}
	s.updating = true
	defer func() { s.updating = false }()

	for i := 0; i < len(s.entities); i++ {
		e := s.entities[i]
		if e.Core().PendingRemoval() {
			continue
		}
		e.Update(s.fixedDT)
	}
	s.sweep()
	s.world.Step(s.fixedDT)
	s.sweep()
}

func (s *EntityScene) sweep() {
	for i := len(s.entities) - 1; i >= 0; i-- {
		if s.entities[i].Core().PendingRemoval() {
			s.removeAt(i)
		}
	}
}

// Render draws entities in list order relative to cam and returns how many
// drew anything. A nil camera draws at world coordinates.
func (s *EntityScene) Render(dst *ebiten.Image, cam *camera.Camera) int {
	view := dst.Bounds()
	var origin cp.Vector
	if cam != nil {
		origin = cam.Pos()
	}
	drawn := 0
	for _, e := range s.entities {
		core := e.Core()
		if core.PendingRemoval() {
			continue
		}
		var pos cp.Vector
		if core.Position != nil {
			pos = core.Position.Pos()
		}
		if e.Draw(dst, view, pos.Sub(origin)) {
			drawn++
		}
	}
	if s.debugDraw {
		s.world.DebugDraw(dst, origin)
	}
	return drawn
}
