// Package instance runs a stack of modal game states. Only the top of the
// stack is ticked; the rest keep their state until they are on top again.
package instance

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isec/input"
)

// Instance is one game state such as a menu, a level or a pause screen.
type Instance interface {
	Name() string
	// FPS is the tick rate requested while the instance runs.
	FPS() int
	Dispatcher() *input.Dispatcher

	// Setup runs once when the instance is pushed.
	Setup(s *Scheduler) error
	// Loop runs once per tick while the instance is on top. dt is the wall
	// time since the previous tick.
	Loop(dt float64) error
	Draw(screen *ebiten.Image)
	// Teardown runs once when the instance leaves the stack.
	Teardown()
}

// Resumer is implemented by instances that need to know when they become
// the running instance again after the ones above them were popped.
type Resumer interface {
	Resume()
}

const DefaultFPS = 60

// Base provides the bookkeeping of an Instance with no-op lifecycle hooks.
// Concrete instances embed it and override what they need.
type Base struct {
	name   string
	fps    int
	events *input.Dispatcher
}

func NewBase(name string, fps int) Base {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return Base{name: name, fps: fps, events: input.NewDispatcher()}
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) FPS() int {
	return b.fps
}

// SetFPS changes the requested rate; the scheduler applies it the next time
// the instance becomes the running one.
func (b *Base) SetFPS(fps int) {
	if fps > 0 {
		b.fps = fps
	}
}

func (b *Base) Dispatcher() *input.Dispatcher {
	if b.events == nil {
		b.events = input.NewDispatcher()
	}
	return b.events
}

func (b *Base) Setup(*Scheduler) error {
	return nil
}

func (b *Base) Loop(float64) error {
	return nil
}

func (b *Base) Draw(*ebiten.Image) {}

func (b *Base) Teardown() {}
