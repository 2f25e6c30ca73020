package instance

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isec/common"
	"github.com/milk9111/isec/input"
)

// ErrTerminated is returned by Push once the scheduler has terminated.
var ErrTerminated = errors.New("scheduler terminated")

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

type frame struct {
	inst Instance
	ran  bool
	quit input.Handle
}

// Scheduler is the instance stack machine. It implements ebiten.Game.
type Scheduler struct {
	stack   []*frame
	current *frame

	source input.Source
	clock  Clock
	last   time.Time
	delta  float64

	width, height int
	setTPS        func(int)

	ticking   bool
	teardowns []Instance
	done      bool
	frames    uint64

	logger *log.Logger
}

type Option func(*Scheduler)

// WithSource sets the input source drained once per tick.
func WithSource(src input.Source) Option {
	return func(s *Scheduler) {
		s.source = src
	}
}

func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLayout sets the logical screen size reported to ebiten.
func WithLayout(w, h int) Option {
	return func(s *Scheduler) {
		s.width, s.height = w, h
	}
}

// WithFrameRateHook is called with the running instance's FPS whenever a
// different instance starts running. The runner passes ebiten.SetTPS.
func WithFrameRateHook(fn func(fps int)) Option {
	return func(s *Scheduler) {
		s.setTPS = fn
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  time.Now,
		width:  1280,
		height: 720,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push sets inst up and places it on top. The instance below stops being
// ticked from the next tick on. A terminated scheduler refuses new instances.
func (s *Scheduler) Push(inst Instance) error {
	if inst == nil {
		return nil
	}
	if s.done {
		return fmt.Errorf("instance: push %s: %w", inst.Name(), ErrTerminated)
	}
	if s.indexOf(inst) >= 0 {
		return fmt.Errorf("instance: push: %w", common.Configf("%q is already on the stack", inst.Name()))
	}
	if err := inst.Setup(s); err != nil {
		return fmt.Errorf("instance: setup %s: %w", inst.Name(), err)
	}
	f := &frame{inst: inst}
	if d := inst.Dispatcher(); d != nil {
		f.quit = d.OnQuit(s.Quit)
	}
	s.stack = append(s.stack, f)
	s.logger.Info("instance pushed", "instance", inst.Name(), "depth", len(s.stack))
	return nil
}

// Pop removes inst from wherever it is on the stack. Popping the last
// instance terminates the scheduler. Instances not on the stack are ignored.
func (s *Scheduler) Pop(inst Instance) {
	i := s.indexOf(inst)
	if i < 0 {
		return
	}
	s.removeAt(i)
	if len(s.stack) == 0 {
		s.terminate()
	}
}

// UnwindTo pops every instance above the topmost one matching pred.
func (s *Scheduler) UnwindTo(pred func(Instance) bool) error {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if !pred(s.stack[i].inst) {
			continue
		}
		for j := len(s.stack) - 1; j > i; j-- {
			s.removeAt(j)
		}
		return nil
	}
	return fmt.Errorf("instance: unwind: %w", common.Lookupf("no instance matches"))
}

// UnwindToName pops every instance above the topmost one named name.
func (s *Scheduler) UnwindToName(name string) error {
	err := s.UnwindTo(func(inst Instance) bool {
		return inst.Name() == name
	})
	if err != nil {
		return fmt.Errorf("instance: unwind: %w", common.Lookupf("no instance named %q on the stack %v", name, s.Stack()))
	}
	return nil
}

// Quit tears every instance down, top first, and terminates.
func (s *Scheduler) Quit() {
	for len(s.stack) > 0 {
		s.removeAt(len(s.stack) - 1)
	}
	s.terminate()
}

func (s *Scheduler) terminate() {
	if !s.done {
		s.logger.Info("scheduler terminated", "frames", s.frames)
	}
	s.done = true
	s.current = nil
	s.flushTeardowns()
}

func (s *Scheduler) removeAt(i int) {
	f := s.stack[i]
	s.stack = append(s.stack[:i], s.stack[i+1:]...)
	if s.current == f {
		s.current = nil
	}
	if d := f.inst.Dispatcher(); d != nil {
		d.Remove(f.quit)
	}
	s.logger.Info("instance popped", "instance", f.inst.Name(), "depth", len(s.stack))
	s.teardowns = append(s.teardowns, f.inst)
	if !s.ticking {
		s.flushTeardowns()
	}
}

func (s *Scheduler) flushTeardowns() {
	for len(s.teardowns) > 0 {
		inst := s.teardowns[0]
		s.teardowns = s.teardowns[1:]
		inst.Teardown()
	}
}

func (s *Scheduler) indexOf(inst Instance) int {
	for i, f := range s.stack {
		if f.inst == inst {
			return i
		}
	}
	return -1
}

// Stack returns the instance names from bottom to top.
func (s *Scheduler) Stack() []string {
	out := make([]string, len(s.stack))
	for i, f := range s.stack {
		out[i] = f.inst.Name()
	}
	return out
}

// Top returns the instance that runs on the next tick.
func (s *Scheduler) Top() Instance {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1].inst
}

func (s *Scheduler) Done() bool {
	return s.done
}

// Delta is the wall time measured by the last tick.
func (s *Scheduler) Delta() float64 {
	return s.delta
}

func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Tick advances the clock, dispatches one batch of input to the running
// instance and calls its Loop. The running instance only changes between
// ticks; pops requested during the tick tear down when it ends.
func (s *Scheduler) Tick() error {
	if s.done {
		return nil
	}
	if len(s.stack) == 0 {
		s.terminate()
		return nil
	}

	now := s.clock()
	if !s.last.IsZero() {
		s.delta = now.Sub(s.last).Seconds()
	}
	s.last = now

	f := s.stack[len(s.stack)-1]
	if f != s.current {
		s.switchTo(f)
	}

	s.ticking = true
	defer func() {
		s.ticking = false
		s.flushTeardowns()
	}()

	if d := f.inst.Dispatcher(); d != nil && s.source != nil {
		d.Dispatch(s.source)
	}
	if s.done || s.indexOf(f.inst) < 0 {
		return nil
	}
	if err := f.inst.Loop(s.delta); err != nil {
		return fmt.Errorf("instance: loop %s: %w", f.inst.Name(), err)
	}
	s.frames++
	return nil
}

func (s *Scheduler) switchTo(f *frame) {
	if f.ran {
		if r, ok := f.inst.(Resumer); ok {
			r.Resume()
		}
		s.logger.Debug("instance resumed", "instance", f.inst.Name())
	}
	f.ran = true
	s.current = f
	if s.setTPS != nil {
		s.setTPS(f.inst.FPS())
	}
}

// Update implements ebiten.Game.
func (s *Scheduler) Update() error {
	if err := s.Tick(); err != nil {
		return err
	}
	if s.done {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game by presenting the running instance.
func (s *Scheduler) Draw(screen *ebiten.Image) {
	if s.current == nil {
		return
	}
	s.current.inst.Draw(screen)
}

func (s *Scheduler) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.width, s.height
}
