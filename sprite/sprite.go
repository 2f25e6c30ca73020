// Package sprite holds the visual half of an entity: frames, animation
// timing and the blit technique used to put them on screen.
package sprite

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isec/common"
)

// DefaultState is the state every state sprite starts in.
const DefaultState = "default"

// State is a named animation over a sprite's frames. A zero duration skips
// the frame.
type State struct {
	Durations []float64
	Loop      bool
}

// Sprite is one or more frames drawn with a Technique. A single-frame sprite
// never advances.
type Sprite struct {
	frames    []*ebiten.Image
	caches    []*RotationCache
	technique Technique

	durations []float64
	loop      bool
	frame     int
	elapsed   float64

	states map[string]State
	state  string

	flipX, flipY bool
}

// New creates a single-image sprite. Cached requires NewCached.
func New(img *ebiten.Image, technique Technique) (*Sprite, error) {
	return NewAnimated([]*ebiten.Image{img}, []float64{0}, true, technique)
}

// NewCached creates a single-frame sprite backed by a rotation cache.
func NewCached(cache *RotationCache) (*Sprite, error) {
	return NewAnimatedCached([]*RotationCache{cache}, []float64{0}, true)
}

// NewAnimated creates a sprite cycling through frames.
func NewAnimated(frames []*ebiten.Image, durations []float64, loop bool, technique Technique) (*Sprite, error) {
	if err := validateFrames(len(frames), durations); err != nil {
		return nil, err
	}
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("sprite: new: %w", common.Configf("frame %d is nil", i))
		}
	}
	s := &Sprite{
		frames:    frames,
		durations: durations,
		loop:      loop,
	}
	if err := s.SetTechnique(technique); err != nil {
		return nil, err
	}
	return s, nil
}

// NewAnimatedCached creates an animated sprite whose frames are rotation
// caches. Its technique is Cached but may be switched to any other.
func NewAnimatedCached(caches []*RotationCache, durations []float64, loop bool) (*Sprite, error) {
	if err := validateFrames(len(caches), durations); err != nil {
		return nil, err
	}
	frames := make([]*ebiten.Image, len(caches))
	for i, c := range caches {
		if c == nil {
			return nil, fmt.Errorf("sprite: new: %w", common.Configf("cache %d is nil", i))
		}
		frames[i] = c.Base()
	}
	return &Sprite{
		frames:    frames,
		caches:    caches,
		technique: Cached,
		durations: durations,
		loop:      loop,
	}, nil
}

// NewState creates a sprite with named animations over frames. The default
// state shows the first frame forever unless states overrides it.
func NewState(frames []*ebiten.Image, states map[string]State, technique Technique) (*Sprite, error) {
	def := make([]float64, len(frames))
	if len(def) > 0 {
		def[0] = 1
	}
	all := map[string]State{DefaultState: {Durations: def, Loop: true}}
	for name, st := range states {
		if len(st.Durations) != len(frames) {
			return nil, fmt.Errorf("sprite: new state: %w", common.Configf("state %q has %d durations for %d frames", name, len(st.Durations), len(frames)))
		}
		all[name] = st
	}
	s, err := NewAnimated(frames, all[DefaultState].Durations, all[DefaultState].Loop, technique)
	if err != nil {
		return nil, err
	}
	s.states = all
	s.state = DefaultState
	s.restart()
	return s, nil
}

func validateFrames(n int, durations []float64) error {
	if n == 0 {
		return fmt.Errorf("sprite: new: %w", common.Configf("at least one frame is required"))
	}
	if n != len(durations) {
		return fmt.Errorf("sprite: new: %w", common.Configf("%d frames but %d durations", n, len(durations)))
	}
	for i, d := range durations {
		if d < 0 {
			return fmt.Errorf("sprite: new: %w", common.Configf("frame %d has negative duration", i))
		}
	}
	return nil
}

// SetTechnique changes how the sprite is drawn.
func (s *Sprite) SetTechnique(t Technique) error {
	switch t {
	case Static, Rotated, OptimizedStatic:
	case Cached:
		if s.caches == nil {
			return fmt.Errorf("sprite: set technique: %w", common.Configf("cached technique requires a rotation cache"))
		}
	default:
		return fmt.Errorf("sprite: set technique: %w", common.Lookupf("unknown rendering technique %d", int(t)))
	}
	s.technique = t
	return nil
}

func (s *Sprite) Technique() Technique {
	return s.technique
}

// Frame returns the index of the frame currently shown.
func (s *Sprite) Frame() int {
	return s.frame
}

// Image returns the frame currently shown, unrotated.
func (s *Sprite) Image() *ebiten.Image {
	return s.frames[s.frame]
}

// State returns the active state name, or "" for sprites without states.
func (s *Sprite) State() string {
	return s.state
}

// States lists the available state names in sorted order.
func (s *Sprite) States() []string {
	names := make([]string, 0, len(s.states))
	for name := range s.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SwitchState starts the named animation from its first shown frame.
func (s *Sprite) SwitchState(name string) error {
	st, ok := s.states[name]
	if !ok {
		return fmt.Errorf("sprite: switch state: %w", common.Lookupf("%q is not a state of this sprite (have %v)", name, s.States()))
	}
	if name == s.state {
		return nil
	}
	s.state = name
	s.durations = st.Durations
	s.loop = st.Loop
	s.restart()
	return nil
}

// Flip mirrors the sprite on the given axes.
func (s *Sprite) Flip(x, y bool) {
	s.flipX, s.flipY = x, y
}

func (s *Sprite) Flipped() (bool, bool) {
	return s.flipX, s.flipY
}

func (s *Sprite) restart() {
	s.frame = 0
	s.elapsed = 0
	if s.durations[0] == 0 {
		s.skipEmpty()
	}
}

// Update advances the animation by dt seconds.
func (s *Sprite) Update(dt float64) {
	if len(s.frames) < 2 || s.durations[s.frame] == 0 {
		return
	}
	s.elapsed += dt
	for s.durations[s.frame] > 0 && s.elapsed >= s.durations[s.frame] {
		s.elapsed -= s.durations[s.frame]
		if !s.advance() {
			s.elapsed = 0
			return
		}
		s.skipEmpty()
	}
}

// advance moves to the next frame and reports whether it moved.
func (s *Sprite) advance() bool {
	next := s.frame + 1
	if next >= len(s.frames) {
		if !s.loop {
			return false
		}
		next = 0
	}
	s.frame = next
	return true
}

// skipEmpty steps over zero-duration frames, stopping after one full lap.
func (s *Sprite) skipEmpty() {
	for i := 0; i < len(s.frames) && s.durations[s.frame] == 0; i++ {
		if !s.advance() {
			return
		}
	}
}
