package sprite

import (
	"errors"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
)

func TestParseTechnique(t *testing.T) {
	cases := []struct {
		name    string
		want    Technique
		wantErr bool
	}{
		{"static", Static, false},
		{"rotated", Rotated, false},
		{"cached", Cached, false},
		{"optimized_static", OptimizedStatic, false},
		{"wobbly", Static, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseTechnique(c.name)
			if c.wantErr {
				if !errors.Is(err, common.ErrLookup) {
					t.Fatalf("expected lookup error, got %v", err)
				}
				return
			}
			if err != nil || got != c.want {
				t.Fatalf("ParseTechnique(%q) = %v, %v", c.name, got, err)
			}
			if got.String() != c.name {
				t.Fatalf("String() = %q", got.String())
			}
		})
	}
}

func TestRotationCacheIndex(t *testing.T) {
	c := &RotationCache{images: make([]*ebiten.Image, 8), step: 45}
	cases := []struct {
		angle float64
		want  int
	}{
		{0, 0},
		{22, 0},
		{23, 1},
		{90, 2},
		{350, 0},
		{-45, 7},
		{405, 1},
	}
	for _, tc := range cases {
		if got := c.Index(tc.angle); got != tc.want {
			t.Fatalf("Index(%v) = %d, want %d", tc.angle, got, tc.want)
		}
	}
}

func TestCachedRequiresCache(t *testing.T) {
	img := ebiten.NewImage(4, 4)
	if _, err := New(img, Cached); !errors.Is(err, common.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	cache, err := NewRotationCache(img, 4)
	if err != nil {
		t.Fatalf("NewRotationCache: %v", err)
	}
	s, err := NewCached(cache)
	if err != nil || s.Technique() != Cached {
		t.Fatalf("NewCached = %v, %v", s, err)
	}
	if _, err := NewRotationCache(img, 0); !errors.Is(err, common.ErrConfiguration) {
		t.Fatalf("zero steps should be a configuration error, got %v", err)
	}
}

func frames(n int) []*ebiten.Image {
	out := make([]*ebiten.Image, n)
	for i := range out {
		out[i] = ebiten.NewImage(2, 2)
	}
	return out
}

func TestAnimationAdvance(t *testing.T) {
	cases := []struct {
		name      string
		durations []float64
		loop      bool
		steps     []float64
		want      int
	}{
		{"not_yet", []float64{1, 1, 1}, true, []float64{0.5}, 0},
		{"one_frame", []float64{1, 1, 1}, true, []float64{1}, 1},
		{"carry_over", []float64{1, 1, 1}, true, []float64{0.6, 0.6, 0.9}, 2},
		{"loops", []float64{1, 1, 1}, true, []float64{3}, 0},
		{"clamps_without_loop", []float64{1, 1, 1}, false, []float64{10}, 2},
		{"skips_zero_duration", []float64{1, 0, 1}, true, []float64{1}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := NewAnimated(frames(len(c.durations)), c.durations, c.loop, Static)
			if err != nil {
				t.Fatalf("NewAnimated: %v", err)
			}
			for _, dt := range c.steps {
				s.Update(dt)
			}
			if s.Frame() != c.want {
				t.Fatalf("frame = %d, want %d", s.Frame(), c.want)
			}
		})
	}
}

func TestAnimatedValidation(t *testing.T) {
	if _, err := NewAnimated(nil, nil, true, Static); !errors.Is(err, common.ErrConfiguration) {
		t.Fatalf("empty frames should fail, got %v", err)
	}
	if _, err := NewAnimated(frames(2), []float64{1}, true, Static); !errors.Is(err, common.ErrConfiguration) {
		t.Fatalf("mismatched durations should fail, got %v", err)
	}
}

func TestStateSprite(t *testing.T) {
	s, err := NewState(frames(4), map[string]State{
		"run": {Durations: []float64{0, 0, 0.1, 0.1}, Loop: true},
	}, Static)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if s.State() != DefaultState || s.Frame() != 0 {
		t.Fatalf("expected default state on frame 0")
	}
	s.Update(5)
	if s.Frame() != 0 {
		t.Fatalf("default state should hold frame 0, got %d", s.Frame())
	}

	if err := s.SwitchState("run"); err != nil {
		t.Fatalf("SwitchState: %v", err)
	}
	if s.Frame() != 2 {
		t.Fatalf("run should start on its first shown frame, got %d", s.Frame())
	}
	s.Update(0.1)
	if s.Frame() != 3 {
		t.Fatalf("frame = %d, want 3", s.Frame())
	}
	s.Update(0.1)
	if s.Frame() != 2 {
		t.Fatalf("run should loop back to frame 2, got %d", s.Frame())
	}

	if err := s.SwitchState("fly"); !errors.Is(err, common.ErrLookup) {
		t.Fatalf("unknown state should be a lookup error, got %v", err)
	}
	if s.State() != "run" {
		t.Fatalf("failed switch should keep state, got %q", s.State())
	}
}

func TestRenderCulling(t *testing.T) {
	img := ebiten.NewImage(10, 10)
	dst := ebiten.NewImage(100, 100)
	view := image.Rect(0, 0, 100, 100)

	for _, tech := range []Technique{Static, Rotated, OptimizedStatic} {
		t.Run(tech.String(), func(t *testing.T) {
			s, err := New(img, tech)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !s.Render(dst, view, cp.Vector{X: 50, Y: 50}, 30) {
				t.Fatalf("sprite inside view should draw")
			}
			if !s.Render(dst, view, cp.Vector{X: -3, Y: 50}, 0) {
				t.Fatalf("partially visible sprite should draw")
			}
			if s.Render(dst, view, cp.Vector{X: -20, Y: 50}, 0) {
				t.Fatalf("sprite outside view should be culled")
			}
		})
	}
}

func TestBoundsRotatedGrows(t *testing.T) {
	s, err := New(ebiten.NewImage(10, 10), Rotated)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	flat := s.Bounds(cp.Vector{}, 0)
	tilted := s.Bounds(cp.Vector{}, 45)
	if flat.Dx() != 10 || tilted.Dx() <= flat.Dx() {
		t.Fatalf("rotated bounds should grow: %v vs %v", flat, tilted)
	}
}
