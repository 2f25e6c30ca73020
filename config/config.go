// Package config provides YAML-based engine configuration.
package config

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/common"
	"github.com/milk9111/isec/input"
	"github.com/milk9111/isec/physics"
)

// Engine contains all configuration for the engine and its demo.
type Engine struct {
	Window   Window             `yaml:"window"`
	FPS      int                `yaml:"fps"`
	LogLevel string             `yaml:"log_level"`
	Physics  Physics            `yaml:"physics"`
	Terrain  Terrain            `yaml:"terrain"`
	Profiles map[string]Profile `yaml:"profiles"`
	// Controls maps action names to ebiten key names.
	Controls map[string]string `yaml:"controls"`
}

type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Physics defines the simulation parameters of every scene world.
type Physics struct {
	Gravity    Vec     `yaml:"gravity"`
	Damping    float64 `yaml:"damping"`
	Iterations uint    `yaml:"iterations"`
}

// Terrain defines how collision geometry is generated from tile layers.
type Terrain struct {
	TileSize      int     `yaml:"tile_size"`
	Radius        float64 `yaml:"radius"`
	Profile       string  `yaml:"profile"`
	ShowCollision bool    `yaml:"show_collision"`
}

// Profile is a named shape profile. Zero category or mask means all bits.
type Profile struct {
	CollisionType uint    `yaml:"collision_type"`
	Group         uint    `yaml:"group"`
	Category      uint    `yaml:"category"`
	Mask          uint    `yaml:"mask"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Density       float64 `yaml:"density"`
	Sensor        bool    `yaml:"sensor"`
}

// Validate reports the first invalid value as a configuration error.
func (e Engine) Validate() error {
	switch {
	case e.Window.Width <= 0 || e.Window.Height <= 0:
		return common.Configf("window size %dx%d", e.Window.Width, e.Window.Height)
	case e.FPS <= 0:
		return common.Configf("fps %d", e.FPS)
	case e.Physics.Damping <= 0 || e.Physics.Damping > 1:
		return common.Configf("physics damping %v outside (0,1]", e.Physics.Damping)
	case e.Physics.Iterations == 0:
		return common.Configf("physics iterations must be positive")
	case e.Terrain.TileSize <= 0:
		return common.Configf("terrain tile size %d", e.Terrain.TileSize)
	case e.Terrain.Radius < 0:
		return common.Configf("terrain radius %v", e.Terrain.Radius)
	}
	if _, err := log.ParseLevel(e.LogLevel); err != nil {
		return common.Configf("log level %q", e.LogLevel)
	}
	if e.Terrain.Profile != "" {
		if _, ok := e.Profiles[e.Terrain.Profile]; !ok {
			return common.Configf("terrain profile %q is not defined", e.Terrain.Profile)
		}
	}
	for _, name := range sortedKeys(e.Controls) {
		if _, err := input.ParseKey(e.Controls[name]); err != nil {
			return common.Configf("control %q: unknown key %q", name, e.Controls[name])
		}
	}
	return nil
}

// PhysicsConfig converts the physics section for physics.NewWorld.
func (e Engine) PhysicsConfig() physics.Config {
	return physics.Config{
		Gravity:    cp.Vector{X: e.Physics.Gravity.X, Y: e.Physics.Gravity.Y},
		Damping:    e.Physics.Damping,
		Iterations: e.Physics.Iterations,
	}
}

// ShapeProfile resolves a named profile.
func (e Engine) ShapeProfile(name string) (physics.ShapeProfile, error) {
	p, ok := e.Profiles[name]
	if !ok {
		return physics.ShapeProfile{}, fmt.Errorf("config: profile: %w", common.Lookupf("unknown profile %q", name))
	}
	sp := physics.ShapeProfile{
		CollisionType: cp.CollisionType(p.CollisionType),
		Group:         p.Group,
		Category:      p.Category,
		Mask:          p.Mask,
		Friction:      p.Friction,
		Elasticity:    p.Elasticity,
		Density:       p.Density,
		Sensor:        p.Sensor,
	}
	if sp.Category == 0 {
		sp.Category = physics.AllCategories
	}
	if sp.Mask == 0 {
		sp.Mask = physics.AllCategories
	}
	return sp, nil
}

// TerrainProfile is the shape profile used for terrain colliders.
func (e Engine) TerrainProfile() physics.ShapeProfile {
	if p, err := e.ShapeProfile(e.Terrain.Profile); err == nil {
		return p
	}
	return physics.DefaultProfile()
}

// Bindings builds the control bindings.
func (e Engine) Bindings() (*input.Bindings, error) {
	keys := make(map[string]ebiten.Key, len(e.Controls))
	for _, action := range sortedKeys(e.Controls) {
		k, err := input.ParseKey(e.Controls[action])
		if err != nil {
			return nil, fmt.Errorf("config: control %q: %w", action, err)
		}
		keys[action] = k
	}
	return input.NewBindings(keys), nil
}

// Level returns the parsed log level, defaulting to info.
func (e Engine) Level() log.Level {
	l, err := log.ParseLevel(e.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
