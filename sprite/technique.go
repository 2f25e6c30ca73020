package sprite

import (
	"fmt"

	"github.com/milk9111/isec/common"
)

// Technique selects how a sprite is blitted.
type Technique int

const (
	// Static draws the frame unrotated, centred on the position.
	Static Technique = iota
	// Rotated rotates the frame on every draw.
	Rotated
	// Cached picks a pre-rotated copy from a RotationCache.
	Cached
	// OptimizedStatic draws only the part of the frame inside the viewport.
	OptimizedStatic
)

var techniqueNames = map[Technique]string{
	Static:          "static",
	Rotated:         "rotated",
	Cached:          "cached",
	OptimizedStatic: "optimized_static",
}

func (t Technique) String() string {
	if name, ok := techniqueNames[t]; ok {
		return name
	}
	return fmt.Sprintf("technique(%d)", int(t))
}

// ParseTechnique maps a technique name to its value.
func ParseTechnique(name string) (Technique, error) {
	for t, n := range techniqueNames {
		if n == name {
			return t, nil
		}
	}
	return Static, fmt.Errorf("sprite: parse technique: %w", common.Lookupf("unknown rendering technique %q", name))
}
