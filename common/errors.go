package common

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports invalid construction input (tileset geometry,
	// unknown tile index, empty solid set, incompatible sprite technique).
	ErrConfiguration = errors.New("configuration error")
	// ErrTopology reports a polygon that could not be decomposed.
	ErrTopology = errors.New("topology error")
	// ErrLookup reports a name or predicate that matched nothing.
	ErrLookup = errors.New("lookup error")
)

// Configf wraps ErrConfiguration with a formatted message.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Lookupf wraps ErrLookup with a formatted message.
func Lookupf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLookup, fmt.Sprintf(format, args...))
}

// TopologyError names the polygon that failed decomposition and its bounds.
type TopologyError struct {
	Polygon                int
	MinX, MinY, MaxX, MaxY float64
	Err                    error
}

func (e *TopologyError) Error() string {
	msg := fmt.Sprintf("topology error: polygon %d bounds (%.1f,%.1f)-(%.1f,%.1f)", e.Polygon, e.MinX, e.MinY, e.MaxX, e.MaxY)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TopologyError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTopology}
	}
	return []error{ErrTopology, e.Err}
}
