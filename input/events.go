// Package input turns raw keyboard, mouse and window events into callbacks
// registered by the running instance.
package input

import "github.com/hajimehoshi/ebiten/v2"

type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	ButtonDown
	ButtonUp
	MouseMove
	Quit
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "key_down"
	case KeyUp:
		return "key_up"
	case ButtonDown:
		return "button_down"
	case ButtonUp:
		return "button_up"
	case MouseMove:
		return "mouse_move"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is one raw input occurrence. Key is set for key events, Button for
// button events and Motion for mouse moves.
type Event struct {
	Kind   EventKind
	Key    ebiten.Key
	Button ebiten.MouseButton
	Motion Motion
}

// Motion is a cursor position with the change since the previous one.
type Motion struct {
	X, Y   float64
	DX, DY float64
}

// Source yields one batch of events per tick and answers held-state queries
// for the same tick.
type Source interface {
	Poll() []Event
	KeyHeld(k ebiten.Key) bool
	ButtonHeld(b ebiten.MouseButton) bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
