package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSource polls ebiten once per tick. Window close requests become Quit
// events when the runner has enabled ebiten.SetWindowClosingHandled.
type EbitenSource struct {
	keys []ebiten.Key

	lastX, lastY int
	seen         bool
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (s *EbitenSource) Poll() []Event {
	var out []Event

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		out = append(out, Event{Kind: KeyDown, Key: k})
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		out = append(out, Event{Kind: KeyUp, Key: k})
	}

	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if inpututil.IsMouseButtonJustPressed(b) {
			out = append(out, Event{Kind: ButtonDown, Button: b})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			out = append(out, Event{Kind: ButtonUp, Button: b})
		}
	}

	x, y := ebiten.CursorPosition()
	if s.seen && (x != s.lastX || y != s.lastY) {
		out = append(out, Event{Kind: MouseMove, Motion: Motion{
			X:  float64(x),
			Y:  float64(y),
			DX: float64(x - s.lastX),
			DY: float64(y - s.lastY),
		}})
	}
	s.lastX, s.lastY, s.seen = x, y, true

	if ebiten.IsWindowBeingClosed() {
		out = append(out, Event{Kind: Quit})
	}
	return out
}

func (s *EbitenSource) KeyHeld(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

func (s *EbitenSource) ButtonHeld(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

// ScriptedSource replays events queued by the caller. Held state follows the
// queued presses and releases, so tests and replays drive the dispatcher
// without a window.
type ScriptedSource struct {
	queue   EventQueue
	keys    map[ebiten.Key]bool
	buttons map[ebiten.MouseButton]bool

	x, y float64
}

func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{
		keys:    make(map[ebiten.Key]bool),
		buttons: make(map[ebiten.MouseButton]bool),
	}
}

func (s *ScriptedSource) Press(k ebiten.Key) {
	if s.keys[k] {
		return
	}
	s.keys[k] = true
	s.queue.Push(Event{Kind: KeyDown, Key: k})
}

func (s *ScriptedSource) Release(k ebiten.Key) {
	if !s.keys[k] {
		return
	}
	delete(s.keys, k)
	s.queue.Push(Event{Kind: KeyUp, Key: k})
}

func (s *ScriptedSource) PressButton(b ebiten.MouseButton) {
	if s.buttons[b] {
		return
	}
	s.buttons[b] = true
	s.queue.Push(Event{Kind: ButtonDown, Button: b})
}

func (s *ScriptedSource) ReleaseButton(b ebiten.MouseButton) {
	if !s.buttons[b] {
		return
	}
	delete(s.buttons, b)
	s.queue.Push(Event{Kind: ButtonUp, Button: b})
}

// MoveTo queues a cursor move to (x, y).
func (s *ScriptedSource) MoveTo(x, y float64) {
	s.queue.Push(Event{Kind: MouseMove, Motion: Motion{X: x, Y: y, DX: x - s.x, DY: y - s.y}})
	s.x, s.y = x, y
}

func (s *ScriptedSource) Quit() {
	s.queue.Push(Event{Kind: Quit})
}

func (s *ScriptedSource) Poll() []Event {
	return s.queue.Drain()
}

func (s *ScriptedSource) KeyHeld(k ebiten.Key) bool {
	return s.keys[k]
}

func (s *ScriptedSource) ButtonHeld(b ebiten.MouseButton) bool {
	return s.buttons[b]
}
