package input

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Handle identifies one registered callback.
type Handle uint64

type entry struct {
	id   Handle
	fn   func()
	move func(Motion)
	dead bool

	// round is the dispatch that was running, or last ran, at registration.
	round uint64
}

type registry[K comparable] struct {
	down    map[K][]*entry
	up      map[K][]*entry
	pressed map[K][]*entry
	// order lists keys with pressed callbacks in first-registration order.
	order []K
}

func newRegistry[K comparable]() registry[K] {
	return registry[K]{
		down:    make(map[K][]*entry),
		up:      make(map[K][]*entry),
		pressed: make(map[K][]*entry),
	}
}

func (r *registry[K]) addPressed(k K, e *entry) {
	if len(r.pressed[k]) == 0 && !slices.Contains(r.order, k) {
		r.order = append(r.order, k)
	}
	r.pressed[k] = append(r.pressed[k], e)
}

func (r *registry[K]) clearKey(k K) {
	for _, m := range []map[K][]*entry{r.down, r.up, r.pressed} {
		for _, e := range m[k] {
			e.dead = true
		}
		delete(m, k)
	}
	r.order = slices.DeleteFunc(r.order, func(x K) bool { return x == k })
}

func (r *registry[K]) remove(e *entry) {
	for _, m := range []map[K][]*entry{r.down, r.up, r.pressed} {
		for k, es := range m {
			if i := slices.Index(es, e); i >= 0 {
				m[k] = slices.Delete(es, i, i+1)
				if len(m[k]) == 0 {
					delete(m, k)
				}
			}
		}
	}
	r.order = slices.DeleteFunc(r.order, func(k K) bool { return len(r.pressed[k]) == 0 })
}

// Dispatcher fans input events out to registered callbacks. Callbacks may
// register or remove callbacks, including themselves, while being fired;
// new callbacks take effect from the next dispatch, whatever key they bind.
type Dispatcher struct {
	last    Handle
	round   uint64
	keys    registry[ebiten.Key]
	buttons registry[ebiten.MouseButton]
	move    []*entry
	quit    []*entry

	entries map[Handle]*entry
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		keys:    newRegistry[ebiten.Key](),
		buttons: newRegistry[ebiten.MouseButton](),
		entries: make(map[Handle]*entry),
	}
}

func (d *Dispatcher) newEntry(fn func()) *entry {
	d.last++
	e := &entry{id: d.last, fn: fn, round: d.round}
	d.entries[e.id] = e
	return e
}

// OnKeyDown fires once when k goes down.
func (d *Dispatcher) OnKeyDown(k ebiten.Key, fn func()) Handle {
	e := d.newEntry(fn)
	d.keys.down[k] = append(d.keys.down[k], e)
	return e.id
}

// OnKeyUp fires once when k is released.
func (d *Dispatcher) OnKeyUp(k ebiten.Key, fn func()) Handle {
	e := d.newEntry(fn)
	d.keys.up[k] = append(d.keys.up[k], e)
	return e.id
}

// OnKeyPressed fires every tick k is held.
func (d *Dispatcher) OnKeyPressed(k ebiten.Key, fn func()) Handle {
	e := d.newEntry(fn)
	d.keys.addPressed(k, e)
	return e.id
}

func (d *Dispatcher) OnButtonDown(b ebiten.MouseButton, fn func()) Handle {
	e := d.newEntry(fn)
	d.buttons.down[b] = append(d.buttons.down[b], e)
	return e.id
}

func (d *Dispatcher) OnButtonUp(b ebiten.MouseButton, fn func()) Handle {
	e := d.newEntry(fn)
	d.buttons.up[b] = append(d.buttons.up[b], e)
	return e.id
}

func (d *Dispatcher) OnButtonPressed(b ebiten.MouseButton, fn func()) Handle {
	e := d.newEntry(fn)
	d.buttons.addPressed(b, e)
	return e.id
}

// OnMouseMove receives the cursor position and its relative motion.
func (d *Dispatcher) OnMouseMove(fn func(Motion)) Handle {
	e := d.newEntry(nil)
	e.move = fn
	d.move = append(d.move, e)
	return e.id
}

// OnQuit fires when the window asks to close.
func (d *Dispatcher) OnQuit(fn func()) Handle {
	e := d.newEntry(fn)
	d.quit = append(d.quit, e)
	return e.id
}

// Remove unregisters one callback. Unknown handles are ignored.
func (d *Dispatcher) Remove(h Handle) bool {
	e, ok := d.entries[h]
	if !ok {
		return false
	}
	delete(d.entries, h)
	e.dead = true
	d.keys.remove(e)
	d.buttons.remove(e)
	d.move = slices.DeleteFunc(d.move, func(x *entry) bool { return x == e })
	d.quit = slices.DeleteFunc(d.quit, func(x *entry) bool { return x == e })
	return true
}

// RemoveKeyBinding drops every down, up and pressed callback for k.
func (d *Dispatcher) RemoveKeyBinding(k ebiten.Key) {
	for _, m := range []map[ebiten.Key][]*entry{d.keys.down, d.keys.up, d.keys.pressed} {
		for _, e := range m[k] {
			delete(d.entries, e.id)
		}
	}
	d.keys.clearKey(k)
}

func (d *Dispatcher) RemoveButtonBinding(b ebiten.MouseButton) {
	for _, m := range []map[ebiten.MouseButton][]*entry{d.buttons.down, d.buttons.up, d.buttons.pressed} {
		for _, e := range m[b] {
			delete(d.entries, e.id)
		}
	}
	d.buttons.clearKey(b)
}

// Clear drops every callback.
func (d *Dispatcher) Clear() {
	for _, e := range d.entries {
		e.dead = true
	}
	d.keys = newRegistry[ebiten.Key]()
	d.buttons = newRegistry[ebiten.MouseButton]()
	d.move = nil
	d.quit = nil
	d.entries = make(map[Handle]*entry)
}

// Len returns the number of registered callbacks.
func (d *Dispatcher) Len() int {
	return len(d.entries)
}

// Dispatch drains src once: down and up callbacks fire for each event in
// order, then pressed callbacks fire for every held key and button. A quit
// event ends the batch; nothing after it fires.
func (d *Dispatcher) Dispatch(src Source) {
	if d == nil || src == nil {
		return
	}
	d.round++
	for _, ev := range src.Poll() {
		switch ev.Kind {
		case KeyDown:
			d.fire(d.keys.down[ev.Key])
		case KeyUp:
			d.fire(d.keys.up[ev.Key])
		case ButtonDown:
			d.fire(d.buttons.down[ev.Button])
		case ButtonUp:
			d.fire(d.buttons.up[ev.Button])
		case MouseMove:
			for _, e := range slices.Clone(d.move) {
				if d.live(e) {
					e.move(ev.Motion)
				}
			}
		case Quit:
			d.fire(d.quit)
			return
		}
	}
	for _, k := range slices.Clone(d.keys.order) {
		if src.KeyHeld(k) {
			d.fire(d.keys.pressed[k])
		}
	}
	for _, b := range slices.Clone(d.buttons.order) {
		if src.ButtonHeld(b) {
			d.fire(d.buttons.pressed[b])
		}
	}
}

// live reports whether e may fire in the running dispatch.
func (d *Dispatcher) live(e *entry) bool {
	return !e.dead && e.round < d.round
}

func (d *Dispatcher) fire(es []*entry) {
	for _, e := range slices.Clone(es) {
		if d.live(e) && e.fn != nil {
			e.fn()
		}
	}
}
