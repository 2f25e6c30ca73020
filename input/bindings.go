package input

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isec/common"
)

// Common action names used by the demo and the default bindings.
const (
	ActionLeft  = "left"
	ActionRight = "right"
	ActionJump  = "jump"
	ActionPause = "pause"
	ActionQuit  = "quit"
)

// Bindings maps named actions to keys. It belongs to the application
// context; instances look keys up through it instead of hard-coding them.
type Bindings struct {
	keys map[string]ebiten.Key
}

func NewBindings(keys map[string]ebiten.Key) *Bindings {
	b := &Bindings{keys: make(map[string]ebiten.Key, len(keys))}
	for a, k := range keys {
		b.keys[a] = k
	}
	return b
}

func DefaultBindings() *Bindings {
	return NewBindings(map[string]ebiten.Key{
		ActionLeft:  ebiten.KeyA,
		ActionRight: ebiten.KeyD,
		ActionJump:  ebiten.KeySpace,
		ActionPause: ebiten.KeyEscape,
		ActionQuit:  ebiten.KeyF12,
	})
}

// Key returns the key bound to action.
func (b *Bindings) Key(action string) (ebiten.Key, bool) {
	k, ok := b.keys[action]
	return k, ok
}

// Action returns the first action, by name, bound to k.
func (b *Bindings) Action(k ebiten.Key) (string, bool) {
	for _, a := range b.Actions() {
		if b.keys[a] == k {
			return a, true
		}
	}
	return "", false
}

// Actions returns the bound action names sorted.
func (b *Bindings) Actions() []string {
	out := make([]string, 0, len(b.keys))
	for a := range b.keys {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// ChangeBind rebinds an existing action.
func (b *Bindings) ChangeBind(action string, k ebiten.Key) error {
	if _, ok := b.keys[action]; !ok {
		return fmt.Errorf("input: change bind: %w", common.Lookupf("unknown action %q", action))
	}
	b.keys[action] = k
	return nil
}

// ParseKey resolves an ebiten key name such as "Space" or "ArrowLeft".
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("input: parse key: %w", common.Lookupf("unknown key %q", name))
	}
	return k, nil
}

// Trigger selects which key registry OnAction uses.
type Trigger int

const (
	Down Trigger = iota
	Up
	Held
)

// OnAction registers fn for the key currently bound to action. The
// registration does not follow later rebinds.
func (d *Dispatcher) OnAction(b *Bindings, action string, trigger Trigger, fn func()) (Handle, error) {
	k, ok := b.Key(action)
	if !ok {
		return 0, fmt.Errorf("input: on action: %w", common.Lookupf("unknown action %q", action))
	}
	switch trigger {
	case Up:
		return d.OnKeyUp(k, fn), nil
	case Held:
		return d.OnKeyPressed(k, fn), nil
	default:
		return d.OnKeyDown(k, fn), nil
	}
}
