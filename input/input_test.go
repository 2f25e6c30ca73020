package input

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isec/common"
)

func TestDownFiresOncePerPress(t *testing.T) {
	d := NewDispatcher()
	src := NewScriptedSource()
	var down, up, pressed int
	d.OnKeyDown(ebiten.KeySpace, func() { down++ })
	d.OnKeyUp(ebiten.KeySpace, func() { up++ })
	d.OnKeyPressed(ebiten.KeySpace, func() { pressed++ })

	src.Press(ebiten.KeySpace)
	for i := 0; i < 5; i++ {
		d.Dispatch(src)
	}
	src.Release(ebiten.KeySpace)
	d.Dispatch(src)
	d.Dispatch(src)

	if down != 1 || up != 1 || pressed != 5 {
		t.Fatalf("down=%d up=%d pressed=%d", down, up, pressed)
	}
}

func TestPressedFiresInFirstRegistrationOrder(t *testing.T) {
	d := NewDispatcher()
	src := NewScriptedSource()
	var got []string
	d.OnKeyPressed(ebiten.KeyD, func() { got = append(got, "d1") })
	d.OnKeyPressed(ebiten.KeyA, func() { got = append(got, "a") })
	d.OnKeyPressed(ebiten.KeyD, func() { got = append(got, "d2") })

	src.Press(ebiten.KeyA)
	src.Press(ebiten.KeyD)
	d.Dispatch(src)

	want := []string{"d1", "d2", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRemoveFromWithinCallback(t *testing.T) {
	cases := []struct {
		name   string
		remove func(d *Dispatcher, self, other Handle)
		self   int
		other  int
	}{
		{"remove_self", func(d *Dispatcher, self, _ Handle) { d.Remove(self) }, 1, 2},
		{"remove_other", func(d *Dispatcher, _, other Handle) { d.Remove(other) }, 2, 0},
		{"remove_binding", func(d *Dispatcher, _, _ Handle) { d.RemoveKeyBinding(ebiten.KeyE) }, 1, 0},
		{"clear", func(d *Dispatcher, _, _ Handle) { d.Clear() }, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewDispatcher()
			src := NewScriptedSource()
			var self, other int
			var hSelf, hOther Handle
			hSelf = d.OnKeyDown(ebiten.KeyE, func() {
				self++
				c.remove(d, hSelf, hOther)
			})
			hOther = d.OnKeyDown(ebiten.KeyE, func() { other++ })

			src.Press(ebiten.KeyE)
			d.Dispatch(src)
			src.Release(ebiten.KeyE)
			src.Press(ebiten.KeyE)
			d.Dispatch(src)

			if self != c.self || other != c.other {
				t.Fatalf("self=%d other=%d, want %d %d", self, other, c.self, c.other)
			}
		})
	}
}

func TestRegisterDuringDispatchWaitsForNextTick(t *testing.T) {
	d := NewDispatcher()
	src := NewScriptedSource()
	late := 0
	d.OnKeyPressed(ebiten.KeyW, func() {
		if late == 0 {
			d.OnKeyPressed(ebiten.KeyW, func() { late++ })
		}
	})
	src.Press(ebiten.KeyW)
	d.Dispatch(src)
	if late != 0 {
		t.Fatal("callback registered mid-dispatch fired in the same tick")
	}
	d.Dispatch(src)
	if late != 1 {
		t.Fatalf("late = %d", late)
	}
}

func TestRegisterForOtherKeyWaitsForNextTick(t *testing.T) {
	d := NewDispatcher()
	src := NewScriptedSource()
	var down, pressed int
	d.OnKeyDown(ebiten.KeyA, func() {
		d.OnKeyDown(ebiten.KeyB, func() { down++ })
		d.OnKeyPressed(ebiten.KeyB, func() { pressed++ })
	})
	src.Press(ebiten.KeyA)
	src.Press(ebiten.KeyB)
	d.Dispatch(src)
	if down != 0 || pressed != 0 {
		t.Fatalf("down=%d pressed=%d fired in the registering batch", down, pressed)
	}
	d.Dispatch(src)
	if down != 0 || pressed != 1 {
		t.Fatalf("down=%d pressed=%d", down, pressed)
	}
}

func TestQuitEndsBatch(t *testing.T) {
	d := NewDispatcher()
	src := NewScriptedSource()
	var quits, downs, held int
	d.OnQuit(func() { quits++ })
	d.OnKeyDown(ebiten.KeySpace, func() { downs++ })
	d.OnKeyPressed(ebiten.KeySpace, func() { held++ })

	src.Quit()
	src.Press(ebiten.KeySpace)
	d.Dispatch(src)
	if quits != 1 || downs != 0 || held != 0 {
		t.Fatalf("quits=%d downs=%d held=%d", quits, downs, held)
	}
}

func TestButtonsMouseAndQuit(t *testing.T) {
	d := NewDispatcher()
	src := NewScriptedSource()
	var clicks, held, quits int
	var motions []Motion
	d.OnButtonDown(ebiten.MouseButtonLeft, func() { clicks++ })
	d.OnButtonPressed(ebiten.MouseButtonLeft, func() { held++ })
	d.OnMouseMove(func(m Motion) { motions = append(motions, m) })
	d.OnQuit(func() { quits++ })

	src.PressButton(ebiten.MouseButtonLeft)
	src.MoveTo(10, 5)
	src.MoveTo(12, 1)
	d.Dispatch(src)
	d.Dispatch(src)
	src.ReleaseButton(ebiten.MouseButtonLeft)
	src.Quit()
	d.Dispatch(src)

	if clicks != 1 || held != 2 || quits != 1 {
		t.Fatalf("clicks=%d held=%d quits=%d", clicks, held, quits)
	}
	if len(motions) != 2 || motions[1].DX != 2 || motions[1].DY != -4 {
		t.Fatalf("motions = %+v", motions)
	}

	d.RemoveButtonBinding(ebiten.MouseButtonLeft)
	src.PressButton(ebiten.MouseButtonLeft)
	d.Dispatch(src)
	if clicks != 1 {
		t.Fatal("button binding should be gone")
	}
	if d.Len() != 2 {
		t.Fatalf("Len = %d", d.Len())
	}
}

func TestRemoveUnknownHandle(t *testing.T) {
	d := NewDispatcher()
	h := d.OnQuit(func() {})
	if !d.Remove(h) || d.Remove(h) || d.Remove(999) {
		t.Fatal("Remove should succeed once and ignore unknown handles")
	}
}

func TestBindings(t *testing.T) {
	b := DefaultBindings()
	if k, ok := b.Key(ActionJump); !ok || k != ebiten.KeySpace {
		t.Fatalf("jump = %v", k)
	}
	if err := b.ChangeBind(ActionJump, ebiten.KeyW); err != nil {
		t.Fatalf("ChangeBind: %v", err)
	}
	if a, ok := b.Action(ebiten.KeyW); !ok || a != ActionJump {
		t.Fatalf("Action(W) = %q", a)
	}
	if _, ok := b.Action(ebiten.KeySpace); ok {
		t.Fatal("space should be unbound")
	}
	if err := b.ChangeBind("fly", ebiten.KeyF); !errors.Is(err, common.ErrLookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		name string
		want ebiten.Key
		ok   bool
	}{
		{"Space", ebiten.KeySpace, true},
		{"A", ebiten.KeyA, true},
		{"Escape", ebiten.KeyEscape, true},
		{"NotAKey", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			k, err := ParseKey(c.name)
			if c.ok && (err != nil || k != c.want) {
				t.Fatalf("ParseKey = %v, %v", k, err)
			}
			if !c.ok && !errors.Is(err, common.ErrLookup) {
				t.Fatalf("expected lookup error, got %v", err)
			}
		})
	}
}

func TestOnAction(t *testing.T) {
	d := NewDispatcher()
	src := NewScriptedSource()
	b := DefaultBindings()
	jumps := 0
	if _, err := d.OnAction(b, ActionJump, Down, func() { jumps++ }); err != nil {
		t.Fatalf("OnAction: %v", err)
	}
	if _, err := d.OnAction(b, "fly", Down, func() {}); !errors.Is(err, common.ErrLookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	src.Press(ebiten.KeySpace)
	d.Dispatch(src)
	if jumps != 1 {
		t.Fatalf("jumps = %d", jumps)
	}
}
