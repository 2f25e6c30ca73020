package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/isec/input"
	"github.com/milk9111/isec/instance"
)

const menuFPS = 30

var menuFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// menuInstance is the bottom of the stack. Enter starts the level.
type menuInstance struct {
	instance.Base
	app   *app
	sched *instance.Scheduler
	lines []string
}

func newMenu(a *app) *menuInstance {
	return &menuInstance{Base: instance.NewBase(menuName, menuFPS), app: a}
}

func (m *menuInstance) Setup(s *instance.Scheduler) error {
	m.sched = s
	d := m.Dispatcher()
	d.OnKeyDown(ebiten.KeyEnter, m.start)
	m.app.onAction(d, input.ActionJump, input.Down, m.start)
	m.app.onAction(d, input.ActionQuit, input.Down, s.Quit)

	m.lines = []string{"isec", "", "Enter: start"}
	for _, action := range m.app.bindings.Actions() {
		k, _ := m.app.bindings.Key(action)
		m.lines = append(m.lines, fmt.Sprintf("%s: %s", k, action))
	}
	return nil
}

func (m *menuInstance) start() {
	if m.sched.Top() != instance.Instance(m) {
		return
	}
	if err := m.sched.Push(newLevel(m.app)); err != nil {
		m.app.logger.Error("could not start level", "err", err)
	}
}

func (m *menuInstance) Resume() {
	m.app.logger.Debug("back at menu")
}

func (m *menuInstance) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	w, h := m.app.viewSize()
	lineH := menuFace.Metrics().HAscent + menuFace.Metrics().HDescent + 6
	y := h/2 - lineH*float64(len(m.lines))/2
	for i, line := range m.lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(w/2, y+float64(i)*lineH)
		op.PrimaryAlign = ebtext.AlignCenter
		clr := color.Color(colornames.Lightgray)
		if i == 0 {
			clr = colornames.Gold
		}
		op.ColorScale.ScaleWithColor(clr)
		ebtext.Draw(screen, line, menuFace, op)
	}
}
