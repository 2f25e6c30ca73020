package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/isec/input"
	"github.com/milk9111/isec/instance"
)

const pauseFPS = 30

// pauseInstance freezes the level below it and offers a small menu.
type pauseInstance struct {
	instance.Base
	app   *app
	level *levelInstance
	sched *instance.Scheduler
	ui    *ebitenui.UI
}

func newPause(a *app, level *levelInstance) *pauseInstance {
	return &pauseInstance{Base: instance.NewBase(pauseName, pauseFPS), app: a, level: level}
}

func (p *pauseInstance) Setup(s *instance.Scheduler) error {
	p.sched = s
	p.ui = p.newUI()
	p.app.onAction(p.Dispatcher(), input.ActionPause, input.Down, p.resume)
	return nil
}

func (p *pauseInstance) resume() {
	p.sched.Pop(p)
}

func (p *pauseInstance) mainMenu() {
	if err := p.sched.UnwindToName(menuName); err != nil {
		p.app.logger.Error("could not return to menu", "err", err)
	}
}

// newUI builds a simple centered pause menu using colored nine-slices and
// the built-in basic font.
func (p *pauseInstance) newUI() *ebitenui.UI {
	w, h := p.app.viewSize()
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	face := menuFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(w/3), int(h/3)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Paused", face, white),
		widget.TextOpts.WidgetOpts(center),
	))
	panel.AddChild(button("Resume", p.resume))
	panel.AddChild(button("Main Menu", p.mainMenu))
	panel.AddChild(button("Quit", p.sched.Quit))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func (p *pauseInstance) Loop(float64) error {
	p.ui.Update()
	return nil
}

func (p *pauseInstance) Draw(screen *ebiten.Image) {
	if p.level != nil {
		p.level.Draw(screen)
	}
	p.ui.Draw(screen)
}
