package main

import (
	"github.com/charmbracelet/log"

	"github.com/milk9111/isec/config"
	"github.com/milk9111/isec/input"
	"github.com/milk9111/isec/levels"
)

// Instance names, also used to unwind the stack.
const (
	menuName  = "menu"
	levelName = "level"
	pauseName = "pause"
)

// app is the context shared by every demo instance.
type app struct {
	cfg      config.Engine
	bindings *input.Bindings
	level    *levels.Level
	logger   *log.Logger
	debug    bool
}

func (a *app) viewSize() (float64, float64) {
	return float64(a.cfg.Window.Width), float64(a.cfg.Window.Height)
}

// onAction registers fn on d for a bound action, logging unbound actions
// instead of failing so a partial controls section still runs.
func (a *app) onAction(d *input.Dispatcher, action string, trigger input.Trigger, fn func()) {
	if _, err := d.OnAction(a.bindings, action, trigger, fn); err != nil {
		a.logger.Warn("action not bound", "action", action, "err", err)
	}
}
