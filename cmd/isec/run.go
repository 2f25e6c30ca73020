package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/isec/input"
	"github.com/milk9111/isec/instance"
)

var flagDebug bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the demo",
	Long: `Open a window with the demo menu. Enter starts the level.

Controls come from the config's controls section (defaults: A/D move,
Space jump, Escape pause, F12 quit). F3 toggles the physics debug view.`,
	RunE: runGame,
}

func init() {
	runCmd.Flags().BoolVar(&flagDebug, "debug", false, "Draw physics shapes and frame stats")
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, lvl, logger, err := loadEnv()
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	a := &app{cfg: cfg, bindings: bindings, level: lvl, logger: logger, debug: flagDebug}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	// The close button becomes a Quit event so instances tear down in order.
	ebiten.SetWindowClosingHandled(true)

	sched := instance.NewScheduler(
		instance.WithSource(input.NewEbitenSource()),
		instance.WithLayout(cfg.Window.Width, cfg.Window.Height),
		instance.WithFrameRateHook(ebiten.SetTPS),
		instance.WithLogger(logger),
	)
	if err := sched.Push(newMenu(a)); err != nil {
		return err
	}

	logger.Info("starting", "level", flagLevel, "window", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height))
	if err := ebiten.RunGame(sched); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("exited", "frames", sched.Frames())
	return nil
}
