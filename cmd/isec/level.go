package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/isec/camera"
	"github.com/milk9111/isec/entity"
	"github.com/milk9111/isec/input"
	"github.com/milk9111/isec/instance"
	"github.com/milk9111/isec/physics"
	"github.com/milk9111/isec/scene"
	"github.com/milk9111/isec/terrain"
)

const (
	introPan  = 0.8
	propCount = 6
)

var levelBackground = color.RGBA{R: 0x10, G: 0x14, B: 0x20, A: 0xff}

// levelInstance plays the loaded level.
type levelInstance struct {
	instance.Base
	app   *app
	sched *instance.Scheduler

	world  *scene.ComposedScene
	player *player
	bounds camera.Bounds
}

func newLevel(a *app) *levelInstance {
	return &levelInstance{Base: instance.NewBase(levelName, a.cfg.FPS), app: a}
}

func (l *levelInstance) Setup(s *instance.Scheduler) error {
	l.sched = s
	cfg, lvl, logger := l.app.cfg, l.app.level, l.app.logger
	ts := cfg.Terrain.TileSize

	es := scene.NewEntityScene(cfg.PhysicsConfig(), cfg.FPS,
		scene.WithLogger(logger),
		scene.WithDebugDraw(l.app.debug),
	)

	tiles, err := lvl.TileLayers(ts)
	if err != nil {
		return err
	}
	layers := make([]*scene.TilemapScene, 0, len(tiles))
	for _, t := range tiles {
		layers = append(layers, scene.NewTilemapScene(t))
	}

	b := terrain.NewBuilder(float64(ts), terrain.WithLogger(logger))
	b.Radius = cfg.Terrain.Radius
	b.Profile = cfg.TerrainProfile()
	b.Visible = cfg.Terrain.ShowCollision || l.app.debug
	colliders, err := b.Build(lvl.CollisionMap())
	if err != nil {
		return fmt.Errorf("level terrain: %w", err)
	}
	for _, c := range colliders {
		es.Add(c)
	}

	playerProfile, err := cfg.ShapeProfile("player")
	if err != nil {
		return err
	}
	spawn := lvl.SpawnPosition(float64(ts))
	l.player, err = newPlayer(spawn, playerProfile)
	if err != nil {
		return err
	}
	es.Add(l.player)

	propProfile, err := cfg.ShapeProfile("prop")
	if err != nil {
		return err
	}
	l.bounds = camera.Bounds{W: float64(lvl.Width * ts), H: float64(lvl.Height * ts)}
	props, err := newProps(spawn.Add(cp.Vector{X: 3 * float64(ts), Y: -2 * float64(ts)}), propCount, l.bounds.H, propProfile)
	if err != nil {
		return err
	}
	for _, p := range props {
		es.Add(p)
	}

	es.World().OnCollision(playerProfile.CollisionType, b.Profile.CollisionType, physics.CollisionHandlers{
		Begin:    l.player.landed,
		Separate: l.player.leave,
	})

	l.world = scene.NewComposedScene(es, camera.New(cp.Vector{}), layers...)
	w, h := l.app.viewSize()
	l.world.Camera.PanTo(l.follow(w, h), introPan, ease.OutQuad)

	d := l.Dispatcher()
	l.app.onAction(d, input.ActionLeft, input.Held, l.player.left)
	l.app.onAction(d, input.ActionRight, input.Held, l.player.right)
	l.app.onAction(d, input.ActionJump, input.Down, l.player.jump)
	l.app.onAction(d, input.ActionPause, input.Down, l.pause)
	l.app.onAction(d, input.ActionQuit, input.Down, s.Quit)
	d.OnKeyDown(ebiten.KeyF3, func() {
		l.app.debug = !l.app.debug
		es.SetDebugDraw(l.app.debug)
	})

	logger.Info("level ready", "colliders", len(colliders), "props", len(props), "spawn", spawn)
	return nil
}

// follow returns the camera position that centres the player, kept inside
// the level.
func (l *levelInstance) follow(viewW, viewH float64) cp.Vector {
	p := l.player.Body.Pos()
	return camera.Clamp(cp.Vector{X: p.X - viewW/2, Y: p.Y - viewH/2}, viewW, viewH, l.bounds)
}

func (l *levelInstance) pause() {
	if err := l.sched.Push(newPause(l.app, l)); err != nil {
		l.app.logger.Error("could not pause", "err", err)
	}
}

func (l *levelInstance) Resume() {
	l.app.logger.Debug("level resumed", "entities", l.world.Entities.Len())
}

func (l *levelInstance) Loop(dt float64) error {
	l.world.Update(dt)
	if l.player.PendingRemoval() || !l.world.Entities.Contains(l.player) {
		return nil
	}
	if l.player.Body.Pos().Y > l.bounds.H {
		l.app.logger.Info("player fell out of the level, respawning")
		l.player.Body.Teleport(l.app.level.SpawnPosition(float64(l.app.cfg.Terrain.TileSize)), 0)
		l.player.Body.SetVelocity(cp.Vector{})
	}
	if !l.world.Camera.Panning() {
		w, h := l.app.viewSize()
		l.world.Camera.SetPos(l.follow(w, h))
	}
	return nil
}

func (l *levelInstance) Draw(screen *ebiten.Image) {
	screen.Fill(levelBackground)
	l.world.Render(screen)
	if l.app.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f  entities: %d  grounded: %v",
			ebiten.ActualFPS(), ebiten.ActualTPS(), l.world.Entities.Len(), l.player.grounded()))
	}
}

func (l *levelInstance) Teardown() {
	l.world.Entities.Remove(l.world.Entities.Entities()...)
	l.app.logger.Info("level torn down")
}

var _ entity.Entity = (*player)(nil)
