package scene

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isec/camera"
)

// ComposedScene layers tile backgrounds, the entity scene and foregrounds.
// Layers with depth up to 1 draw behind the entities, deeper ones in front.
type ComposedScene struct {
	Entities *EntityScene
	Camera   *camera.Camera

	layers []*TilemapScene
}

func NewComposedScene(entities *EntityScene, cam *camera.Camera, layers ...*TilemapScene) *ComposedScene {
	if cam == nil {
		cam = camera.New(cp.Vector{})
	}
	c := &ComposedScene{Entities: entities, Camera: cam}
	c.AddLayer(layers...)
	return c
}

// AddLayer inserts layers keeping ascending depth; equal depths keep their
// insertion order.
func (c *ComposedScene) AddLayer(layers ...*TilemapScene) {
	for _, l := range layers {
		if l != nil && l.Layer != nil {
			c.layers = append(c.layers, l)
		}
	}
	sort.SliceStable(c.layers, func(i, j int) bool {
		return c.layers[i].Depth() < c.layers[j].Depth()
	})
}

func (c *ComposedScene) Layers() []*TilemapScene {
	return append([]*TilemapScene(nil), c.layers...)
}

// Update steps the entity scene and the camera.
func (c *ComposedScene) Update(dt float64) {
	if c.Entities != nil {
		c.Entities.Update(dt)
	}
	c.Camera.Update(dt)
}

func (c *ComposedScene) Render(dst *ebiten.Image) {
	i := 0
	for ; i < len(c.layers) && c.layers[i].Depth() <= 1; i++ {
		c.layers[i].Render(dst, c.Camera)
	}
	if c.Entities != nil {
		c.Entities.Render(dst, c.Camera)
	}
	for ; i < len(c.layers); i++ {
		c.layers[i].Render(dst, c.Camera)
	}
}
