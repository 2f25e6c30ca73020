package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/milk9111/isec/terrain"
)

var flagVertices bool

var terrainCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Print the collision polygons of a level",
	Long: `Builds terrain collision for the level's physics layers and prints one
line per convex polygon with its world bounds.

Examples:
  isec terrain
  isec terrain --level ./mylevel.json --vertices`,
	RunE: runTerrain,
}

func init() {
	terrainCmd.Flags().BoolVar(&flagVertices, "vertices", false, "Also print every vertex")
}

func runTerrain(cmd *cobra.Command, args []string) error {
	cfg, lvl, logger, err := loadEnv()
	if err != nil {
		return err
	}
	m := lvl.CollisionMap()
	b := terrain.NewBuilder(float64(cfg.Terrain.TileSize), terrain.WithLogger(logger))
	b.Radius = cfg.Terrain.Radius
	polys, err := b.Polygons(m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %dx%d tiles, %d solid, %d polygons\n", flagLevel, lvl.Width, lvl.Height, m.Count(), len(polys))
	for i, p := range polys {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, v := range p {
			minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
			minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
		}
		fmt.Fprintf(out, "  #%-3d %2d verts  (%g,%g)-(%g,%g)\n", i, len(p), minX, minY, maxX, maxY)
		if flagVertices {
			for _, v := range p {
				fmt.Fprintf(out, "         %g,%g\n", v.X, v.Y)
			}
		}
	}
	return nil
}
