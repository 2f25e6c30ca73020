// isec runs the engine demo and inspects its data.
//
// Usage:
//
//	isec run                 - Play the demo level
//	isec stack               - List the demo instances and their tick rates
//	isec terrain             - Print the collision polygons built for a level
//
// Global flags:
//
//	--config <path>  - Engine config YAML (default: search ~/.isec, ./configs)
//	--level <name>   - Level file or embedded level name (default: demo.json)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/isec/config"
	"github.com/milk9111/isec/levels"
)

var (
	flagConfig string
	flagLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "isec",
	Short: "isec - a 2D physics platformer engine demo",
	Long: `isec runs a small platformer built on the engine packages: an instance
stack (menu, level, pause), tile layers, generated terrain colliders and a
chipmunk physics world.

Examples:
  isec run
  isec run --level ./mylevel.json --debug
  isec terrain --level demo.json
  isec stack`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", levels.Demo, "Level file, or the name of an embedded level")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stackCmd)
	rootCmd.AddCommand(terrainCmd)
}

// loadEnv reads the config and level named by the global flags.
func loadEnv() (config.Engine, *levels.Level, *log.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Engine{}, nil, nil, err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		Prefix:          "isec",
	})
	lvl, err := levels.LoadLevel(flagLevel)
	if err != nil {
		return config.Engine{}, nil, nil, fmt.Errorf("level %s: %w", flagLevel, err)
	}
	return cfg, lvl, logger, nil
}
