package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "List the demo instances",
	Long: `Shows the instances the demo can stack, bottom first, with the tick
rate each one requests while it runs.`,
	RunE: runStack,
}

func runStack(cmd *cobra.Command, args []string) error {
	cfg, _, _, err := loadEnv()
	if err != nil {
		return err
	}
	rows := []struct {
		name string
		fps  int
		via  string
	}{
		{menuName, menuFPS, "start"},
		{levelName, cfg.FPS, "Enter on " + menuName},
		{pauseName, pauseFPS, "pause action on " + levelName},
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-6s  %4s  %s\n", "NAME", "FPS", "PUSHED BY")
	for _, r := range rows {
		fmt.Fprintf(out, "  %-6s  %4d  %s\n", r.name, r.fps, r.via)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "'Main Menu' on %s unwinds to %s.\n", pauseName, menuName)
	return nil
}
