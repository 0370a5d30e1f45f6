package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gameforge/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [genre]",
	Short: "Show genre presets and their trigger keywords",
	Long: `Without arguments, lists all genres with their trigger keywords and
headline tuning. With a genre, prints the full tuning bundle: physics,
player handling, camera, and polish.

User overrides from ~/.gameforge/presets.yaml or ./presets.yaml are
applied before printing, so the output matches what a scene boots with.

Examples:
  gameforge presets
  gameforge presets racing`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPresets,
}

func runPresets(_ *cobra.Command, args []string) {
	//nolint:errcheck // No explicit path, cannot fail
	applyPresets("")

	if len(args) == 1 {
		g := preset.Genre(strings.ToLower(args[0]))
		if !knownGenre(g) {
			fmt.Fprintf(os.Stderr, "Error: unknown genre %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'gameforge presets' to see all genres.")
			os.Exit(1)
		}

		fmt.Println(g)
		fmt.Printf("Keywords: %s\n", strings.Join(preset.Keywords(g), ", "))
		fmt.Println()
		printPreset(preset.ForGenre(g))
		return
	}

	fmt.Println("Built-in genre presets:")
	fmt.Println()

	for _, g := range preset.Genres() {
		p := preset.ForGenre(g)
		fmt.Printf("  %-11s speed %g, gravity %g, health %d\n",
			g, p.Player.Speed, p.Physics.GravityY, p.Player.Health)
		fmt.Printf("  %-11s keywords: %s\n", "", strings.Join(preset.Keywords(g), ", "))
	}

	fmt.Println()
	fmt.Println("Run 'gameforge presets <genre>' for the full tuning bundle.")
}

// knownGenre reports whether g is one of the supported genres.
func knownGenre(g preset.Genre) bool {
	for _, have := range preset.Genres() {
		if have == g {
			return true
		}
	}
	return false
}

// printPreset prints all four tuning groups of a preset.
func printPreset(p preset.Preset) {
	fmt.Printf("  Physics  gravity (%g, %g) cells/s^2\n",
		p.Physics.GravityX, p.Physics.GravityY)
	fmt.Printf("  Player   speed %g cells/s, jump %g cells, fire %g/s, health %d\n",
		p.Player.Speed, p.Player.JumpHeight, p.Player.FireRate, p.Player.Health)
	fmt.Printf("  Camera   lerp %g, deadzone %dx%d, zoom %g\n",
		p.Camera.Lerp, p.Camera.DeadzoneW, p.Camera.DeadzoneH, p.Camera.Zoom)
	fmt.Printf("  Polish   shake %s, particles %t, tween %s, sound %s\n",
		p.Polish.Shake, p.Polish.Particles, p.Polish.Tween, p.Polish.Sound)
}
