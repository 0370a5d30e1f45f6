package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gameforge/internal/preset"
)

var describeCmd = &cobra.Command{
	Use:   "describe <text>",
	Short: "Detect the genre for a game description",
	Long: `Run a free-text description through the keyword detector and print
the genre it picks together with the preset that genre boots with.

The detector scans for genre keywords in a fixed priority order and
falls back to platformer when nothing matches.

Examples:
  gameforge describe "a calm game about falling snow"
  gameforge describe fast car chase with drifting`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDescribe,
}

func runDescribe(_ *cobra.Command, args []string) {
	//nolint:errcheck // No explicit path, cannot fail
	applyPresets("")

	text := strings.Join(args, " ")
	genre := preset.Detect(text)

	fmt.Printf("%q\n", text)
	fmt.Println()
	fmt.Printf("Genre: %s\n", genre)
	fmt.Println()
	printPreset(preset.ForGenre(genre))
	fmt.Println()
	fmt.Printf("Play it: gameforge play %s\n", genre)
}
