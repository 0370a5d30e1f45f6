package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gameforge/internal/core"
	"gameforge/internal/platform/tui"
	"gameforge/internal/preset"
	"gameforge/internal/registry"
	"gameforge/internal/session"
	"gameforge/internal/storage"
)

var (
	flagDescribe string
	flagPresets  string
)

var playCmd = &cobra.Command{
	Use:   "play [genre]",
	Short: "Play a starter scene",
	Long: `Start the starter scene for a genre. Pass the genre directly, or let
the forge pick it from a description with --describe.

Controls:
  Arrows/WASD - Move
  Space       - Jump / Fire
  F           - Fire
  Enter       - Confirm / Swap
  P           - Pause
  R           - Restart (after game over)
  Ctrl+S      - Screenshot to ~/.gameforge/screenshots
  Q/Ctrl+C    - Quit

Examples:
  gameforge play platformer
  gameforge play --describe "space invaders but faster"
  gameforge play zen --presets ./my-presets.yaml
  gameforge play racing --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDescribe, "describe", "", "Free-text description; picks the genre when none is given")
	playCmd.Flags().StringVar(&flagPresets, "presets", "", "Path to a preset override YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := applyPresets(flagPresets); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Resolve the genre: explicit argument wins, then detection
	description := strings.TrimSpace(flagDescribe)
	var genre string
	switch {
	case len(args) == 1:
		genre = args[0]
	case description != "":
		genre = string(preset.Detect(description))
		fmt.Printf("Forged %q into: %s\n", description, genre)
	default:
		fmt.Fprintln(os.Stderr, "Error: give a genre or a --describe text")
		fmt.Fprintln(os.Stderr, "Run 'gameforge presets' to see available genres.")
		os.Exit(1)
	}

	// Check if scene exists
	if !registry.Exists(genre) {
		fmt.Fprintf(os.Stderr, "Error: unknown genre %q\n", genre)
		fmt.Fprintln(os.Stderr, "Run 'gameforge presets' to see available genres.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Create scene instance
	scene, err := registry.Create(genre)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the scene still works
		store = nil
	}

	recorder := session.NewRecorder(store, nil)

	// Run the scene
	runErr := tui.Run(scene, recorder, cfg, description, playerName())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running scene: %v\n", runErr)
		os.Exit(1)
	}
}
