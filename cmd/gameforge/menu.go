package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gameforge/internal/core"
	"gameforge/internal/platform/tui"
	"gameforge/internal/registry"
	"gameforge/internal/session"
	"gameforge/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the forge with an interactive genre picker",
	Long: `Start the forge in interactive menu mode.

Pick a genre from the list, or press / and describe the game you want;
the forge picks the genre from your words. After a run ends, you return
to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select genre
  /            - Describe the game you want
  Tab          - Scoreboard
  Q            - Quit

Examples:
  gameforge menu
  gameforge menu --fps 30
  gameforge menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	//nolint:errcheck // No explicit path, cannot fail
	applyPresets("")

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	recorder := session.NewRecorder(store, nil)

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
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

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.SceneID == "" {
			break
		}

		// Create scene instance
		scene, err := registry.Create(menuResult.SceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
			continue
		}

		// Update seed for each run
		cfg.Seed = time.Now().UnixNano()

		// Run the scene
		if err := tui.Run(scene, recorder, cfg, menuResult.Description, playerName()); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
