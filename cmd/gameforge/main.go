// gameforge is a terminal game-prototyping kit: describe the game you
// want, get a tuned, playable starter scene for its genre.
//
// Usage:
//
//	gameforge describe <text>   - Detect the genre for a description
//	gameforge presets [genre]   - Show genre presets and keywords
//	gameforge play [genre]      - Play a starter scene
//	gameforge menu              - Interactive picker with describe prompt
//	gameforge serve             - Start SSH server for remote play
//	gameforge scores <genre>    - Show high scores for a genre
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.gameforge/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gameforge/internal/preset"

	// Import scenes to register them
	_ "gameforge/internal/scenes/platformer"
	_ "gameforge/internal/scenes/puzzle"
	_ "gameforge/internal/scenes/racing"
	_ "gameforge/internal/scenes/rpg"
	_ "gameforge/internal/scenes/shooter"
	_ "gameforge/internal/scenes/zen"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gameforge",
	Short: "Game Forge - Describe a game, play its starter scene",
	Long: `Game Forge turns a one-line game description into a tuned, playable
starter scene in your terminal. Each genre ships with a physics, player,
camera, and polish preset; describe what you want and the forge picks
the genre for you.

Available commands:
  describe - Detect the genre for a free-text description
  presets  - Show genre presets and their trigger keywords
  play     - Play a starter scene directly
  menu     - Interactive genre picker with a describe prompt
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  gameforge describe "a cozy game about watering plants"
  gameforge play platformer
  gameforge play --describe "space invaders but faster"
  gameforge menu
  gameforge serve --ssh :2222 --http :8080
  gameforge scores racing`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gameforge/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// applyPresets installs the preset catalog, with overrides from the
// given file if any. Only an explicit path reports errors; discovered
// files degrade silently to the built-in values.
func applyPresets(customPath string) error {
	catalog, err := preset.Load(customPath)
	if err != nil {
		return err
	}
	preset.SetCatalog(catalog)
	return nil
}

// playerName attributes local sessions to the OS user.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
