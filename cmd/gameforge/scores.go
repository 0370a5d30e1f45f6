package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gameforge/internal/registry"
	"gameforge/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <genre>",
	Short: "Show high scores for a genre",
	Long: `Display the top 10 high scores for the specified genre.

Examples:
  gameforge scores platformer
  gameforge scores racing`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	genre := args[0]

	// Check if scene exists
	if !registry.Exists(genre) {
		fmt.Fprintf(os.Stderr, "Error: unknown genre %q\n", genre)
		fmt.Fprintln(os.Stderr, "Run 'gameforge presets' to see available genres.")
		os.Exit(1)
	}

	// Get scene title
	scene, err := registry.Create(genre)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}
	title := scene.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	// Get top scores
	scores, err := store.TopScores(genre, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Display scores
	fmt.Printf("High Scores - %s (%s)\n", title, genre)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gameforge play %s' to set the first high score!\n", genre)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "----", "-----", "------", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-16s  %s\n", i+1, entry.Score, entry.Player, dateStr)
	}

	// Show high score
	fmt.Println()
	highScore, err := store.HighScore(genre)
	if err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}

	// Aggregate stats footer
	stats, err := store.GetGenreStats(genre)
	if err == nil && stats.PlayCount > 0 {
		fmt.Printf("Runs: %d   Average: %.1f\n", stats.PlayCount, stats.AvgScore)
	}
}
