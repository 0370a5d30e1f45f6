package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	// Save some scores
	if _, err := store.SaveScore("platformer", "alice", 100); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore("platformer", "bob", 50); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore("platformer", "alice", 200); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different genre
	if _, err := store.SaveScore("racing", "", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for platformer
	scores, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Player != "alice" {
		t.Errorf("Expected top player alice, got %q", scores[0].Player)
	}

	// Empty player names default to local
	racingScores, err := store.TopScores("racing", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(racingScores) != 1 {
		t.Fatalf("Expected 1 racing score, got %d", len(racingScores))
	}
	if racingScores[0].Player != "local" {
		t.Errorf("Expected default player local, got %q", racingScores[0].Player)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("zen", "local", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("zen", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("shooter")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty genre, got %d", high)
	}

	// Add scores
	store.SaveScore("shooter", "local", 100)
	store.SaveScore("shooter", "local", 300)
	store.SaveScore("shooter", "local", 200)

	high, err = store.HighScore("shooter")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("platformer", "local", 100)
	store.SaveScore("platformer", "local", 200)
	store.SaveScore("racing", "local", 300)

	// Clear only platformer scores
	if err := store.ClearScores("platformer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Platformer should be empty
	platScores, _ := store.TopScores("platformer", 10)
	if len(platScores) != 0 {
		t.Errorf("Expected 0 platformer scores after clear, got %d", len(platScores))
	}

	// Racing should still have scores
	racingScores, _ := store.TopScores("racing", 10)
	if len(racingScores) != 1 {
		t.Errorf("Racing scores should not be affected by clearing platformer")
	}
}

func TestStoreSessions(t *testing.T) {
	store := openTestStore(t)

	started := time.Date(2025, 11, 3, 20, 0, 0, 0, time.UTC)
	first := SessionEntry{
		ID:          "11111111-1111-1111-1111-111111111111",
		Genre:       "platformer",
		Description: "I want a jumping platform game",
		Player:      "alice",
		Score:       120,
		Duration:    95,
		StartedAt:   started,
		EndedAt:     started.Add(95 * time.Second),
	}
	if err := store.SaveSession(first); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	second := SessionEntry{
		ID:        "22222222-2222-2222-2222-222222222222",
		Genre:     "zen",
		Player:    "",
		Score:     40,
		Duration:  60,
		StartedAt: started.Add(10 * time.Minute),
		EndedAt:   started.Add(11 * time.Minute),
	}
	if err := store.SaveSession(second); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}

	// Most recently ended first
	if sessions[0].ID != second.ID {
		t.Errorf("Expected most recent session first, got %s", sessions[0].ID)
	}
	if sessions[1].Description != first.Description {
		t.Errorf("Session description not preserved: %q", sessions[1].Description)
	}
	if sessions[0].Player != "local" {
		t.Errorf("Empty player should default to local, got %q", sessions[0].Player)
	}
	if sessions[1].Score != 120 || sessions[1].Duration != 95 {
		t.Errorf("Session numbers not preserved: %+v", sessions[1])
	}
}

func TestStoreGenreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("rpg", "local", 10)
	store.SaveScore("rpg", "local", 30)
	store.SaveScore("puzzle", "local", 500)

	stats, err := store.GetGenreStats("rpg")
	if err != nil {
		t.Fatalf("GetGenreStats() failed: %v", err)
	}

	if stats.PlayCount != 2 {
		t.Errorf("PlayCount = %d, expected 2", stats.PlayCount)
	}
	if stats.HighScore != 30 {
		t.Errorf("HighScore = %d, expected 30", stats.HighScore)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %f, expected 20", stats.AvgScore)
	}
	if stats.TotalScore != 40 {
		t.Errorf("TotalScore = %d, expected 40", stats.TotalScore)
	}

	all, err := store.GetAllGenreStats()
	if err != nil {
		t.Fatalf("GetAllGenreStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 genres, got %d", len(all))
	}
	if all["puzzle"] == nil || all["puzzle"].HighScore != 500 {
		t.Errorf("puzzle stats missing or wrong: %+v", all["puzzle"])
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Verify nested parent directories are created
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
