package storage

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
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
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Nested directories are created on demand
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{GameID: "match3", Score: 120, BestChain: 3, Outcome: OutcomeCleared}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	chain, err := store.BestChain("match3")
	if err != nil {
		t.Fatalf("BestChain() failed: %v", err)
	}
	if chain != 3 {
		t.Errorf("BestChain after reopen = %d, want 3", chain)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("match3", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("match3_endless", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "match3" {
			t.Errorf("scores[%d].GameID = %q, want match3", i, scores[i].GameID)
		}
	}

	endless, err := store.TopScores("match3_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("match3", 100)
	store.SaveScore("match3", 300)
	store.SaveScore("match3", 200)

	high, err = store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "match3", Level: "01-first-steps", Seed: 7, Score: 900, Moves: 12, BestChain: 2, Outcome: OutcomeCleared},
		{GameID: "match3", Level: "01-first-steps", Seed: 8, Score: 900, Moves: 9, BestChain: 4, Outcome: OutcomeCleared},
		{GameID: "match3", Level: "02-narrow", Seed: 9, Score: 300, Moves: 20, BestChain: 1, Outcome: OutcomeOutOfMoves},
		{GameID: "match3_endless", Seed: 10, Score: 5000, Moves: 80, BestChain: 6, Outcome: OutcomeAbandoned},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%+v) failed: %v", r, err)
		}
	}

	top, err := store.TopRuns("match3", "", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 campaign runs, got %d", len(top))
	}
	// Equal scores are ranked by fewer moves
	if top[0].Seed != 8 || top[1].Seed != 7 || top[2].Seed != 9 {
		t.Errorf("TopRuns order = %d,%d,%d, want 8,7,9", top[0].Seed, top[1].Seed, top[2].Seed)
	}
	if top[0].Level != "01-first-steps" || top[0].BestChain != 4 || top[0].Outcome != OutcomeCleared {
		t.Errorf("TopRuns()[0] = %+v", top[0])
	}

	level, err := store.TopRuns("match3", "02-narrow", 10)
	if err != nil {
		t.Fatalf("TopRuns() by level failed: %v", err)
	}
	if len(level) != 1 || level[0].Score != 300 {
		t.Errorf("TopRuns for 02-narrow = %+v", level)
	}

	// Every run also lands on the plain leaderboard
	high, err := store.HighScore("match3_endless")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 5000 {
		t.Errorf("HighScore after SaveRun = %d, want 5000", high)
	}

	chain, err := store.BestChain("match3")
	if err != nil {
		t.Fatalf("BestChain() failed: %v", err)
	}
	if chain != 4 {
		t.Errorf("BestChain = %d, want 4", chain)
	}

	cleared, err := store.ClearedLevels("match3")
	if err != nil {
		t.Fatalf("ClearedLevels() failed: %v", err)
	}
	sort.Strings(cleared)
	if len(cleared) != 1 || cleared[0] != "01-first-steps" {
		t.Errorf("ClearedLevels = %v, want [01-first-steps]", cleared)
	}
}

func TestStoreSaveRunValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(RunRecord{Score: 10}); err == nil {
		t.Error("SaveRun without game id should fail")
	}

	// Zero-score runs are history only
	if _, err := store.SaveRun(RunRecord{GameID: "match3"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	scores, _ := store.AllScores("match3")
	if len(scores) != 0 {
		t.Errorf("zero-score run should not add a score entry, got %d", len(scores))
	}
	runs, _ := store.TopRuns("match3", "", 10)
	if len(runs) != 1 || runs[0].Outcome != OutcomeAbandoned {
		t.Errorf("run without outcome should be stored as abandoned, got %+v", runs)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("match3", 100)
	store.SaveRun(RunRecord{GameID: "match3", Score: 200, Outcome: OutcomeCleared})
	store.SaveScore("match3_endless", 300)

	if err := store.ClearScores("match3"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	campaignScores, _ := store.TopScores("match3", 10)
	if len(campaignScores) != 0 {
		t.Errorf("Expected 0 campaign scores after clear, got %d", len(campaignScores))
	}
	runs, _ := store.TopRuns("match3", "", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 campaign runs after clear, got %d", len(runs))
	}

	endlessScores, _ := store.TopScores("match3_endless", 10)
	if len(endlessScores) != 1 {
		t.Errorf("Endless scores should not be affected by clearing campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "match3_endless", Score: 100, Moves: 10, BestChain: 2})
	store.SaveRun(RunRecord{GameID: "match3_endless", Score: 300, Moves: 30, BestChain: 5})

	stats, err := store.GetGameStats("match3_endless")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.BestChain != 5 || stats.TotalMoves != 40 {
		t.Errorf("run stats = chain %d moves %d, want 5 and 40", stats.BestChain, stats.TotalMoves)
	}

	empty, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.BestChain != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["match3_endless"].BestChain != 5 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}

func TestNewRunRecord(t *testing.T) {
	rec := NewRunRecord("match3", core.RunSummary{
		Level: "02-warming-up", Seed: 3, Score: 1600, Moves: 18, BestChain: 3, Outcome: core.OutcomeCleared,
	})
	want := RunRecord{GameID: "match3", Level: "02-warming-up", Seed: 3, Score: 1600, Moves: 18, BestChain: 3, Outcome: OutcomeCleared}
	if rec != want {
		t.Errorf("NewRunRecord() = %+v, want %+v", rec, want)
	}
}
