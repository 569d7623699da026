package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/multiplayer"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		game                string
		score, lines, level int
	}{
		{"tetris", 1200, 12, 1},
		{"tetris", 300, 5, 0},
		{"tetris", 1200, 20, 2},
		{"tritris", 80, 4, 0},
	}
	for _, s := range saves {
		if _, err := store.SaveScore(s.game, s.score, s.lines, s.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Equal scores rank by lines
	if scores[0].Lines != 20 || scores[1].Lines != 12 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}
	if scores[0].Level != 2 {
		t.Errorf("Level = %d, expected 2", scores[0].Level)
	}

	limited, err := store.TopScores("tetris", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 score with limit, got %d", len(limited))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("tetris", 100, 1, 0)
	store.SaveScore("tetris", 400, 4, 0)
	store.SaveScore("tritris", 40, 1, 0)

	high, _ = store.HighScore("tetris")
	if high != 400 {
		t.Errorf("Expected high score of 400, got %d", high)
	}

	if err := store.ClearScores("tetris"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("tetris", 10); len(scores) != 0 {
		t.Errorf("Expected 0 tetris scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("tritris", 10); len(scores) != 1 {
		t.Error("tritris scores should not be affected by clearing tetris")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("tetris", 100, 3, 0)
	store.SaveScore("tetris", 300, 9, 0)

	stats, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	gs, ok := stats["tetris"]
	if !ok {
		t.Fatal("expected stats for tetris")
	}
	if gs.GamesCount != 2 || gs.HighScore != 300 || gs.BestLines != 9 || gs.AvgScore != 200 {
		t.Errorf("unexpected stats: %+v", gs)
	}
}

func TestStoreVersusResults(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveMatchResult(multiplayer.MatchResultData{
		MatchID:   "m1",
		GameID:    "tetris_versus",
		Player1:   "alice",
		Player2:   "bob",
		Score1:    1500,
		Score2:    300,
		Lines1:    14,
		Lines2:    3,
		Winner:    "alice",
		EndReason: "completed",
		Seconds:   95,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}
	if _, err := store.SaveVersus(VersusResult{
		MatchID: "m2", GameID: "tetris_versus",
		Player1: "carol", Player2: "dave",
		EndReason: "disconnect",
	}); err != nil {
		t.Fatalf("SaveVersus() failed: %v", err)
	}

	r, err := store.VersusByID("m1")
	if err != nil {
		t.Fatalf("VersusByID() failed: %v", err)
	}
	if r == nil || r.Winner != "alice" || r.Lines2 != 3 || r.Duration != 95 {
		t.Errorf("unexpected match: %+v", r)
	}

	missing, err := store.VersusByID("nope")
	if err != nil || missing != nil {
		t.Errorf("VersusByID(nope) = %v, %v; expected nil, nil", missing, err)
	}

	all, err := store.RecentVersus("", 10)
	if err != nil {
		t.Fatalf("RecentVersus() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(all))
	}

	bobs, _ := store.RecentVersus("bob", 10)
	if len(bobs) != 1 || bobs[0].MatchID != "m1" {
		t.Errorf("Expected only m1 for bob, got %+v", bobs)
	}
}

func TestStoreMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("tetris", 40, 1, 0); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	defer store.Close()

	v, err := store.SchemaVersion()
	if err != nil || v != len(migrations) {
		t.Errorf("SchemaVersion() = %d, %v; expected %d", v, err, len(migrations))
	}
	if high, _ := store.HighScore("tetris"); high != 40 {
		t.Errorf("score lost across reopen: high = %d", high)
	}
}

func TestSqliteTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	if got := sqliteTime("2024-03-01 12:30:00"); !got.Equal(want) {
		t.Errorf("sqliteTime(text) = %v", got)
	}
	if got := sqliteTime(want); !got.Equal(want) {
		t.Errorf("sqliteTime(time) = %v", got)
	}
	if got := sqliteTime(nil); !got.IsZero() {
		t.Errorf("sqliteTime(nil) = %v", got)
	}
}
