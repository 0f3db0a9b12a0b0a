package storage

import (
	"os"
	"path/filepath"
	"sync"
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/dir/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "nested", "dir", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(ScoreEntry{Mode: "marathon", Score: score}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	saved, err := store.SaveScore(ScoreEntry{
		Mode:     "daily",
		ModeKey:  "daily-20261018",
		Score:    500,
		Level:    3,
		Lines:    24,
		Duration: 95 * time.Second,
	})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if saved.ID == 0 || saved.RunID == "" {
		t.Errorf("SaveScore() = %+v, expected ID and RunID to be set", saved)
	}

	scores, err := store.TopScores("marathon", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	for i, expected := range []int{200, 100, 50} {
		if scores[i].Score != expected {
			t.Errorf("scores[%d].Score = %d, expected %d", i, scores[i].Score, expected)
		}
	}
	if scores[0].ModeKey != "marathon" {
		t.Errorf("ModeKey = %q, expected it to default to the mode", scores[0].ModeKey)
	}

	daily, err := store.TopScores("daily", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(daily) != 1 {
		t.Fatalf("Expected 1 daily score, got %d", len(daily))
	}
	got := daily[0]
	if got.RunID != saved.RunID || got.ModeKey != "daily-20261018" || got.Level != 3 || got.Lines != 24 || got.Duration != 95*time.Second {
		t.Errorf("TopScores()[0] = %+v, expected fields of %+v", got, saved)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestStoreRunIDsUnique(t *testing.T) {
	store := openTestStore(t)

	a, err := store.SaveScore(ScoreEntry{Mode: "zen", Score: 1})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore(ScoreEntry{Mode: "zen", Score: 2, RunID: a.RunID}); err == nil {
		t.Error("SaveScore() with a duplicate RunID should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 25; i++ {
		if _, err := store.SaveScore(ScoreEntry{Mode: "marathon", Score: i * 10}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("marathon", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 240 {
		t.Errorf("Expected top score 240, got %d", scores[0].Score)
	}

	recent, err := store.RecentScores(3)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].Score != 240 || recent[2].Score != 220 {
		t.Errorf("RecentScores(3) = %+v, expected newest first", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore("ultra120")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected 0 for empty history, got %d", score)
	}

	for _, s := range []int{100, 300, 200} {
		store.SaveScore(ScoreEntry{Mode: "ultra120", Score: s}) //nolint:errcheck
	}
	score, err = store.HighScore("ultra120")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 300 {
		t.Errorf("Expected high score 300, got %d", score)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Mode: "marathon", Score: 100}) //nolint:errcheck
	store.SaveScore(ScoreEntry{Mode: "zen", Score: 200})      //nolint:errcheck

	if err := store.ClearScores("marathon"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("marathon", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	scores, _ = store.TopScores("zen", 10)
	if len(scores) != 1 {
		t.Errorf("Expected zen scores to survive, got %d", len(scores))
	}
}

func TestStoreBestScores(t *testing.T) {
	store := openTestStore(t)

	score, err := store.BestScore("marathon")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("BestScore() of unknown key = %d, expected 0", score)
	}

	if err := store.SaveBestScore("marathon", 1200); err != nil {
		t.Fatalf("SaveBestScore() failed: %v", err)
	}
	if err := store.SaveBestScore("marathon", 1500); err != nil {
		t.Fatalf("SaveBestScore() failed: %v", err)
	}
	store.SaveBestScore("daily-20261017", 300) //nolint:errcheck
	store.SaveBestScore("daily-20261018", 400) //nolint:errcheck

	score, _ = store.BestScore("marathon")
	if score != 1500 {
		t.Errorf("BestScore() = %d, expected 1500 after overwrite", score)
	}

	daily, err := store.BestScores("daily-", 10)
	if err != nil {
		t.Fatalf("BestScores() failed: %v", err)
	}
	if len(daily) != 2 || daily[0].ModeKey != "daily-20261018" || daily[0].Score != 400 {
		t.Errorf("BestScores(daily-) = %+v, expected newest key first", daily)
	}

	all, _ := store.BestScores("", 10)
	if len(all) != 3 {
		t.Errorf("BestScores(\"\") returned %d entries, expected 3", len(all))
	}
}

func TestStoreBestScoreNeverLowered(t *testing.T) {
	store := openTestStore(t)

	// Two sessions read 0, the higher one saves first.
	if err := store.SaveBestScore("marathon", 500); err != nil {
		t.Fatalf("SaveBestScore() failed: %v", err)
	}
	if err := store.SaveBestScore("marathon", 200); err != nil {
		t.Fatalf("SaveBestScore() failed: %v", err)
	}

	score, err := store.BestScore("marathon")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if score != 500 {
		t.Errorf("BestScore() = %d, expected 500 kept over a later 200", score)
	}
}

func TestStoreBestScoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			store.SaveBestScore("daily-20261018", score*100) //nolint:errcheck
		}(i)
	}
	wg.Wait()

	score, err := store.BestScore("daily-20261018")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if score != 2000 {
		t.Errorf("BestScore() = %d, expected the highest of the concurrent saves", score)
	}
}

func TestStoreSettings(t *testing.T) {
	store := openTestStore(t)
	defaults := Settings{Mode: "marathon", Volume: 0.15, Music: true}

	got, err := store.LoadSettings(defaults)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != defaults {
		t.Errorf("LoadSettings() on empty store = %+v, expected defaults", got)
	}

	want := Settings{Mode: "ultra180", Volume: 0.4, Muted: true, Music: false}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	got, err = store.LoadSettings(defaults)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, want)
	}
}
