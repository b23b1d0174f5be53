package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	data := []byte(`{"money":3000,"tickCount":12}`)

	info, written, err := store.SaveGame("main", 12, 3000, data)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if !written {
		t.Error("first save reported as skipped")
	}
	if _, err := uuid.Parse(info.GameID); err != nil {
		t.Errorf("GameID %q is not a UUID: %v", info.GameID, err)
	}

	save, err := store.LoadGame("main")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if !bytes.Equal(save.Data, data) {
		t.Errorf("LoadGame() data = %s, want %s", save.Data, data)
	}
	if save.Tick != 12 || save.Money != 3000 || save.GameID != info.GameID {
		t.Errorf("LoadGame() info = %+v", save.SaveInfo)
	}
	if save.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestStoreSaveKeepsGameID(t *testing.T) {
	store := openTestStore(t)

	first, _, err := store.SaveGame("main", 1, 10, []byte(`{"tickCount":1}`))
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	// Identical record: skipped.
	again, written, err := store.SaveGame("main", 1, 10, []byte(`{"tickCount":1}`))
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if written {
		t.Error("identical save was written")
	}
	if again.Digest != first.Digest {
		t.Error("digest changed for an identical record")
	}

	second, written, err := store.SaveGame("main", 2, 20, []byte(`{"tickCount":2}`))
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if !written || second.Tick != 2 || second.Money != 20 {
		t.Errorf("overwrite = %+v, written %v", second, written)
	}
	if second.GameID != first.GameID {
		t.Error("overwrite changed the game id")
	}

	other, _, err := store.SaveGame("other", 1, 10, []byte(`{"tickCount":1}`))
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if other.GameID == first.GameID {
		t.Error("two slots share a game id")
	}
}

func TestStoreListAndDelete(t *testing.T) {
	store := openTestStore(t)

	for _, slot := range []string{"a", "b", "c"} {
		if _, _, err := store.SaveGame(slot, 0, 0, []byte(`{"slot":"`+slot+`"}`)); err != nil {
			t.Fatalf("SaveGame(%s) failed: %v", slot, err)
		}
	}

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 3 {
		t.Fatalf("Expected 3 saves, got %d", len(saves))
	}

	if err := store.DeleteSave("b"); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if err := store.DeleteSave("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteSave() error = %v, want ErrNotFound", err)
	}
	if _, err := store.LoadGame("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadGame() of deleted slot error = %v, want ErrNotFound", err)
	}

	saves, _ = store.ListSaves()
	if len(saves) != 2 {
		t.Errorf("Expected 2 saves after delete, got %d", len(saves))
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestMoney()
	if err != nil {
		t.Fatalf("BestMoney() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best money of 0 with no runs, got %v", best)
	}

	for i, money := range []float64{100, 5e12, -40, 300, 7.5} {
		run := RunEntry{GameID: "g", Slot: "main", Ticks: int64(i * 10), Money: money, Researched: i, GameOver: money > 1e12}
		if _, err := store.RecordRun(run); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Money != 5e12 || runs[1].Money != 300 || runs[2].Money != 100 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if !runs[0].GameOver || runs[1].GameOver {
		t.Error("GameOver flag not stored")
	}

	best, _ = store.BestMoney()
	if best != 5e12 {
		t.Errorf("Expected best money of 5e12, got %v", best)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 5 || stats.TotalTicks != 100 || stats.BestMoney != 5e12 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
