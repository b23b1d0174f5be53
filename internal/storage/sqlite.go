// Package storage provides SQLite-based persistence for save slots and
// finished runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/rubberband/internal/savegame"
)

// ErrNotFound is returned when a save slot does not exist.
var ErrNotFound = errors.New("storage: save slot not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveInfo describes a save slot without its payload.
type SaveInfo struct {
	Slot      string
	GameID    string // stable across overwrites of the same slot
	Tick      int64
	Money     float64
	Digest    string // blake3 of the uncompressed record
	UpdatedAt time.Time
}

// Save is a save slot with its serialized record.
type Save struct {
	SaveInfo
	Data []byte
}

// RunEntry is the outcome of one finished or interrupted session.
type RunEntry struct {
	ID         int64
	GameID     string
	Slot       string
	Ticks      int64
	Money      float64
	Researched int
	GameOver   bool
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			tick INTEGER NOT NULL DEFAULT 0,
			money REAL NOT NULL DEFAULT 0,
			digest TEXT NOT NULL,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			slot TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			money REAL NOT NULL DEFAULT 0,
			researched INTEGER NOT NULL DEFAULT 0,
			game_over INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_money ON runs(money DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame stores a serialized record in slot. The record is kept
// zstd-compressed. A slot keeps its game id across overwrites. When the
// slot already holds an identical record nothing is written and written
// is false.
func (s *Store) SaveGame(slot string, tick int64, money float64, data []byte) (info SaveInfo, written bool, err error) {
	digest := savegame.Digest(data)

	var gameID, prevDigest string
	err = s.db.QueryRow("SELECT game_id, digest FROM saves WHERE slot = ?", slot).Scan(&gameID, &prevDigest)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		gameID = uuid.NewString()
	case err != nil:
		return SaveInfo{}, false, fmt.Errorf("storage: cannot query save: %w", err)
	case prevDigest == digest:
		info, err = s.saveInfo(slot)
		return info, false, err
	}

	packed, err := savegame.Compress(data)
	if err != nil {
		return SaveInfo{}, false, fmt.Errorf("storage: cannot compress save: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (slot, game_id, tick, money, digest, data)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   tick = excluded.tick,
		   money = excluded.money,
		   digest = excluded.digest,
		   data = excluded.data,
		   updated_at = CURRENT_TIMESTAMP`,
		slot, gameID, tick, money, digest, packed,
	)
	if err != nil {
		return SaveInfo{}, false, fmt.Errorf("storage: cannot save game: %w", err)
	}

	info, err = s.saveInfo(slot)
	return info, true, err
}

func (s *Store) saveInfo(slot string) (SaveInfo, error) {
	var info SaveInfo
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT slot, game_id, tick, money, digest, updated_at
		 FROM saves WHERE slot = ?`,
		slot,
	).Scan(&info.Slot, &info.GameID, &info.Tick, &info.Money, &info.Digest, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveInfo{}, ErrNotFound
	}
	if err != nil {
		return SaveInfo{}, fmt.Errorf("storage: cannot query save: %w", err)
	}
	info.UpdatedAt = parseTime(updatedAt)
	return info, nil
}

// LoadGame returns the save in slot with its record decompressed.
func (s *Store) LoadGame(slot string) (*Save, error) {
	var save Save
	var packed []byte
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT slot, game_id, tick, money, digest, data, updated_at
		 FROM saves WHERE slot = ?`,
		slot,
	).Scan(&save.Slot, &save.GameID, &save.Tick, &save.Money, &save.Digest, &packed, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}

	save.Data, err = savegame.Decompress(packed)
	if err != nil {
		return nil, fmt.Errorf("storage: slot %q: %w", slot, err)
	}
	save.UpdatedAt = parseTime(updatedAt)
	return &save, nil
}

// ListSaves returns every slot, most recently updated first.
func (s *Store) ListSaves() ([]SaveInfo, error) {
	rows, err := s.db.Query(
		`SELECT slot, game_id, tick, money, digest, updated_at
		 FROM saves
		 ORDER BY updated_at DESC, slot ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updatedAt any
		if err := rows.Scan(&info.Slot, &info.GameID, &info.Tick, &info.Money, &info.Digest, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		saves = append(saves, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return saves, nil
}

// DeleteSave removes a slot.
func (s *Store) DeleteSave(slot string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordRun stores the outcome of a session.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, slot, ticks, money, researched, game_over)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.GameID, run.Slot, run.Ticks, run.Money, run.Researched, run.GameOver,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the N richest runs, ordered by money descending.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, slot, ticks, money, researched, game_over, created_at
		 FROM runs
		 ORDER BY money DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Slot, &e.Ticks, &e.Money, &e.Researched, &e.GameOver, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestMoney returns the highest money any run ended with.
// Returns 0 if no runs exist.
func (s *Store) BestMoney() (float64, error) {
	var money sql.NullFloat64
	err := s.db.QueryRow("SELECT MAX(money) FROM runs").Scan(&money)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best run: %w", err)
	}

	if !money.Valid {
		return 0, nil
	}

	return money.Float64, nil
}

// RunStats contains aggregated statistics over recorded runs.
type RunStats struct {
	Runs       int
	BestMoney  float64
	AvgMoney   float64
	TotalTicks int64
	LastPlayed time.Time
}

// Stats aggregates every recorded run.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(money), 0), COALESCE(AVG(money), 0), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestMoney, &stats.AvgMoney, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
