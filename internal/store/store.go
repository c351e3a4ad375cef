// Package store provides SQLite persistence for the catalog and rating tables.
package store

import (
	"database/sql"
	"fmt"
	"math"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/abelbrown/picks/internal/catalog"
	"github.com/abelbrown/picks/internal/ratings"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	// Build connection string based on database type
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:)
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS laptops (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		price REAL NOT NULL,
		storage_gb REAL NOT NULL,
		memory_gb REAL NOT NULL,
		memory_type TEXT NOT NULL,
		display_inches REAL NOT NULL,
		cores REAL
	);

	CREATE TABLE IF NOT EXISTS ratings (
		user_id INTEGER NOT NULL,
		item_id INTEGER NOT NULL,
		value INTEGER NOT NULL CHECK(value BETWEEN 0 AND 5),
		PRIMARY KEY (user_id, item_id)
	);

	CREATE INDEX IF NOT EXISTS idx_ratings_item ON ratings(item_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveItems stores catalog rows, returning count of new rows inserted.
// Duplicates (by id) are silently ignored via INSERT OR IGNORE.
// A NaN cores value is stored as NULL.
// Thread-safe: acquires write lock.
func (s *Store) SaveItems(items []catalog.Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		return 0, nil
	}

	stmt, err := s.db.Prepare(`
		INSERT OR IGNORE INTO laptops (
			id, title, price, storage_gb, memory_gb, memory_type, display_inches, cores
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	newCount := 0
	for _, item := range items {
		var cores any
		if !math.IsNaN(item.Cores) {
			cores = item.Cores
		}

		result, err := stmt.Exec(
			item.ID,
			item.Title,
			item.Price,
			item.StorageGB,
			item.MemoryGB,
			item.MemoryType,
			item.DisplayInches,
			cores,
		)
		if err != nil {
			return newCount, err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return newCount, err
		}
		if affected > 0 {
			newCount++
		}
	}

	return newCount, nil
}

// Items retrieves all catalog rows ordered by id.
// A NULL cores column comes back as NaN.
// Thread-safe: acquires read lock.
func (s *Store) Items() ([]catalog.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, price, storage_gb, memory_gb, memory_type, display_inches, cores
		FROM laptops
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		var item catalog.Item
		var cores sql.NullFloat64
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Price,
			&item.StorageGB,
			&item.MemoryGB,
			&item.MemoryType,
			&item.DisplayInches,
			&cores,
		)
		if err != nil {
			return nil, err
		}
		if cores.Valid {
			item.Cores = cores.Float64
		} else {
			item.Cores = math.NaN()
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// SaveRatings stores rating triples, returning count of new rows inserted.
// Duplicate (user, item) pairs are silently ignored via INSERT OR IGNORE.
// Thread-safe: acquires write lock.
func (s *Store) SaveRatings(rs []ratings.Rating) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rs) == 0 {
		return 0, nil
	}

	stmt, err := s.db.Prepare(`
		INSERT OR IGNORE INTO ratings (user_id, item_id, value) VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	newCount := 0
	for _, r := range rs {
		result, err := stmt.Exec(r.UserID, r.ItemID, r.Value)
		if err != nil {
			return newCount, err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return newCount, err
		}
		if affected > 0 {
			newCount++
		}
	}

	return newCount, nil
}

// ReplaceRatings atomically swaps the whole rating table for a fresh one.
// Used after regeneration; the generator is the only writer, so readers
// never observe a partially written table.
// Thread-safe: acquires write lock.
func (s *Store) ReplaceRatings(rs []ratings.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ratings"); err != nil {
		return fmt.Errorf("clear ratings: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO ratings (user_id, item_id, value) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rs {
		if _, err := stmt.Exec(r.UserID, r.ItemID, r.Value); err != nil {
			return fmt.Errorf("insert rating (%d,%d): %w", r.UserID, r.ItemID, err)
		}
	}

	return tx.Commit()
}

// Ratings retrieves all rating triples in insertion order.
// Thread-safe: acquires read lock.
func (s *Store) Ratings() ([]ratings.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT user_id, item_id, value FROM ratings ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rs []ratings.Rating
	for rows.Next() {
		var r ratings.Rating
		if err := rows.Scan(&r.UserID, &r.ItemID, &r.Value); err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rs, nil
}

// Counts returns the number of catalog rows and rating triples.
// Thread-safe: acquires read lock.
func (s *Store) Counts() (items, ratingRows int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.db.QueryRow("SELECT COUNT(*) FROM laptops").Scan(&items); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM ratings").Scan(&ratingRows); err != nil {
		return 0, 0, err
	}
	return items, ratingRows, nil
}
