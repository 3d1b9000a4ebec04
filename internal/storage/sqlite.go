package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/coltonswapp/nestnote/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys and set pragmas for performance
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL UNIQUE,
			symbol_name TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(category);

		CREATE TABLE IF NOT EXISTS places (
			id TEXT PRIMARY KEY NOT NULL,
			alias TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_places_category ON places(category);

		CREATE TABLE IF NOT EXISTS routines (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			frequency TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_routines_category ON routines(category);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the pinned categories table with stable pin ordering.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		CREATE TABLE IF NOT EXISTS pinned_categories (
			name TEXT PRIMARY KEY NOT NULL,
			pin_order INTEGER NOT NULL DEFAULT 0
		);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the nest from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Nest, error) {
	nest := model.NewNest()

	// Load categories
	rows, err := s.db.Query(`
		SELECT id, name, symbol_name
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SymbolName); err != nil {
			return nil, err
		}
		nest.Categories = append(nest.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load entries
	rows, err = s.db.Query(`
		SELECT id, title, content, category, created_at, updated_at
		FROM entries
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.Entry
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.Category, &createdAtStr, &updatedAtStr); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
		nest.Entries = append(nest.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load places
	rows, err = s.db.Query(`
		SELECT id, alias, address, category
		FROM places
		ORDER BY alias
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Place
		if err := rows.Scan(&p.ID, &p.Alias, &p.Address, &p.Category); err != nil {
			return nil, err
		}
		nest.Places = append(nest.Places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load routines
	rows, err = s.db.Query(`
		SELECT id, title, frequency, category
		FROM routines
		ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r model.Routine
		if err := rows.Scan(&r.ID, &r.Title, &r.Frequency, &r.Category); err != nil {
			return nil, err
		}
		nest.Routines = append(nest.Routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load pinned categories in pin order
	rows, err = s.db.Query(`
		SELECT name
		FROM pinned_categories
		ORDER BY pin_order
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		nest.PinnedCategories = append(nest.PinnedCategories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return nest, nil
}

// Save writes the nest to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(nest *model.Nest) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Clear existing data
	for _, table := range []string{"entries", "places", "routines", "categories", "pinned_categories"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	// Insert categories
	categoryStmt, err := tx.Prepare(`
		INSERT INTO categories (id, name, symbol_name)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer categoryStmt.Close()

	for _, c := range nest.Categories {
		if _, err := categoryStmt.Exec(c.ID, c.Name, c.SymbolName); err != nil {
			return err
		}
	}

	// Insert entries
	entryStmt, err := tx.Prepare(`
		INSERT INTO entries (id, title, content, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	for _, e := range nest.Entries {
		createdAt := e.CreatedAt.Format(time.RFC3339)
		updatedAt := e.UpdatedAt.Format(time.RFC3339)
		if _, err := entryStmt.Exec(e.ID, e.Title, e.Content, e.Category, createdAt, updatedAt); err != nil {
			return err
		}
	}

	// Insert places
	placeStmt, err := tx.Prepare(`
		INSERT INTO places (id, alias, address, category)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer placeStmt.Close()

	for _, p := range nest.Places {
		if _, err := placeStmt.Exec(p.ID, p.Alias, p.Address, p.Category); err != nil {
			return err
		}
	}

	// Insert routines
	routineStmt, err := tx.Prepare(`
		INSERT INTO routines (id, title, frequency, category)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer routineStmt.Close()

	for _, r := range nest.Routines {
		if _, err := routineStmt.Exec(r.ID, r.Title, r.Frequency, r.Category); err != nil {
			return err
		}
	}

	// Insert pinned categories, preserving order
	pinStmt, err := tx.Prepare(`
		INSERT INTO pinned_categories (name, pin_order)
		VALUES (?, ?)
	`)
	if err != nil {
		return err
	}
	defer pinStmt.Close()

	for i, name := range nest.PinnedCategories {
		if _, err := pinStmt.Exec(name, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/nn/nest.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "nn", "nest.db"), nil
}
