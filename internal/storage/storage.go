package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/coltonswapp/nestnote/internal/model"
)

// Storage defines the interface for persisting a nest.
type Storage interface {
	Load() (*model.Nest, error)
	Save(nest *model.Nest) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the nest from the JSON file.
// Returns an empty nest if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Nest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewNest(), nil
		}
		return nil, err
	}

	var nest model.Nest
	if err := json.Unmarshal(data, &nest); err != nil {
		return nil, err
	}

	// Ensure slices are not nil
	if nest.Categories == nil {
		nest.Categories = []model.Category{}
	}
	if nest.Entries == nil {
		nest.Entries = []model.Entry{}
	}
	if nest.Places == nil {
		nest.Places = []model.Place{}
	}
	if nest.Routines == nil {
		nest.Routines = []model.Routine{}
	}
	if nest.PinnedCategories == nil {
		nest.PinnedCategories = []string{}
	}

	return &nest, nil
}

// Save writes the nest to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(nest *model.Nest) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(nest, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// DefaultJSONPath returns the default JSON path: ~/.config/nn/nest.json
func DefaultJSONPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "nn", "nest.json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage(cfg *Config) (Storage, error) {
	sqlitePath := cfg.DataPath
	if sqlitePath == "" {
		var err error
		sqlitePath, err = DefaultSQLitePath()
		if err != nil {
			return nil, err
		}
	}

	// If SQLite database exists, use it
	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	// Fall back to JSON
	jsonPath, err := DefaultJSONPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
