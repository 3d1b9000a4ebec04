package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration, populated from the environment.
type Config struct {
	// DataPath overrides the SQLite database location.
	DataPath string `env:"NN_DATA_PATH"`
	// LogFile is where the application log is written. The TUI owns the
	// terminal, so logs never go to stdout.
	LogFile string `env:"NN_LOG_FILE"`
	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `env:"NN_LOG_LEVEL" envDefault:"info"`
	// ExportDir is the default directory for sitter sheet exports.
	ExportDir string `env:"NN_EXPORT_DIR"`
}

// LoadConfig builds a Config from environment variables layered over
// defaults. Invalid values fail loudly rather than being ignored.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.LogFile == "" {
		path, err := defaultLogPath()
		if err != nil {
			return nil, err
		}
		cfg.LogFile = path
	}

	if cfg.ExportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.ExportDir = filepath.Join(home, "Downloads")
	}

	return &cfg, nil
}

// defaultLogPath returns the default log path: ~/.config/nn/nn.log
func defaultLogPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "nn", "nn.log"), nil
}
