package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default settings written by NewConfig.
const (
	DefaultThumbnailHeight  = 325
	DefaultThumbnailQuality = 85
)

// DefaultIgnore lists file names skipped when importing a folder.
var DefaultIgnore = []string{".DS_Store", "Thumbs.db", "desktop.ini", ".*.swp"}

// Config represents the main configuration for ospl.
type Config struct {
	LibraryID   string           `toml:"library_id"`
	LibraryPath string           `toml:"library_path"`
	LogDir      string           `toml:"log_dir"`
	Database    DatabaseConfig   `toml:"database"`
	Thumbnails  ThumbnailsConfig `toml:"thumbnails"`
	Import      ImportConfig     `toml:"import"`
}

// DatabaseConfig represents configuration for the relational store.
// The database file always lives at the library root; Type selects between it
// and a throwaway in-memory database.
type DatabaseConfig struct {
	Type string `toml:"type"` // "sqlite" or "memory"
}

// ThumbnailsConfig controls thumbnail generation.
type ThumbnailsConfig struct {
	Height  int `toml:"height"`  // pixels, width follows the aspect ratio
	Quality int `toml:"quality"` // JPEG quality, 1-100
}

// ImportConfig holds import settings.
type ImportConfig struct {
	Ignore []string `toml:"ignore"`
}

// NewConfig creates a new Config with default settings for a library at
// libraryPath, logging below baseDir.
func NewConfig(libraryID, libraryPath, baseDir string) *Config {
	return &Config{
		LibraryID:   libraryID,
		LibraryPath: libraryPath,
		LogDir:      filepath.Join(baseDir, "log"),
		Database:    DatabaseConfig{Type: "sqlite"},
		Thumbnails: ThumbnailsConfig{
			Height:  DefaultThumbnailHeight,
			Quality: DefaultThumbnailQuality,
		},
		Import: ImportConfig{Ignore: append([]string(nil), DefaultIgnore...)},
	}
}

// Validate checks the fields every command depends on.
func (c *Config) Validate() error {
	if c.LibraryPath == "" {
		return fmt.Errorf("library_path is required")
	}
	if c.Thumbnails.Height <= 0 {
		return fmt.Errorf("thumbnails.height must be positive, got %d", c.Thumbnails.Height)
	}
	if c.Thumbnails.Quality < 1 || c.Thumbnails.Quality > 100 {
		return fmt.Errorf("thumbnails.quality must be between 1 and 100, got %d", c.Thumbnails.Quality)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader. Thumbnail settings left
// out of the file fall back to their defaults.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := Config{
		Thumbnails: ThumbnailsConfig{
			Height:  DefaultThumbnailHeight,
			Quality: DefaultThumbnailQuality,
		},
	}
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes a new config file at path. It refuses to overwrite an existing
// file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
