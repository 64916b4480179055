package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		LibraryID:   "6f1c0c3e-5d7b-4a8e-9d51-0b8f0f6a2c11",
		LibraryPath: "/home/user/Pictures/main.ospl",
		LogDir:      "/home/user/.local/share/ospl/log",
		Database:    DatabaseConfig{Type: "sqlite"},
		Thumbnails:  ThumbnailsConfig{Height: 200, Quality: 70},
		Import:      ImportConfig{Ignore: []string{".DS_Store", "*.xmp"}},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.LibraryID != original.LibraryID {
		t.Errorf("LibraryID = %q, want %q", got.LibraryID, original.LibraryID)
	}
	if got.LibraryPath != original.LibraryPath {
		t.Errorf("LibraryPath = %q, want %q", got.LibraryPath, original.LibraryPath)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", got.Database.Type, "sqlite")
	}
	if got.Thumbnails != original.Thumbnails {
		t.Errorf("Thumbnails = %+v, want %+v", got.Thumbnails, original.Thumbnails)
	}
	if len(got.Import.Ignore) != 2 || got.Import.Ignore[1] != "*.xmp" {
		t.Errorf("Import.Ignore = %v, want %v", got.Import.Ignore, original.Import.Ignore)
	}
}

func TestManager_Read_Defaults(t *testing.T) {
	input := `
library_path = "/photos/main.ospl"

[database]
type = "memory"
`
	m := &Manager{}
	got, err := m.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.Thumbnails.Height != DefaultThumbnailHeight {
		t.Errorf("Thumbnails.Height = %d, want %d", got.Thumbnails.Height, DefaultThumbnailHeight)
	}
	if got.Thumbnails.Quality != DefaultThumbnailQuality {
		t.Errorf("Thumbnails.Quality = %d, want %d", got.Thumbnails.Quality, DefaultThumbnailQuality)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("lib-1", "/photos/main.ospl", "/data/ospl")

	if cfg.LibraryID != "lib-1" {
		t.Errorf("LibraryID = %q, want %q", cfg.LibraryID, "lib-1")
	}
	if cfg.LibraryPath != "/photos/main.ospl" {
		t.Errorf("LibraryPath = %q, want %q", cfg.LibraryPath, "/photos/main.ospl")
	}
	if cfg.LogDir != "/data/ospl/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/ospl/log")
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", cfg.Database.Type, "sqlite")
	}
	if cfg.Thumbnails.Height != 325 {
		t.Errorf("Thumbnails.Height = %d, want 325", cfg.Thumbnails.Height)
	}
	if len(cfg.Import.Ignore) != len(DefaultIgnore) {
		t.Errorf("len(Import.Ignore) = %d, want %d", len(cfg.Import.Ignore), len(DefaultIgnore))
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", modify: func(*Config) {}},
		{name: "missing library path", modify: func(c *Config) { c.LibraryPath = "" }, wantErr: true},
		{name: "zero thumbnail height", modify: func(c *Config) { c.Thumbnails.Height = 0 }, wantErr: true},
		{name: "quality too high", modify: func(c *Config) { c.Thumbnails.Quality = 101 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("lib-1", "/photos/main.ospl", "/data/ospl")
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "ospl.toml")
		cfg := NewConfig("lib-1", filepath.Join(dir, "main.ospl"), dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.LibraryID != "lib-1" {
			t.Errorf("LibraryID = %q, want %q", got.LibraryID, "lib-1")
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "ospl.toml")
		cfg := NewConfig("lib-1", filepath.Join(dir, "main.ospl"), dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, cfg); err == nil {
			t.Error("second Init() error = nil, want error")
		}
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "ospl.toml")
		cfg := NewConfig("lib-1", "", dir)

		if err := Init(path, cfg); err == nil {
			t.Error("Init() error = nil, want error")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("config file exists after failed Init(): %v", err)
		}
	})
}

func TestReadFromFile_Missing(t *testing.T) {
	_, err := ReadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Error("ReadFromFile() error = nil, want error")
	}
}
