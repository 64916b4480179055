package app

import (
	"fmt"
	"os"
	"path/filepath"

	"ospl-go/internal/config"
)

// Defaults are the paths used when a command or a fresh config names none.
//
// Environment variables:
//   - OSPL_CONFIG_PATH: config file (default ~/.config/ospl.toml)
//   - OSPL_HOME: data directory holding logs (default ~/.local/share/ospl)
//   - OSPL_LIBRARY: library root for "config init" (default $OSPL_HOME/library.ospl)
type Defaults struct {
	ConfigPath  string
	BaseDir     string
	LogDir      string
	LibraryPath string
}

// GetDefaults resolves the default paths, environment variables first.
func GetDefaults() (*Defaults, error) {
	configPath, err := envOrHome("OSPL_CONFIG_PATH", ".config", "ospl.toml")
	if err != nil {
		return nil, err
	}
	baseDir, err := envOrHome("OSPL_HOME", ".local", "share", "ospl")
	if err != nil {
		return nil, err
	}

	libraryPath := os.Getenv("OSPL_LIBRARY")
	if libraryPath == "" {
		libraryPath = filepath.Join(baseDir, "library.ospl")
	}

	return &Defaults{
		ConfigPath:  configPath,
		BaseDir:     baseDir,
		LogDir:      filepath.Join(baseDir, "log"),
		LibraryPath: libraryPath,
	}, nil
}

// NewConfig builds a fresh config for a library. An empty libraryPath
// selects d.LibraryPath.
func (d *Defaults) NewConfig(libraryID, libraryPath string) *config.Config {
	if libraryPath == "" {
		libraryPath = d.LibraryPath
	}
	return config.NewConfig(libraryID, libraryPath, d.BaseDir)
}

// envOrHome returns the value of env, or the path below the user's home
// directory when env is unset.
func envOrHome(env string, rel ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, rel...)...), nil
}
