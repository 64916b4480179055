package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ospl-go/internal/app"
	"ospl-go/internal/config"
	"ospl-go/internal/ospl"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var se *ospl.StepError
		if errors.As(err, &se) && se.Outcome != ospl.NotApplied {
			fmt.Fprintf(os.Stderr, "library left partially changed: %s\n", se.Outcome)
		}
		os.Exit(1)
	}
}

// readConfig reads the config file named by the defaults.
func readConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and opens the library. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "ImportPhoto", "DeleteAlbum").
func newApp(operation string) (*app.OSPLApp, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewOSPLApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// confirm asks before a destructive command. --yes skips the question; without
// it a non-interactive stdin is refused.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("stdin is not a terminal; pass --yes to %s", question)
	}

	fmt.Printf("%s? [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

var rootCmd = &cobra.Command{
	Use:   "ospl",
	Short: "Personal photo library",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		libraryPath, _ := cmd.Flags().GetString("library")
		cfg := defaults.NewConfig(uuid.New().String(), libraryPath)

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Library ID:   %s\n", cfg.LibraryID)
		fmt.Printf("Library Path: %s\n", cfg.LibraryPath)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Library ID:   %s\n", cfg.LibraryID)
		fmt.Printf("Library Path: %s\n", cfg.LibraryPath)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Database:     %s\n", cfg.Database.Type)
		fmt.Printf("Thumbnails:   %dpx, quality %d\n", cfg.Thumbnails.Height, cfg.Thumbnails.Quality)
		fmt.Printf("Ignore:       %s\n", strings.Join(cfg.Import.Ignore, ", "))
		return nil
	},
}

// init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configured library",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		if err := app.CreateLibrary(cfg); err != nil {
			return fmt.Errorf("creating library: %w", err)
		}

		fmt.Printf("Library created at %s\n", cfg.LibraryPath)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().String("library", "", "Library directory (default: $OSPL_LIBRARY or <base dir>/library.ospl)")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(photoCmd)
}
