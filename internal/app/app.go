package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ospl-go/internal/config"
	"ospl-go/internal/database"
	"ospl-go/internal/fs"
	"ospl-go/internal/media"
	"ospl-go/internal/ospl"
)

// OSPLApp is the application layer between the CLI and ospl.Library.
// It constructs all dependencies from config, exposes the library operations
// that take raw string paths, and closes the database and log on Close.
type OSPLApp struct {
	cfg     *config.Config
	db      *database.SQLiteDatabase
	fs      *fs.LibraryFilesystem
	library *ospl.Library
	op      *Operation
	logger  ospl.Logger
	logFile *os.File
}

// CreateLibrary lays out a new library at cfg.LibraryPath: the root, its
// subdirectories and a migrated database. The root must not exist yet, and
// it is removed again when the database cannot be created.
func CreateLibrary(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	root, err := filepath.Abs(cfg.LibraryPath)
	if err != nil {
		return fmt.Errorf("resolving library path: %w", err)
	}

	if _, err := fs.CreateLibraryTree(root, cfg.Import.Ignore); err != nil {
		return fmt.Errorf("creating library tree: %w", err)
	}
	db, err := database.CreateDatabaseFromConfig(cfg.Database, root)
	if err != nil {
		os.RemoveAll(root)
		return fmt.Errorf("creating database: %w", err)
	}
	return db.Close()
}

// NewOSPLApp opens the library named by cfg.
// operation identifies the CLI command being run (e.g. "ImportPhoto").
// The caller must call Close when done.
func NewOSPLApp(cfg *config.Config, operation string) (*OSPLApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(cfg.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("resolving library path: %w", err)
	}

	lfs, err := fs.NewLibraryFilesystem(root, cfg.Import.Ignore)
	if err != nil {
		return nil, fmt.Errorf("opening library tree: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database, root)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	op := NewOperation(operation, ospl.RealClock{})
	logger, logFile, err := newLogger(cfg.LogDir, op.ID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	lib := ospl.NewLibrary(
		db,
		lfs,
		media.NewMimeSniffer(),
		media.NewResizeThumbnailer(cfg.Thumbnails.Height, cfg.Thumbnails.Quality),
		log,
		ospl.RealClock{},
	)
	log.Debug("operation started", "operation", op.Name, "library", root)

	return &OSPLApp{
		cfg:     cfg,
		db:      db,
		fs:      lfs,
		library: lib,
		op:      op,
		logger:  log,
		logFile: logFile,
	}, nil
}

// Library returns the library behind the app.
func (a *OSPLApp) Library() *ospl.Library { return a.library }

// Root returns the absolute library root.
func (a *OSPLApp) Root() string { return a.fs.Root() }

// record marks the operation failed when err is set and passes err through.
func (a *OSPLApp) record(err error) error {
	if err != nil {
		a.op.Fail(err)
	}
	return err
}

// Collections

func (a *OSPLApp) CreateCollection(name, comment string) (*ospl.Collection, error) {
	c, err := a.library.CreateCollection(name, comment)
	return c, a.record(err)
}

func (a *OSPLApp) RenameCollection(id int64, name string) (*ospl.Collection, error) {
	c, err := a.library.RenameCollection(id, name)
	return c, a.record(err)
}

func (a *OSPLApp) DeleteCollection(id int64) error {
	return a.record(a.library.DeleteCollection(id))
}

// Albums

func (a *OSPLApp) CreateAlbum(collectionID int64, name, comment string) (*ospl.Album, error) {
	al, err := a.library.CreateAlbum(collectionID, name, comment)
	return al, a.record(err)
}

func (a *OSPLApp) RenameAlbum(id int64, name string) (*ospl.Album, error) {
	al, err := a.library.RenameAlbum(id, name)
	return al, a.record(err)
}

func (a *OSPLApp) MoveAlbum(id, collectionID int64) (*ospl.Album, error) {
	al, err := a.library.MoveAlbum(id, collectionID)
	return al, a.record(err)
}

func (a *OSPLApp) DeleteAlbum(id int64) error {
	return a.record(a.library.DeleteAlbum(id))
}

func (a *OSPLApp) AssignPhotoToAlbum(photoID, albumID int64) error {
	return a.record(a.library.AssignPhotoToAlbum(photoID, albumID))
}

// Photos

// ImportPhoto resolves rawPath against the working directory and imports it.
func (a *OSPLApp) ImportPhoto(rawPath string) (*ospl.Photo, error) {
	p, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	photo, err := a.library.ImportPhoto(p)
	return photo, a.record(err)
}

// ImportPhotoIntoAlbum resolves rawPath and imports it into an album.
func (a *OSPLApp) ImportPhotoIntoAlbum(rawPath string, albumID int64) (*ospl.Photo, error) {
	p, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	photo, err := a.library.ImportPhotoIntoAlbum(p, albumID)
	return photo, a.record(err)
}

// ImportFolderIntoAlbum resolves rawDir and imports every file in it. The
// operation is marked failed when any single file failed.
func (a *OSPLApp) ImportFolderIntoAlbum(rawDir string, albumID int64) ([]ospl.ImportResult, error) {
	dir, err := filepath.Abs(rawDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	results, err := a.library.ImportFolderIntoAlbum(dir, albumID)
	if err != nil {
		return nil, a.record(err)
	}
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	a.record(errors.Join(errs...))
	return results, nil
}

func (a *OSPLApp) SetPhotoRating(id int64, rating int) (*ospl.Photo, error) {
	p, err := a.library.SetPhotoRating(id, rating)
	return p, a.record(err)
}

func (a *OSPLApp) SetPhotoStarred(id int64, starred bool) (*ospl.Photo, error) {
	p, err := a.library.SetPhotoStarred(id, starred)
	return p, a.record(err)
}

func (a *OSPLApp) DeletePhoto(id int64) error {
	return a.record(a.library.DeletePhoto(id))
}

// Close logs the operation's result and closes the database and log file.
// A failed operation logs its first error, with the step outcome when the
// library reported one.
func (a *OSPLApp) Close() error {
	args := []any{"operation", a.op.Name, "status", a.op.Status}
	if a.op.Err != nil {
		args = append(args, "err", a.op.Err)
	}
	a.logger.Info("operation finished", args...)

	var firstErr error
	if err := a.library.Close(); err != nil {
		firstErr = err
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
