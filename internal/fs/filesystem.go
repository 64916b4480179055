package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"ospl-go/internal/ospl"
)

// LibraryFilesystem is the real file tree of one library. Relative paths are
// resolved against its root.
type LibraryFilesystem struct {
	root   string
	ignore *IgnoreMatcher
}

// Compile-time check that LibraryFilesystem implements ospl.Filesystem.
var _ ospl.Filesystem = (*LibraryFilesystem)(nil)

// librarySubdirs are created under every new library root.
var librarySubdirs = []string{ospl.PicturesDir, ospl.ThumbnailsDir, ospl.CollectionsDir}

// NewLibraryFilesystem opens the file tree of an existing library. It fails
// if the root or one of its subdirectories is missing.
func NewLibraryFilesystem(root string, ignorePatterns []string) (*LibraryFilesystem, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving library root: %w", err)
	}
	for _, dir := range append([]string{""}, librarySubdirs...) {
		p := filepath.Join(abs, dir)
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("opening library: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("opening library: %s is not a directory", p)
		}
	}
	return newLibraryFilesystem(abs, ignorePatterns), nil
}

// CreateLibraryTree creates a library root and its subdirectories. Missing
// parents of the root are created; the root itself must not exist. If a
// subdirectory cannot be created the new root is removed again.
func CreateLibraryTree(root string, ignorePatterns []string) (*LibraryFilesystem, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving library root: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return nil, fmt.Errorf("creating library parent: %w", err)
	}
	if err := os.Mkdir(abs, 0755); err != nil {
		return nil, fmt.Errorf("creating library root: %w", err)
	}
	for _, dir := range librarySubdirs {
		if err := os.Mkdir(filepath.Join(abs, dir), 0755); err != nil {
			os.RemoveAll(abs)
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return newLibraryFilesystem(abs, ignorePatterns), nil
}

func newLibraryFilesystem(root string, ignorePatterns []string) *LibraryFilesystem {
	return &LibraryFilesystem{
		root:   root,
		ignore: NewIgnoreMatcher(append(append([]string{}, defaultIgnorePatterns...), ignorePatterns...)),
	}
}

// Root returns the absolute library root.
func (l *LibraryFilesystem) Root() string { return l.root }

func (l *LibraryFilesystem) Abs(rel string) string {
	return filepath.Join(l.root, filepath.FromSlash(rel))
}

func (l *LibraryFilesystem) Mkdir(rel string) error {
	if err := os.Mkdir(l.Abs(rel), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return nil
}

func (l *LibraryFilesystem) Rename(oldRel, newRel string) error {
	if oldRel == newRel {
		return nil
	}
	dst := l.Abs(newRel)
	// os.Rename silently replaces an empty directory or a file.
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("renaming to %s: %w", newRel, fs.ErrExist)
	}
	if err := os.Rename(l.Abs(oldRel), dst); err != nil {
		return fmt.Errorf("renaming %s: %w", oldRel, err)
	}
	return nil
}

func (l *LibraryFilesystem) Remove(rel string) error {
	if err := os.Remove(l.Abs(rel)); err != nil {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

func (l *LibraryFilesystem) RemoveAll(rel string) error {
	if err := os.RemoveAll(l.Abs(rel)); err != nil {
		return fmt.Errorf("removing tree: %w", err)
	}
	return nil
}

func (l *LibraryFilesystem) Link(targetRel, linkRel string) error {
	if err := os.Link(l.Abs(targetRel), l.Abs(linkRel)); err != nil {
		return fmt.Errorf("linking %s: %w", targetRel, err)
	}
	return nil
}

func (l *LibraryFilesystem) Exists(rel string) (bool, error) {
	_, err := os.Lstat(l.Abs(rel))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", rel, err)
}

func (l *LibraryFilesystem) Open(rel string) (io.ReadCloser, error) {
	f, err := os.Open(l.Abs(rel))
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	return f, nil
}

func (l *LibraryFilesystem) WriteFile(rel string, write func(w io.Writer) error) error {
	return writeFile(l.Abs(rel), write)
}

func (l *LibraryFilesystem) CopyIn(source, rel string) error {
	src, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	return writeFile(l.Abs(rel), func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
}

func (l *LibraryFilesystem) ResolveSource(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return "", &ospl.Error{Kind: ospl.KindUnsupported, Op: "resolve source", Path: abs, Err: fmt.Errorf("is a directory")}
	}
	if !info.Mode().IsRegular() {
		return "", &ospl.Error{Kind: ospl.KindUnsupported, Op: "resolve source", Path: abs, Err: fmt.Errorf("not a regular file")}
	}
	return abs, nil
}

func (l *LibraryFilesystem) OpenSource(source string) (io.ReadCloser, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	return f, nil
}

func (l *LibraryFilesystem) SourceFiles(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	local, err := ParseIgnoreFile(filepath.Join(abs, IgnoreFilename))
	if err != nil {
		return nil, err
	}
	ignore := l.ignore.With(local)

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ignore.Match(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(abs, entry.Name()))
	}
	return paths, nil
}

// writeFile streams into a temp file next to destPath and then hard links it
// into place, so a reader never sees a partial file and an existing destPath
// is never replaced.
func writeFile(destPath string, write func(w io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := write(tmpFile); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Link(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to place file: %w", err)
	}
	return nil
}
