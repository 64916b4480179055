package ospl

import (
	"io"
	"path"
)

// Library tree layout, relative to the library root.
const (
	DatabaseFilename = "database.db"
	PicturesDir      = "pictures"
	ThumbnailsDir    = "thumbnails"
	CollectionsDir   = "collections"
)

// Filesystem provides the file tree side of a library.
// Paths named rel are slash-separated and relative to the library root.
// Paths named source are host paths outside the library.
type Filesystem interface {
	// Mkdir creates a single directory. It fails if the path exists.
	Mkdir(rel string) error

	// Rename moves oldRel to newRel. Renaming a path onto itself is a no-op;
	// an existing target is never overwritten.
	Rename(oldRel, newRel string) error

	// Remove deletes a single file.
	Remove(rel string) error

	// RemoveAll deletes a path and everything below it. A missing path is
	// not an error.
	RemoveAll(rel string) error

	// Link creates linkRel as a hard link to targetRel.
	Link(targetRel, linkRel string) error

	// Exists reports whether rel is present.
	Exists(rel string) (bool, error)

	// Open opens a file inside the library for reading.
	Open(rel string) (io.ReadCloser, error)

	// WriteFile atomically creates rel with the bytes produced by write.
	// An existing file is never overwritten.
	WriteFile(rel string, write func(w io.Writer) error) error

	// Abs returns the host path of rel.
	Abs(rel string) string

	// ResolveSource validates a host path to be imported and returns its
	// absolute form. Missing paths fail with KindNotFound; directories and
	// other non-regular files fail with KindUnsupported.
	ResolveSource(source string) (string, error)

	// OpenSource opens a resolved source for reading.
	OpenSource(source string) (io.ReadCloser, error)

	// CopyIn copies a resolved source into the library at rel without
	// overwriting anything already there.
	CopyIn(source, rel string) error

	// SourceFiles lists the regular files directly inside a host directory,
	// sorted by name, leaving out names matched by the ignore patterns.
	SourceFiles(dir string) ([]string, error)
}

func collectionPath(name string) string {
	return path.Join(CollectionsDir, name)
}

func albumPath(collection, name string) string {
	return path.Join(CollectionsDir, collection, name)
}

func picturePath(displayName string) string {
	return path.Join(PicturesDir, displayName)
}

func thumbnailPath(displayName string) string {
	return path.Join(ThumbnailsDir, displayName)
}
