package ospl

import "strings"

// Persistable is an entity with a row in the relational store.
type Persistable interface {
	ID() int64
	DeleteRow(db Database) error
}

// Placeable is an entity with a presence in the file tree.
type Placeable interface {
	Place(fs Filesystem) error
	Remove(fs Filesystem) error
}

// Element is a bound entity living in both stores.
type Element interface {
	Persistable
	Placeable
}

// Renamable is an element whose name can change after creation.
// RenamePath and RenameRow each touch one store only; the caller sequences
// them.
type Renamable interface {
	Element
	RenamePath(fs Filesystem, name string) error
	RenameRow(db Database, name string) error
}

// Draft is an entity that has not been inserted yet. Bind is the only way to
// obtain a bound E, and it requires the id the store assigned.
type Draft[E Element] interface {
	Validate() error
	InsertRow(db Database) (int64, error)
	Bind(id int64) E
}

// Loader fetches a fully populated bound element by id. A missing row fails
// with KindNotFound.
type Loader[E Element] func(db Database, id int64) (E, error)

// validateName checks a collection or album name before anything is written.
// Names become single path components.
func validateName(op, name string) error {
	if strings.TrimSpace(name) == "" {
		return newError(KindEmptyName, op, "", nil)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return newError(KindUnsupported, op, name, nil)
	}
	return nil
}
