package ospl

import (
	"strconv"
	"time"
)

// Collection is a named top-level grouping of albums, mirrored by the
// directory collections/<name>.
type Collection struct {
	id         int64
	Name       string
	Comment    string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

var _ Renamable = (*Collection)(nil)

func (c *Collection) ID() int64 { return c.id }

// Path returns the library-relative directory of the collection.
func (c *Collection) Path() string { return collectionPath(c.Name) }

func (c *Collection) Place(fs Filesystem) error {
	if err := fs.Mkdir(c.Path()); err != nil {
		return fsError("place collection", c.Path(), err)
	}
	return nil
}

func (c *Collection) Remove(fs Filesystem) error {
	if err := fs.RemoveAll(c.Path()); err != nil {
		return fsError("remove collection", c.Path(), err)
	}
	return nil
}

func (c *Collection) DeleteRow(db Database) error {
	if err := db.DeleteCollection(c.id); err != nil {
		return storeError("delete collection", err)
	}
	return nil
}

func (c *Collection) RenamePath(fs Filesystem, name string) error {
	if err := fs.Rename(c.Path(), collectionPath(name)); err != nil {
		return fsError("rename collection", c.Path(), err)
	}
	return nil
}

// RenameRow updates the stored name and, on success, the record itself.
func (c *Collection) RenameRow(db Database, name string) error {
	if err := db.RenameCollection(c.id, name, c.ModifiedAt); err != nil {
		return storeError("rename collection", err)
	}
	c.Name = name
	return nil
}

func collectionFromRecord(rec *CollectionRecord) *Collection {
	return &Collection{
		id:         rec.ID,
		Name:       rec.Name,
		Comment:    rec.Comment,
		CreatedAt:  rec.CreatedAt,
		ModifiedAt: rec.ModifiedAt,
	}
}

var _ Loader[*Collection] = LoadCollection

// LoadCollection is the Loader for collections.
func LoadCollection(db Database, id int64) (*Collection, error) {
	rec, err := db.FindCollection(id)
	if err != nil {
		return nil, storeError("load collection", err)
	}
	if rec == nil {
		return nil, newError(KindNotFound, "load collection", "", errID(id))
	}
	return collectionFromRecord(rec), nil
}

// CollectionDraft describes a collection that has not been created yet.
type CollectionDraft struct {
	Name      string
	Comment   string
	CreatedAt time.Time
}

var _ Draft[*Collection] = (*CollectionDraft)(nil)

func (d *CollectionDraft) Validate() error {
	return validateName("create collection", d.Name)
}

func (d *CollectionDraft) InsertRow(db Database) (int64, error) {
	id, err := db.InsertCollection(&CollectionRecord{
		Name:       d.Name,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.CreatedAt,
	})
	if err != nil {
		return 0, storeError("insert collection", err)
	}
	return id, nil
}

func (d *CollectionDraft) Bind(id int64) *Collection {
	return &Collection{
		id:         id,
		Name:       d.Name,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.CreatedAt,
	}
}

// errID is the cause attached to not-found errors.
type errID int64

func (e errID) Error() string { return "id " + strconv.FormatInt(int64(e), 10) }
