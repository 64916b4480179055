package ospl

import (
	"path"
	"time"
)

// Album groups photos inside exactly one collection. It is mirrored by the
// directory collections/<collection>/<album>, which holds one hard link per
// contained photo.
type Album struct {
	id         int64
	Name       string
	Comment    string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Collection *Collection
}

var _ Renamable = (*Album)(nil)

func (a *Album) ID() int64 { return a.id }

// Path returns the library-relative directory of the album.
func (a *Album) Path() string { return albumPath(a.Collection.Name, a.Name) }

// PhotoPath returns where the hard link of a contained photo lives.
func (a *Album) PhotoPath(p *Photo) string {
	return path.Join(a.Path(), p.DisplayName())
}

func (a *Album) Place(fs Filesystem) error {
	if err := fs.Mkdir(a.Path()); err != nil {
		return fsError("place album", a.Path(), err)
	}
	return nil
}

func (a *Album) Remove(fs Filesystem) error {
	if err := fs.RemoveAll(a.Path()); err != nil {
		return fsError("remove album", a.Path(), err)
	}
	return nil
}

func (a *Album) DeleteRow(db Database) error {
	if err := db.DeleteAlbum(a.id); err != nil {
		return storeError("delete album", err)
	}
	return nil
}

func (a *Album) RenamePath(fs Filesystem, name string) error {
	if err := fs.Rename(a.Path(), albumPath(a.Collection.Name, name)); err != nil {
		return fsError("rename album", a.Path(), err)
	}
	return nil
}

func (a *Album) RenameRow(db Database, name string) error {
	if err := db.RenameAlbum(a.id, name, a.ModifiedAt); err != nil {
		return storeError("rename album", err)
	}
	a.Name = name
	return nil
}

// MovePath relocates the album directory below another collection.
func (a *Album) MovePath(fs Filesystem, to *Collection) error {
	if err := fs.Rename(a.Path(), albumPath(to.Name, a.Name)); err != nil {
		return fsError("move album", a.Path(), err)
	}
	return nil
}

// MoveRow points the album at another collection and, on success, updates
// the record.
func (a *Album) MoveRow(db Database, to *Collection) error {
	if err := db.MoveAlbum(a.id, to.id, a.ModifiedAt); err != nil {
		return storeError("move album", err)
	}
	a.Collection = to
	return nil
}

var _ Loader[*Album] = LoadAlbum

// LoadAlbum is the Loader for albums. The owning collection is loaded too.
func LoadAlbum(db Database, id int64) (*Album, error) {
	rec, err := db.FindAlbum(id)
	if err != nil {
		return nil, storeError("load album", err)
	}
	if rec == nil {
		return nil, newError(KindNotFound, "load album", "", errID(id))
	}
	c, err := LoadCollection(db, rec.CollectionID)
	if err != nil {
		return nil, err
	}
	return albumFromRecord(rec, c), nil
}

func albumFromRecord(rec *AlbumRecord, c *Collection) *Album {
	return &Album{
		id:         rec.ID,
		Name:       rec.Name,
		Comment:    rec.Comment,
		CreatedAt:  rec.CreatedAt,
		ModifiedAt: rec.ModifiedAt,
		Collection: c,
	}
}

// AlbumDraft describes an album that has not been created yet.
type AlbumDraft struct {
	Name       string
	Comment    string
	CreatedAt  time.Time
	Collection *Collection
}

var _ Draft[*Album] = (*AlbumDraft)(nil)

func (d *AlbumDraft) Validate() error {
	return validateName("create album", d.Name)
}

func (d *AlbumDraft) InsertRow(db Database) (int64, error) {
	id, err := db.InsertAlbum(&AlbumRecord{
		CollectionID: d.Collection.id,
		Name:         d.Name,
		Comment:      d.Comment,
		CreatedAt:    d.CreatedAt,
		ModifiedAt:   d.CreatedAt,
	})
	if err != nil {
		return 0, storeError("insert album", err)
	}
	return id, nil
}

func (d *AlbumDraft) Bind(id int64) *Album {
	return &Album{
		id:         id,
		Name:       d.Name,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.CreatedAt,
		Collection: d.Collection,
	}
}
