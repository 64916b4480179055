package ospl

import (
	"fmt"
)

// Library keeps the relational store and the file tree of one photo library
// in agreement. Each mutating call runs its store steps in a fixed order with
// no retries or compensation; a failure is returned as a *StepError telling
// which steps completed.
//
// A Library is meant for a single caller and is not safe for concurrent use.
type Library struct {
	db          Database
	fs          Filesystem
	sniffer     Sniffer
	thumbnailer Thumbnailer
	logger      Logger
	clock       Clock
}

// NewLibrary creates a Library over already opened stores.
// Import timestamps are taken from clock through a MonotonicClock.
func NewLibrary(db Database, fs Filesystem, sniffer Sniffer, thumbnailer Thumbnailer, logger Logger, clock Clock) *Library {
	return &Library{
		db:          db,
		fs:          fs,
		sniffer:     sniffer,
		thumbnailer: thumbnailer,
		logger:      logger,
		clock:       NewMonotonicClock(clock),
	}
}

// Close closes the relational store.
func (l *Library) Close() error {
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Collections

// CreateCollection inserts a collection and creates its directory.
func (l *Library) CreateCollection(name, comment string) (*Collection, error) {
	d := &CollectionDraft{Name: name, Comment: comment, CreatedAt: l.clock.Now()}
	c, err := create[*Collection](l.db, l.fs, "create collection", d)
	if err != nil {
		return nil, err
	}
	l.logger.Info("collection created", "id", c.ID(), "name", c.Name)
	return c, nil
}

// GetCollection loads a collection by id.
func (l *Library) GetCollection(id int64) (*Collection, error) {
	return LoadCollection(l.db, id)
}

// ListCollections returns every collection ordered by id.
func (l *Library) ListCollections() ([]*Collection, error) {
	recs, err := l.db.ListCollections()
	if err != nil {
		return nil, storeError("list collections", err)
	}
	out := make([]*Collection, len(recs))
	for i, rec := range recs {
		out[i] = collectionFromRecord(rec)
	}
	return out, nil
}

// RenameCollection renames the collection directory, then the row.
func (l *Library) RenameCollection(id int64, name string) (*Collection, error) {
	const op = "rename collection"
	c, err := load(l.db, op, LoadCollection, id)
	if err != nil {
		return nil, err
	}
	old := c.Name
	c.ModifiedAt = l.clock.Now()
	if err := rename(l.db, l.fs, op, c, name); err != nil {
		return nil, err
	}
	l.logger.Info("collection renamed", "id", id, "from", old, "to", name)
	return c, nil
}

// DeleteCollection removes the collection directory with everything below it,
// then the row. Albums and their containment edges go with it; photos stay.
func (l *Library) DeleteCollection(id int64) error {
	const op = "delete collection"
	c, err := load(l.db, op, LoadCollection, id)
	if err != nil {
		return err
	}
	if err := remove(l.db, l.fs, op, c); err != nil {
		return err
	}
	l.logger.Info("collection deleted", "id", id, "name", c.Name)
	return nil
}

// Albums

// CreateAlbum inserts an album into a collection and creates its directory.
func (l *Library) CreateAlbum(collectionID int64, name, comment string) (*Album, error) {
	const op = "create album"
	c, err := load(l.db, op, LoadCollection, collectionID)
	if err != nil {
		return nil, err
	}
	d := &AlbumDraft{Name: name, Comment: comment, CreatedAt: l.clock.Now(), Collection: c}
	a, err := create[*Album](l.db, l.fs, op, d)
	if err != nil {
		return nil, err
	}
	l.logger.Info("album created", "id", a.ID(), "collection", c.Name, "name", a.Name)
	return a, nil
}

// GetAlbum loads an album and its collection by id.
func (l *Library) GetAlbum(id int64) (*Album, error) {
	return LoadAlbum(l.db, id)
}

// ListAlbumsInCollection returns the albums of a collection ordered by id.
func (l *Library) ListAlbumsInCollection(collectionID int64) ([]*Album, error) {
	c, err := LoadCollection(l.db, collectionID)
	if err != nil {
		return nil, err
	}
	recs, err := l.db.ListAlbumsInCollection(collectionID)
	if err != nil {
		return nil, storeError("list albums", err)
	}
	out := make([]*Album, len(recs))
	for i, rec := range recs {
		out[i] = albumFromRecord(rec, c)
	}
	return out, nil
}

// RenameAlbum renames the album directory, then the row.
func (l *Library) RenameAlbum(id int64, name string) (*Album, error) {
	const op = "rename album"
	a, err := load(l.db, op, LoadAlbum, id)
	if err != nil {
		return nil, err
	}
	old := a.Name
	a.ModifiedAt = l.clock.Now()
	if err := rename(l.db, l.fs, op, a, name); err != nil {
		return nil, err
	}
	l.logger.Info("album renamed", "id", id, "from", old, "to", name)
	return a, nil
}

// MoveAlbum moves an album into another collection. Moving an album into the
// collection it is already in leaves the file tree alone and still rewrites
// the row, so repeating a move is harmless.
func (l *Library) MoveAlbum(id, collectionID int64) (*Album, error) {
	const op = "move album"
	a, err := load(l.db, op, LoadAlbum, id)
	if err != nil {
		return nil, err
	}
	to, err := load(l.db, op, LoadCollection, collectionID)
	if err != nil {
		return nil, err
	}

	outcome := NotApplied
	if a.Collection.ID() == to.ID() {
		l.logger.Warn("album already in collection", "id", id, "collection", to.Name)
	} else {
		if err := a.MovePath(l.fs, to); err != nil {
			return nil, stepError(op, NotApplied, id, err)
		}
		outcome = FilesystemOnly
	}

	a.ModifiedAt = l.clock.Now()
	if err := a.MoveRow(l.db, to); err != nil {
		return nil, stepError(op, outcome, id, err)
	}
	l.logger.Info("album moved", "id", id, "collection", to.Name)
	return a, nil
}

// DeleteAlbum removes the album directory and its photo links, then the row.
// The photos themselves stay in the library.
func (l *Library) DeleteAlbum(id int64) error {
	const op = "delete album"
	a, err := load(l.db, op, LoadAlbum, id)
	if err != nil {
		return err
	}
	if err := remove(l.db, l.fs, op, a); err != nil {
		return err
	}
	l.logger.Info("album deleted", "id", id, "name", a.Name)
	return nil
}

// Photos

// GetPhoto loads a photo by id.
func (l *Library) GetPhoto(id int64) (*Photo, error) {
	return LoadPhoto(l.db, id)
}

// ListPhotos returns every photo ordered by id.
func (l *Library) ListPhotos() ([]*Photo, error) {
	recs, err := l.db.ListPhotos()
	if err != nil {
		return nil, storeError("list photos", err)
	}
	return photosFromRecords(recs), nil
}

// Thumbnail pairs a photo id with the host path of its thumbnail.
type Thumbnail struct {
	PhotoID int64
	Path    string
}

// ListThumbnails returns the thumbnail location of every photo.
func (l *Library) ListThumbnails() ([]Thumbnail, error) {
	photos, err := l.ListPhotos()
	if err != nil {
		return nil, err
	}
	out := make([]Thumbnail, len(photos))
	for i, p := range photos {
		out[i] = Thumbnail{PhotoID: p.ID(), Path: l.fs.Abs(p.ThumbnailPath())}
	}
	return out, nil
}

// SetPhotoRating stores a rating between 0 and 5. Only the relational store
// is touched.
func (l *Library) SetPhotoRating(id int64, rating int) (*Photo, error) {
	const op = "rate photo"
	if rating < 0 || rating > 5 {
		return nil, newError(KindUnsupported, op, "", fmt.Errorf("rating %d out of range 0..5", rating))
	}
	p, err := LoadPhoto(l.db, id)
	if err != nil {
		return nil, err
	}
	if err := l.db.SetPhotoRating(id, rating); err != nil {
		return nil, storeError(op, err)
	}
	p.Rating = rating
	return p, nil
}

// SetPhotoStarred flags or unflags a photo. Only the relational store is
// touched.
func (l *Library) SetPhotoStarred(id int64, starred bool) (*Photo, error) {
	const op = "star photo"
	p, err := LoadPhoto(l.db, id)
	if err != nil {
		return nil, err
	}
	if err := l.db.SetPhotoStarred(id, starred); err != nil {
		return nil, storeError(op, err)
	}
	p.Starred = starred
	return p, nil
}

// DeletePhoto removes every album link of the photo, its canonical copy and
// its thumbnail, then the row. Containment edges cascade with the row.
// A failure after any file was removed reports FilesystemOnly.
func (l *Library) DeletePhoto(id int64) error {
	const op = "delete photo"
	p, err := load(l.db, op, LoadPhoto, id)
	if err != nil {
		return err
	}

	unlinked, err := l.unlinkFromAlbums(op, p)
	if err != nil {
		return stepError(op, partialOutcome(unlinked), id, err)
	}

	if ok, err := l.fs.Exists(p.ThumbnailPath()); err == nil && !ok {
		l.logger.Warn("photo has no thumbnail", "id", id, "path", p.ThumbnailPath())
	}
	removed, err := p.removeFiles(l.fs)
	if err != nil {
		return stepError(op, partialOutcome(unlinked || removed), id, err)
	}
	if err := p.DeleteRow(l.db); err != nil {
		return stepError(op, FilesystemOnly, id, err)
	}
	l.logger.Info("photo deleted", "id", id, "name", p.DisplayName())
	return nil
}

func photosFromRecords(recs []*PhotoRecord) []*Photo {
	out := make([]*Photo, len(recs))
	for i, rec := range recs {
		out[i] = photoFromRecord(rec)
	}
	return out
}
