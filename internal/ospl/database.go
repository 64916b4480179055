package ospl

import "time"

// CollectionRecord is a row of the collections table.
type CollectionRecord struct {
	ID         int64
	Name       string
	Comment    string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// AlbumRecord is a row of the albums table.
type AlbumRecord struct {
	ID           int64
	CollectionID int64
	Name         string
	Comment      string
	CreatedAt    time.Time
	ModifiedAt   time.Time
}

// PhotoRecord is a row of the photos table.
type PhotoRecord struct {
	ID         int64
	Filename   string
	Hash       Fingerprint
	ImportedAt time.Time
	Rating     int
	Starred    bool
}

// Database provides the relational side of a library.
// Every method is a single autocommitted statement; there is no transaction
// spanning calls. Find* methods return (nil, nil) when the row does not exist.
// Update and delete methods report a missing row as KindNotFound.
// Unique constraint violations are reported as KindAlreadyExists.
type Database interface {
	// Collection operations

	InsertCollection(rec *CollectionRecord) (int64, error)
	FindCollection(id int64) (*CollectionRecord, error)
	ListCollections() ([]*CollectionRecord, error)
	RenameCollection(id int64, name string, modifiedAt time.Time) error

	// DeleteCollection removes the row; albums and their containment edges
	// cascade.
	DeleteCollection(id int64) error

	// Album operations

	InsertAlbum(rec *AlbumRecord) (int64, error)
	FindAlbum(id int64) (*AlbumRecord, error)
	ListAlbumsInCollection(collectionID int64) ([]*AlbumRecord, error)
	RenameAlbum(id int64, name string, modifiedAt time.Time) error
	MoveAlbum(id int64, collectionID int64, modifiedAt time.Time) error
	DeleteAlbum(id int64) error

	// Photo operations

	InsertPhoto(rec *PhotoRecord) (int64, error)
	FindPhoto(id int64) (*PhotoRecord, error)
	ListPhotos() ([]*PhotoRecord, error)
	SetPhotoRating(id int64, rating int) error
	SetPhotoStarred(id int64, starred bool) error
	DeletePhoto(id int64) error

	// Containment operations

	// InsertContainment records that album contains photo. It reports whether
	// a new edge was written; an existing edge is left untouched.
	InsertContainment(albumID, photoID int64) (bool, error)

	// ListPhotosInAlbum returns the photos of an album in insertion order.
	ListPhotosInAlbum(albumID int64) ([]*PhotoRecord, error)

	// ListAlbumsContainingPhoto returns every album holding the photo.
	ListAlbumsContainingPhoto(photoID int64) ([]*AlbumRecord, error)

	// Close closes the database connection.
	Close() error
}
