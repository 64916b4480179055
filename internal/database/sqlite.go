package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-sqlite3"

	"ospl-go/internal/database/migrations"
	"ospl-go/internal/ospl"
)

// SQLiteDatabase implements ospl.Database on top of a single SQLite file.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

var _ ospl.Database = (*SQLiteDatabase)(nil)

// NewSQLiteDatabase opens a database and checks that its schema is current.
// path can be a file path or ":memory:"; an in-memory database is migrated
// on open since it can never have been migrated before.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		if err := migrations.MigrateUp(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating in-memory database: %w", err)
		}
	}

	s := &SQLiteDatabase{db: db, path: path}
	if err := s.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}
	return s, nil
}

// CreateSQLiteDatabase creates a new database file at path and applies every
// migration. It fails if the file already exists.
func CreateSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	if path != ":memory:" {
		if _, err := os.Stat(path); err == nil {
			return nil, &ospl.Error{Kind: ospl.KindAlreadyExists, Op: "create database", Path: path}
		}
	}

	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &SQLiteDatabase{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection. Foreign keys are
// enabled through the DSN so that every pooled connection gets them, and the
// pool is capped at one connection so ":memory:" names a single database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// CheckMigrations returns an error unless the schema is at the latest version.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Path returns the path the database was opened with.
func (s *SQLiteDatabase) Path() string { return s.path }

func (s *SQLiteDatabase) Close() error {
	return s.db.Close()
}

// Collection operations

func (s *SQLiteDatabase) InsertCollection(rec *ospl.CollectionRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO collections (name, comment, created_at, modified_at) VALUES (?, ?, ?, ?)`,
		rec.Name, rec.Comment, rec.CreatedAt.UTC(), rec.ModifiedAt.UTC())
	if err != nil {
		return 0, classify("inserting collection", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteDatabase) FindCollection(id int64) (*ospl.CollectionRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, name, comment, created_at, modified_at FROM collections WHERE id = ?`, id)
	rec, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding collection: %w", err)
	}
	return rec, nil
}

func (s *SQLiteDatabase) ListCollections() ([]*ospl.CollectionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, name, comment, created_at, modified_at FROM collections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var out []*ospl.CollectionRecord
	for rows.Next() {
		rec, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteDatabase) RenameCollection(id int64, name string, modifiedAt time.Time) error {
	res, err := s.db.Exec(
		`UPDATE collections SET name = ?, modified_at = ? WHERE id = ?`, name, modifiedAt.UTC(), id)
	if err != nil {
		return classify("renaming collection", err)
	}
	return expectOne("renaming collection", res)
}

func (s *SQLiteDatabase) DeleteCollection(id int64) error {
	res, err := s.db.Exec(`DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		return classify("deleting collection", err)
	}
	return expectOne("deleting collection", res)
}

// Album operations

func (s *SQLiteDatabase) InsertAlbum(rec *ospl.AlbumRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO albums (collection, name, comment, created_at, modified_at) VALUES (?, ?, ?, ?, ?)`,
		rec.CollectionID, rec.Name, rec.Comment, rec.CreatedAt.UTC(), rec.ModifiedAt.UTC())
	if err != nil {
		return 0, classify("inserting album", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteDatabase) FindAlbum(id int64) (*ospl.AlbumRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, collection, name, comment, created_at, modified_at FROM albums WHERE id = ?`, id)
	rec, err := scanAlbum(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding album: %w", err)
	}
	return rec, nil
}

func (s *SQLiteDatabase) ListAlbumsInCollection(collectionID int64) ([]*ospl.AlbumRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, collection, name, comment, created_at, modified_at
		   FROM albums WHERE collection = ? ORDER BY id`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("listing albums: %w", err)
	}
	return collectAlbums(rows)
}

func (s *SQLiteDatabase) RenameAlbum(id int64, name string, modifiedAt time.Time) error {
	res, err := s.db.Exec(
		`UPDATE albums SET name = ?, modified_at = ? WHERE id = ?`, name, modifiedAt.UTC(), id)
	if err != nil {
		return classify("renaming album", err)
	}
	return expectOne("renaming album", res)
}

func (s *SQLiteDatabase) MoveAlbum(id int64, collectionID int64, modifiedAt time.Time) error {
	res, err := s.db.Exec(
		`UPDATE albums SET collection = ?, modified_at = ? WHERE id = ?`, collectionID, modifiedAt.UTC(), id)
	if err != nil {
		return classify("moving album", err)
	}
	return expectOne("moving album", res)
}

func (s *SQLiteDatabase) DeleteAlbum(id int64) error {
	res, err := s.db.Exec(`DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return classify("deleting album", err)
	}
	return expectOne("deleting album", res)
}

// Photo operations

func (s *SQLiteDatabase) InsertPhoto(rec *ospl.PhotoRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO photos (filename, hash, import_datetime, rating, starred) VALUES (?, ?, ?, ?, ?)`,
		rec.Filename, rec.Hash[:], rec.ImportedAt.UTC(), rec.Rating, rec.Starred)
	if err != nil {
		return 0, classify("inserting photo", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteDatabase) FindPhoto(id int64) (*ospl.PhotoRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, filename, hash, import_datetime, rating, starred FROM photos WHERE id = ?`, id)
	rec, err := scanPhoto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding photo: %w", err)
	}
	return rec, nil
}

func (s *SQLiteDatabase) ListPhotos() ([]*ospl.PhotoRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, filename, hash, import_datetime, rating, starred FROM photos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return collectPhotos(rows)
}

func (s *SQLiteDatabase) SetPhotoRating(id int64, rating int) error {
	res, err := s.db.Exec(`UPDATE photos SET rating = ? WHERE id = ?`, rating, id)
	if err != nil {
		return classify("rating photo", err)
	}
	return expectOne("rating photo", res)
}

func (s *SQLiteDatabase) SetPhotoStarred(id int64, starred bool) error {
	res, err := s.db.Exec(`UPDATE photos SET starred = ? WHERE id = ?`, starred, id)
	if err != nil {
		return classify("starring photo", err)
	}
	return expectOne("starring photo", res)
}

func (s *SQLiteDatabase) DeletePhoto(id int64) error {
	res, err := s.db.Exec(`DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return classify("deleting photo", err)
	}
	return expectOne("deleting photo", res)
}

// Containment operations

func (s *SQLiteDatabase) InsertContainment(albumID, photoID int64) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO photos_albums_map (containing_album, contained_photo) VALUES (?, ?)`,
		albumID, photoID)
	if err != nil {
		return false, classify("inserting containment", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting containment: %w", err)
	}
	return n == 1, nil
}

func (s *SQLiteDatabase) ListPhotosInAlbum(albumID int64) ([]*ospl.PhotoRecord, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.filename, p.hash, p.import_datetime, p.rating, p.starred
		   FROM photos_albums_map m
		   JOIN photos p ON p.id = m.contained_photo
		  WHERE m.containing_album = ?
		  ORDER BY m.rowid`, albumID)
	if err != nil {
		return nil, fmt.Errorf("listing photos in album: %w", err)
	}
	return collectPhotos(rows)
}

func (s *SQLiteDatabase) ListAlbumsContainingPhoto(photoID int64) ([]*ospl.AlbumRecord, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.collection, a.name, a.comment, a.created_at, a.modified_at
		   FROM photos_albums_map m
		   JOIN albums a ON a.id = m.containing_album
		  WHERE m.contained_photo = ?
		  ORDER BY m.rowid`, photoID)
	if err != nil {
		return nil, fmt.Errorf("listing albums of photo: %w", err)
	}
	return collectAlbums(rows)
}

// Scanning helpers

type scanner interface {
	Scan(dest ...any) error
}

func scanCollection(row scanner) (*ospl.CollectionRecord, error) {
	var rec ospl.CollectionRecord
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Comment, &rec.CreatedAt, &rec.ModifiedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanAlbum(row scanner) (*ospl.AlbumRecord, error) {
	var rec ospl.AlbumRecord
	if err := row.Scan(&rec.ID, &rec.CollectionID, &rec.Name, &rec.Comment, &rec.CreatedAt, &rec.ModifiedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanPhoto(row scanner) (*ospl.PhotoRecord, error) {
	var (
		rec  ospl.PhotoRecord
		hash []byte
	)
	if err := row.Scan(&rec.ID, &rec.Filename, &hash, &rec.ImportedAt, &rec.Rating, &rec.Starred); err != nil {
		return nil, err
	}
	fp, err := ospl.FingerprintFromBytes(hash)
	if err != nil {
		return nil, fmt.Errorf("photo %d: %w", rec.ID, err)
	}
	rec.Hash = fp
	return &rec, nil
}

func collectAlbums(rows *sql.Rows) ([]*ospl.AlbumRecord, error) {
	defer rows.Close()
	var out []*ospl.AlbumRecord
	for rows.Next() {
		rec, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning album: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func collectPhotos(rows *sql.Rows) ([]*ospl.PhotoRecord, error) {
	defer rows.Close()
	var out []*ospl.PhotoRecord
	for rows.Next() {
		rec, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// expectOne turns an update or delete that matched nothing into KindNotFound.
func expectOne(doing string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", doing, err)
	}
	if n == 0 {
		return &ospl.Error{Kind: ospl.KindNotFound, Err: errors.New(doing + ": no such row")}
	}
	return nil
}

// classify reports unique constraint violations as KindAlreadyExists so the
// caller can tell a name clash from any other store failure.
func classify(doing string, err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && (se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return &ospl.Error{Kind: ospl.KindAlreadyExists, Err: fmt.Errorf("%s: %w", doing, err)}
	}
	return fmt.Errorf("%s: %w", doing, err)
}
