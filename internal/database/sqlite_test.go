package database

import (
	"errors"
	"testing"
	"time"

	"ospl-go/internal/ospl"
)

var testTime = time.Date(2024, 1, 15, 10, 30, 0, 123456000, time.UTC)

// newTestDB creates a new in-memory database with the schema applied.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteDatabase() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertCollection(t *testing.T, db *SQLiteDatabase, name string) int64 {
	t.Helper()
	id, err := db.InsertCollection(&ospl.CollectionRecord{Name: name, CreatedAt: testTime, ModifiedAt: testTime})
	if err != nil {
		t.Fatalf("InsertCollection(%q) error = %v", name, err)
	}
	return id
}

func insertAlbum(t *testing.T, db *SQLiteDatabase, collectionID int64, name string) int64 {
	t.Helper()
	id, err := db.InsertAlbum(&ospl.AlbumRecord{CollectionID: collectionID, Name: name, CreatedAt: testTime, ModifiedAt: testTime})
	if err != nil {
		t.Fatalf("InsertAlbum(%q) error = %v", name, err)
	}
	return id
}

func insertPhoto(t *testing.T, db *SQLiteDatabase, filename string) int64 {
	t.Helper()
	id, err := db.InsertPhoto(&ospl.PhotoRecord{
		Filename:   filename,
		Hash:       ospl.Fingerprint{0xde, 0xad, 0xbe, 0xef},
		ImportedAt: testTime,
	})
	if err != nil {
		t.Fatalf("InsertPhoto(%q) error = %v", filename, err)
	}
	return id
}

func TestSQLiteDatabase_Collections(t *testing.T) {
	t.Run("ids start at one", func(t *testing.T) {
		db := newTestDB(t)

		if id := insertCollection(t, db, "trips"); id != 1 {
			t.Errorf("InsertCollection() id = %d, want 1", id)
		}
	})

	t.Run("returns nil when collection not found", func(t *testing.T) {
		db := newTestDB(t)

		got, err := db.FindCollection(42)
		if err != nil {
			t.Fatalf("FindCollection() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindCollection() = %+v, want nil", got)
		}
	})

	t.Run("finds inserted collection", func(t *testing.T) {
		db := newTestDB(t)
		id := insertCollection(t, db, "trips")

		got, err := db.FindCollection(id)
		if err != nil {
			t.Fatalf("FindCollection() error = %v", err)
		}
		if got == nil {
			t.Fatal("FindCollection() = nil, want collection")
		}
		if got.Name != "trips" {
			t.Errorf("Name = %q, want %q", got.Name, "trips")
		}
		if !got.CreatedAt.Equal(testTime) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, testTime)
		}
	})

	t.Run("duplicate name is already exists", func(t *testing.T) {
		db := newTestDB(t)
		insertCollection(t, db, "trips")

		_, err := db.InsertCollection(&ospl.CollectionRecord{Name: "trips", CreatedAt: testTime, ModifiedAt: testTime})
		if !errors.Is(err, ospl.ErrAlreadyExists) {
			t.Errorf("InsertCollection() error = %v, want %v", err, ospl.ErrAlreadyExists)
		}
	})

	t.Run("rename updates name", func(t *testing.T) {
		db := newTestDB(t)
		id := insertCollection(t, db, "trips")

		if err := db.RenameCollection(id, "travel", testTime.Add(time.Hour)); err != nil {
			t.Fatalf("RenameCollection() error = %v", err)
		}
		got, err := db.FindCollection(id)
		if err != nil {
			t.Fatalf("FindCollection() error = %v", err)
		}
		if got.Name != "travel" {
			t.Errorf("Name = %q, want %q", got.Name, "travel")
		}
		if !got.ModifiedAt.Equal(testTime.Add(time.Hour)) {
			t.Errorf("ModifiedAt = %v, want %v", got.ModifiedAt, testTime.Add(time.Hour))
		}
	})

	t.Run("rename of missing row is not found", func(t *testing.T) {
		db := newTestDB(t)

		err := db.RenameCollection(7, "travel", testTime)
		if !errors.Is(err, ospl.ErrNotFound) {
			t.Errorf("RenameCollection() error = %v, want %v", err, ospl.ErrNotFound)
		}
	})

	t.Run("list orders by id", func(t *testing.T) {
		db := newTestDB(t)
		insertCollection(t, db, "b")
		insertCollection(t, db, "a")

		got, err := db.ListCollections()
		if err != nil {
			t.Fatalf("ListCollections() error = %v", err)
		}
		if len(got) != 2 || got[0].Name != "b" || got[1].Name != "a" {
			t.Errorf("ListCollections() = %+v, want [b a]", got)
		}
	})

	t.Run("ids are not reused", func(t *testing.T) {
		db := newTestDB(t)
		id := insertCollection(t, db, "trips")
		if err := db.DeleteCollection(id); err != nil {
			t.Fatalf("DeleteCollection() error = %v", err)
		}

		if next := insertCollection(t, db, "trips"); next == id {
			t.Errorf("InsertCollection() reused id %d", id)
		}
	})
}

func TestSQLiteDatabase_Albums(t *testing.T) {
	t.Run("same name in different collections", func(t *testing.T) {
		db := newTestDB(t)
		c1 := insertCollection(t, db, "c1")
		c2 := insertCollection(t, db, "c2")

		insertAlbum(t, db, c1, "summer")
		insertAlbum(t, db, c2, "summer")
	})

	t.Run("duplicate name in one collection", func(t *testing.T) {
		db := newTestDB(t)
		c := insertCollection(t, db, "c1")
		insertAlbum(t, db, c, "summer")

		_, err := db.InsertAlbum(&ospl.AlbumRecord{CollectionID: c, Name: "summer", CreatedAt: testTime, ModifiedAt: testTime})
		if !errors.Is(err, ospl.ErrAlreadyExists) {
			t.Errorf("InsertAlbum() error = %v, want %v", err, ospl.ErrAlreadyExists)
		}
	})

	t.Run("move changes collection", func(t *testing.T) {
		db := newTestDB(t)
		c1 := insertCollection(t, db, "c1")
		c2 := insertCollection(t, db, "c2")
		a := insertAlbum(t, db, c1, "summer")

		if err := db.MoveAlbum(a, c2, testTime); err != nil {
			t.Fatalf("MoveAlbum() error = %v", err)
		}
		got, err := db.FindAlbum(a)
		if err != nil {
			t.Fatalf("FindAlbum() error = %v", err)
		}
		if got.CollectionID != c2 {
			t.Errorf("CollectionID = %d, want %d", got.CollectionID, c2)
		}

		inC1, err := db.ListAlbumsInCollection(c1)
		if err != nil {
			t.Fatalf("ListAlbumsInCollection() error = %v", err)
		}
		if len(inC1) != 0 {
			t.Errorf("ListAlbumsInCollection(c1) = %d albums, want 0", len(inC1))
		}
	})

	t.Run("deleting collection cascades", func(t *testing.T) {
		db := newTestDB(t)
		c := insertCollection(t, db, "c1")
		a := insertAlbum(t, db, c, "summer")

		if err := db.DeleteCollection(c); err != nil {
			t.Fatalf("DeleteCollection() error = %v", err)
		}
		got, err := db.FindAlbum(a)
		if err != nil {
			t.Fatalf("FindAlbum() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindAlbum() = %+v, want nil after cascade", got)
		}
	})
}

func TestSQLiteDatabase_Photos(t *testing.T) {
	t.Run("round trip keeps hash and time", func(t *testing.T) {
		db := newTestDB(t)
		id := insertPhoto(t, db, "cat.png")

		got, err := db.FindPhoto(id)
		if err != nil {
			t.Fatalf("FindPhoto() error = %v", err)
		}
		if got.Filename != "cat.png" {
			t.Errorf("Filename = %q, want %q", got.Filename, "cat.png")
		}
		if got.Hash != (ospl.Fingerprint{0xde, 0xad, 0xbe, 0xef}) {
			t.Errorf("Hash = %s", got.Hash)
		}
		if !got.ImportedAt.Equal(testTime) {
			t.Errorf("ImportedAt = %v, want %v", got.ImportedAt, testTime)
		}
		if got.Rating != 0 || got.Starred {
			t.Errorf("Rating, Starred = %d, %v, want 0, false", got.Rating, got.Starred)
		}
	})

	t.Run("rating and star", func(t *testing.T) {
		db := newTestDB(t)
		id := insertPhoto(t, db, "cat.png")

		if err := db.SetPhotoRating(id, 4); err != nil {
			t.Fatalf("SetPhotoRating() error = %v", err)
		}
		if err := db.SetPhotoStarred(id, true); err != nil {
			t.Fatalf("SetPhotoStarred() error = %v", err)
		}
		got, err := db.FindPhoto(id)
		if err != nil {
			t.Fatalf("FindPhoto() error = %v", err)
		}
		if got.Rating != 4 || !got.Starred {
			t.Errorf("Rating, Starred = %d, %v, want 4, true", got.Rating, got.Starred)
		}
	})

	t.Run("delete missing photo is not found", func(t *testing.T) {
		db := newTestDB(t)

		if err := db.DeletePhoto(3); !errors.Is(err, ospl.ErrNotFound) {
			t.Errorf("DeletePhoto() error = %v, want %v", err, ospl.ErrNotFound)
		}
	})
}

func TestSQLiteDatabase_Containment(t *testing.T) {
	t.Run("insert is idempotent", func(t *testing.T) {
		db := newTestDB(t)
		a := insertAlbum(t, db, insertCollection(t, db, "c"), "a")
		p := insertPhoto(t, db, "cat.png")

		first, err := db.InsertContainment(a, p)
		if err != nil {
			t.Fatalf("InsertContainment() error = %v", err)
		}
		second, err := db.InsertContainment(a, p)
		if err != nil {
			t.Fatalf("second InsertContainment() error = %v", err)
		}
		if !first || second {
			t.Errorf("InsertContainment() inserted = %v, %v, want true, false", first, second)
		}

		photos, err := db.ListPhotosInAlbum(a)
		if err != nil {
			t.Fatalf("ListPhotosInAlbum() error = %v", err)
		}
		if len(photos) != 1 {
			t.Errorf("ListPhotosInAlbum() = %d photos, want 1", len(photos))
		}
	})

	t.Run("listing follows assignment order", func(t *testing.T) {
		db := newTestDB(t)
		a := insertAlbum(t, db, insertCollection(t, db, "c"), "a")
		p1 := insertPhoto(t, db, "one.png")
		p2 := insertPhoto(t, db, "two.png")

		for _, p := range []int64{p2, p1} {
			if _, err := db.InsertContainment(a, p); err != nil {
				t.Fatalf("InsertContainment() error = %v", err)
			}
		}

		photos, err := db.ListPhotosInAlbum(a)
		if err != nil {
			t.Fatalf("ListPhotosInAlbum() error = %v", err)
		}
		if len(photos) != 2 || photos[0].ID != p2 || photos[1].ID != p1 {
			t.Errorf("ListPhotosInAlbum() order wrong: %+v", photos)
		}
	})

	t.Run("deleting photo cascades", func(t *testing.T) {
		db := newTestDB(t)
		a := insertAlbum(t, db, insertCollection(t, db, "c"), "a")
		p := insertPhoto(t, db, "cat.png")
		if _, err := db.InsertContainment(a, p); err != nil {
			t.Fatalf("InsertContainment() error = %v", err)
		}

		if err := db.DeletePhoto(p); err != nil {
			t.Fatalf("DeletePhoto() error = %v", err)
		}
		photos, err := db.ListPhotosInAlbum(a)
		if err != nil {
			t.Fatalf("ListPhotosInAlbum() error = %v", err)
		}
		if len(photos) != 0 {
			t.Errorf("ListPhotosInAlbum() = %d photos, want 0", len(photos))
		}
	})

	t.Run("albums containing photo", func(t *testing.T) {
		db := newTestDB(t)
		c := insertCollection(t, db, "c")
		a1 := insertAlbum(t, db, c, "a1")
		a2 := insertAlbum(t, db, c, "a2")
		p := insertPhoto(t, db, "cat.png")
		for _, a := range []int64{a1, a2} {
			if _, err := db.InsertContainment(a, p); err != nil {
				t.Fatalf("InsertContainment() error = %v", err)
			}
		}

		albums, err := db.ListAlbumsContainingPhoto(p)
		if err != nil {
			t.Fatalf("ListAlbumsContainingPhoto() error = %v", err)
		}
		if len(albums) != 2 {
			t.Errorf("ListAlbumsContainingPhoto() = %d albums, want 2", len(albums))
		}
	})

	t.Run("edge requires existing rows", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.InsertContainment(1, 1); err == nil {
			t.Error("InsertContainment() error = nil, want foreign key error")
		}
	})
}
