package ospl

import (
	"errors"
	"path/filepath"
	"time"
)

// Photo is an imported picture. Its bytes live once under pictures/ and are
// hard linked into every album containing it. A photo's display name is
// derived at import and never changes, so Photo is not Renamable.
type Photo struct {
	id         int64
	Filename   string
	Hash       Fingerprint
	ImportedAt time.Time
	Rating     int
	Starred    bool

	// source is only set on a photo bound from an import draft.
	source string
}

var _ Element = (*Photo)(nil)

func (p *Photo) ID() int64 { return p.id }

// DisplayName is the filename shared by the canonical copy, the thumbnail and
// every album link.
func (p *Photo) DisplayName() string { return DisplayName(p.Filename, p.ImportedAt) }

// PicturePath returns the library-relative path of the canonical copy.
func (p *Photo) PicturePath() string { return picturePath(p.DisplayName()) }

// ThumbnailPath returns the library-relative path of the thumbnail.
func (p *Photo) ThumbnailPath() string { return thumbnailPath(p.DisplayName()) }

// Place copies the import source into pictures/.
func (p *Photo) Place(fs Filesystem) error {
	if p.source == "" {
		return newError(KindOther, "place photo", p.PicturePath(), errors.New("photo has no import source"))
	}
	if err := fs.CopyIn(p.source, p.PicturePath()); err != nil {
		return fsError("place photo", p.PicturePath(), err)
	}
	return nil
}

// Remove deletes the canonical copy and the thumbnail. Either may already be
// gone; album links are the caller's concern.
func (p *Photo) Remove(fs Filesystem) error {
	_, err := p.removeFiles(fs)
	return err
}

// removeFiles is Remove that also reports whether a file was deleted before
// a failure.
func (p *Photo) removeFiles(fs Filesystem) (touched bool, err error) {
	for _, rel := range []string{p.PicturePath(), p.ThumbnailPath()} {
		if err := fs.Remove(rel); err != nil {
			err = fsError("remove photo", rel, err)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return touched, err
		}
		touched = true
	}
	return touched, nil
}

func (p *Photo) DeleteRow(db Database) error {
	if err := db.DeletePhoto(p.id); err != nil {
		return storeError("delete photo", err)
	}
	return nil
}

var _ Loader[*Photo] = LoadPhoto

// LoadPhoto is the Loader for photos.
func LoadPhoto(db Database, id int64) (*Photo, error) {
	rec, err := db.FindPhoto(id)
	if err != nil {
		return nil, storeError("load photo", err)
	}
	if rec == nil {
		return nil, newError(KindNotFound, "load photo", "", errID(id))
	}
	return photoFromRecord(rec), nil
}

func photoFromRecord(rec *PhotoRecord) *Photo {
	return &Photo{
		id:         rec.ID,
		Filename:   rec.Filename,
		Hash:       rec.Hash,
		ImportedAt: rec.ImportedAt,
		Rating:     rec.Rating,
		Starred:    rec.Starred,
	}
}

// PhotoDraft is a sniffed and fingerprinted source file awaiting insertion.
type PhotoDraft struct {
	Source     string
	Hash       Fingerprint
	ImportedAt time.Time
}

var _ Draft[*Photo] = (*PhotoDraft)(nil)

// Filename is the original basename of the source.
func (d *PhotoDraft) Filename() string { return filepath.Base(d.Source) }

func (d *PhotoDraft) Validate() error {
	if d.Source == "" {
		return newError(KindEmptyName, "import photo", "", nil)
	}
	return nil
}

func (d *PhotoDraft) InsertRow(db Database) (int64, error) {
	id, err := db.InsertPhoto(&PhotoRecord{
		Filename:   d.Filename(),
		Hash:       d.Hash,
		ImportedAt: d.ImportedAt,
	})
	if err != nil {
		return 0, storeError("insert photo", err)
	}
	return id, nil
}

func (d *PhotoDraft) Bind(id int64) *Photo {
	return &Photo{
		id:         id,
		Filename:   d.Filename(),
		Hash:       d.Hash,
		ImportedAt: d.ImportedAt,
		source:     d.Source,
	}
}
