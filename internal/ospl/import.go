package ospl

import (
	"errors"
	"fmt"
	"io"
)

// ImportResult is the outcome of importing one file of a folder.
type ImportResult struct {
	Source string
	Photo  *Photo // nil when nothing was imported
	Err    error
}

// ImportPhoto brings a source file into the library: the file is sniffed and
// fingerprinted, a row is inserted, the bytes are copied to pictures/ and a
// thumbnail is generated. Sources that are missing, are directories or are
// not images are rejected before either store is touched.
//
// A thumbnail failure happens after both stores were written; the photo is
// returned together with a StepError whose outcome is Applied.
func (l *Library) ImportPhoto(source string) (*Photo, error) {
	return l.importPhoto("import photo", source)
}

// ImportPhotoIntoAlbum imports a source file and assigns it to an album. The
// album is checked before anything is imported. When the import succeeds and
// the assignment fails, the photo is returned with the assignment's error.
func (l *Library) ImportPhotoIntoAlbum(source string, albumID int64) (*Photo, error) {
	const op = "import photo into album"
	a, err := load(l.db, op, LoadAlbum, albumID)
	if err != nil {
		return nil, err
	}
	return l.importInto(op, source, a)
}

// ImportFolderIntoAlbum imports every regular file directly inside dir into
// an album, skipping names matched by the ignore patterns. A failing file
// does not stop the others; each gets its own result. The returned error is
// only set when the album or the folder cannot be read.
func (l *Library) ImportFolderIntoAlbum(dir string, albumID int64) ([]ImportResult, error) {
	const op = "import folder into album"
	a, err := load(l.db, op, LoadAlbum, albumID)
	if err != nil {
		return nil, err
	}
	sources, err := l.fs.SourceFiles(dir)
	if err != nil {
		return nil, stepError(op, NotApplied, albumID, fsError(op, dir, err))
	}

	results := make([]ImportResult, 0, len(sources))
	for _, src := range sources {
		p, err := l.importInto(op, src, a)
		if err != nil {
			l.logger.Warn("import failed", "source", src, "error", err)
		}
		results = append(results, ImportResult{Source: src, Photo: p, Err: err})
	}
	l.logger.Info("folder imported", "dir", dir, "album", a.Name, "files", len(results))
	return results, nil
}

func (l *Library) importInto(op, source string, a *Album) (*Photo, error) {
	p, err := l.importPhoto(op, source)
	if p == nil {
		return nil, err
	}
	if aerr := l.assign(op, p, a); aerr != nil {
		return p, aerr
	}
	return p, err
}

func (l *Library) importPhoto(op, source string) (*Photo, error) {
	d, err := l.draftPhoto(op, source)
	if err != nil {
		return nil, stepError(op, NotApplied, 0, err)
	}
	p, err := create[*Photo](l.db, l.fs, op, d)
	if err != nil {
		return nil, err
	}
	l.logger.Info("photo imported", "id", p.ID(), "source", d.Source, "name", p.DisplayName(), "hash", p.Hash.String())

	if err := l.writeThumbnail(p); err != nil {
		l.logger.Error("thumbnail failed", "id", p.ID(), "error", err)
		return p, stepError(op, Applied, p.ID(), err)
	}
	return p, nil
}

// draftPhoto validates and fingerprints a source without writing anything.
func (l *Library) draftPhoto(op, source string) (*PhotoDraft, error) {
	abs, err := l.fs.ResolveSource(source)
	if err != nil {
		return nil, fsError(op, source, err)
	}
	if _, err := l.sniffer.Sniff(abs); err != nil {
		var e *Error
		if errors.As(err, &e) {
			return nil, err
		}
		return nil, newError(KindIO, op, abs, err)
	}

	r, err := l.fs.OpenSource(abs)
	if err != nil {
		return nil, fsError(op, abs, err)
	}
	defer r.Close()
	hash, err := ComputeFingerprint(r)
	if err != nil {
		return nil, newError(KindIO, op, abs, fmt.Errorf("fingerprinting: %w", err))
	}

	return &PhotoDraft{Source: abs, Hash: hash, ImportedAt: l.clock.Now()}, nil
}

func (l *Library) writeThumbnail(p *Photo) error {
	const op = "write thumbnail"
	r, err := l.fs.Open(p.PicturePath())
	if err != nil {
		return newError(KindThumbnail, op, p.PicturePath(), err)
	}
	defer r.Close()

	err = l.fs.WriteFile(p.ThumbnailPath(), func(w io.Writer) error {
		return l.thumbnailer.Thumbnail(r, w)
	})
	if err != nil {
		return newError(KindThumbnail, op, p.ThumbnailPath(), err)
	}
	return nil
}
