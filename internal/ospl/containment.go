package ospl

import "errors"

// AssignPhotoToAlbum records that an album contains a photo and links the
// photo's canonical copy into the album directory. Assigning twice is a
// no-op for both stores.
func (l *Library) AssignPhotoToAlbum(photoID, albumID int64) error {
	const op = "assign photo"
	p, err := load(l.db, op, LoadPhoto, photoID)
	if err != nil {
		return err
	}
	a, err := load(l.db, op, LoadAlbum, albumID)
	if err != nil {
		return err
	}
	return l.assign(op, p, a)
}

func (l *Library) assign(op string, p *Photo, a *Album) error {
	inserted, err := l.db.InsertContainment(a.ID(), p.ID())
	if err != nil {
		return stepError(op, NotApplied, p.ID(), storeError(op, err))
	}
	if !inserted {
		l.logger.Warn("photo already in album", "photo", p.ID(), "album", a.Name)
	}

	link := a.PhotoPath(p)
	exists, err := l.fs.Exists(link)
	if err != nil {
		return stepError(op, RelationalOnly, p.ID(), fsError(op, link, err))
	}
	if !exists {
		if err := l.fs.Link(p.PicturePath(), link); err != nil {
			return stepError(op, RelationalOnly, p.ID(), fsError(op, link, err))
		}
	}
	l.logger.Debug("photo assigned", "photo", p.ID(), "album", a.ID())
	return nil
}

// ListPhotosInAlbum returns the current records of an album's photos in the
// order they were assigned.
func (l *Library) ListPhotosInAlbum(albumID int64) ([]*Photo, error) {
	if _, err := LoadAlbum(l.db, albumID); err != nil {
		return nil, err
	}
	recs, err := l.db.ListPhotosInAlbum(albumID)
	if err != nil {
		return nil, storeError("list photos in album", err)
	}
	return photosFromRecords(recs), nil
}

// ListAlbumsContainingPhoto returns every album holding a photo.
func (l *Library) ListAlbumsContainingPhoto(photoID int64) ([]*Album, error) {
	if _, err := LoadPhoto(l.db, photoID); err != nil {
		return nil, err
	}
	return l.albumsContaining("list albums of photo", photoID)
}

func (l *Library) albumsContaining(op string, photoID int64) ([]*Album, error) {
	recs, err := l.db.ListAlbumsContainingPhoto(photoID)
	if err != nil {
		return nil, storeError(op, err)
	}
	collections := make(map[int64]*Collection)
	out := make([]*Album, 0, len(recs))
	for _, rec := range recs {
		c, ok := collections[rec.CollectionID]
		if !ok {
			c, err = LoadCollection(l.db, rec.CollectionID)
			if err != nil {
				return nil, err
			}
			collections[rec.CollectionID] = c
		}
		out = append(out, albumFromRecord(rec, c))
	}
	return out, nil
}

// unlinkFromAlbums removes the photo's hard link from every album holding it.
// Links that are already gone are skipped. touched reports whether any link
// was removed, also when a later one failed.
func (l *Library) unlinkFromAlbums(op string, p *Photo) (touched bool, err error) {
	albums, err := l.albumsContaining(op, p.ID())
	if err != nil {
		return false, err
	}
	for _, a := range albums {
		link := a.PhotoPath(p)
		if err := l.fs.Remove(link); err != nil {
			err = fsError(op, link, err)
			if errors.Is(err, ErrNotFound) {
				l.logger.Warn("album link missing", "photo", p.ID(), "album", a.Name, "path", link)
				continue
			}
			return touched, err
		}
		touched = true
	}
	return touched, nil
}
