package ospl

import (
	"errors"
	"io/fs"
)

// Kind classifies an error independently of the layer that produced it.
type Kind int

const (
	KindOther Kind = iota
	KindAlreadyExists
	KindPermissionDenied
	KindNotFound
	KindNotAnImage
	KindUnsupported
	KindEmptyName
	KindStore
	KindIO
	KindThumbnail
)

func (k Kind) String() string {
	switch k {
	case KindAlreadyExists:
		return "already exists"
	case KindPermissionDenied:
		return "permission denied"
	case KindNotFound:
		return "not found"
	case KindNotAnImage:
		return "not an image"
	case KindUnsupported:
		return "unsupported"
	case KindEmptyName:
		return "empty name"
	case KindStore:
		return "store error"
	case KindIO:
		return "io error"
	case KindThumbnail:
		return "thumbnail failed"
	default:
		return "other"
	}
}

// Error is the error type returned by every capability call.
// Two Errors match under errors.Is when their kinds are equal, so callers
// compare against the Err* sentinels below.
type Error struct {
	Kind Kind
	Op   string // e.g. "insert album"
	Path string // library-relative or source path, if any
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrAlreadyExists    = &Error{Kind: KindAlreadyExists}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrNotAnImage       = &Error{Kind: KindNotAnImage}
	ErrUnsupported      = &Error{Kind: KindUnsupported}
	ErrEmptyName        = &Error{Kind: KindEmptyName}
	ErrStore            = &Error{Kind: KindStore}
	ErrIO               = &Error{Kind: KindIO}
	ErrThumbnail        = &Error{Kind: KindThumbnail}
)

// KindOf returns the kind of the first *Error in err's chain, or KindOther.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// fsError classifies a filesystem failure.
func fsError(op, path string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, fs.ErrExist):
		return newError(KindAlreadyExists, op, path, err)
	case errors.Is(err, fs.ErrPermission):
		return newError(KindPermissionDenied, op, path, err)
	case errors.Is(err, fs.ErrNotExist):
		return newError(KindNotFound, op, path, err)
	default:
		return newError(KindIO, op, path, err)
	}
}

// storeError classifies a relational store failure. Database implementations
// report constraint violations as *Error themselves; the kind is kept and the
// operation name filled in.
func storeError(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Op == "" {
			return newError(e.Kind, op, e.Path, e.Err)
		}
		return err
	}
	return newError(KindStore, op, "", err)
}
