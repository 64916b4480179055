package testutil

import (
	"io"

	"ospl-go/internal/ospl"
)

// StubSniffer accepts every source as image/png unless Err is set.
type StubSniffer struct {
	Err error
}

var _ ospl.Sniffer = (*StubSniffer)(nil)

func (s *StubSniffer) Sniff(string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return "image/png", nil
}

// StubThumbnailer copies its input unchanged, or fails with Err.
type StubThumbnailer struct {
	Err error
}

var _ ospl.Thumbnailer = (*StubThumbnailer)(nil)

func (s *StubThumbnailer) Thumbnail(r io.Reader, w io.Writer) error {
	if s.Err != nil {
		return s.Err
	}
	_, err := io.Copy(w, r)
	return err
}
