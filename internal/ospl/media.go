package ospl

import "io"

// Sniffer inspects a source file's content to decide whether it can be
// imported. It returns the detected media type, or an error of
// KindNotAnImage when the content is unrecognised and KindUnsupported when it
// is recognised but is not an image.
type Sniffer interface {
	Sniff(source string) (string, error)
}

// Thumbnailer reads an encoded image from r and writes a scaled-down
// rendition to w.
type Thumbnailer interface {
	Thumbnail(r io.Reader, w io.Writer) error
}
