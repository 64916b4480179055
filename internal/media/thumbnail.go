package media

import (
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"

	"ospl-go/internal/ospl"
)

// ResizeThumbnailer scales images to a fixed height. PNG sources keep their
// format so transparency survives; everything else becomes JPEG.
type ResizeThumbnailer struct {
	height  uint
	quality int
}

var _ ospl.Thumbnailer = (*ResizeThumbnailer)(nil)

// NewResizeThumbnailer creates a thumbnailer producing images height pixels
// tall, encoding JPEGs at the given quality.
func NewResizeThumbnailer(height, quality int) *ResizeThumbnailer {
	return &ResizeThumbnailer{height: uint(height), quality: quality}
}

func (t *ResizeThumbnailer) Thumbnail(r io.Reader, w io.Writer) error {
	img, format, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	// A zero width makes resize keep the aspect ratio.
	thumb := resize.Resize(0, t.height, img, resize.Lanczos3)

	switch format {
	case "png":
		err = png.Encode(w, thumb)
	default:
		err = jpeg.Encode(w, thumb, &jpeg.Options{Quality: t.quality})
	}
	if err != nil {
		return fmt.Errorf("encoding %s thumbnail: %w", format, err)
	}
	return nil
}
