// Package media holds the content-type sniffer and thumbnail generator used
// when importing photos.
package media

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"ospl-go/internal/ospl"
)

// unknownType is what mimetype reports for content it cannot identify.
const unknownType = "application/octet-stream"

// MimeSniffer detects a source's media type from its leading bytes.
type MimeSniffer struct{}

var _ ospl.Sniffer = MimeSniffer{}

func NewMimeSniffer() MimeSniffer { return MimeSniffer{} }

func (MimeSniffer) Sniff(source string) (string, error) {
	mtype, err := mimetype.DetectFile(source)
	if err != nil {
		return "", fmt.Errorf("detecting content type: %w", err)
	}

	name := mtype.String()
	switch {
	case mtype.Is(unknownType):
		return "", &ospl.Error{Kind: ospl.KindNotAnImage, Op: "sniff", Path: source}
	case !strings.HasPrefix(name, "image/"):
		return "", &ospl.Error{Kind: ospl.KindUnsupported, Op: "sniff", Path: source, Err: fmt.Errorf("content is %s", name)}
	}
	return name, nil
}
