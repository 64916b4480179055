package ospl

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/zeebo/xxh3"
)

// displayTimeLayout prefixes every photo filename. A six digit microsecond
// field follows it, appended by DisplayName since the time package only
// formats fractional seconds after a dot or comma.
const displayTimeLayout = "2006-01-02_15-04-05"

// Fingerprint is a 128-bit XXH3 digest of a photo's content.
type Fingerprint [16]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// FingerprintFromBytes converts a stored fixed-width column back into a Fingerprint.
func FingerprintFromBytes(b []byte) (Fingerprint, error) {
	var f Fingerprint
	if len(b) != len(f) {
		return f, fmt.Errorf("fingerprint must be %d bytes, got %d", len(f), len(b))
	}
	copy(f[:], b)
	return f, nil
}

// ComputeFingerprint hashes everything read from r.
func ComputeFingerprint(r io.Reader) (Fingerprint, error) {
	h := xxh3.New()
	if _, err := io.Copy(h, r); err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint(h.Sum128().Bytes()), nil
}

// DisplayName derives the on-disk filename of a photo from its original
// basename and import time. The time is rendered in UTC so the name does not
// depend on the zone the timestamp was read back in.
func DisplayName(basename string, importedAt time.Time) string {
	t := importedAt.UTC()
	return fmt.Sprintf("%s-%06d_%s", t.Format(displayTimeLayout), t.Nanosecond()/1000, basename)
}
