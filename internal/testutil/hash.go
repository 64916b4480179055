package testutil

import (
	"bytes"

	"ospl-go/internal/ospl"
)

// FingerprintOf returns the fingerprint an import of data would record.
func FingerprintOf(data []byte) ospl.Fingerprint {
	fp, err := ospl.ComputeFingerprint(bytes.NewReader(data))
	if err != nil {
		panic(err) // reading from memory cannot fail
	}
	return fp
}
