package ownership

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// HashText returns the hex-encoded BLAKE2b-256 hash of a free-text field.
// Used as an opaque fingerprint for metadata and license-terms references;
// no further commitment scheme is layered on top.
func HashText(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
