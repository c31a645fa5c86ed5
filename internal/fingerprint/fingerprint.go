// Package fingerprint produces stable content fingerprints used as a
// cheap equality oracle between snapshots.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex sha256 digest of text. Identical text
// always hashes identically; a collision between distinct texts is an
// accepted, negligible risk.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
