// Package crypto wraps the two primitives the chain depends on: SHA-256
// content hashing and Ed25519 signing, as thin wrappers around the
// standard library, hex-encoded end to end.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
