package store

import "golang.org/x/crypto/blake2b"

// Digest hashes a scene signature to a fixed 32 bytes for storage.
func Digest(signature string) [blake2b.Size256]byte {
	return blake2b.Sum256([]byte(signature))
}
