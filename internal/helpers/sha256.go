package helpers

import (
	"crypto/sha256"
	"fmt"
)

// Sha256Bytes calculates the SHA256 hash of a byte slice and returns its string representation.
func Sha256Bytes(input []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(input))
}
