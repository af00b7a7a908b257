package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID returns a random hex identifier of n bytes (2n characters).
// Used for connection ids; room ids are sequential and assigned elsewhere.
func GenerateID(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the platform source is broken.
		panic(err)
	}
	return hex.EncodeToString(b)
}
