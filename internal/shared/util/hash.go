package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps an owner id to a stable directory-safe key so storage
// paths never reveal emails or provider ids.
func HashUserKey(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}
