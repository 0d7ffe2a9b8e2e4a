// Package cache stores downloaded county-year source files so repeated
// gap-fill runs do not re-pull files that rarely change.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory, disk, and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key for a source URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "azboards:v1:" + hex.EncodeToString(hash[:])
}
