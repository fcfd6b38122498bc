package storage

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key identifies a submitted file by name and content hash.
type Key string

// Fingerprint derives the cache key for a submission.
func Fingerprint(fileName, text string) Key {
	sum := sha256.Sum256([]byte(text))
	return Key(fileName + "_" + hex.EncodeToString(sum[:])[:16])
}

// RefinementStore keeps the most recent rewrite produced for a fingerprint.
type RefinementStore interface {
	// Get returns the last rewrite stored under key.
	Get(key Key) (string, bool)

	// Put replaces the rewrite stored under key. The last write wins.
	Put(key Key, text string)

	// Len reports the number of stored entries.
	Len() int
}
