package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/shubh-37/journal-companion/internal/models"
)

// Digest fingerprints an entry collection. Any mutation of any stored field
// yields a different digest, so keys built from it never go stale.
func Digest(entries []models.JournalEntry) (string, error) {
	data, err := msgpack.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode entries: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
