package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// keyNamespace keeps answer keys from colliding with unrelated cache uses.
const keyNamespace = "query:"

// DeriveKey builds the deterministic cache key for a (file, question) pair.
// The question is trimmed and lowercased first, so "What is X?" and
// "what is x? " share one entry. That tolerant matching is intentional:
// case or whitespace variants of the same question reuse the answer, at the
// cost of never distinguishing punctuation/case differences in meaning.
func DeriveKey(fileId, question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	sum := md5.Sum([]byte(fileId + ":" + normalized))
	return keyNamespace + hex.EncodeToString(sum[:])
}
