package digest

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

// Key is a 32-byte BLAKE3 key. Each use gets its own key so the same
// fields never seal to the same value in two contexts.
type Key [32]byte

// LogbookKey seals settlement figures written to the logbook.
var LogbookKey = Key{
	'h', 'e', 'l', 'm', 'w', 'a', 't', 'c', 'h', '.', 'l', 'o', 'g', 'b', 'o', 'o',
	'k', '.', 's', 'e', 'a', 'l', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Seal hashes the fields, separated by a unit separator, under key and
// returns the hex digest.
func Seal(key Key, fields ...string) string {
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		// Only reachable with a key that is not 32 bytes.
		panic("digest: " + err.Error())
	}
	_, _ = h.Write([]byte(strings.Join(fields, "\x1f")))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether seal matches the fields under key.
func Verify(key Key, seal string, fields ...string) bool {
	return seal != "" && Seal(key, fields...) == seal
}
