package file

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

const (
	recordExt  = ".cache.json"
	tempPrefix = ".tmp-"

	// maxNameLen keeps the full file name under the common 255 byte limit
	maxNameLen = 200
)

var hostileChars = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SafeKey maps a logical cache key (often a full URL) to a file name stem.
// The mapping is deterministic but not reversible. Keys that differ only in
// replaced characters share a name; long keys keep a hash of the original.
func SafeKey(key string) string {
	safe := hostileChars.Replace(key)
	safe = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, safe)

	// never collide with temp files or hidden names
	if strings.HasPrefix(safe, ".") {
		safe = "_" + safe[1:]
	}
	if safe == "" {
		safe = "_"
	}

	if len(safe) > maxNameLen {
		sum := sha256.Sum256([]byte(key))
		suffix := "-" + hex.EncodeToString(sum[:8])
		cut := maxNameLen - len(suffix)
		for cut > 0 && !utf8.RuneStart(safe[cut]) {
			cut--
		}
		safe = safe[:cut] + suffix
	}

	return safe
}

// isRecordName reports whether a directory entry belongs to the store
func isRecordName(name string) bool {
	return strings.HasSuffix(name, recordExt) && !strings.HasPrefix(name, tempPrefix)
}

func isTempName(name string) bool {
	return strings.HasPrefix(name, tempPrefix)
}
