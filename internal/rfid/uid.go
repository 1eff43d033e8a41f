// Package rfid holds the badge UID codec and the assignment conflict
// rules. UIDs are stored in their canonical unspaced uppercase form and
// pair-spaced only at the presentation boundary.
package rfid

import (
	"strings"

	"github.com/pkg/errors"
)

// UIDLength is the number of hex characters in a badge UID (4 bytes).
const UIDLength = 8

// NormalizeUID canonicalizes a raw scanner UID: whitespace stripped,
// uppercased, exactly 8 hex characters.
func NormalizeUID(raw string) (string, error) {
	uid := strings.ToUpper(strings.Join(strings.Fields(raw), ""))

	if len(uid) != UIDLength {
		return "", errors.Errorf("uid must be exactly %d hex characters, got %d", UIDLength, len(uid))
	}
	for _, r := range uid {
		if !isHex(r) {
			return "", errors.Errorf("uid contains non-hex character %q", r)
		}
	}

	return uid, nil
}

// FormatUID renders a canonical UID as four space separated byte pairs,
// e.g. "4DD6D8B5" -> "4D D6 D8 B5". Non-canonical input is returned as is.
func FormatUID(uid string) string {
	if len(uid) != UIDLength {
		return uid
	}

	pairs := make([]string, 0, UIDLength/2)
	for i := 0; i < len(uid); i += 2 {
		pairs = append(pairs, uid[i:i+2])
	}
	return strings.Join(pairs, " ")
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
}
