package note

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// idRegex matches the generated ID format (8-4-4-4-12 hex chars).
var idRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// NewID returns a random UUIDv4-format identifier. IDs exist only locally;
// they are never recovered from the remote side.
func NewID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("reading random bytes: %v", err))
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// IsValidID checks if a string matches the generated ID format.
func IsValidID(s string) bool {
	return idRegex.MatchString(s)
}
