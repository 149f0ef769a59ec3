/*
Package corr generates short opaque identifiers used purely for log
correlation: per-connection and per-file-item IDs that have no meaning
beyond tying related log lines together.
*/
package corr

import "github.com/google/uuid"

// idLen is the number of hex characters kept from a generated UUID.
const idLen = 8

// New returns a short opaque correlation ID.
func New() string {
	full := uuid.New().String()
	// The first 8 characters of the canonical form are the first UUID
	// group, so the slice holds only hex digits and no hyphen.
	compact := full[:idLen]
	return compact
}
