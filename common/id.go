package common

import "github.com/oklog/ulid/v2"

// NewID returns a 26-character, lexicographically sortable ULID. Owners,
// accounts and transactions all share this id scheme, so a transaction
// history read in id order is also chronological.
func NewID() string {
	return ulid.Make().String()
}
