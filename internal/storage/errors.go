// Package storage defines backend-independent storage errors.
package storage

import "errors"

// ErrNotFound is returned when a record does not exist. For the
// aggregate store this is the new-identity signal: the synchronizer
// responds by seeding the demonstration dataset, not by failing.
var ErrNotFound = errors.New("not found")
