// Package storage holds the named-slot persistence backends. A slot is one
// key holding one opaque value that is rewritten as a whole.
package storage

import "errors"

var (
	ErrNotFound = errors.New("slot not found")
)
