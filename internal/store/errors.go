package store

import "errors"

// Sentinel errors. Services translate these into coded domain errors; the
// store layer only distinguishes absence and uniqueness conflicts.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)
