package storage

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when a conditional insert finds a record already present.
var ErrAlreadyExists = errors.New("record already exists")

// ErrVersionConflict is returned when an optimistic write finds that the stored
// version moved since the record was read.
var ErrVersionConflict = errors.New("version conflict")
