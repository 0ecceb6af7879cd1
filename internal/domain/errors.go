package domain

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with an existing row,
// e.g. a second registration for the same order item.
var ErrConflict = errors.New("conflict")
