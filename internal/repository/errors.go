package repository

import "errors"

// ErrNotFound is returned when a row does not exist or does not belong to the
// requesting owner. The two cases are indistinguishable on purpose: every
// query filters by both row id and user id.
var ErrNotFound = errors.New("row not found")
