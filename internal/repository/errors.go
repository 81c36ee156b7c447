package repository

import "errors"

// ErrNotFound is a repository-specific sentinel error. It is returned when a
// key has no persisted value.
//
// The service layer checks for this specific error and applies its documented
// fallback (or translates it into a domain-level error), decoupling the
// business logic from the storage driver's own error (e.g. `sql.ErrNoRows`
// or `redis.Nil`).
var ErrNotFound = errors.New("repository: not found")
