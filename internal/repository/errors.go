package repository

import "errors"

var (
	// ErrVersionConflict is returned when a guarded update matched no row
	// because another writer changed the record first.
	ErrVersionConflict = errors.New("repository: version conflict")
	// ErrAssigneeNotFound is returned when a bug write references a user
	// that does not exist at commit time.
	ErrAssigneeNotFound = errors.New("repository: assigned user not found")
)
