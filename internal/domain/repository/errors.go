package repository

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist, is not visible to
	// the actor, or is not owned by the actor. The three cases are
	// indistinguishable to callers.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("resource already exists")

	// ErrObjectNotFound is returned when an object does not exist in storage.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
