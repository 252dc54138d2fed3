package queue

import "errors"

var (
	// ErrNotFound indicates the id is absent from the expected location.
	// Transitions run concurrently with readers, so callers should treat
	// this as a routine soft failure rather than a fatal condition.
	ErrNotFound = errors.New("queue item not found")

	// ErrConflict indicates an item with the same id already exists at the
	// destination of a move.
	ErrConflict = errors.New("queue item already exists at destination")

	// ErrEmptyContent rejects enqueue requests whose text is blank after
	// trimming whitespace.
	ErrEmptyContent = errors.New("content is empty")

	// ErrNothingToCancel indicates the working directory held no item when
	// a cancel resolved its target.
	ErrNothingToCancel = errors.New("no item is currently processing")

	// ErrWriteError indicates the filesystem rejected a create after the
	// bounded collision-retry loop was exhausted.
	ErrWriteError = errors.New("queue write failed")
)
