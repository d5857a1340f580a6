package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrCommentNotFound is returned when a comment is not found
	ErrCommentNotFound = errors.New("comment not found")

	// ErrVersionConflict is returned when a versioned update matched an
	// existing row but the version column had moved on
	ErrVersionConflict = errors.New("version conflict")
)
