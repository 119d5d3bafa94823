package model

import "errors"

var (
	// ErrNotFound means the referenced record no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName means a uniqueness constraint on a name was violated.
	ErrDuplicateName = errors.New("name already exists")
	// ErrEmptyText means a required name or body was blank after trimming.
	ErrEmptyText = errors.New("text is required")
	// ErrUnknownProcess means a task referenced a process outside the fixed set.
	ErrUnknownProcess = errors.New("unknown task process")
)
