package repository

import "errors"

// ErrNotFound is returned when no task matches the requested id or title.
var ErrNotFound = errors.New("task not found")
