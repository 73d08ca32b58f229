package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("spool not found")
	ErrInvalidSlug = errors.New("invalid catalog slug")
	ErrInvalidExt  = errors.New("invalid image extension")
)

// StorageError reports a failed filesystem operation on the catalog.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
