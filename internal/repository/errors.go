package repository

import (
	"errors"
	"fmt"
)

// ErrInvalidLimit is returned by ListRecent for a non-positive limit.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// StorageError reports that the persistence medium was unreachable or
// rejected an operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
