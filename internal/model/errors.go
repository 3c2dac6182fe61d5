package model

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error taxonomy surfaced by the domain layer. Callers match with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSourceRootNotFound = errors.New("source directory not found")
	ErrUnexpectedIO       = errors.New("unexpected I/O failure")
	ErrInvalidName        = errors.New("invalid name")
)

// ClassifyFSError tags a filesystem error with ErrPermissionDenied or
// ErrUnexpectedIO while keeping the original error in the chain.
func ClassifyFSError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrUnexpectedIO) {
		return err
	}

	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return fmt.Errorf("%w: %w", ErrUnexpectedIO, err)
}

// IsPrecondition reports whether err is a failure detected before any
// filesystem mutation took place.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrInvalidName)
}
