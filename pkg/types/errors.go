package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("not found")
)

// Entity operation errors.
var (
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidName     = errors.New("invalid name")
	ErrNoProfile       = errors.New("no profile selected")
	ErrNotAuthor       = errors.New("acting profile is not the log author")
	ErrLogLocked       = errors.New("log is locked")
	ErrSectionNotFound = errors.New("section not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrRowNotFound     = errors.New("row not found")
)
