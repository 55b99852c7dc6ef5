package errors

import "errors"

var (
	ErrNotFound = errors.New("berth not found")

	ErrDuplicateName = errors.New("berth with this name already exists")

	// ErrVersionConflict means the berth changed between read and save.
	ErrVersionConflict = errors.New("berth was modified concurrently")

	ErrSearchHorizonExhausted = errors.New("no free berth window within the search horizon")

	ErrInvalidWindow = errors.New("departure must be after arrival")
)
