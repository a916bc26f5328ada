package audit

import "errors"

var (
	// ErrEntryValidation indicates an entry is missing required fields.
	ErrEntryValidation = errors.New("entry validation failed")

	// ErrStorageNotAvailable indicates the storage backend is unavailable.
	ErrStorageNotAvailable = errors.New("storage backend is unavailable")
)
