package dataset

import "errors"

// Sentinel errors for the dataset contract. Implementations wrap these with
// location and cause detail; callers match with errors.Is.
var (
	// ErrNotFound indicates the configured location is absent on load.
	ErrNotFound = errors.New("data not found")

	// ErrFormat indicates content is present but cannot be parsed under the
	// configured options, or save was given data the format cannot represent.
	ErrFormat = errors.New("invalid data format")

	// ErrWrite indicates an I/O failure while persisting data.
	ErrWrite = errors.New("write failed")
)
