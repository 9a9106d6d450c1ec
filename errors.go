package mapedit

import "errors"

var (
	// ErrNotMapping is returned when a document's top level is not a mapping.
	ErrNotMapping = errors.New("mapedit: top-level value is not a mapping")
	// ErrPathNotFound is returned by patch operations that require an existing location.
	ErrPathNotFound = errors.New("mapedit: path not found")
	// ErrUnsupportedOp is returned for JSON patch operations that cannot be applied.
	ErrUnsupportedOp = errors.New("mapedit: unsupported patch operation")
	// ErrTestFailed is returned when a JSON patch "test" operation does not match.
	ErrTestFailed = errors.New("mapedit: test operation failed")
	// ErrArrayPath is returned for pointers that address into sequences.
	ErrArrayPath = errors.New("mapedit: array segments are not supported")
)
