package registry

import "errors"

// Sentinel errors for registry operations. Callers match with errors.Is.
var (
	// ErrUnknownType indicates a descriptor's type identifier has no
	// registered implementation.
	ErrUnknownType = errors.New("unknown dataset type")

	// ErrUnknownName indicates a lookup for a name that was never
	// registered.
	ErrUnknownName = errors.New("unknown dataset name")

	// ErrDuplicateName indicates a registration under a name that is
	// already taken. The existing entry is left unmodified.
	ErrDuplicateName = errors.New("duplicate dataset name")
)
