package allocator

import "errors"

var (
	// ErrMissingGender means a guest arrived without a normalized M/F
	// gender. Gender drives segregation, so the whole call aborts before
	// any search begins.
	ErrMissingGender = errors.New("guest gender required for placement")

	// ErrNoSpace means all three slot-finder phases were exhausted. The
	// open-slot listing is the remediation path for a human operator.
	ErrNoSpace = errors.New("no room available")

	// ErrPartialGroup means a group could be placed only partially under
	// the gender and room constraints. The call fails atomically: no guest
	// from the failed call is considered placed.
	ErrPartialGroup = errors.New("group cannot be fully placed")

	// ErrDependentWithoutParent means an infant or child had no regular
	// guest to attach to. The original workflow silently dropped the
	// dependent; that looked like data loss, so it is an error here.
	ErrDependentWithoutParent = errors.New("no regular guest to host dependent")
)
