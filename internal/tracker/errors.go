package tracker

import "errors"

// Error kinds returned by tracker operations. Callers match with errors.Is;
// the returned errors wrap these with details.
var (
	// ErrStateConflict means the operation would break the
	// at-most-one-running-entry rule, or needs a running entry and there is none.
	ErrStateConflict = errors.New("state conflict")
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidEdit   = errors.New("invalid edit")
	ErrInvalidPath   = errors.New("invalid entry path")
)
