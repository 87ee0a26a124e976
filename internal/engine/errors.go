package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrAlreadyActivated indicates an activation for a buffer that
	// already has one.
	ErrAlreadyActivated = errors.New("buffer already activated")

	// ErrNotActivated indicates an operation on a buffer with no
	// activation.
	ErrNotActivated = errors.New("buffer not activated")

	// ErrReadOnly indicates a cleanup request against read-only content.
	ErrReadOnly = errors.New("content is read-only")

	// ErrDefectsPresent aborts a save when the abort-save-on-bogus
	// action is in effect and defects remain.
	ErrDefectsPresent = errors.New("whitespace defects present")

	// ErrNilContent indicates an activation without content.
	ErrNilContent = errors.New("content is nil")
)
