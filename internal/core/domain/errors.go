package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested clip or register does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateOfLatest indicates captured content matches the most
	// recent clip's fingerprint and was rejected. Older duplicates are
	// deliberately not detected.
	ErrDuplicateOfLatest = errors.New("duplicate of most recent clip")

	// ErrInvalidRegisterName indicates a register name outside A-Z / a-z.
	ErrInvalidRegisterName = errors.New("invalid register name")

	// ErrPermanentRegisterImmutable indicates an attempt to modify or
	// delete a configuration-sourced register through the interactive
	// surface.
	ErrPermanentRegisterImmutable = errors.New("permanent register is immutable")

	// ErrUnsupportedContent indicates the clipboard backend cannot carry
	// the given content kind. Recoverable; the caller reports it and
	// keeps its state.
	ErrUnsupportedContent = errors.New("unsupported content kind")
)
