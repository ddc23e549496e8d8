// Package apperr defines sentinel errors shared across the engine.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrBinaryFormat is returned when the profile file is the game's
	// binary PROFSAVE layout. Writing it back as text destroys it, so
	// nothing past the parser ever touches such a file.
	ErrBinaryFormat = errors.New("binary profile format")

	// ErrLockConflict is returned when another commit is already in
	// flight against the same profile path.
	ErrLockConflict = errors.New("commit already in progress")

	// ErrGameRunning is returned when the target game process is
	// detected before a commit starts.
	ErrGameRunning = errors.New("game is running")

	// ErrValidation is returned when a proposed edit fails a hard
	// constraint and the whole batch is rejected.
	ErrValidation = errors.New("validation failed")
)
